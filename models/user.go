package models

import (
	"time"
)

// Role is the integer role claim carried on sessions and tokens.
type Role int

const (
	RolePlayer Role = 0
	RoleCoach  Role = 1
)

func (r Role) Valid() bool {
	return r == RolePlayer || r == RoleCoach
}

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "PLAYER"
	case RoleCoach:
		return "COACH"
	default:
		return "UNKNOWN"
	}
}

type User struct {
	Model
	FirebaseUID   string    `gorm:"size:128;uniqueIndex;not null" json:"firebase_uid"`
	Email         string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string    `gorm:"size:255;not null" json:"-"`
	Role          Role      `gorm:"not null;default:0" json:"role"`
	ResetToken    string    `gorm:"size:64;index" json:"-"`
	ResetTokenExp time.Time `json:"-"`

	Profile *Profile `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
}
