package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Training is a named exercise a coach configures. Notes report counts against it.
type Training struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Menu      string         `gorm:"type:text;not null" json:"menu"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Training) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
