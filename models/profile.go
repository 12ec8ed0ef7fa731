package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Position string

const (
	PositionPitcher Position = "投手"
	PositionCatcher Position = "捕手"
	PositionFirst   Position = "一塁手"
	PositionSecond  Position = "二塁手"
	PositionThird   Position = "三塁手"
	PositionShort   Position = "遊撃手"
	PositionLeft    Position = "左翼手"
	PositionCenter  Position = "中堅手"
	PositionRight   Position = "右翼手"
)

var Positions = []Position{
	PositionPitcher, PositionCatcher, PositionFirst, PositionSecond, PositionThird,
	PositionShort, PositionLeft, PositionCenter, PositionRight,
}

type DominantHand string

const (
	RightRight DominantHand = "右投げ右打ち"
	RightLeft  DominantHand = "右投げ左打ち"
	LeftRight  DominantHand = "左投げ右打ち"
	LeftLeft   DominantHand = "左投げ左打ち"
	BothRight  DominantHand = "両投げ右打ち"
	BothLeft   DominantHand = "両投げ左打ち"
	RightBoth  DominantHand = "右投げ両打ち"
	LeftBoth   DominantHand = "左投げ両打ち"
	BothBoth   DominantHand = "両投げ両打ち"
)

var DominantHands = []DominantHand{
	RightRight, RightLeft, LeftRight, LeftLeft, BothRight, BothLeft, RightBoth, LeftBoth, BothBoth,
}

func ParsePosition(s string) (Position, bool) {
	for _, p := range Positions {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

func ParseDominantHand(s string) (DominantHand, bool) {
	for _, h := range DominantHands {
		if string(h) == s {
			return h, true
		}
	}
	return "", false
}

// Profile is a player's biographical data. One per user; never soft deleted.
type Profile struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Name           string       `gorm:"size:255;not null" json:"name"`
	TeamName       string       `gorm:"size:255;not null" json:"team_name"`
	Birthday       time.Time    `gorm:"not null" json:"birthday"`
	PlayerDominant DominantHand `gorm:"size:32;not null" json:"player_dominant"`
	PlayerPosition Position     `gorm:"size:32;not null" json:"player_position"`
	AdmiredPlayer  *string      `gorm:"size:255" json:"admired_player"`
	Introduction   *string      `gorm:"type:text" json:"introduction"`
	ImagePath      *string      `gorm:"size:255" json:"image_path"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
