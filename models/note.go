package models

import (
	"github.com/google/uuid"
)

// Note is one day's journal entry written by a player.
type Note struct {
	Model
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Theme         string    `gorm:"size:255;not null" json:"theme"`
	Assignment    string    `gorm:"type:text;not null" json:"assignment"`
	PracticeVideo *string   `gorm:"size:255" json:"practice_video"`
	MyVideo       *string   `gorm:"size:255" json:"my_video"`
	Weight        float64   `gorm:"type:decimal(4,1);not null" json:"weight"`
	Sleep         float64   `gorm:"type:decimal(3,1);not null" json:"sleep"`
	LookedDay     string    `gorm:"type:text;not null" json:"looked_day"`
	Practice      *string   `gorm:"type:text" json:"practice"`

	TrainingNotes []TrainingNote `gorm:"constraint:OnDelete:CASCADE" json:"training_notes"`
	Comments      []Comment      `json:"-"`
}

// TrainingNote is the repetition count a note reports for one training menu.
type TrainingNote struct {
	Model
	NoteID     uuid.UUID `gorm:"type:uuid;index;not null" json:"note_id"`
	TrainingID uuid.UUID `gorm:"type:uuid;index;not null" json:"training_id"`
	Count      int       `gorm:"not null" json:"count"`

	Training *Training `json:"training,omitempty"`
}
