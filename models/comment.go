package models

import "github.com/google/uuid"

type Comment struct {
	Model
	NoteID  uuid.UUID `gorm:"type:uuid;index;not null" json:"note_id"`
	UserID  uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Content string    `gorm:"type:text;not null" json:"content"`

	User *User `json:"-"`
}
