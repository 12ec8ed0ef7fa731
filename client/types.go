package client

import (
	"time"

	"baseballnote/models"
)

type User struct {
	ID          string      `json:"id"`
	FirebaseUID string      `json:"firebase_uid"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Identity is the authenticated account as reported by /auth/verify.
type Identity struct {
	UID   string      `json:"uid"`
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Profile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	TeamName       string    `json:"team_name"`
	Birthday       string    `json:"birthday"`
	Age            int       `json:"age"`
	PlayerDominant string    `json:"player_dominant"`
	PlayerPosition string    `json:"player_position"`
	AdmiredPlayer  *string   `json:"admired_player"`
	Introduction   *string   `json:"introduction"`
	ImagePath      *string   `json:"image_path"`
	ImageURL       string    `json:"image_url"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PlayerSummary struct {
	Profile
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
}

type PlayerPage struct {
	Items    []PlayerSummary `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type NoteListItem struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Theme      string    `json:"theme"`
	Assignment string    `json:"assignment"`
}

type NotePage struct {
	Items    []NoteListItem `json:"items"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type Menu struct {
	ID        string    `json:"id"`
	Menu      string    `json:"menu"`
	UserID    *string   `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MenuList struct {
	Items []Menu `json:"items"`
	Total int64  `json:"total"`
}

type TrainingNote struct {
	ID         string `json:"id"`
	NoteID     string `json:"note_id"`
	TrainingID string `json:"training_id"`
	Count      int    `json:"count"`
	Training   *Menu  `json:"training,omitempty"`
}

type Note struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Theme         string         `json:"theme"`
	Assignment    string         `json:"assignment"`
	PracticeVideo *string        `json:"practice_video"`
	MyVideo       *string        `json:"my_video"`
	MyVideoURL    *string        `json:"my_video_url"`
	Weight        float64        `json:"weight"`
	Sleep         float64        `json:"sleep"`
	LookedDay     string         `json:"looked_day"`
	Practice      *string        `json:"practice"`
	TrainingNotes []TrainingNote `json:"training_notes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type Comment struct {
	ID          string    `json:"id"`
	NoteID      string    `json:"note_id"`
	UserID      string    `json:"user_id"`
	AuthorEmail string    `json:"author_email"`
	AuthorName  string    `json:"author_name"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Alert struct {
	ID        uint      `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	NoteID    *string   `json:"note_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type MenuTotal struct {
	TrainingID string  `json:"training_id"`
	Menu       string  `json:"menu"`
	Total      int     `json:"total"`
	Notes      int     `json:"notes"`
	AvgPerDay  float64 `json:"avg_per_day"`
}

// NoteStats summarizes a player's notes over a date range.
type NoteStats struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Metadata struct {
		DaysCounted        int  `json:"days_counted"`
		DaysWithNotes      int  `json:"days_with_notes"`
		IncludeMissingDays bool `json:"include_missing_days"`
	} `json:"metadata"`
	NoteCount int         `json:"note_count"`
	AvgWeight float64     `json:"avg_weight"`
	AvgSleep  float64     `json:"avg_sleep"`
	MinWeight float64     `json:"min_weight"`
	MaxWeight float64     `json:"max_weight"`
	Trainings []MenuTotal `json:"trainings"`
}

type DayOverview struct {
	Date      string   `json:"date"`
	Notes     int      `json:"notes"`
	Weight    *float64 `json:"weight"`
	Sleep     *float64 `json:"sleep"`
	Trainings int      `json:"trainings"`
}

type WeeklyOverview struct {
	WeekStart string        `json:"week_start"`
	Days      []DayOverview `json:"days"`
}
