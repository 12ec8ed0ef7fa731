package services

import (
	"context"
	"errors"
	"time"

	"baseballnote/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExportService flattens notebook data for the chatbot knowledge base.
type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{db: db}
}

type ExportUser struct {
	ID          string      `json:"id"`
	FirebaseUID string      `json:"firebase_uid"`
	Email       string      `json:"email"`
	Role        models.Role `json:"role"`
	CreatedAt   string      `json:"created_at"`
	UpdatedAt   string      `json:"updated_at,omitempty"`
}

type ExportProfile struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	Name          string  `json:"name"`
	TeamName      string  `json:"team_name"`
	Position      string  `json:"position"`
	DominantHand  string  `json:"dominant_hand"`
	Birthday      string  `json:"birthday"`
	AdmiredPlayer *string `json:"admired_player"`
	Introduction  *string `json:"introduction"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ExportNote struct {
	ID         string  `json:"id"`
	UserID     string  `json:"user_id"`
	Theme      string  `json:"theme"`
	Assignment string  `json:"assignment"`
	Weight     float64 `json:"weight"`
	Sleep      float64 `json:"sleep"`
	LookedDay  string  `json:"looked_day"`
	Practice   *string `json:"practice"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

type ExportTraining struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Menu      string `json:"menu"`
	CreatedAt string `json:"created_at"`
}

type ExportTrainingNote struct {
	ID         string `json:"id"`
	TrainingID string `json:"training_id"`
	NoteID     string `json:"note_id"`
	Count      int    `json:"count"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type UserData struct {
	Profile       *ExportProfile       `json:"profile"`
	Notes         []ExportNote         `json:"notes"`
	Trainings     []ExportTraining     `json:"trainings"`
	TrainingNotes []ExportTrainingNote `json:"training_notes"`
}

type UserExport struct {
	CurrentUser ExportUser `json:"current_user"`
	MyData      UserData   `json:"my_data"`
}

type AllExport struct {
	Users         []ExportUser         `json:"users"`
	Profiles      []ExportProfile      `json:"profiles"`
	Notes         []ExportNote         `json:"notes"`
	Trainings     []ExportTraining     `json:"trainings"`
	TrainingNotes []ExportTrainingNote `json:"training_notes"`
}

func iso(t time.Time) string { return t.Format(time.RFC3339) }

func exportUser(u *models.User) ExportUser {
	return ExportUser{
		ID:          u.ID.String(),
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		Role:        u.Role,
		CreatedAt:   iso(u.CreatedAt),
		UpdatedAt:   iso(u.UpdatedAt),
	}
}

func exportProfile(p *models.Profile) ExportProfile {
	return ExportProfile{
		ID:            p.ID.String(),
		UserID:        p.UserID.String(),
		Name:          p.Name,
		TeamName:      p.TeamName,
		Position:      string(p.PlayerPosition),
		DominantHand:  string(p.PlayerDominant),
		Birthday:      p.Birthday.Format("2006-01-02"),
		AdmiredPlayer: p.AdmiredPlayer,
		Introduction:  p.Introduction,
		CreatedAt:     iso(p.CreatedAt),
		UpdatedAt:     iso(p.UpdatedAt),
	}
}

func exportNotes(notes []models.Note) []ExportNote {
	out := make([]ExportNote, 0, len(notes))
	for _, n := range notes {
		out = append(out, ExportNote{
			ID:         n.ID.String(),
			UserID:     n.UserID.String(),
			Theme:      n.Theme,
			Assignment: n.Assignment,
			Weight:     n.Weight,
			Sleep:      n.Sleep,
			LookedDay:  n.LookedDay,
			Practice:   n.Practice,
			CreatedAt:  iso(n.CreatedAt),
			UpdatedAt:  iso(n.UpdatedAt),
		})
	}
	return out
}

func exportTrainings(ts []models.Training) []ExportTraining {
	out := make([]ExportTraining, 0, len(ts))
	for _, t := range ts {
		owner := ""
		if t.UserID != nil {
			owner = t.UserID.String()
		}
		out = append(out, ExportTraining{ID: t.ID.String(), UserID: owner, Menu: t.Menu, CreatedAt: iso(t.CreatedAt)})
	}
	return out
}

func exportTrainingNotes(tns []models.TrainingNote) []ExportTrainingNote {
	out := make([]ExportTrainingNote, 0, len(tns))
	for _, tn := range tns {
		out = append(out, ExportTrainingNote{
			ID:         tn.ID.String(),
			TrainingID: tn.TrainingID.String(),
			NoteID:     tn.NoteID.String(),
			Count:      tn.Count,
			CreatedAt:  iso(tn.CreatedAt),
			UpdatedAt:  iso(tn.UpdatedAt),
		})
	}
	return out
}

// UserData returns one user's account, profile, notes, menus and counts.
func (s *ExportService) UserData(ctx context.Context, firebaseUID string) (*UserExport, error) {
	db := s.db.WithContext(ctx)
	var user models.User
	err := db.Where("firebase_uid = ?", firebaseUID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "User not found")
	}
	if err != nil {
		return nil, err
	}
	current := exportUser(&user)
	current.UpdatedAt = ""

	data, err := s.userData(db, user.ID)
	if err != nil {
		return nil, err
	}
	return &UserExport{CurrentUser: current, MyData: *data}, nil
}

func (s *ExportService) userData(db *gorm.DB, userID uuid.UUID) (*UserData, error) {
	out := &UserData{}

	var profile models.Profile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	switch {
	case err == nil:
		p := exportProfile(&profile)
		out.Profile = &p
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	var notes []models.Note
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	out.Notes = exportNotes(notes)

	var trainings []models.Training
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&trainings).Error; err != nil {
		return nil, err
	}
	out.Trainings = exportTrainings(trainings)

	var tns []models.TrainingNote
	err = db.Joins("JOIN notes ON notes.id = training_notes.note_id AND notes.deleted_at IS NULL").
		Where("notes.user_id = ?", userID).
		Order("training_notes.created_at ASC").
		Find(&tns).Error
	if err != nil {
		return nil, err
	}
	out.TrainingNotes = exportTrainingNotes(tns)
	return out, nil
}

// AllData dumps every live row of every notebook table.
func (s *ExportService) AllData(ctx context.Context) (*AllExport, error) {
	db := s.db.WithContext(ctx)
	var (
		users     []models.User
		profiles  []models.Profile
		notes     []models.Note
		trainings []models.Training
		tns       []models.TrainingNote
	)
	if err := db.Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&notes).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&trainings).Error; err != nil {
		return nil, err
	}
	if err := db.Order("created_at ASC").Find(&tns).Error; err != nil {
		return nil, err
	}

	out := &AllExport{
		Users:         make([]ExportUser, 0, len(users)),
		Profiles:      make([]ExportProfile, 0, len(profiles)),
		Notes:         exportNotes(notes),
		Trainings:     exportTrainings(trainings),
		TrainingNotes: exportTrainingNotes(tns),
	}
	for i := range users {
		out.Users = append(out.Users, exportUser(&users[i]))
	}
	for i := range profiles {
		out.Profiles = append(out.Profiles, exportProfile(&profiles[i]))
	}
	return out, nil
}
