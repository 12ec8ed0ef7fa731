package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"baseballnote/models"
	"baseballnote/utils"
	"baseballnote/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CommentService handles coach feedback on player notes.
type CommentService struct {
	db     *gorm.DB
	alerts *AlertBus
	mailer utils.Mailer
}

// NewCommentService builds the service. alerts and mailer may be nil.
func NewCommentService(db *gorm.DB, alerts *AlertBus, mailer utils.Mailer) *CommentService {
	return &CommentService{db: db, alerts: alerts, mailer: mailer}
}

type CommentView struct {
	ID          uuid.UUID `json:"id"`
	NoteID      uuid.UUID `json:"note_id"`
	UserID      uuid.UUID `json:"user_id"`
	AuthorEmail string    `json:"author_email"`
	AuthorName  string    `json:"author_name,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func commentView(c *models.Comment) CommentView {
	v := CommentView{
		ID:        c.ID,
		NoteID:    c.NoteID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.User != nil {
		v.AuthorEmail = c.User.Email
		if c.User.Profile != nil {
			v.AuthorName = c.User.Profile.Name
		}
	}
	return v
}

// Add stores a comment and notifies the note owner.
func (s *CommentService) Add(ctx context.Context, author *models.User, noteID uuid.UUID, in validation.CommentInput) (*CommentView, error) {
	if errs := validation.ValidateComment(in); !errs.OK() {
		return nil, errs
	}
	db := s.db.WithContext(ctx)
	var note models.Note
	err := db.First(&note, "id = ?", noteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "ノートが見つかりません")
	}
	if err != nil {
		return nil, err
	}

	c := &models.Comment{NoteID: noteID, UserID: author.ID, Content: in.Content}
	if err := db.Create(c).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	c.User = author

	if note.UserID != author.ID {
		s.notify(ctx, &note, in.Content)
	}
	v := commentView(c)
	return &v, nil
}

func (s *CommentService) notify(ctx context.Context, note *models.Note, content string) {
	msg := fmt.Sprintf("ノート「%s」にコメントが届きました", note.Theme)
	if s.alerts != nil {
		if _, err := s.alerts.Emit(ctx, note.UserID, AlertComment, msg, &note.ID); err != nil {
			zap.L().Warn("emit comment alert", zap.Error(err))
		}
	}
	if s.mailer == nil {
		return
	}
	var owner models.User
	if err := s.db.WithContext(ctx).Select("id", "email").First(&owner, "id = ?", note.UserID).Error; err != nil {
		zap.L().Warn("load note owner", zap.Error(err))
		return
	}
	if err := utils.SendCommentEmail(ctx, s.mailer, owner.Email, note.Theme, content); err != nil {
		zap.L().Warn("send comment email", zap.Error(err))
	}
}

func (s *CommentService) List(ctx context.Context, noteID uuid.UUID) ([]CommentView, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Where("note_id = ?", noteID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	out := make([]CommentView, 0, len(comments))
	for i := range comments {
		out = append(out, commentView(&comments[i]))
	}
	return out, nil
}

// Delete soft deletes a comment. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID uuid.UUID) error {
	var c models.Comment
	err := s.db.WithContext(ctx).First(&c, "id = ?", commentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, "コメントが見つかりません")
	}
	if err != nil {
		return err
	}
	if c.UserID != actorID {
		return fail(ErrForbidden, "このコメントを削除する権限がありません")
	}
	return s.db.WithContext(ctx).Delete(&c).Error
}
