package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"baseballnote/models"
	"baseballnote/utils"
	"baseballnote/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type NoteService struct {
	db    *gorm.DB
	store MediaStore
}

func NewNoteService(db *gorm.DB, store MediaStore) *NoteService {
	return &NoteService{db: db, store: store}
}

// ParseTrainings decodes the trainings form field, a JSON array of {training_id, count}.
func ParseTrainings(raw string) ([]validation.TrainingInput, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []validation.TrainingInput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fail(ErrBadRequest, "トレーニングデータの形式が不正です")
	}
	return out, nil
}

type NoteListItem struct {
	ID         uuid.UUID `json:"id"`
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

// NoteDetail is a note with its training menus and a playable URL for the uploaded video.
type NoteDetail struct {
	models.Note
	MyVideoURL *string `json:"my_video_url"`
}

func (s *NoteService) trainingNotes(ctx context.Context, in []validation.TrainingInput) ([]models.TrainingNote, error) {
	ids := make([]uuid.UUID, 0, len(in))
	for _, t := range in {
		id, err := uuid.Parse(t.TrainingID)
		if err != nil {
			return nil, fail(ErrBadRequest, "トレーニングデータの形式が不正です")
		}
		if t.Count < 1 {
			return nil, fail(ErrBadRequest, "トレーニングに対して1回以上の回数を入力してください")
		}
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		var n int64
		if err := s.db.WithContext(ctx).Model(&models.Training{}).Where("id IN ?", ids).Count(&n).Error; err != nil {
			return nil, err
		}
		if int(n) != len(uniq(ids)) {
			return nil, fail(ErrBadRequest, "トレーニングメニューが見つかりません")
		}
	}
	out := make([]models.TrainingNote, 0, len(in))
	for i, t := range in {
		out = append(out, models.TrainingNote{TrainingID: ids[i], Count: t.Count})
	}
	return out, nil
}

func uniq(ids []uuid.UUID) map[uuid.UUID]struct{} {
	m := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func (s *NoteService) saveVideo(ctx context.Context, video *Upload) (string, error) {
	if msg := validation.ValidateVideoUpload(&validation.FileInfo{Name: video.Filename, Size: video.Size}); msg != "" {
		return "", fail(ErrBadRequest, msg)
	}
	key := noteVideoKey(video.Filename)
	if err := s.store.Put(ctx, key, video.Body, video.Size, validation.VideoContentType(video.Filename)); err != nil {
		return "", fmt.Errorf("動画保存に失敗しました: %w", err)
	}
	zap.L().Info("note video stored", zap.String("key", key))
	return key, nil
}

func (s *NoteService) deleteVideo(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		zap.L().Warn("failed to delete note video", zap.String("key", key), zap.Error(err))
	}
}

func (s *NoteService) Create(ctx context.Context, userID uuid.UUID, in validation.NoteInput, video *Upload) (*NoteDetail, error) {
	if errs := validation.ValidateNote(in, nil); !errs.OK() {
		return nil, errs
	}
	tns, err := s.trainingNotes(ctx, in.Trainings)
	if err != nil {
		return nil, err
	}

	note := &models.Note{
		UserID:        userID,
		Theme:         in.Theme,
		Assignment:    in.Assignment,
		PracticeVideo: optional(in.PracticeVideo),
		Weight:        in.Weight,
		Sleep:         in.Sleep,
		LookedDay:     in.LookedDay,
		Practice:      optional(in.Practice),
		TrainingNotes: tns,
	}
	if video != nil {
		key, err := s.saveVideo(ctx, video)
		if err != nil {
			return nil, err
		}
		note.MyVideo = &key
	}
	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		if note.MyVideo != nil {
			s.deleteVideo(ctx, *note.MyVideo)
		}
		return nil, fmt.Errorf("create note: %w", err)
	}
	return s.Detail(ctx, note.ID)
}

// ListByUser returns a page of a user's notes, newest first. q matches theme or assignment.
func (s *NoteService) ListByUser(ctx context.Context, userID uuid.UUID, q string, page, size int) (*NotePage, error) {
	base := s.db.WithContext(ctx).Model(&models.Note{}).Where("user_id = ?", userID)
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		base = base.Where("theme LIKE ? OR assignment LIKE ?", like, like)
	}
	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}
	items := []NoteListItem{}
	err := base.Session(&gorm.Session{}).
		Select("id, created_at, theme, assignment").
		Order("created_at DESC").
		Offset(utils.Offset(page, size)).
		Limit(size).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return &NotePage{Items: items, Total: total, Page: page, PageSize: size}, nil
}

func (s *NoteService) ListByFirebaseUID(ctx context.Context, uid, q string, page, size int) (*NotePage, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("firebase_uid = ?", uid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "ユーザーが見つかりません")
	}
	if err != nil {
		return nil, err
	}
	return s.ListByUser(ctx, user.ID, q, page, size)
}

func (s *NoteService) get(ctx context.Context, noteID uuid.UUID) (*models.Note, error) {
	var note models.Note
	err := s.db.WithContext(ctx).
		Preload("TrainingNotes", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("TrainingNotes.Training", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		First(&note, "id = ?", noteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "ノートが見つかりません")
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) Detail(ctx context.Context, noteID uuid.UUID) (*NoteDetail, error) {
	note, err := s.get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	d := &NoteDetail{Note: *note}
	if note.MyVideo != nil {
		url, err := s.store.URL(ctx, *note.MyVideo)
		if err != nil {
			zap.L().Info("動画URL生成エラー", zap.String("key", *note.MyVideo), zap.Error(err))
		} else {
			d.MyVideoURL = &url
		}
	}
	return d, nil
}

// Update replaces the note's fields and trainings. A new video replaces the old one;
// deleteVideo without a new upload removes it.
func (s *NoteService) Update(ctx context.Context, actorID, noteID uuid.UUID, in validation.NoteInput, video *Upload, deleteVideo bool) (*NoteDetail, error) {
	note, err := s.get(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note.UserID != actorID {
		return nil, fail(ErrForbidden, "このノートを編集する権限がありません")
	}
	if errs := validation.ValidateEditNote(in, nil); !errs.OK() {
		return nil, errs
	}
	tns, err := s.trainingNotes(ctx, in.Trainings)
	if err != nil {
		return nil, err
	}

	oldVideo := note.MyVideo
	newVideo := oldVideo
	if video != nil {
		key, err := s.saveVideo(ctx, video)
		if err != nil {
			return nil, err
		}
		newVideo = &key
	} else if deleteVideo {
		newVideo = nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"theme":          in.Theme,
			"assignment":     in.Assignment,
			"practice_video": optional(in.PracticeVideo),
			"my_video":       newVideo,
			"weight":         in.Weight,
			"sleep":          in.Sleep,
			"looked_day":     in.LookedDay,
			"practice":       optional(in.Practice),
		}
		if err := tx.Model(&models.Note{}).Where("id = ?", noteID).Updates(updates).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("note_id = ?", noteID).Delete(&models.TrainingNote{}).Error; err != nil {
			return err
		}
		for i := range tns {
			tns[i].NoteID = noteID
		}
		if len(tns) > 0 {
			if err := tx.Create(&tns).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if video != nil {
			s.deleteVideo(ctx, *newVideo)
		}
		return nil, fmt.Errorf("ノート更新中にエラーが発生しました: %w", err)
	}
	if oldVideo != nil && (newVideo == nil || *newVideo != *oldVideo) {
		s.deleteVideo(ctx, *oldVideo)
	}
	return s.Detail(ctx, noteID)
}

// Delete soft deletes a note owned by actorID.
func (s *NoteService) Delete(ctx context.Context, actorID, noteID uuid.UUID) error {
	var note models.Note
	err := s.db.WithContext(ctx).First(&note, "id = ?", noteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(ErrNotFound, "ノートが見つかりません")
	}
	if err != nil {
		return err
	}
	if note.UserID != actorID {
		return fail(ErrForbidden, "このノートを削除する権限がありません")
	}
	return s.db.WithContext(ctx).Delete(&note).Error
}

// Owner returns the user id of a note, for access checks on related resources.
func (s *NoteService) Owner(ctx context.Context, noteID uuid.UUID) (uuid.UUID, error) {
	var note models.Note
	err := s.db.WithContext(ctx).Select("id", "user_id").First(&note, "id = ?", noteID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fail(ErrNotFound, "ノートが見つかりません")
	}
	return note.UserID, err
}
