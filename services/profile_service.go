package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"baseballnote/models"
	"baseballnote/utils"
	"baseballnote/validation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileView is a profile as returned by the API.
type ProfileView struct {
	models.Profile
	Birthday string `json:"birthday"`
	Age      int    `json:"age"`
	ImageURL string `json:"image_url,omitempty"`
}

type ProfileService struct {
	db        *gorm.DB
	store     MediaStore
	moderator ImageModerator
	now       func() time.Time
}

// NewProfileService wires storage for images. moderator may be nil.
func NewProfileService(db *gorm.DB, store MediaStore, moderator ImageModerator) *ProfileService {
	return &ProfileService{db: db, store: store, moderator: moderator, now: time.Now}
}

func (s *ProfileService) view(ctx context.Context, p *models.Profile) *ProfileView {
	v := &ProfileView{
		Profile:  *p,
		Birthday: p.Birthday.Format(validation.DateLayout),
		Age:      utils.CalculateAge(p.Birthday, s.now()),
	}
	if p.ImagePath != nil && s.store != nil {
		url, err := s.store.URL(ctx, *p.ImagePath)
		if err != nil {
			zap.L().Warn("profile image url", zap.String("key", *p.ImagePath), zap.Error(err))
		} else {
			v.ImageURL = url
		}
	}
	return v
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// saveImage validates, moderates and stores an uploaded profile image, returning its key.
func (s *ProfileService) saveImage(ctx context.Context, img *Upload) (string, error) {
	if msg := validation.ValidateImage(&validation.FileInfo{Name: img.Filename, Size: img.Size, ContentType: img.ContentType}); msg != "" {
		return "", validation.Errors{"image": msg}
	}
	data, err := io.ReadAll(io.LimitReader(img.Body, validation.MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) > validation.MaxImageSize {
		return "", validation.Errors{"image": "画像のサイズは5MB以下にしてください"}
	}
	if s.moderator != nil {
		labels, err := s.moderator.ModerateImage(ctx, data)
		if err != nil {
			return "", err
		}
		if len(labels) > 0 {
			zap.L().Info("profile image rejected", zap.Strings("labels", labels))
			return "", validation.Errors{"image": "この画像は使用できません"}
		}
	}
	key := profileImageKey(img.ContentType)
	if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), img.ContentType); err != nil {
		return "", err
	}
	return key, nil
}

func (s *ProfileService) Create(ctx context.Context, userID uuid.UUID, in validation.ProfileInput, image *Upload) (*ProfileView, error) {
	if errs := validation.ValidateProfile(in, s.now()); !errs.OK() {
		return nil, errs
	}
	db := s.db.WithContext(ctx)
	var n int64
	if err := db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fail(ErrConflict, "profile already exists")
	}

	birthday, _ := validation.ParseDate(in.Birthday)
	p := &models.Profile{
		UserID:         userID,
		Name:           in.Name,
		TeamName:       in.TeamName,
		Birthday:       birthday,
		PlayerDominant: models.DominantHand(in.PlayerDominant),
		PlayerPosition: models.Position(in.PlayerPosition),
		AdmiredPlayer:  optional(in.AdmiredPlayer),
		Introduction:   optional(in.Introduction),
	}
	if image != nil {
		key, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		p.ImagePath = &key
	}
	if err := db.Create(p).Error; err != nil {
		if p.ImagePath != nil {
			_ = s.store.Delete(ctx, *p.ImagePath)
		}
		return nil, fmt.Errorf("プロフィール作成中にエラー： %w", err)
	}
	return s.view(ctx, p), nil
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "profile not found")
	}
	if err != nil {
		return nil, err
	}
	return s.view(ctx, &p), nil
}

// Update applies the fields named in set. Only the owner may update.
func (s *ProfileService) Update(ctx context.Context, actorID, profileID uuid.UUID, in validation.ProfileInput, set map[string]bool, image *Upload) (*ProfileView, error) {
	db := s.db.WithContext(ctx)
	var p models.Profile
	err := db.First(&p, "id = ?", profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fail(ErrNotFound, "update_profile not found")
	}
	if err != nil {
		return nil, err
	}
	if p.UserID != actorID {
		return nil, fail(ErrForbidden, "このプロフィールを編集する権限がありません")
	}
	if errs := validation.ValidateProfileUpdate(in, set, s.now()); !errs.OK() {
		return nil, errs
	}

	if set["name"] {
		p.Name = in.Name
	}
	if set["team_name"] {
		p.TeamName = in.TeamName
	}
	if set["birthday"] {
		p.Birthday, _ = validation.ParseDate(in.Birthday)
	}
	if set["player_dominant"] {
		p.PlayerDominant = models.DominantHand(in.PlayerDominant)
	}
	if set["player_position"] {
		p.PlayerPosition = models.Position(in.PlayerPosition)
	}
	if set["admired_player"] {
		p.AdmiredPlayer = optional(in.AdmiredPlayer)
	}
	if set["introduction"] {
		p.Introduction = optional(in.Introduction)
	}

	var oldImage *string
	if image != nil {
		key, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		oldImage = p.ImagePath
		p.ImagePath = &key
	}
	if err := db.Save(&p).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if oldImage != nil {
		if err := s.store.Delete(ctx, *oldImage); err != nil {
			zap.L().Warn("failed to delete old profile image", zap.String("key", *oldImage), zap.Error(err))
		}
	}
	return s.view(ctx, &p), nil
}

type PlayerSummary struct {
	ProfileView
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
}

type PlayerPage struct {
	Items    []PlayerSummary `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// ListPlayers pages through player profiles, optionally filtered by name or team.
func (s *ProfileService) ListPlayers(ctx context.Context, q string, page, size int) (*PlayerPage, error) {
	base := s.db.WithContext(ctx).
		Model(&models.Profile{}).
		Joins("JOIN users ON users.id = profiles.user_id AND users.deleted_at IS NULL").
		Where("users.role = ?", models.RolePlayer)
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		base = base.Where("profiles.name LIKE ? OR profiles.team_name LIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		models.Profile
		FirebaseUID string
		Email       string
	}
	err := base.Session(&gorm.Session{}).
		Select("profiles.*, users.firebase_uid, users.email").
		Order("profiles.name ASC").
		Offset(utils.Offset(page, size)).
		Limit(size).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &PlayerPage{Items: make([]PlayerSummary, 0, len(rows)), Total: total, Page: page, PageSize: size}
	for i := range rows {
		out.Items = append(out.Items, PlayerSummary{
			ProfileView: *s.view(ctx, &rows[i].Profile),
			FirebaseUID: rows[i].FirebaseUID,
			Email:       rows[i].Email,
		})
	}
	return out, nil
}
