package services

import (
	"context"
	"fmt"

	"baseballnote/models"
	"baseballnote/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingService struct {
	db *gorm.DB
}

func NewTrainingService(db *gorm.DB) *TrainingService {
	return &TrainingService{db: db}
}

type TrainingList struct {
	Items []models.Training `json:"items"`
	Total int64             `json:"total"`
}

func (s *TrainingService) Create(ctx context.Context, coachID uuid.UUID, in validation.MenuInput) (*models.Training, error) {
	if errs := validation.ValidateAddMenu(in); !errs.OK() {
		return nil, errs
	}
	t := &models.Training{Menu: in.Menu, UserID: &coachID}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("create training menu: %w", err)
	}
	return t, nil
}

// List returns every live menu in creation order.
func (s *TrainingService) List(ctx context.Context) (*TrainingList, error) {
	items := []models.Training{}
	if err := s.db.WithContext(ctx).Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return &TrainingList{Items: items, Total: int64(len(items))}, nil
}

// Delete soft deletes a menu. Notes that used it keep their counts.
func (s *TrainingService) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.Training{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fail(ErrNotFound, "トレーニングメニューが見つかりません")
	}
	return nil
}
