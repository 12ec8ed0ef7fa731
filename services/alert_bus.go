package services

import (
	"context"
	"fmt"
	"time"

	"baseballnote/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	AlertComment = "comment"
	AlertInfo    = "info"
)

// Pusher delivers a notification to a user's devices.
type Pusher interface {
	PushToUser(ctx context.Context, userID uuid.UUID, title, body string, data map[string]string)
}

// AlertBus stores an alert, then fans it out over websockets and push. rt and push may be nil.
type AlertBus struct {
	db   *gorm.DB
	rt   *RealtimeHub
	push Pusher
}

func NewAlertBus(db *gorm.DB, rt *RealtimeHub, push Pusher) *AlertBus {
	return &AlertBus{db: db, rt: rt, push: push}
}

func (b *AlertBus) Emit(ctx context.Context, userID uuid.UUID, typ, message string, noteID *uuid.UUID) (*models.Alert, error) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, NoteID: noteID, CreatedAt: time.Now()}
	if err := b.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, fmt.Errorf("store alert: %w", err)
	}

	if b.rt != nil {
		b.rt.BroadcastAlert(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if b.push != nil {
		data := map[string]string{"type": typ, "alertId": fmt.Sprintf("%d", a.ID)}
		if noteID != nil {
			data["noteId"] = noteID.String()
		}
		b.push.PushToUser(ctx, userID, "野球ノート", message, data)
	}
	zap.L().Debug("alert emitted", zap.String("user_id", userID.String()), zap.String("type", typ))
	return a, nil
}

// List returns a user's most recent alerts, newest first.
func (b *AlertBus) List(ctx context.Context, userID uuid.UUID, limit int) ([]models.Alert, error) {
	alerts := []models.Alert{}
	err := b.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
