package services

import (
	"context"
	"sync"
	"testing"

	"baseballnote/models"
	"baseballnote/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushed struct {
	UserID uuid.UUID
	Body   string
	Data   map[string]string
}

type fakePusher struct {
	mu   sync.Mutex
	sent []pushed
}

func (f *fakePusher) PushToUser(_ context.Context, userID uuid.UUID, _, body string, data map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, pushed{userID, body, data})
}

func TestCommentService_AddNotifiesOwner(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	push := &fakePusher{}
	mailer := &captureMailer{}
	bus := NewAlertBus(db, NewRealtimeHub(), push)
	svc := NewCommentService(db, bus, mailer)
	notes := NewNoteService(db, newTestStore(t))

	player := createUser(t, db, "p@example.com", models.RolePlayer)
	coach := createUser(t, db, "c@example.com", models.RoleCoach)
	note, err := notes.Create(ctx, player.ID, noteInput(), nil)
	require.NoError(t, err)

	_, err = svc.Add(ctx, coach, note.ID, validation.CommentInput{Content: " "})
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)

	_, err = svc.Add(ctx, coach, uuid.New(), validation.CommentInput{Content: "いいね"})
	assert.ErrorIs(t, err, ErrNotFound)

	c, err := svc.Add(ctx, coach, note.ID, validation.CommentInput{Content: "腰の回転を意識しよう"})
	require.NoError(t, err)
	assert.Equal(t, "c@example.com", c.AuthorEmail)

	alerts, err := bus.List(ctx, player.ID, 10)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertComment, alerts[0].Type)
	require.NotNil(t, alerts[0].NoteID)
	assert.Equal(t, note.ID, *alerts[0].NoteID)

	require.Len(t, push.sent, 1)
	assert.Equal(t, player.ID, push.sent[0].UserID)
	assert.Equal(t, note.ID.String(), push.sent[0].Data["noteId"])

	assert.Equal(t, "p@example.com", mailer.last().To)
	assert.Contains(t, mailer.last().Body, "腰の回転を意識しよう")

	list, err := svc.List(ctx, note.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c@example.com", list[0].AuthorEmail)
}

func TestCommentService_Delete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewCommentService(db, nil, nil)
	notes := NewNoteService(db, newTestStore(t))
	player := createUser(t, db, "p@example.com", models.RolePlayer)
	coach := createUser(t, db, "c@example.com", models.RoleCoach)
	note, err := notes.Create(ctx, player.ID, noteInput(), nil)
	require.NoError(t, err)

	c, err := svc.Add(ctx, coach, note.ID, validation.CommentInput{Content: "ok"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, player.ID, c.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, coach.ID, c.ID))
	assert.ErrorIs(t, svc.Delete(ctx, coach.ID, c.ID), ErrNotFound)

	list, err := svc.List(ctx, note.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
