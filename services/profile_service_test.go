package services

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"baseballnote/models"
	"baseballnote/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeModerator struct {
	labels []string
	err    error
	calls  int
}

func (f *fakeModerator) ModerateImage(_ context.Context, _ []byte) ([]string, error) {
	f.calls++
	return f.labels, f.err
}

func profileInput() validation.ProfileInput {
	return validation.ProfileInput{
		Name:           "山田太郎",
		Birthday:       "2008-04-02",
		TeamName:       "港北リトル",
		PlayerDominant: "右投げ左打ち",
		PlayerPosition: "遊撃手",
	}
}

func pngUpload() *Upload {
	data := []byte("\x89PNG\r\n\x1a\nfake")
	return &Upload{Filename: "me.png", ContentType: "image/png", Size: int64(len(data)), Body: bytes.NewReader(data)}
}

func TestProfileService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	mod := &fakeModerator{}
	svc := NewProfileService(db, newTestStore(t), mod)
	svc.now = func() time.Time { return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC) }
	u := createUser(t, db, "p@example.com", models.RolePlayer)

	created, err := svc.Create(ctx, u.ID, profileInput(), pngUpload())
	require.NoError(t, err)
	assert.Equal(t, 16, created.Age)
	assert.Equal(t, "2008-04-02", created.Birthday)
	require.NotNil(t, created.ImagePath)
	assert.Contains(t, created.ImageURL, "/uploads/profiles/")
	assert.Equal(t, 1, mod.calls)

	_, err = svc.Create(ctx, u.ID, profileInput(), nil)
	assert.ErrorIs(t, err, ErrConflict)

	got, err := svc.Get(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, models.PositionShort, got.PlayerPosition)

	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "profile not found")
}

func TestProfileService_CreateRejects(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	u := createUser(t, db, "p@example.com", models.RolePlayer)

	t.Run("invalid fields", func(t *testing.T) {
		svc := NewProfileService(db, newTestStore(t), nil)
		in := profileInput()
		in.PlayerPosition = "DH"
		_, err := svc.Create(ctx, u.ID, in, nil)
		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs, "player_position")
	})

	t.Run("moderated image", func(t *testing.T) {
		svc := NewProfileService(db, newTestStore(t), &fakeModerator{labels: []string{"Violence"}})
		_, err := svc.Create(ctx, u.ID, profileInput(), pngUpload())
		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "この画像は使用できません", errs["image"])
	})

	t.Run("moderation failure", func(t *testing.T) {
		svc := NewProfileService(db, newTestStore(t), &fakeModerator{err: errors.New("throttled")})
		_, err := svc.Create(ctx, u.ID, profileInput(), pngUpload())
		assert.ErrorContains(t, err, "throttled")
	})

	t.Run("not an image", func(t *testing.T) {
		svc := NewProfileService(db, newTestStore(t), nil)
		up := pngUpload()
		up.ContentType = "application/pdf"
		_, err := svc.Create(ctx, u.ID, profileInput(), up)
		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "画像ファイルを選択してください", errs["image"])
	})
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db, newTestStore(t), nil)
	owner := createUser(t, db, "p@example.com", models.RolePlayer)
	other := createUser(t, db, "o@example.com", models.RolePlayer)

	p, err := svc.Create(ctx, owner.ID, profileInput(), nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, p.ID, validation.ProfileInput{TeamName: "x"}, map[string]bool{"team_name": true}, nil)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Update(ctx, owner.ID, uuid.New(), validation.ProfileInput{}, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, owner.ID, p.ID, validation.ProfileInput{TeamName: ""}, map[string]bool{"team_name": true}, nil)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, validation.Errors{"team_name": "チーム名は必須です"}, errs)

	updated, err := svc.Update(ctx, owner.ID, p.ID,
		validation.ProfileInput{TeamName: "青葉シニア", Introduction: "よろしく"},
		map[string]bool{"team_name": true, "introduction": true}, pngUpload())
	require.NoError(t, err)
	assert.Equal(t, "青葉シニア", updated.TeamName)
	assert.Equal(t, "山田太郎", updated.Name, "fields not sent are kept")
	require.NotNil(t, updated.Introduction)
	assert.Equal(t, "よろしく", *updated.Introduction)
	assert.NotNil(t, updated.ImagePath)
}

func TestProfileService_ListPlayers(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(db, newTestStore(t), nil)

	for _, name := range []string{"佐藤", "鈴木", "高橋"} {
		u := createUser(t, db, name+"@example.com", models.RolePlayer)
		in := profileInput()
		in.Name = name
		_, err := svc.Create(ctx, u.ID, in, nil)
		require.NoError(t, err)
	}
	coach := createUser(t, db, "coach@example.com", models.RoleCoach)
	in := profileInput()
	in.Name = "監督"
	_, err := svc.Create(ctx, coach.ID, in, nil)
	require.NoError(t, err)

	page, err := svc.ListPlayers(ctx, "", 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Total, "coaches are not listed")
	assert.Len(t, page.Items, 2)
	assert.NotEmpty(t, page.Items[0].Email)

	page, err = svc.ListPlayers(ctx, "鈴", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "鈴木", page.Items[0].Name)
	assert.Equal(t, "uid-鈴木@example.com", page.Items[0].FirebaseUID)
}
