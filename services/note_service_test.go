package services

import (
	"context"
	"strings"
	"testing"

	"baseballnote/models"
	"baseballnote/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noteInput(trainings ...validation.TrainingInput) validation.NoteInput {
	return validation.NoteInput{
		Theme:      "バッティング",
		Assignment: "インコース",
		Weight:     60.5,
		Sleep:      8,
		LookedDay:  "よく振れた",
		Trainings:  trainings,
	}
}

func videoUpload(name string) *Upload {
	return &Upload{Filename: name, Size: 5, Body: strings.NewReader("video")}
}

func TestParseTrainings(t *testing.T) {
	got, err := ParseTrainings(`[{"training_id":"abc","count":3}]`)
	require.NoError(t, err)
	assert.Equal(t, []validation.TrainingInput{{TrainingID: "abc", Count: 3}}, got)

	got, err = ParseTrainings("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseTrainings("{not json")
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.EqualError(t, err, "トレーニングデータの形式が不正です")
}

func TestNoteService_CreateDetailList(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewNoteService(db, newTestStore(t))
	u := createUser(t, db, "p@example.com", models.RolePlayer)
	swing := createMenu(t, db, "素振り")

	created, err := svc.Create(ctx, u.ID, noteInput(validation.TrainingInput{TrainingID: swing.ID.String(), Count: 100}), videoUpload("clip.MOV"))
	require.NoError(t, err)
	require.Len(t, created.TrainingNotes, 1)
	assert.Equal(t, 100, created.TrainingNotes[0].Count)
	require.NotNil(t, created.TrainingNotes[0].Training)
	assert.Equal(t, "素振り", created.TrainingNotes[0].Training.Menu)
	require.NotNil(t, created.MyVideo)
	assert.True(t, strings.HasPrefix(*created.MyVideo, "note_videos/"))
	assert.True(t, strings.HasSuffix(*created.MyVideo, ".mov"))
	require.NotNil(t, created.MyVideoURL)
	assert.Nil(t, created.PracticeVideo)

	second := noteInput()
	second.Theme = "守備"
	_, err = svc.Create(ctx, u.ID, second, nil)
	require.NoError(t, err)

	page, err := svc.ListByFirebaseUID(ctx, u.FirebaseUID, "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "守備", page.Items[0].Theme, "newest first")

	page, err = svc.ListByUser(ctx, u.ID, "バッティ", 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)

	_, err = svc.ListByFirebaseUID(ctx, "missing", "", 1, 10)
	assert.EqualError(t, err, "ユーザーが見つかりません")

	empty, err := svc.ListByUser(ctx, uuid.New(), "", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}

func TestNoteService_CreateRejects(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewNoteService(db, newTestStore(t))
	u := createUser(t, db, "p@example.com", models.RolePlayer)

	in := noteInput()
	in.Weight = 60.55
	_, err := svc.Create(ctx, u.ID, in, nil)
	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "weight")

	_, err = svc.Create(ctx, u.ID, noteInput(validation.TrainingInput{TrainingID: uuid.NewString(), Count: 1}), nil)
	assert.EqualError(t, err, "トレーニングメニューが見つかりません")

	_, err = svc.Create(ctx, u.ID, noteInput(validation.TrainingInput{TrainingID: "nope", Count: 1}), nil)
	assert.ErrorIs(t, err, ErrBadRequest)

	swing := createMenu(t, db, "素振り")
	for _, n := range []int{0, -5} {
		_, err = svc.Create(ctx, u.ID, noteInput(validation.TrainingInput{TrainingID: swing.ID.String(), Count: n}), nil)
		assert.ErrorIs(t, err, ErrBadRequest, "count %d", n)
		assert.EqualError(t, err, "トレーニングに対して1回以上の回数を入力してください")
	}
	var stored int64
	db.Model(&models.TrainingNote{}).Count(&stored)
	assert.Zero(t, stored)

	_, err = svc.Create(ctx, u.ID, noteInput(), videoUpload("clip.webm"))
	assert.ErrorContains(t, err, "サポートされていない動画形式です")
}

func TestNoteService_Update(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := newTestStore(t)
	svc := NewNoteService(db, store)
	owner := createUser(t, db, "p@example.com", models.RolePlayer)
	other := createUser(t, db, "o@example.com", models.RolePlayer)
	swing := createMenu(t, db, "素振り")
	run := createMenu(t, db, "ランニング")

	note, err := svc.Create(ctx, owner.ID, noteInput(validation.TrainingInput{TrainingID: swing.ID.String(), Count: 10}), videoUpload("a.mp4"))
	require.NoError(t, err)
	oldKey := *note.MyVideo

	_, err = svc.Update(ctx, other.ID, note.ID, noteInput(), nil, false)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.EqualError(t, err, "このノートを編集する権限がありません")

	_, err = svc.Update(ctx, owner.ID, note.ID, noteInput(validation.TrainingInput{TrainingID: run.ID.String(), Count: 0}), nil, false)
	assert.EqualError(t, err, "トレーニングに対して1回以上の回数を入力してください")

	in := noteInput(validation.TrainingInput{TrainingID: run.ID.String(), Count: 3})
	in.Theme = "走塁"
	updated, err := svc.Update(ctx, owner.ID, note.ID, in, videoUpload("b.mp4"), false)
	require.NoError(t, err)
	assert.Equal(t, "走塁", updated.Theme)
	require.Len(t, updated.TrainingNotes, 1)
	assert.Equal(t, run.ID, updated.TrainingNotes[0].TrainingID)
	require.NotNil(t, updated.MyVideo)
	assert.NotEqual(t, oldKey, *updated.MyVideo)
	assert.NoFileExists(t, store.Dir+"/"+oldKey, "replaced video is removed")

	cleared, err := svc.Update(ctx, owner.ID, note.ID, in, nil, true)
	require.NoError(t, err)
	assert.Nil(t, cleared.MyVideo)
	assert.Nil(t, cleared.MyVideoURL)
	assert.NoFileExists(t, store.Dir+"/"+*updated.MyVideo)

	var count int64
	db.Unscoped().Model(&models.TrainingNote{}).Where("note_id = ?", note.ID).Count(&count)
	assert.EqualValues(t, 1, count, "old training counts are replaced")
}

func TestNoteService_DeleteKeepsHistory(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewNoteService(db, newTestStore(t))
	owner := createUser(t, db, "p@example.com", models.RolePlayer)
	other := createUser(t, db, "o@example.com", models.RolePlayer)
	swing := createMenu(t, db, "素振り")

	note, err := svc.Create(ctx, owner.ID, noteInput(validation.TrainingInput{TrainingID: swing.ID.String(), Count: 10}), nil)
	require.NoError(t, err)

	require.NoError(t, NewTrainingService(db).Delete(ctx, swing.ID))
	detail, err := svc.Detail(ctx, note.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.TrainingNotes[0].Training, "deleted menus still resolve on old notes")

	assert.ErrorIs(t, svc.Delete(ctx, other.ID, note.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, owner.ID, note.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner.ID, note.ID), ErrNotFound)

	_, err = svc.Detail(ctx, note.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var raw models.Note
	require.NoError(t, db.Unscoped().First(&raw, "id = ?", note.ID).Error)
	assert.True(t, raw.DeletedAt.Valid, "notes are soft deleted")
}
