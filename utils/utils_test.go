package utils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"baseballnote/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	u := &models.User{FirebaseUID: "uid-1", Email: "coach@example.com", Role: models.RoleCoach}
	u.ID = uuid.New()
	return u
}

func TestJWT_RoundTrip(t *testing.T) {
	u := testUser()
	token, issued, err := GenerateJWT("secret", u, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.UID)
	assert.Equal(t, u.ID.String(), claims.UserID)
	assert.Equal(t, models.RoleCoach, claims.Role)
	assert.Equal(t, issued.ID, claims.ID)
	assert.NotEmpty(t, claims.ID)
}

func TestJWT_Rejects(t *testing.T) {
	u := testUser()

	t.Run("wrong secret", func(t *testing.T) {
		token, _, err := GenerateJWT("secret", u, time.Hour)
		require.NoError(t, err)
		_, err = ParseJWT("other", token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, _, err := GenerateJWT("secret", u, -time.Minute)
		require.NoError(t, err)
		_, err = ParseJWT("secret", token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("no secret", func(t *testing.T) {
		_, _, err := GenerateJWT("", u, time.Hour)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseJWT("secret", "not.a.token")
		assert.Error(t, err)
	})
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("abc12345")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("abc12345", hash))
	assert.False(t, CheckPasswordHash("abc12346", hash))
}

func TestGenerateRandomToken(t *testing.T) {
	code := GenerateResetCode()
	assert.Len(t, code, 6)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(tokenCharset, r))
	}
	assert.Len(t, GenerateUID(), 28)
	assert.NotEqual(t, GenerateUID(), GenerateUID())
}

func TestCalculateAge(t *testing.T) {
	birthday := time.Date(2008, 4, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 16, CalculateAge(birthday, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 17, CalculateAge(birthday, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, CalculateAge(time.Time{}, time.Now()))
}

func TestPage(t *testing.T) {
	p, s := Page("", "")
	assert.Equal(t, 1, p)
	assert.Equal(t, DefaultPageSize, s)

	p, s = Page("3", "500")
	assert.Equal(t, 3, p)
	assert.Equal(t, MaxPageSize, s)
	assert.Equal(t, 200, Offset(p, s))

	p, _ = Page("-2", "x")
	assert.Equal(t, 1, p)
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewLocalStorage(dir, "/uploads/")

	require.NoError(t, store.Put(ctx, "note_videos/a.mp4", strings.NewReader("data"), 4, "video/mp4"))
	b, err := os.ReadFile(filepath.Join(dir, "note_videos", "a.mp4"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(b))

	url, err := store.URL(ctx, "note_videos/a.mp4")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/note_videos/a.mp4", url)

	require.NoError(t, store.Delete(ctx, "note_videos/a.mp4"))
	require.NoError(t, store.Delete(ctx, "note_videos/a.mp4"), "deleting twice is not an error")

	require.NoError(t, store.Put(ctx, "../escape.txt", strings.NewReader("x"), 1, "text/plain"))
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err, "keys cannot leave the storage dir")
}
