package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"baseballnote/config"
	"baseballnote/models"
	"baseballnote/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenDB(&config.Settings{
		DBDriver:   "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		Env:        "test",
	})
	require.NoError(t, err)
	return db
}

func newTestStore(t *testing.T) *utils.LocalStorage {
	return utils.NewLocalStorage(t.TempDir(), "/uploads")
}

func createUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("abc12345")
	require.NoError(t, err)
	u := &models.User{FirebaseUID: "uid-" + email, Email: email, Password: hash, Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func createMenu(t *testing.T, db *gorm.DB, menu string) *models.Training {
	t.Helper()
	m := &models.Training{Menu: menu}
	require.NoError(t, db.Create(m).Error)
	return m
}

type sentMail struct{ To, Subject, Body string }

type captureMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *captureMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func (m *captureMailer) last() sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}
	}
	return m.sent[len(m.sent)-1]
}
