package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("ENV", "")

	s := Load()

	assert.Equal(t, "postgres", s.DBDriver)
	assert.Equal(t, 72*time.Hour, s.TokenTTL)
	assert.Equal(t, "local", s.Env)
	assert.True(t, s.Debug())
	assert.Contains(t, s.CORSOrigins, "http://localhost:3000")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("MODERATION_ENABLED", "true")
	t.Setenv("AUTH_RATE_BURST", "9")
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("S3_REGION", "ap-northeast-1")
	t.Setenv("ENV", "production")

	s := Load()

	assert.Equal(t, "sqlite", s.DBDriver)
	assert.Equal(t, 30*time.Minute, s.TokenTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, s.CORSOrigins)
	assert.True(t, s.ModerationEnabled)
	assert.Equal(t, 9, s.AuthRateBurst)
	assert.Equal(t, "ap-northeast-1", s.AWSRegion, "S3_REGION wins over AWS_REGION")
	assert.False(t, s.Debug())
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("AUTH_RATE_LIMIT", "fast")
	t.Setenv("TOKEN_TTL", "soon")

	s := Load()

	assert.Equal(t, 1.0, s.AuthRateLimit)
	assert.Equal(t, 72*time.Hour, s.TokenTTL)
}

func TestDSN(t *testing.T) {
	s := &Settings{DBHost: "db", DBUser: "u", DBPassword: "p", DBName: "notes", DBPort: "5432"}
	assert.Equal(t, "host=db user=u password=p dbname=notes port=5432 sslmode=disable", s.DSN())
}

func TestOpenDB_SQLite(t *testing.T) {
	s := &Settings{DBDriver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "test.db"), Env: "test"}

	db, err := OpenDB(s)
	require.NoError(t, err)

	for _, table := range []string{"users", "profiles", "notes", "trainings", "training_notes", "comments", "alerts", "user_devices"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	_, err := OpenDB(&Settings{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
