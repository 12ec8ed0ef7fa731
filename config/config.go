package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"baseballnote/models"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

type Settings struct {
	Title   string
	Version string
	Env     string
	Port    string

	DBDriver   string // "postgres" | "sqlite"
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string

	JWTSecret string
	TokenTTL  time.Duration
	RedisURL  string

	CORSOrigins []string

	AWSRegion     string
	S3Bucket      string
	CloudFrontURL string
	UploadDir     string
	SESEmail      string
	SNSFCMArn     string

	ModerationEnabled bool
	AuthRateLimit     float64 // requests per second per client
	AuthRateBurst     int
}

// Load reads .env (if present) and the process environment.
func Load() *Settings {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("could not load .env", zap.Error(err))
	}

	s := &Settings{
		Title:   getEnv("TITLE", "baseball-note"),
		Version: getEnv("VERSION", "0.0.1"),
		Env:     getEnv("ENV", "local"),
		Port:    getEnv("PORT", "8080"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		SQLitePath: getEnv("SQLITE_PATH", "baseballnote.db"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getDuration("TOKEN_TTL", 72*time.Hour),
		RedisURL:  os.Getenv("REDIS_URL"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS",
			"http://localhost:3000,http://127.0.0.1:3000,http://localhost:8000")),

		AWSRegion:     os.Getenv("AWS_REGION"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		CloudFrontURL: os.Getenv("CLOUDFRONT_URL"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		SESEmail:      os.Getenv("SES_EMAIL"),
		SNSFCMArn:     os.Getenv("SNS_FCM_ARN"),

		ModerationEnabled: getBool("MODERATION_ENABLED", false),
		AuthRateLimit:     getFloat("AUTH_RATE_LIMIT", 1),
		AuthRateBurst:     getInt("AUTH_RATE_BURST", 5),
	}
	if r := os.Getenv("S3_REGION"); r != "" {
		s.AWSRegion = r
	}
	return s
}

func (s *Settings) Debug() bool {
	return s.Env == "local" || s.Env == "development"
}

func (s *Settings) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		s.DBHost, s.DBUser, s.DBPassword, s.DBName, s.DBPort)
}

// OpenDB connects with the configured driver and migrates every model.
func OpenDB(s *Settings) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch s.DBDriver {
	case "postgres":
		dialector = postgres.Open(s.DSN())
	case "sqlite":
		dialector = sqlite.Open(s.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", s.DBDriver)
	}

	gcfg := &gorm.Config{}
	if !s.Debug() {
		gcfg.Logger = logger.Default.LogMode(logger.Warn)
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Training{},
		&models.Note{},
		&models.TrainingNote{},
		&models.Comment{},
		&models.Alert{},
		&models.UserDevice{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// InitDB opens the database and stores it in DB.
func InitDB(s *Settings) {
	db, err := OpenDB(s)
	if err != nil {
		zap.L().Fatal("failed to initialize database", zap.Error(err))
	}
	DB = db
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func getFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
