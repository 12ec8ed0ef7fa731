package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"baseballnote/config"
	"baseballnote/middlewares"
	"baseballnote/routes"
	"baseballnote/services"
	"baseballnote/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	settings := config.Load()
	log := config.InitLogger(settings)
	defer func() { _ = log.Sync() }()

	if settings.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !settings.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}
	config.InitDB(settings)
	db := config.DB

	awsCfg, err := utils.LoadAWSConfig(ctx, settings.AWSRegion)
	if err != nil {
		log.Fatal("load aws config", zap.Error(err))
	}

	var mailer utils.Mailer = utils.LogMailer{}
	if settings.SESEmail != "" {
		mailer = utils.NewSESMailer(awsCfg, settings.SESEmail)
	}

	var (
		store     services.MediaStore
		uploadDir string
	)
	if settings.S3Bucket != "" {
		store = utils.NewS3Storage(awsCfg, settings.S3Bucket, settings.CloudFrontURL)
	} else {
		store = utils.NewLocalStorage(settings.UploadDir, "/uploads")
		uploadDir = settings.UploadDir
		log.Info("storing media on local disk", zap.String("dir", uploadDir))
	}

	var moderator services.ImageModerator
	if settings.ModerationEnabled {
		moderator = services.NewRekognitionService(awsCfg)
	}

	tokens := services.NewTokenStore(ctx, settings.RedisURL)
	hub := services.NewRealtimeHub()
	push := services.NewPushService(db, awsCfg, settings.SNSFCMArn)
	alerts := services.NewAlertBus(db, hub, push)

	router := routes.SetupRouter(routes.Deps{
		Title:   settings.Title,
		Version: settings.Version,
		Debug:   settings.Debug(),

		Auth:      services.NewAuthService(db, tokens, settings.JWTSecret, settings.TokenTTL),
		Users:     services.NewUserService(db, mailer),
		Profiles:  services.NewProfileService(db, store, moderator),
		Notes:     services.NewNoteService(db, store),
		Trainings: services.NewTrainingService(db),
		Comments:  services.NewCommentService(db, alerts, mailer),
		Alerts:    alerts,
		Push:      push,
		Hub:       hub,
		Export:    services.NewExportService(db),
		Analytics: services.NewAnalyticsService(db),

		AuthLimiter:    middlewares.NewIPRateLimiter(settings.AuthRateLimit, settings.AuthRateBurst),
		AllowedOrigins: settings.CORSOrigins,
		UploadDir:      uploadDir,
		Logger:         log,
	})

	handler := cors.New(cors.Options{
		AllowedOrigins:   settings.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(router)

	srv := &http.Server{
		Addr:              ":" + settings.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
