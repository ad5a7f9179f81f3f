package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"moodtracker/internal/config"
	"moodtracker/internal/notifier"
	"moodtracker/internal/repository"
	"moodtracker/internal/sentiment"
	"moodtracker/internal/server"
	"moodtracker/internal/service"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err) // Should not happen in development
	}
	defer func() {
		_ = logger.Sync() // Flushes buffer, if any
	}()

	log := logrus.New()

	// Load configuration
	cfgPath := "configs/config.yml"
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Database connection
	db, err := repository.NewPostgresDB(cfg.Database.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	repository.MigrateDB(db, logger)

	// Sentiment service client; constructed once and shared across requests.
	// The remote model is loaded once by the service, so only a health check
	// is needed here.
	classifier := sentiment.NewClient(cfg.Sentiment.URL, time.Duration(cfg.Sentiment.TimeoutSeconds)*time.Second)
	healthCtx, healthCancel := context.WithTimeout(context.Background(), 10*time.Second)
	health, err := classifier.HealthCheck(healthCtx)
	healthCancel()
	if err != nil {
		logger.Warn("Sentiment service health check failed, classification requests will error until it recovers", zap.Error(err))
	} else {
		logger.Info("Sentiment service ready",
			zap.String("model", health.ModelName),
			zap.Bool("model_loaded", health.ModelLoaded))
	}

	// Initialize repositories
	authRepo := repository.NewAuthRepository(db, logger)
	moodRepo := repository.NewMoodEntryRepository(db, logger)

	// Risk alert notifier (optional)
	var riskNotifier service.RiskNotifier
	tgNotifier, err := notifier.NewTelegramNotifier(cfg, logger)
	if err != nil {
		logger.Warn("Failed to initialize risk alert notifier, continuing without it", zap.Error(err))
	} else if tgNotifier != nil {
		riskNotifier = tgNotifier
	}

	// Initialize services
	authService := service.NewAuthService(authRepo, []byte(cfg.Auth.JWTSecret), time.Duration(cfg.Auth.TokenTTLHours)*time.Hour, logger)
	moodService := service.NewMoodService(classifier, moodRepo, riskNotifier, logger)

	// Initialize and run the server
	srv := server.NewServer(cfg, authService, moodService, logger, log)
	srv.Run(cfg.Server.Port)
}
