package main

import (
	"context"
	"log"
	"time"

	"dampit-rental/cmd"
	"dampit-rental/internal/adaptor"
	"dampit-rental/internal/data/repository"
	"dampit-rental/internal/usecase"
	"dampit-rental/internal/wire"
	"dampit-rental/pkg/database"
	"dampit-rental/pkg/mail"
	"dampit-rental/pkg/oauth"
	"dampit-rental/pkg/storage"
	"dampit-rental/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Outbound integrations
	sender := mail.NewSMTPSender(config.Email)

	store, err := storage.NewGCSStorage(context.Background(), config.Storage)
	if err != nil {
		logger.Fatal("Failed to init object storage", zap.Error(err))
	}

	identity := oauth.NewGoogleProvider(config.OAuth)

	// Services and HTTP surface
	service := usecase.NewService(repos, config, logger, sender, store, identity)
	handler := adaptor.NewHandler(service, config, logger)
	router := wire.NewRouter(handler, config, logger)

	// Sweep stale verification/reset tokens in the background.
	go sweepTokens(repos, config.Token.SweepIntervalHours, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(router, config.App.Port)
}

func sweepTokens(repos *repository.Repository, intervalHours int, logger *zap.Logger) {
	if intervalHours < 1 {
		intervalHours = 1
	}

	ticker := time.NewTicker(time.Duration(intervalHours) * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		removed, err := repos.Token.DeleteExpired(context.Background())
		if err != nil {
			logger.Error("Token sweep failed", zap.Error(err))
			continue
		}
		if removed > 0 {
			logger.Info("Swept expired auth tokens", zap.Int64("removed", removed))
		}
	}
}
