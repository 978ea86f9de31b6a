// main.go
package main

import (
	"log"

	"blinddate-booking/cmd"
	"blinddate-booking/internal/data/repository"
	"blinddate-booking/internal/usecase"
	"blinddate-booking/internal/wire"
	"blinddate-booking/pkg/database"
	"blinddate-booking/pkg/events"
	"blinddate-booking/pkg/utils"

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

	// Booking event publisher is optional; the service runs without it.
	var pub usecase.EventPublisher
	if config.Events.URL != "" {
		publisher, err := events.NewPublisher(config.Events.URL, config.Events.Exchange)
		if err != nil {
			logger.Warn("Failed to connect event publisher, events disabled", zap.Error(err))
		} else {
			defer publisher.Close()
			pub = publisher
			logger.Info("Event publisher connected", zap.String("exchange", config.Events.Exchange))
		}
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, pub, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
