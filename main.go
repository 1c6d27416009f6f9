// main.go
package main

import (
	"log"

	"hbnb-booking/cmd"
	"hbnb-booking/internal/data/repository"
	"hbnb-booking/internal/jobs"
	"hbnb-booking/internal/wire"
	"hbnb-booking/pkg/database"
	"hbnb-booking/pkg/utils"

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

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Optional sweep that completes overdue confirmed bookings
	if config.Booking.AutoComplete {
		sweeper := jobs.NewCompletionSweeper(app.Service.Booking, logger)
		if err := sweeper.Start(config.Booking.AutoCompleteCron); err != nil {
			logger.Fatal("Failed to start completion sweeper", zap.Error(err))
		}
		defer sweeper.Stop()
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
