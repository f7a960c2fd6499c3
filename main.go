// main.go
package main

import (
	"context"
	"log"

	"speaker-booking/cmd"
	"speaker-booking/internal/data/memory"
	"speaker-booking/internal/data/repository"
	"speaker-booking/internal/wire"
	"speaker-booking/pkg/database"
	"speaker-booking/pkg/utils"

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
		zap.String("store", config.Store.Driver),
		zap.Bool("debug", config.App.Debug),
	)

	// Initialize the store. The memory driver ships with seeded demo data;
	// postgres is for a real deployment.
	var repos *repository.Repository

	switch config.Store.Driver {
	case "postgres":
		db, err := database.InitDB(config.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		logger.Info("Database connected successfully")
		repos = repository.NewRepository(db, logger)

	default:
		store := memory.NewStore(logger)
		repos = memory.NewRepository(store)

		if err := memory.Seed(context.Background(), repos, config.Slots, logger); err != nil {
			logger.Fatal("Failed to seed memory store", zap.Error(err))
		}

		logger.Info("Memory store seeded")
	}

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
