package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inventory/internal/config"
	"inventory/internal/database"
	"inventory/internal/seed"
	"inventory/internal/server"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// run serves until a shutdown signal arrives or the listener fails. Every
// exit path closes the database.
func run() error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// --- Initialize Database ---
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	db, err := database.Open(ctx, cfg.DBDriver, cfg.DatabaseDSN, cfg.DBConnectAttempts)
	cancel()
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(db, cfg.DBDriver); err != nil {
		return err
	}

	// --- Initialize Services ---
	svc := server.NewServices(cfg, db)

	if cfg.SeedDemoData {
		if err := seed.Run(context.Background(), svc.Categories, svc.Products); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	// --- Initialize Fiber App ---
	app := server.New(cfg, db, svc)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	return server.Serve(app, cfg.AppPort, quit)
}
