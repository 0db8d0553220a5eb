package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/flowdeck/flowdeck-server/internal/ai"
	"github.com/flowdeck/flowdeck-server/internal/config"
	"github.com/flowdeck/flowdeck-server/internal/database"
	"github.com/flowdeck/flowdeck-server/internal/repository"
	"github.com/flowdeck/flowdeck-server/internal/scheduler"
	"github.com/flowdeck/flowdeck-server/internal/server"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate required config
	if cfg.DatabaseURI == "" {
		log.Fatal("DATABASE_URI is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to database
	db, err := database.New(ctx, cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to database")

	// Run migrations
	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	// Initialize AI client (optional)
	var aiClient *ai.Client
	if cfg.AIAPIKey != "" {
		aiClient = ai.New(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel)
		log.Printf("AI client initialized (model: %s)", cfg.AIModel)
	} else {
		log.Println("AI client not configured, assistant features disabled")
	}

	// Create repositories for the daily expansion job
	ruleRepo := repository.NewRuleRepository(db)
	eventRepo := repository.NewEventRepository(db)

	// Create and start scheduler
	sched := scheduler.New(ruleRepo, eventRepo, cfg.RecurringCron)
	go func() {
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Scheduler error: %v", err)
		}
	}()

	// Build HTTP server
	app := server.New(cfg, db, aiClient, sched)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Listening on %s", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
