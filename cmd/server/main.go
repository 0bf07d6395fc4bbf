package main

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"astro-report-service/internal/api"
	"astro-report-service/internal/astro"
	"astro-report-service/internal/auth"
	"astro-report-service/internal/config"
	"astro-report-service/internal/database"
	"astro-report-service/internal/logging"
	"astro-report-service/internal/notifications"
	"astro-report-service/internal/render"
	"astro-report-service/internal/services"
	"astro-report-service/internal/storage"
	"astro-report-service/internal/validation"
)

func main() {
	log := logging.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize MongoDB report store
	store, err := database.NewReportStore(cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close()

	// Initialize S3 artifact storage
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	artifacts, err := storage.NewArtifactStore(ctx, cfg.S3)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize artifact storage: %v", err)
	}

	// Load the result schema
	kundaliSchema, err := validation.LoadSchema(cfg.Pipeline.KundaliSchema)
	if err != nil {
		log.Fatalf("Failed to load kundali result schema: %v", err)
	}

	// Initialize notification delivery. Without a SendGrid key notifications
	// are logged only.
	var notifier notifications.Notifier
	if cfg.Email.APIKey != "" {
		notifier = notifications.NewEmailNotifier(cfg.Email, store, log)
	} else {
		log.Warn("SendGrid API key not configured, notifications are log-only")
		notifier = notifications.NewLogNotifier(log)
	}

	// Initialize the Redis sweep lock (optional)
	var locker *redislock.Client
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		locker = redislock.New(redisClient)
	} else {
		log.Warn("Redis not configured, sweep runs without a distributed lock")
	}

	// Initialize services
	interpreter := services.NewInterpreter(cfg.OpenAI, log)
	submission := services.NewSubmissionService(store, notifier, cfg.Pipeline, log)
	kundali := services.NewKundaliProcessor(
		store,
		astro.NewStubEphemeris(),
		render.NewChartRenderer(),
		render.NewPDFRenderer(),
		artifacts,
		kundaliSchema,
		notifier,
		interpreter,
		cfg.Retry,
		cfg.Pipeline,
		log,
	)

	// Start the scheduled report sweep
	registry := services.NewProcessorRegistry(render.NewPDFRenderer(), artifacts, cfg.Retry, log)
	sweep := services.NewSweepService(store, registry, notifier, locker, cfg.Pipeline, log)
	if err := sweep.Start(); err != nil {
		log.Fatalf("Failed to start sweep scheduler: %v", err)
	}
	defer sweep.Stop()

	// Initialize handlers and routes
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.TTL)
	handlers := api.NewHandlers(submission, kundali, log)
	router := api.SetupRoutes(handlers, jwtService)

	// Start server
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.Infof("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
