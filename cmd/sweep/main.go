// One-shot sweep runner. Processes due scheduled reports once and exits;
// useful for manual catch-up and external schedulers.
package main

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"astro-report-service/internal/config"
	"astro-report-service/internal/database"
	"astro-report-service/internal/logging"
	"astro-report-service/internal/notifications"
	"astro-report-service/internal/render"
	"astro-report-service/internal/services"
	"astro-report-service/internal/storage"
)

func main() {
	log := logging.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := database.NewReportStore(cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	artifacts, err := storage.NewArtifactStore(ctx, cfg.S3)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize artifact storage: %v", err)
	}

	var notifier notifications.Notifier
	if cfg.Email.APIKey != "" {
		notifier = notifications.NewEmailNotifier(cfg.Email, store, log)
	} else {
		notifier = notifications.NewLogNotifier(log)
	}

	var locker *redislock.Client
	if cfg.Redis.Address != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		locker = redislock.New(redisClient)
	}

	registry := services.NewProcessorRegistry(render.NewPDFRenderer(), artifacts, cfg.Retry, log)
	sweep := services.NewSweepService(store, registry, notifier, locker, cfg.Pipeline, log)

	runCtx, cancelRun := context.WithTimeout(context.Background(), cfg.Pipeline.SweepTimeout)
	defer cancelRun()

	summary, err := sweep.Run(runCtx)
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}
	log.Infof("Sweep finished: %d total, %d successful, %d failed", summary.Total, summary.Successful, summary.Failed)
}
