package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/parstock/pkg/app"
	"github.com/ghuser/parstock/pkg/cache"
	"github.com/ghuser/parstock/pkg/config"
	"github.com/ghuser/parstock/pkg/database"
	"github.com/ghuser/parstock/pkg/events"
	"github.com/ghuser/parstock/pkg/logger"
	"github.com/ghuser/parstock/pkg/telemetry"
	catalogSvcs "github.com/ghuser/parstock/services/catalog/application/services"
	catalogEvents "github.com/ghuser/parstock/services/catalog/domain/events"
	countingEvents "github.com/ghuser/parstock/services/counting/domain/events"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := []string{catalogEvents.TopicCatalogChanged, countingEvents.TopicRunCompleted}

	catalogErrCh, err := a.EventBus.Subscribe(ctx, catalogEvents.TopicCatalogChanged, handleCatalogChanged(a))
	if err != nil {
		return err
	}
	runErrCh, err := a.EventBus.Subscribe(ctx, countingEvents.TopicRunCompleted, handleRunCompleted(a))
	if err != nil {
		return err
	}

	// Drain subscriber errors in background so the channels never block.
	drain := func(topic string, errCh <-chan error) {
		for err := range errCh {
			a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
		}
	}
	go drain(catalogEvents.TopicCatalogChanged, catalogErrCh)
	go drain(countingEvents.TopicRunCompleted, runErrCh)

	a.Logger.Info("event subscribers registered", "topics", topics)
	return nil
}

// handleCatalogChanged returns a handler for catalog.changed events.
// Handlers must be idempotent; EventBus retries up to 3x on failure.
// Re-resolves the catalog and warms the Redis read-model cache so the next
// items or pars read is served from cache.
func handleCatalogChanged(a *app.Application) func(context.Context, *message.Message) error {
	catalog := catalogSvcs.New(a).Catalog
	return func(ctx context.Context, msg *message.Message) error {
		var evt catalogEvents.CatalogChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := catalog.WarmCache(ctx); err != nil {
			// Cache warming is best-effort; log but do not fail the handler.
			a.Logger.WarnContext(ctx, "cache warm failed for catalog.changed",
				"change", evt.Change, "error", err)
		} else {
			a.Logger.InfoContext(ctx, "catalog cache warmed",
				"change", evt.Change, "items", len(evt.ItemIDs))
		}

		return nil
	}
}

// handleRunCompleted returns a handler for run.completed events. Today it
// records the completion in the worker log; downstream consumers (digest
// emails, exports to the ordering sheet) hang off this topic.
func handleRunCompleted(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt countingEvents.RunCompletedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "counting run completed",
			"run_id", evt.RunID,
			"location", evt.LocationKey,
			"by", evt.By,
			"lines", evt.LineCount,
			"occurred_at", evt.OccurredAt,
		)
		return nil
	}
}
