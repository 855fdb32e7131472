package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"truthscope_backend/internal/analysis"
	"truthscope_backend/internal/audit"
	"truthscope_backend/internal/events"
	"truthscope_backend/internal/scheduler"
	"truthscope_backend/internal/verdicts"
	"truthscope_backend/platform/ai/gemini"
	"truthscope_backend/platform/config"
	"truthscope_backend/platform/db"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting worker", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	audit.New(log).RegisterHandlers(eventBus)
	val := validator.New()

	model, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.GetGeminiAPIKey(),
		Model:   cfg.GetGeminiModel(),
		Default: gemini.AgentConfig(),
	})
	if err != nil {
		log.Error("failed to initialize gemini model", "error", err)
		panic("failed to initialize gemini model: " + err.Error())
	}

	// Worker-side analysis wiring (no HTTP handlers required). Refresh
	// tasks run to completion here, so the worker never re-enqueues them.
	verdictsModule := verdicts.NewModule(pool, val, log)
	analysisModule, err := analysis.NewModule(ctx, pool, cfg, model, verdictsModule.Service(), nil, eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize analysis module", "error", err)
		panic("failed to initialize analysis module: " + err.Error())
	}

	cacheCleanup := scheduler.NewCacheCleanup(analysisModule.Service(), log, cfg.GetCacheCleanupInterval(), cfg.GetCacheRetention())
	go cacheCleanup.Run(ctx)

	// Proactive staleness sweep: rows past half their TTL are re-queued even
	// when no request hits them.
	schedClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = schedClient.Close() }()

	refreshSweep := scheduler.NewRefreshSweep(analysisModule.Service(), schedClient, log, cfg.GetCacheCleanupInterval(), cfg.GetAnalysisCacheTTL()/2)
	go refreshSweep.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, analysisModule.Service(), verdictsModule.Service(), log)
	if err != nil {
		log.Error("failed to initialize worker", "error", err)
		panic("failed to initialize worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
