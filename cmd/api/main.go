package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"truthscope_backend/internal/adapters/storage"
	"truthscope_backend/internal/analysis"
	analysisservice "truthscope_backend/internal/analysis/service"
	"truthscope_backend/internal/audit"
	"truthscope_backend/internal/auth"
	"truthscope_backend/internal/deepfake"
	"truthscope_backend/internal/events"
	"truthscope_backend/internal/health"
	apphttp "truthscope_backend/internal/http"
	"truthscope_backend/internal/http/router"
	"truthscope_backend/internal/media"
	"truthscope_backend/internal/scheduler"
	"truthscope_backend/internal/verdicts"
	"truthscope_backend/migrations"
	"truthscope_backend/platform/ai/gemini"
	"truthscope_backend/platform/config"
	"truthscope_backend/platform/db"
	"truthscope_backend/platform/httpkit"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, migrations.FS)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	audit.New(log).RegisterHandlers(eventBus)

	// Shared validator instance for dependency injection
	val := validator.New()

	schedClient, closeScheduler := initScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	model, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.GetGeminiAPIKey(),
		Model:   cfg.GetGeminiModel(),
		Default: gemini.AgentConfig(),
	})
	if err != nil {
		log.Error("failed to initialize gemini model", "error", err)
		panic("failed to initialize gemini model: " + err.Error())
	}
	log.Info("gemini model initialized", "model", cfg.GetGeminiModel())

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, eventBus, log)
	verdictsModule := verdicts.NewModule(pool, val, log)

	var refresh analysisservice.RefreshScheduler
	if schedClient != nil {
		refresh = schedClient
	}

	analysisModule, err := analysis.NewModule(ctx, pool, cfg, model, verdictsModule.Service(), refresh, eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize analysis module", "error", err)
		panic("failed to initialize analysis module: " + err.Error())
	}

	modules := []apphttp.Module{
		authModule,
		verdictsModule,
		analysisModule,
	}

	// Media analysis requires object storage; without MinIO the text
	// pipeline still serves.
	var mediaModule *media.Module
	if cfg.IsMinIOEnabled() {
		storageSvc, err := storage.NewMinIOService(cfg)
		if err != nil {
			log.Error("failed to initialize storage service", "error", err)
			panic("failed to initialize storage service: " + err.Error())
		}

		mediaModule, err = media.NewModule(ctx, storageSvc, cfg, model, eventBus, val, log)
		if err != nil {
			log.Error("failed to initialize media module", "error", err)
			panic("failed to initialize media module: " + err.Error())
		}
		modules = append(modules, mediaModule, deepfake.NewModule(mediaModule.Handler()))
		log.Info("media analysis enabled", "bucket", cfg.GetMinioBucketMediaUploads())
	} else {
		log.Warn("MINIO_ENDPOINT not configured; media analysis disabled")
	}

	redisPing := initRedisPing(cfg, log)
	modules = append(modules, health.NewModule(healthComponents(cfg, pool, redisPing, mediaModule)))

	seedVerdicts(ctx, schedClient, verdictsModule, cfg.GetVerdictSeedPath(), log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:              cfg,
		Logger:              log,
		Health:              db.NewPoolAdapter(pool),
		AuthMiddleware:      authModule.AuthMiddleware(),
		PaidMiddleware:      authModule.PaidMiddleware(),
		AnalysisRateLimiter: httpkit.NewAnalysisRateLimiter(log),
		Modules:             modules,
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initScheduler(cfg config.SchedulerConfig, log *logger.Logger) (*scheduler.Client, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; background refresh disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func initRedisPing(cfg config.SchedulerConfig, log *logger.Logger) func(ctx context.Context) error {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		log.Warn("invalid REDIS_URL; redis health check disabled", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

func healthComponents(cfg *config.Config, pool *pgxpool.Pool, redisPing func(ctx context.Context) error, mediaModule *media.Module) []health.Component {
	adapter := db.NewPoolAdapter(pool)

	components := []health.Component{
		{Name: "database", Configured: true, Check: adapter.Ping},
		{Name: "redis", Configured: redisPing != nil, Check: redisPing},
		{Name: "model", Configured: cfg.IsModelEnabled()},
		{Name: "search", Configured: cfg.IsSearchEnabled()},
		{Name: "factcheck", Configured: cfg.IsFactCheckEnabled()},
	}

	visionUp, speechUp := false, false
	if mediaModule != nil {
		visionUp = mediaModule.VisionEnabled()
		speechUp = mediaModule.SpeechEnabled()
	}
	components = append(components,
		health.Component{Name: "vision", Configured: visionUp},
		health.Component{Name: "speech", Configured: speechUp},
	)

	return components
}

// seedVerdicts hands the YAML seed list to the worker when a queue is
// available and loads it inline otherwise. Without a configured path the
// embedded curated list is applied so fresh deployments have domain signals.
func seedVerdicts(ctx context.Context, schedClient *scheduler.Client, verdictsModule *verdicts.Module, path string, log *logger.Logger) {
	if path == "" {
		result, err := verdictsModule.Service().SeedDefaults(ctx)
		if err != nil {
			log.Error("default verdict seed failed", "error", err)
			return
		}
		log.Info("default verdict seed applied", "written", result.Written, "skipped", result.Skipped)
		return
	}

	if schedClient != nil {
		if err := schedClient.EnqueueVerdictSeed(ctx, path); err != nil {
			log.Error("failed to enqueue verdict seed", "error", err, "path", path)
		}
		return
	}

	result, err := verdictsModule.Service().SeedFromFile(ctx, path)
	if err != nil {
		log.Error("verdict seed failed", "error", err, "path", path)
		return
	}
	log.Info("verdict seed applied", "path", path, "written", result.Written, "skipped", result.Skipped)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
