package main

import (
	"context"
	"os"

	"truthscope_backend/internal/verdicts"
	"truthscope_backend/platform/config"
	"truthscope_backend/platform/db"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	path := cfg.GetVerdictSeedPath()
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if path == "" {
		log.Error("no seed file given; pass a path argument or set VERDICT_SEED_PATH")
		os.Exit(1)
	}

	log.Info("seeding domain verdicts", "path", path)

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	verdictsModule := verdicts.NewModule(pool, validator.New(), log)

	result, err := verdictsModule.Service().SeedFromFile(ctx, path)
	if err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}

	log.Info("seed complete", "written", result.Written, "skipped", result.Skipped)
}
