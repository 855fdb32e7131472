package main

import (
	"context"
	"os"

	"truthscope_backend/internal/events"
	userrepo "truthscope_backend/internal/users/repository"
	usersvc "truthscope_backend/internal/users/service"
	"truthscope_backend/platform/config"
	"truthscope_backend/platform/db"
	"truthscope_backend/platform/logger"
)

// Usage: set-tier <google_id> <free|paid>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	if len(os.Args) != 3 {
		log.Error("usage: set-tier <google_id> <free|paid>")
		os.Exit(1)
	}
	googleID, tier := os.Args[1], os.Args[2]

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	users := usersvc.New(userrepo.New(pool), events.NewInMemoryBus(log), log)

	user, err := users.SetTier(ctx, googleID, tier)
	if err != nil {
		log.Error("failed to set tier", "googleId", googleID, "tier", tier, "error", err)
		os.Exit(1)
	}

	log.Info("tier updated", "googleId", user.GoogleID, "email", user.Email, "tier", user.Tier)
}
