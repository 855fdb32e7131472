// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"truthscope_backend/platform/config"
	"truthscope_backend/platform/httpkit"
	"truthscope_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (DB ping).
	Health HealthChecker
	// AuthMiddleware verifies Google bearer tokens and loads the identity.
	AuthMiddleware gin.HandlerFunc
	// PaidMiddleware gates routes to the paid subscription tier.
	PaidMiddleware gin.HandlerFunc
	// AnalysisRateLimiter throttles the analysis endpoints per client IP.
	AnalysisRateLimiter *httpkit.AnalysisRateLimiter
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
