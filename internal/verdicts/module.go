// Package verdicts provides the curated domain verdict bounded context.
// It backs the fastest signal in the analysis pipeline: a direct lookup of
// the article's domain against a maintained list of known real and fake
// news sources.
package verdicts

import (
	apphttp "truthscope_backend/internal/http"
	"truthscope_backend/internal/verdicts/handler"
	"truthscope_backend/internal/verdicts/repository"
	"truthscope_backend/internal/verdicts/service"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the verdicts bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the verdicts module.
func NewModule(pool *pgxpool.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, val, log)
	h := handler.New(svc)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "verdicts"
}

// Service returns the service layer for the analysis pipeline.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts verdict routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/verdicts/:domain", m.handler.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
