// Package analysis provides the credibility analysis bounded context: the
// POST /analyze pipeline that combines curated domain verdicts, news search,
// fact checks, and the Gemini analyst into one verdict document.
package analysis

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"truthscope_backend/internal/analysis/agent"
	"truthscope_backend/internal/analysis/client"
	"truthscope_backend/internal/analysis/extract"
	"truthscope_backend/internal/analysis/handler"
	"truthscope_backend/internal/analysis/localize"
	"truthscope_backend/internal/analysis/repository"
	"truthscope_backend/internal/analysis/service"
	"truthscope_backend/internal/events"
	apphttp "truthscope_backend/internal/http"
	verdictsservice "truthscope_backend/internal/verdicts/service"
	"truthscope_backend/platform/ai/gemini"
	"truthscope_backend/platform/config"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"
)

// Config is the configuration surface the analysis module needs.
type Config interface {
	config.SearchConfig
	config.FactCheckConfig
	config.TranslateConfig
	config.AnalysisConfig
}

// Module is the analysis bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the analysis module, building the
// Google API connectors that are configured and skipping the rest.
func NewModule(
	ctx context.Context,
	pool *pgxpool.Pool,
	cfg Config,
	model *gemini.Model,
	verdicts *verdictsservice.Service,
	refresh service.RefreshScheduler,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) (*Module, error) {
	searchClient, err := client.NewSearchClient(ctx, client.SearchConfig{
		APIKey:   cfg.GetSearchAPIKey(),
		EngineID: cfg.GetSearchEngineID(),
	}, log)
	if err != nil {
		return nil, fmt.Errorf("init search client: %w", err)
	}

	factCheckClient, err := client.NewFactCheckClient(ctx, cfg.GetFactCheckAPIKey(), log)
	if err != nil {
		return nil, fmt.Errorf("init fact check client: %w", err)
	}

	localizer, err := localize.New(ctx, cfg.GetTranslateAPIKey(), log)
	if err != nil {
		return nil, fmt.Errorf("init localizer: %w", err)
	}

	analyst, err := agent.New(model, &agent.ToolDependencies{
		Verdicts:  verdicts,
		Search:    searchClient,
		FactCheck: factCheckClient,
		Log:       log,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("init analyst: %w", err)
	}

	svc := service.New(service.Deps{
		Repo: repository.New(pool),
		Extractor: extract.New(extract.Config{
			Timeout:  cfg.GetArticleFetchTimeout(),
			MaxBytes: cfg.GetArticleMaxBytes(),
		}),
		Verdicts:  verdicts,
		Search:    searchClient,
		FactCheck: factCheckClient,
		Localizer: localizer,
		Analyst:   analyst,
		Refresh:   refresh,
		Bus:       bus,
		Validator: val,
		CacheTTL:  cfg.GetAnalysisCacheTTL(),
		Log:       log,
	})

	return &Module{
		handler: handler.New(svc),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "analysis"
}

// Service returns the service layer for background jobs.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts analysis routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/analyze", ctx.AnalysisRateLimiter.RateLimit(), m.handler.Analyze)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
