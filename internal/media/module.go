// Package media provides the paid-tier media analysis bounded context:
// image forensics, video manipulation assessment, and audio scam detection.
package media

import (
	"context"
	"fmt"

	"truthscope_backend/internal/adapters/storage"
	"truthscope_backend/internal/events"
	apphttp "truthscope_backend/internal/http"
	"truthscope_backend/internal/media/client"
	"truthscope_backend/internal/media/handler"
	"truthscope_backend/internal/media/service"
	"truthscope_backend/platform/ai/gemini"
	"truthscope_backend/platform/config"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"
)

// Config is the configuration surface the media module needs.
type Config interface {
	config.MediaConfig
	GetMinioBucketMediaUploads() string
}

// Module is the media bounded context module implementing http.Module.
type Module struct {
	handler       *handler.Handler
	service       *service.Service
	visionEnabled bool
	speechEnabled bool
}

// NewModule creates and initializes the media module. The Vision and Speech
// connectors rely on ambient GCP credentials; when either cannot be built the
// affected pipeline degrades instead of blocking startup.
func NewModule(
	ctx context.Context,
	store storage.StorageService,
	cfg Config,
	model *gemini.Model,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) (*Module, error) {
	bucket := cfg.GetMinioBucketMediaUploads()
	if err := store.EnsureBucketExists(ctx, bucket); err != nil {
		return nil, fmt.Errorf("ensure media bucket: %w", err)
	}

	visionClient, err := client.NewVisionClient(ctx, log)
	if err != nil {
		log.UpstreamError("vision", "init", err)
		visionClient = nil
	}

	speechClient, err := client.NewSpeechClient(ctx, log)
	if err != nil {
		log.UpstreamError("speech", "init", err)
		speechClient = nil
	}

	svc := service.New(service.Deps{
		Storage:      store,
		Bucket:       bucket,
		Vision:       visionClient,
		Speech:       speechClient,
		Model:        model,
		FetchTimeout: cfg.GetMediaFetchTimeout(),
		MaxSize:      cfg.GetMediaMaxBytes(),
		Bus:          bus,
		Log:          log,
	})

	return &Module{
		handler:       handler.New(svc, val),
		service:       svc,
		visionEnabled: visionClient != nil,
		speechEnabled: speechClient != nil,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "media"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// VisionEnabled reports whether the Vision connector initialized.
func (m *Module) VisionEnabled() bool {
	return m.visionEnabled
}

// SpeechEnabled reports whether the Speech connector initialized.
func (m *Module) SpeechEnabled() bool {
	return m.speechEnabled
}

// Handler exposes the handlers for modules that remount them.
func (m *Module) Handler() *handler.Handler {
	return m.handler
}

// RegisterRoutes mounts media routes on the paid-tier group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Paid.POST("/analyze/image", ctx.AnalysisRateLimiter.RateLimit(), m.handler.AnalyzeImage)
	ctx.Paid.POST("/analyze/video", ctx.AnalysisRateLimiter.RateLimit(), m.handler.AnalyzeVideo)
	ctx.Paid.POST("/analyze/audio", ctx.AnalysisRateLimiter.RateLimit(), m.handler.AnalyzeAudio)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
