// Package deepfake exposes the dedicated binary video classifier endpoint on
// top of the media analysis service.
package deepfake

import (
	apphttp "truthscope_backend/internal/http"
	mediahandler "truthscope_backend/internal/media/handler"
)

// Module is the deepfake bounded context module implementing http.Module.
type Module struct {
	handler *mediahandler.Handler
}

// NewModule creates the deepfake module around the media handlers.
func NewModule(h *mediahandler.Handler) *Module {
	return &Module{handler: h}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "deepfake"
}

// RegisterRoutes mounts the classifier route on the paid-tier group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Paid.POST("/deepfake/video", ctx.AnalysisRateLimiter.RateLimit(), m.handler.ClassifyDeepfake)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
