// Package handler provides the HTTP handler for credibility analysis.
package handler

import (
	"net/http"

	"truthscope_backend/internal/analysis/service"
	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the analysis pipeline.
type Handler struct {
	svc *service.Service
}

// New creates a new analysis handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Analyze runs the credibility pipeline for a URL or raw text.
// POST /api/v1/analyze
func (h *Handler) Analyze(c *gin.Context) {
	var req transport.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	result, err := h.svc.Analyze(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
