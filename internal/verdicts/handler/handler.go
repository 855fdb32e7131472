// Package handler provides HTTP handlers for domain verdict lookups.
package handler

import (
	"net/http"

	"truthscope_backend/internal/verdicts/service"
	"truthscope_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for domain verdicts.
type Handler struct {
	svc *service.Service
}

// New creates a new verdicts handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Get retrieves the curated verdict for a domain.
// GET /api/v1/verdicts/:domain
func (h *Handler) Get(c *gin.Context) {
	domain := c.Param("domain")
	if domain == "" {
		httpkit.Error(c, http.StatusBadRequest, "domain is required", nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), domain)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
