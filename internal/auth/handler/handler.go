// Package handler provides HTTP handlers for the auth module.
package handler

import (
	"truthscope_backend/internal/auth/transport"
	usersvc "truthscope_backend/internal/users/service"
	"truthscope_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for account introspection.
type Handler struct {
	users *usersvc.Service
}

// New creates a new auth handler.
func New(users *usersvc.Service) *Handler {
	return &Handler{users: users}
}

// Me returns the authenticated account.
// GET /api/v1/me
func (h *Handler) Me(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	// The identity snapshot may be a few minutes stale through the token
	// cache; read the tier from the store so billing changes show up.
	user, err := h.users.GetByGoogleID(c.Request.Context(), identity.GoogleID())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.MeResponse{
		ID:       user.ID,
		GoogleID: user.GoogleID,
		Email:    user.Email,
		Tier:     user.Tier,
	})
}
