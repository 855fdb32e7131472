package auth

import (
	"context"
	"net/http"

	"truthscope_backend/internal/auth/service"
	"truthscope_backend/platform/httpkit"
	"truthscope_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"strconv"
)

const paidTierMessage = "This feature requires a paid subscription."

// AuthRequired returns middleware that verifies the Google bearer token and
// attaches the resolved identity to the request.
func AuthRequired(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawToken, ok := httpkit.ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		user, err := svc.Authenticate(c.Request.Context(), rawToken)
		if err != nil {
			if httpkit.HandleError(c, err) {
				c.Abort()
			}
			return
		}

		identity := httpkit.NewIdentity(user.ID, user.GoogleID, user.Email, user.Tier)
		c.Set(httpkit.ContextIdentityKey, identity)

		ctx := context.WithValue(c.Request.Context(), logger.UserIDKey, strconv.FormatInt(user.ID, 10))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// PaidTierRequired returns middleware that rejects free-tier accounts.
// It must run after AuthRequired.
func PaidTierRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := httpkit.MustGetIdentity(c)
		if identity == nil {
			return
		}

		if !identity.IsPaid() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": paidTierMessage})
			return
		}

		c.Next()
	}
}
