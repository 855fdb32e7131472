// Package auth provides the authentication bounded context module.
// It verifies Google OAuth bearer tokens against the userinfo endpoint and
// resolves them to local accounts with subscription tiers.
package auth

import (
	"time"

	"truthscope_backend/internal/auth/client"
	"truthscope_backend/internal/auth/handler"
	"truthscope_backend/internal/auth/service"
	"truthscope_backend/internal/events"
	apphttp "truthscope_backend/internal/http"
	userrepo "truthscope_backend/internal/users/repository"
	usersvc "truthscope_backend/internal/users/service"
	"truthscope_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config combines the settings the auth module needs.
type Config interface {
	client.Config
	GetTokenCacheTTL() time.Duration
}

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	users   *usersvc.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg Config, bus events.Bus, log *logger.Logger) *Module {
	repo := userrepo.New(pool)
	users := usersvc.New(repo, bus, log)
	userinfo := client.New(cfg, log)
	svc := service.New(userinfo, users, cfg.GetTokenCacheTTL(), log)
	h := handler.New(users)

	return &Module{
		handler: h,
		service: svc,
		users:   users,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for middleware construction.
func (m *Module) Service() *service.Service {
	return m.service
}

// Users returns the users service for other modules.
func (m *Module) Users() *usersvc.Service {
	return m.users
}

// AuthMiddleware returns the bearer-token verification middleware.
func (m *Module) AuthMiddleware() gin.HandlerFunc {
	return AuthRequired(m.service)
}

// PaidMiddleware returns the paid-tier gate middleware.
func (m *Module) PaidMiddleware() gin.HandlerFunc {
	return PaidTierRequired()
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/me", m.handler.Me)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
