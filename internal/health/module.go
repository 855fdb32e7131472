// Package health reports per-component health for operators and uptime
// monitors. Liveness and readiness probes live on the root engine; this
// module adds the detailed component breakdown under /api/v1.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apphttp "truthscope_backend/internal/http"
)

const checkTimeout = 3 * time.Second

// Component status values.
const (
	StatusOK           = "ok"
	StatusDown         = "down"
	StatusUnconfigured = "unconfigured"
)

// Check verifies one component's connectivity.
type Check func(ctx context.Context) error

// Component is one entry in the health report. A nil Check means the
// component has no live probe and only its configured state is reported.
type Component struct {
	Name       string
	Configured bool
	Check      Check
}

// ComponentStatus is the reported state of one component.
type ComponentStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Report is the body of GET /api/v1/health.
type Report struct {
	Status     string                     `json:"status"`
	Components map[string]ComponentStatus `json:"components"`
}

// Module is the health bounded context module implementing http.Module.
type Module struct {
	components []Component
}

// NewModule creates the health module over the given components.
func NewModule(components []Component) *Module {
	return &Module{components: components}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "health"
}

// RegisterRoutes mounts the component health report. The report is public:
// it exposes no data beyond component availability.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/health", m.report)
}

func (m *Module) report(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	report := Report{
		Status:     StatusOK,
		Components: make(map[string]ComponentStatus, len(m.components)),
	}

	for _, component := range m.components {
		status := m.probe(ctx, component)
		if status.Status == StatusDown {
			report.Status = "degraded"
		}
		report.Components[component.Name] = status
	}

	code := http.StatusOK
	if report.Status != StatusOK {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, report)
}

func (m *Module) probe(ctx context.Context, component Component) ComponentStatus {
	if !component.Configured {
		return ComponentStatus{Status: StatusUnconfigured}
	}
	if component.Check == nil {
		return ComponentStatus{Status: StatusOK}
	}
	if err := component.Check(ctx); err != nil {
		return ComponentStatus{Status: StatusDown, Error: err.Error()}
	}
	return ComponentStatus{Status: StatusOK}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
