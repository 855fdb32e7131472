package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apphttp "truthscope_backend/internal/http"
)

func serveHealth(t *testing.T, components []Component) (*httptest.ResponseRecorder, Report) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	module := NewModule(components)
	module.RegisterRoutes(&apphttp.RouterContext{V1: engine.Group("/api/v1")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var report Report
	if err := json.Unmarshal(w.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid report body: %v", err)
	}
	return w, report
}

func TestHealth_AllComponentsUp(t *testing.T) {
	w, report := serveHealth(t, []Component{
		{Name: "database", Configured: true, Check: func(context.Context) error { return nil }},
		{Name: "model", Configured: true},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if report.Status != StatusOK {
		t.Fatalf("expected overall ok, got %q", report.Status)
	}
	if report.Components["database"].Status != StatusOK {
		t.Fatalf("expected database ok, got %+v", report.Components["database"])
	}
}

func TestHealth_DownComponentDegradesReport(t *testing.T) {
	w, report := serveHealth(t, []Component{
		{Name: "database", Configured: true, Check: func(context.Context) error { return nil }},
		{Name: "redis", Configured: true, Check: func(context.Context) error { return errors.New("connection refused") }},
	})

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if report.Status != "degraded" {
		t.Fatalf("expected degraded, got %q", report.Status)
	}
	if report.Components["redis"].Error == "" {
		t.Fatal("expected redis error detail in report")
	}
}

func TestHealth_UnconfiguredIsNotDegraded(t *testing.T) {
	w, report := serveHealth(t, []Component{
		{Name: "vision", Configured: false},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if report.Components["vision"].Status != StatusUnconfigured {
		t.Fatalf("expected unconfigured, got %+v", report.Components["vision"])
	}
}
