// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"truthscope_backend/platform/events"
	"truthscope_backend/platform/logger"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// =============================================================================
// Users Domain Events
// =============================================================================

// UserRegistered is published the first time a Google account calls the API.
type UserRegistered struct {
	BaseEvent
	UserID   int64  `json:"userId"`
	GoogleID string `json:"googleId"`
	Email    string `json:"email"`
	Tier     string `json:"tier"`
}

func (e UserRegistered) EventName() string { return "users.registered" }

// =============================================================================
// Analysis Domain Events
// =============================================================================

// AnalysisCompleted is published when a text/URL analysis finishes and the
// verdict has been cached.
type AnalysisCompleted struct {
	BaseEvent
	URL        string  `json:"url,omitempty"`
	Verdict    string  `json:"verdict"`
	Confidence float64 `json:"confidence"`
	Cached     bool    `json:"cached"`
}

func (e AnalysisCompleted) EventName() string { return "analysis.completed" }

// MediaAnalyzed is published when a media item (image, video, audio) has been
// analyzed.
type MediaAnalyzed struct {
	BaseEvent
	Kind      string  `json:"kind"`
	ObjectKey string  `json:"objectKey,omitempty"`
	Score     float64 `json:"score"`
	Status    string  `json:"status"`
}

func (e MediaAnalyzed) EventName() string { return "media.analyzed" }
