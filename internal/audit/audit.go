// Package audit consumes domain events and turns them into an activity
// trail: every event is logged in structured form and counted per type so
// operators can see what the pipelines are actually doing.
package audit

import (
	"context"
	"sync"

	"truthscope_backend/internal/events"
	"truthscope_backend/platform/logger"
)

// Recorder is the event handler behind the activity trail.
type Recorder struct {
	log *logger.Logger

	mu     sync.Mutex
	counts map[string]uint64
}

// New creates a new audit recorder.
func New(log *logger.Logger) *Recorder {
	return &Recorder{
		log:    log,
		counts: make(map[string]uint64),
	}
}

// RegisterHandlers subscribes to all relevant domain events on the event bus.
func (r *Recorder) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.UserRegistered{}.EventName(), r)
	bus.Subscribe(events.AnalysisCompleted{}.EventName(), r)
	bus.Subscribe(events.MediaAnalyzed{}.EventName(), r)

	r.log.Info("audit recorder registered event handlers")
}

// Handle routes events to the appropriate log line.
func (r *Recorder) Handle(_ context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.UserRegistered:
		r.log.Info("audit: user registered",
			"userId", e.UserID, "email", e.Email, "tier", e.Tier)
	case events.AnalysisCompleted:
		r.log.Info("audit: analysis completed",
			"url", e.URL, "verdict", e.Verdict, "confidence", e.Confidence, "cached", e.Cached)
	case events.MediaAnalyzed:
		r.log.Info("audit: media analyzed",
			"kind", e.Kind, "objectKey", e.ObjectKey, "score", e.Score, "status", e.Status)
	default:
		r.log.Info("audit: event", "event", event.EventName())
	}

	r.mu.Lock()
	r.counts[event.EventName()]++
	r.mu.Unlock()
	return nil
}

// Counts returns a snapshot of how many events of each type were recorded.
func (r *Recorder) Counts() map[string]uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]uint64, len(r.counts))
	for name, n := range r.counts {
		snapshot[name] = n
	}
	return snapshot
}

// Compile-time check that Recorder implements events.Handler
var _ events.Handler = (*Recorder)(nil)
