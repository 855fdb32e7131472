package audit

import (
	"context"
	"testing"

	"truthscope_backend/internal/events"
	"truthscope_backend/platform/logger"
)

func TestRecorder_CountsSubscribedEvents(t *testing.T) {
	log := logger.New("test")
	bus := events.NewInMemoryBus(log)
	recorder := New(log)
	recorder.RegisterHandlers(bus)

	ctx := context.Background()
	publish := func(event events.Event) {
		if err := bus.PublishSync(ctx, event); err != nil {
			t.Fatalf("publish %s: %v", event.EventName(), err)
		}
	}

	publish(events.UserRegistered{BaseEvent: events.NewBaseEvent(), UserID: 1, Email: "reader@example.com", Tier: "free"})
	publish(events.AnalysisCompleted{BaseEvent: events.NewBaseEvent(), URL: "https://example.com/a", Verdict: "real", Confidence: 0.8})
	publish(events.AnalysisCompleted{BaseEvent: events.NewBaseEvent(), URL: "https://example.com/b", Verdict: "fake", Confidence: 0.9})
	publish(events.MediaAnalyzed{BaseEvent: events.NewBaseEvent(), Kind: "image", Score: 0.4, Status: "success"})

	counts := recorder.Counts()
	if counts[events.UserRegistered{}.EventName()] != 1 {
		t.Fatalf("expected 1 user event, got %d", counts[events.UserRegistered{}.EventName()])
	}
	if counts[events.AnalysisCompleted{}.EventName()] != 2 {
		t.Fatalf("expected 2 analysis events, got %d", counts[events.AnalysisCompleted{}.EventName()])
	}
	if counts[events.MediaAnalyzed{}.EventName()] != 1 {
		t.Fatalf("expected 1 media event, got %d", counts[events.MediaAnalyzed{}.EventName()])
	}
}

func TestRecorder_CountsAreASnapshot(t *testing.T) {
	log := logger.New("test")
	recorder := New(log)

	if err := recorder.Handle(context.Background(), events.AnalysisCompleted{BaseEvent: events.NewBaseEvent(), Verdict: "real"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := recorder.Counts()
	counts[events.AnalysisCompleted{}.EventName()] = 99

	if got := recorder.Counts()[events.AnalysisCompleted{}.EventName()]; got != 1 {
		t.Fatalf("snapshot mutation leaked into recorder, got %d", got)
	}
}
