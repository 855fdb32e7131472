package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"truthscope_backend/platform/logger"
)

type fakeStaleLister struct {
	urls    []string
	err     error
	cutoffs []time.Time
}

func (f *fakeStaleLister) StaleURLs(_ context.Context, olderThan time.Time, limit int) ([]string, error) {
	f.cutoffs = append(f.cutoffs, olderThan)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.urls) > limit {
		return f.urls[:limit], nil
	}
	return f.urls, nil
}

type fakeEnqueuer struct {
	scheduled []string
	failFor   string
}

func (f *fakeEnqueuer) ScheduleAnalysisRefresh(_ context.Context, url string) error {
	if url == f.failFor {
		return errors.New("queue unavailable")
	}
	f.scheduled = append(f.scheduled, url)
	return nil
}

func TestRefreshSweep_QueuesStaleURLs(t *testing.T) {
	lister := &fakeStaleLister{urls: []string{"https://example.com/a", "https://example.com/b"}}
	enqueuer := &fakeEnqueuer{}
	sweep := NewRefreshSweep(lister, enqueuer, logger.New("test"), time.Hour, 12*time.Hour)

	sweep.sweep(context.Background())

	if len(enqueuer.scheduled) != 2 {
		t.Fatalf("expected 2 queued refreshes, got %v", enqueuer.scheduled)
	}
	if len(lister.cutoffs) != 1 {
		t.Fatalf("expected one listing, got %d", len(lister.cutoffs))
	}
	if age := time.Since(lister.cutoffs[0]); age < 11*time.Hour || age > 13*time.Hour {
		t.Fatalf("cutoff should trail now by the max age, got %v", age)
	}
}

func TestRefreshSweep_EnqueueFailureSkipsOnlyThatURL(t *testing.T) {
	lister := &fakeStaleLister{urls: []string{"https://example.com/a", "https://example.com/b"}}
	enqueuer := &fakeEnqueuer{failFor: "https://example.com/a"}
	sweep := NewRefreshSweep(lister, enqueuer, logger.New("test"), time.Hour, 12*time.Hour)

	sweep.sweep(context.Background())

	if len(enqueuer.scheduled) != 1 || enqueuer.scheduled[0] != "https://example.com/b" {
		t.Fatalf("expected the healthy URL to still queue, got %v", enqueuer.scheduled)
	}
}

func TestRefreshSweep_ListFailureQueuesNothing(t *testing.T) {
	lister := &fakeStaleLister{err: errors.New("db down")}
	enqueuer := &fakeEnqueuer{}
	sweep := NewRefreshSweep(lister, enqueuer, logger.New("test"), time.Hour, 12*time.Hour)

	sweep.sweep(context.Background())

	if len(enqueuer.scheduled) != 0 {
		t.Fatalf("expected no refreshes on listing failure, got %v", enqueuer.scheduled)
	}
}
