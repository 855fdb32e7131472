package scheduler

import (
	"context"
	"time"

	"truthscope_backend/platform/logger"
)

const (
	defaultRefreshSweepInterval = time.Hour
	refreshSweepBatchSize       = 50
)

// staleLister lists cached analysis URLs older than a cutoff.
type staleLister interface {
	StaleURLs(ctx context.Context, olderThan time.Time, limit int) ([]string, error)
}

// refreshEnqueuer queues a background re-analysis of a URL.
type refreshEnqueuer interface {
	ScheduleAnalysisRefresh(ctx context.Context, url string) error
}

// RefreshSweep periodically re-queues analyses for cache rows past their
// freshness window, so verdicts converge even for URLs nobody requests
// while they age. Enqueues are TaskID-deduplicated, so overlap with the
// request-path refresh trigger is harmless.
type RefreshSweep struct {
	analysis staleLister
	enqueue  refreshEnqueuer
	log      *logger.Logger
	interval time.Duration
	maxAge   time.Duration
}

// NewRefreshSweep creates the sweep. maxAge is how old a cache row may be
// before it is queued for re-analysis.
func NewRefreshSweep(analysis staleLister, enqueue refreshEnqueuer, log *logger.Logger, interval, maxAge time.Duration) *RefreshSweep {
	if interval <= 0 {
		interval = defaultRefreshSweepInterval
	}
	if maxAge <= 0 {
		maxAge = 12 * time.Hour
	}

	return &RefreshSweep{
		analysis: analysis,
		enqueue:  enqueue,
		log:      log,
		interval: interval,
		maxAge:   maxAge,
	}
}

// Run sweeps until the context is canceled.
func (s *RefreshSweep) Run(ctx context.Context) {
	if s == nil || s.analysis == nil || s.enqueue == nil {
		return
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *RefreshSweep) sweep(ctx context.Context) {
	olderThan := time.Now().Add(-s.maxAge)

	urls, err := s.analysis.StaleURLs(ctx, olderThan, refreshSweepBatchSize)
	if err != nil {
		s.log.Warn("stale analysis sweep failed", "error", err)
		return
	}
	if len(urls) == 0 {
		return
	}

	queued := 0
	for _, url := range urls {
		if err := s.enqueue.ScheduleAnalysisRefresh(ctx, url); err != nil {
			s.log.UpstreamError("asynq", "schedule refresh", err)
			continue
		}
		queued++
	}

	s.log.Info("stale analyses queued for refresh", "stale", len(urls), "queued", queued)
}
