package scheduler

import (
	"context"
	"time"

	analysisservice "truthscope_backend/internal/analysis/service"
	"truthscope_backend/platform/logger"
)

const (
	defaultCacheCleanupInterval = time.Hour
	defaultCacheRetention       = 30 * 24 * time.Hour
)

// CacheCleanup periodically removes analysis results past the retention
// window. Rows between the cache TTL and the retention cutoff are kept so
// stale-but-recent verdicts remain available to the refresh job.
type CacheCleanup struct {
	analysis  *analysisservice.Service
	log       *logger.Logger
	interval  time.Duration
	retention time.Duration
}

func NewCacheCleanup(analysis *analysisservice.Service, log *logger.Logger, interval, retention time.Duration) *CacheCleanup {
	if interval <= 0 {
		interval = defaultCacheCleanupInterval
	}
	if retention <= 0 {
		retention = defaultCacheRetention
	}

	return &CacheCleanup{
		analysis:  analysis,
		log:       log,
		interval:  interval,
		retention: retention,
	}
}

func (c *CacheCleanup) Run(ctx context.Context) {
	if c == nil || c.analysis == nil {
		return
	}

	c.cleanup(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.cleanup(ctx)
		}
	}
}

func (c *CacheCleanup) cleanup(ctx context.Context) {
	cutoff := time.Now().Add(-c.retention)

	deleted, err := c.analysis.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		c.log.Warn("analysis cache cleanup failed", "error", err)
		return
	}

	if deleted > 0 {
		c.log.Info("analysis cache cleanup deleted stale results", "deleted", deleted)
	}
}
