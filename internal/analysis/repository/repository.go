// Package repository provides PostgreSQL persistence for cached analysis results.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/apperr"
)

const resultNotFoundMessage = "analysis result not found"

// CachedResult is a persisted verdict document keyed by the analyzed URL.
type CachedResult struct {
	URL       string
	Result    transport.AnalyzeResponse
	CreatedAt time.Time
}

// Repository defines persistence operations for analysis results.
type Repository interface {
	GetByURL(ctx context.Context, url string) (CachedResult, error)
	Upsert(ctx context.Context, url string, result transport.AnalyzeResponse) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	ListStaleURLs(ctx context.Context, olderThan time.Time, limit int) ([]string, error)
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new analysis results repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByURL retrieves the cached verdict document for a URL.
func (r *Repo) GetByURL(ctx context.Context, url string) (CachedResult, error) {
	query := `
		SELECT url, result_json, created_at
		FROM analysis_results
		WHERE url = $1`

	var (
		cached CachedResult
		raw    []byte
	)
	err := r.pool.QueryRow(ctx, query, url).Scan(&cached.URL, &raw, &cached.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CachedResult{}, apperr.NotFound(resultNotFoundMessage)
		}
		return CachedResult{}, fmt.Errorf("get analysis result: %w", err)
	}

	if err := json.Unmarshal(raw, &cached.Result); err != nil {
		return CachedResult{}, fmt.Errorf("decode analysis result: %w", err)
	}
	return cached, nil
}

// Upsert stores or refreshes the verdict document for a URL. A refresh
// resets created_at so the cache TTL restarts.
func (r *Repo) Upsert(ctx context.Context, url string, result transport.AnalyzeResponse) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode analysis result: %w", err)
	}

	query := `
		INSERT INTO analysis_results (url, result_json, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (url) DO UPDATE
		SET result_json = EXCLUDED.result_json, created_at = now()`

	if _, err := r.pool.Exec(ctx, query, url, raw); err != nil {
		return fmt.Errorf("upsert analysis result: %w", err)
	}
	return nil
}

// DeleteOlderThan removes results created before the cutoff and returns the
// number of rows deleted.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM analysis_results WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete stale analysis results: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListStaleURLs returns URLs whose cached verdict is older than the given
// time, oldest first. Used by the background refresh job.
func (r *Repo) ListStaleURLs(ctx context.Context, olderThan time.Time, limit int) ([]string, error) {
	query := `
		SELECT url
		FROM analysis_results
		WHERE created_at < $1
		ORDER BY created_at ASC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, olderThan, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale analysis results: %w", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan stale analysis result: %w", err)
		}
		urls = append(urls, url)
	}
	return urls, rows.Err()
}
