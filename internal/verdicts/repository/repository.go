// Package repository provides PostgreSQL persistence for curated domain verdicts.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"truthscope_backend/platform/apperr"
)

const verdictNotFoundMessage = "domain verdict not found"

// Verdict values stored for a domain.
const (
	VerdictReal = "real"
	VerdictFake = "fake"
)

// DomainVerdict is a curated credibility label for a news domain.
type DomainVerdict struct {
	Domain    string
	Verdict   string
	Source    string
	UpdatedAt time.Time
}

// Repository defines persistence operations for domain verdicts.
type Repository interface {
	Get(ctx context.Context, domain string) (DomainVerdict, error)
	Upsert(ctx context.Context, v DomainVerdict) error
	BulkUpsert(ctx context.Context, verdicts []DomainVerdict) (int, error)
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new domain verdicts repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Get retrieves the verdict for a normalized domain.
func (r *Repo) Get(ctx context.Context, domain string) (DomainVerdict, error) {
	query := `
		SELECT domain, verdict, source, updated_at
		FROM url_verdicts
		WHERE domain = $1`

	var v DomainVerdict
	err := r.pool.QueryRow(ctx, query, domain).Scan(&v.Domain, &v.Verdict, &v.Source, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DomainVerdict{}, apperr.NotFound(verdictNotFoundMessage)
		}
		return DomainVerdict{}, fmt.Errorf("get domain verdict: %w", err)
	}

	return v, nil
}

// Upsert stores or refreshes one verdict.
func (r *Repo) Upsert(ctx context.Context, v DomainVerdict) error {
	query := `
		INSERT INTO url_verdicts (domain, verdict, source, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (domain) DO UPDATE
		SET verdict = EXCLUDED.verdict, source = EXCLUDED.source, updated_at = now()`

	if _, err := r.pool.Exec(ctx, query, v.Domain, v.Verdict, v.Source); err != nil {
		return fmt.Errorf("upsert domain verdict: %w", err)
	}
	return nil
}

// BulkUpsert stores a batch of verdicts in a single transaction and returns
// the number of rows written.
func (r *Repo) BulkUpsert(ctx context.Context, verdicts []DomainVerdict) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin bulk upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO url_verdicts (domain, verdict, source, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (domain) DO UPDATE
		SET verdict = EXCLUDED.verdict, source = EXCLUDED.source, updated_at = now()`

	count := 0
	for _, v := range verdicts {
		if _, err := tx.Exec(ctx, query, v.Domain, v.Verdict, v.Source); err != nil {
			return 0, fmt.Errorf("bulk upsert domain %s: %w", v.Domain, err)
		}
		count++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit bulk upsert: %w", err)
	}
	return count, nil
}
