// Package repository provides PostgreSQL persistence for user accounts.
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

const userNotFoundMessage = "user not found"

// Tier values for subscription gating.
const (
	TierFree = "free"
	TierPaid = "paid"
)

// User is a persisted account keyed by its Google subject.
type User struct {
	ID        int64
	GoogleID  string
	Email     string
	Tier      string
	CreatedAt time.Time
}

// Repository defines persistence operations for users.
type Repository interface {
	// GetOrCreate upserts a user by Google ID. The second return value is
	// true when the row was newly inserted.
	GetOrCreate(ctx context.Context, googleID, email string) (User, bool, error)
	GetByGoogleID(ctx context.Context, googleID string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	SetTier(ctx context.Context, googleID, tier string) (User, error)
}

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new users repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetOrCreate upserts a user row, defaulting new accounts to the free tier.
func (r *Repo) GetOrCreate(ctx context.Context, googleID, email string) (User, bool, error) {
	query := `
		INSERT INTO users (google_id, email, tier)
		VALUES ($1, $2, $3)
		ON CONFLICT (google_id) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, google_id, email, tier, created_at, (xmax = 0) AS inserted`

	var u User
	var inserted bool
	err := r.pool.QueryRow(ctx, query, googleID, email, TierFree).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Tier, &u.CreatedAt, &inserted,
	)
	if err != nil {
		return User{}, false, fmt.Errorf("get or create user: %w", err)
	}

	return u, inserted, nil
}

// GetByGoogleID retrieves a user by Google subject.
func (r *Repo) GetByGoogleID(ctx context.Context, googleID string) (User, error) {
	query := `
		SELECT id, google_id, email, tier, created_at
		FROM users
		WHERE google_id = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, googleID).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Tier, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by google id: %w", err)
	}

	return u, nil
}

// GetByID retrieves a user by database ID.
func (r *Repo) GetByID(ctx context.Context, id int64) (User, error) {
	query := `
		SELECT id, google_id, email, tier, created_at
		FROM users
		WHERE id = $1`

	var u User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Tier, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}

	return u, nil
}

// SetTier updates a user's subscription tier.
func (r *Repo) SetTier(ctx context.Context, googleID, tier string) (User, error) {
	query := `
		UPDATE users
		SET tier = $2
		WHERE google_id = $1
		RETURNING id, google_id, email, tier, created_at`

	var u User
	err := r.pool.QueryRow(ctx, query, googleID, tier).Scan(
		&u.ID, &u.GoogleID, &u.Email, &u.Tier, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("set user tier: %w", err)
	}

	return u, nil
}
