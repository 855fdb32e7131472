// Package service provides business logic for user accounts.
package service

import (
	"context"

	"truthscope_backend/internal/events"
	"truthscope_backend/internal/users/repository"
	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/logger"
)

// Service provides user account operations.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new users service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetOrCreateByGoogle loads the account for a verified Google identity,
// creating it on first contact with the default free tier.
func (s *Service) GetOrCreateByGoogle(ctx context.Context, googleID, email string) (repository.User, error) {
	if googleID == "" {
		return repository.User{}, apperr.Validation("google id is required")
	}

	user, created, err := s.repo.GetOrCreate(ctx, googleID, email)
	if err != nil {
		return repository.User{}, err
	}

	if created {
		s.log.AuthEvent("user_registered", email, true, "")
		s.bus.Publish(ctx, events.UserRegistered{
			BaseEvent: events.NewBaseEvent(),
			UserID:    user.ID,
			GoogleID:  user.GoogleID,
			Email:     user.Email,
			Tier:      user.Tier,
		})
	}

	return user, nil
}

// GetByGoogleID retrieves an existing account.
func (s *Service) GetByGoogleID(ctx context.Context, googleID string) (repository.User, error) {
	return s.repo.GetByGoogleID(ctx, googleID)
}

// SetTier moves an account between subscription tiers.
func (s *Service) SetTier(ctx context.Context, googleID, tier string) (repository.User, error) {
	if tier != repository.TierFree && tier != repository.TierPaid {
		return repository.User{}, apperr.Validation("tier must be free or paid")
	}
	return s.repo.SetTier(ctx, googleID, tier)
}
