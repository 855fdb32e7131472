// Package service provides token verification with short-lived caching.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"truthscope_backend/internal/auth/client"
	"truthscope_backend/internal/auth/transport"
	userrepo "truthscope_backend/internal/users/repository"
	usersvc "truthscope_backend/internal/users/service"
	"truthscope_backend/platform/logger"
)

// Verifier abstracts the userinfo client for testing.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (transport.Userinfo, error)
}

// Service verifies bearer tokens and resolves them to local accounts.
// Verified tokens are cached in-process for a short TTL so that hot clients
// do not hit the userinfo endpoint on every request.
type Service struct {
	verifier Verifier
	users    *usersvc.Service
	cacheTTL time.Duration
	log      *logger.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	user      userrepo.User
	expiresAt time.Time
}

// New creates a new auth service.
func New(verifier Verifier, users *usersvc.Service, cacheTTL time.Duration, log *logger.Logger) *Service {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}

	return &Service{
		verifier: verifier,
		users:    users,
		cacheTTL: cacheTTL,
		log:      log,
		cache:    make(map[string]cacheEntry),
	}
}

var _ Verifier = (*client.Client)(nil)

// Authenticate verifies a raw bearer token and returns the associated local
// account, creating it on first contact.
func (s *Service) Authenticate(ctx context.Context, rawToken string) (userrepo.User, error) {
	key := tokenKey(rawToken)

	if user, ok := s.cached(key); ok {
		return user, nil
	}

	info, err := s.verifier.Verify(ctx, rawToken)
	if err != nil {
		return userrepo.User{}, err
	}

	user, err := s.users.GetOrCreateByGoogle(ctx, info.Sub, info.Email)
	if err != nil {
		return userrepo.User{}, err
	}

	s.store(key, user)
	return user, nil
}

// Invalidate drops a token from the cache (e.g. after a tier change).
func (s *Service) Invalidate(rawToken string) {
	key := tokenKey(rawToken)
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

func (s *Service) cached(key string) (userrepo.User, bool) {
	s.mu.RLock()
	entry, ok := s.cache[key]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return userrepo.User{}, false
	}
	return entry.user, true
}

func (s *Service) store(key string, user userrepo.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Opportunistic sweep keeps the map from growing unbounded.
	if len(s.cache) > 4096 {
		now := time.Now()
		for k, e := range s.cache {
			if now.After(e.expiresAt) {
				delete(s.cache, k)
			}
		}
	}

	s.cache[key] = cacheEntry{user: user, expiresAt: time.Now().Add(s.cacheTTL)}
}

// Tokens are cached by digest so raw credentials never sit in memory as keys.
func tokenKey(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}
