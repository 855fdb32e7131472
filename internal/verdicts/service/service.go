// Package service provides business logic for curated domain verdicts.
package service

import (
	"context"
	"net/url"
	"strings"

	"truthscope_backend/internal/verdicts/repository"
	"truthscope_backend/internal/verdicts/transport"
	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/validator"
)

// Service provides domain verdict lookups and seeding.
type Service struct {
	repo repository.Repository
	val  *validator.Validator
	log  *logger.Logger
}

// New creates a new verdicts service.
func New(repo repository.Repository, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, val: val, log: log}
}

// Lookup resolves a raw URL or bare domain to a curated verdict.
// Parse failures never propagate as errors: they yield an invalid_url
// verdict so the analysis pipeline can continue.
func (s *Service) Lookup(ctx context.Context, rawURL string) transport.LookupResponse {
	domain, ok := NormalizeDomain(rawURL)
	if !ok {
		return transport.LookupResponse{Verdict: transport.StatusInvalidURL}
	}

	v, err := s.repo.Get(ctx, domain)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return transport.LookupResponse{Domain: domain, Verdict: transport.StatusNotFound}
		}
		s.log.DatabaseError("verdict lookup", err)
		return transport.LookupResponse{Domain: domain, Verdict: transport.StatusNotFound}
	}

	return transport.LookupResponse{Domain: v.Domain, Verdict: v.Verdict, Source: v.Source}
}

// Get retrieves the stored verdict for an exact domain.
func (s *Service) Get(ctx context.Context, domain string) (transport.LookupResponse, error) {
	normalized, ok := NormalizeDomain(domain)
	if !ok {
		return transport.LookupResponse{}, apperr.Validation("invalid domain")
	}

	v, err := s.repo.Get(ctx, normalized)
	if err != nil {
		return transport.LookupResponse{}, err
	}

	return transport.LookupResponse{Domain: v.Domain, Verdict: v.Verdict, Source: v.Source}, nil
}

// Seed bulk-loads curated verdicts, skipping entries that fail validation.
func (s *Service) Seed(ctx context.Context, file transport.SeedFile) (transport.SeedResponse, error) {
	verdicts := make([]repository.DomainVerdict, 0, len(file.Verdicts))
	skipped := 0

	for _, entry := range file.Verdicts {
		if err := s.val.Struct(entry); err != nil {
			s.log.Warn("skipping invalid verdict seed entry", "domain", entry.Domain, "error", err)
			skipped++
			continue
		}

		domain, ok := NormalizeDomain(entry.Domain)
		if !ok {
			skipped++
			continue
		}

		verdicts = append(verdicts, repository.DomainVerdict{
			Domain:  domain,
			Verdict: entry.Verdict,
			Source:  entry.Source,
		})
	}

	written, err := s.repo.BulkUpsert(ctx, verdicts)
	if err != nil {
		return transport.SeedResponse{}, err
	}

	s.log.Info("domain verdicts seeded", "written", written, "skipped", skipped)
	return transport.SeedResponse{Written: written, Skipped: skipped}, nil
}

// NormalizeDomain extracts the registrable host from a URL or bare domain:
// lowercase, port stripped, leading "www." removed.
func NormalizeDomain(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	host := raw
	if strings.Contains(raw, "://") {
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			return "", false
		}
		host = parsed.Host
	} else if strings.ContainsAny(raw, "/?#") {
		parsed, err := url.Parse("https://" + raw)
		if err != nil || parsed.Host == "" {
			return "", false
		}
		host = parsed.Host
	}

	host = strings.ToLower(host)
	if idx := strings.LastIndex(host, ":"); idx != -1 && !strings.Contains(host, "]") {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")

	if host == "" || !strings.Contains(host, ".") {
		return "", false
	}
	return host, true
}
