package client

import (
	"context"
	"fmt"

	"google.golang.org/api/factchecktools/v1alpha1"
	"google.golang.org/api/option"

	"truthscope_backend/internal/analysis/transport"
	"truthscope_backend/platform/logger"
	"truthscope_backend/platform/sanitize"
)

// Claim query limits. The upstream API degrades on long queries, so each
// claim is truncated and only the top review per claim is requested.
const (
	factCheckMaxClaims    = 3
	factCheckMaxClaimSize = 500
	factCheckPageSize     = 1
	factCheckLanguage     = "en"
)

// FactCheckClient wraps the Google Fact Check Tools API.
type FactCheckClient struct {
	service *factchecktools.Service
	log     *logger.Logger
}

// NewFactCheckClient creates a Fact Check Tools connector. Returns nil
// (connector disabled) when no API key is configured.
func NewFactCheckClient(ctx context.Context, apiKey string, log *logger.Logger) (*FactCheckClient, error) {
	if apiKey == "" {
		return nil, nil
	}

	service, err := factchecktools.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create factchecktools service: %w", err)
	}

	return &FactCheckClient{service: service, log: log}, nil
}

// SearchClaims looks up published fact checks for up to three claims. Claims
// beyond the limit are ignored; a failed lookup fails the whole call so the
// pipeline can surface the connector outage.
func (c *FactCheckClient) SearchClaims(ctx context.Context, claims []string) ([]transport.FactCheckClaim, error) {
	if len(claims) > factCheckMaxClaims {
		claims = claims[:factCheckMaxClaims]
	}

	var reviews []transport.FactCheckClaim
	for _, claim := range claims {
		claim = sanitize.Truncate(sanitize.CollapseWhitespace(claim), factCheckMaxClaimSize)
		if claim == "" {
			continue
		}

		resp, err := c.service.Claims.Search().
			Query(claim).
			PageSize(factCheckPageSize).
			LanguageCode(factCheckLanguage).
			Context(ctx).
			Do()
		if err != nil {
			c.log.UpstreamError("factcheck", "claims.search", err)
			return nil, fmt.Errorf("fact check search: %w", err)
		}

		for _, found := range resp.Claims {
			review := transport.FactCheckClaim{
				Text:     found.Text,
				Claimant: found.Claimant,
			}
			if len(found.ClaimReview) > 0 {
				first := found.ClaimReview[0]
				review.Title = first.Title
				review.URL = first.Url
				review.Rating = first.TextualRating
				if first.Publisher != nil {
					review.Publisher = first.Publisher.Name
				}
			}
			reviews = append(reviews, review)
		}
	}

	return reviews, nil
}
