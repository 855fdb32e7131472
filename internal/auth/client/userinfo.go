// Package client provides the HTTP client for the Google userinfo endpoint.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"truthscope_backend/internal/auth/transport"
	"truthscope_backend/platform/apperr"
	"truthscope_backend/platform/logger"
)

// Config carries the userinfo endpoint settings.
type Config interface {
	GetUserinfoEndpoint() string
	GetUserinfoTimeout() time.Duration
}

// Client verifies Google OAuth access tokens against the userinfo endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	log        *logger.Logger
}

// New creates a new userinfo client.
func New(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.GetUserinfoTimeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.GetUserinfoEndpoint(),
		log:        log,
	}
}

// Verify calls the userinfo endpoint with the given bearer token. A rejected
// token yields an Unauthorized error; an unreachable endpoint yields Upstream.
func (c *Client) Verify(ctx context.Context, rawToken string) (transport.Userinfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return transport.Userinfo{}, apperr.Wrap(apperr.KindInternal, "create userinfo request", err)
	}
	req.Header.Set("Authorization", "Bearer "+rawToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.UpstreamError("userinfo", "verify", err)
		return transport.Userinfo{}, apperr.Upstream("token verification service unavailable", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to decode
	case http.StatusUnauthorized, http.StatusForbidden:
		return transport.Userinfo{}, apperr.Unauthorized("invalid or expired token")
	default:
		statusErr := fmt.Errorf("userinfo status %d", resp.StatusCode)
		c.log.UpstreamError("userinfo", "verify", statusErr)
		return transport.Userinfo{}, apperr.Upstream("token verification failed upstream", statusErr)
	}

	var info transport.Userinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return transport.Userinfo{}, apperr.Upstream("decode userinfo response", err)
	}
	if info.Sub == "" {
		return transport.Userinfo{}, apperr.Unauthorized("token has no subject")
	}

	return info, nil
}
