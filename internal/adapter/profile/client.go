// Package profile fetches stored traveler profiles for autofill.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/flight-booking/passenger-checkout/internal/domain"
)

// DefaultTimeout bounds a profile lookup. Autofill is optional, so it is kept short.
const DefaultTimeout = 3 * time.Second

// Client reads the authenticated user's profile from the profile service.
type Client struct {
	url  string
	http *http.Client
}

var _ domain.ProfileProvider = (*Client)(nil)

// NewClient creates a profile client for url.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
	}
}

// FetchProfile forwards token as a bearer credential.
// Missing, rejected or unknown users all surface as domain.ErrProfileUnavailable.
func (c *Client) FetchProfile(ctx context.Context, token string) (domain.Profile, error) {
	if token == "" {
		return domain.Profile{}, domain.ErrProfileUnavailable
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound:
		return domain.Profile{}, fmt.Errorf("%w: status %d", domain.ErrProfileUnavailable, resp.StatusCode)
	case resp.StatusCode/100 != 2:
		return domain.Profile{}, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode)
	}

	var p domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}
