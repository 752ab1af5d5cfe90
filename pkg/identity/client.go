// Package identity provides a client for the external identity provider
// that accounts are registered with. The core consumes it as a fact source
// only; login and password flows live entirely on the provider's side.
package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout is the maximum time to wait for identity provider responses.
const DefaultTimeout = 30 * time.Second

// Client provides access to the identity provider's lookup API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new identity client for the given provider base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		logger: logger.Named("identity"),
	}
}

// EmailRegistered reports whether an account with the given email exists at
// the provider. An unknown email is a negative answer, not an error.
func (c *Client) EmailRegistered(ctx context.Context, email string) (bool, error) {
	endpoint := fmt.Sprintf("%s/accounts/lookup?email=%s", c.baseURL, url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	switch resp.StatusCode {
	case http.StatusOK:
		var body struct {
			Registered bool `json:"registered"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return false, fmt.Errorf("failed to decode lookup response: %w", err)
		}
		return body.Registered, nil
	case http.StatusNotFound:
		return false, nil
	default:
		c.logger.Warn("unexpected identity provider status",
			zap.Int("status", resp.StatusCode))
		return false, fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}
}
