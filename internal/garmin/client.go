// Package garmin implements the external wellness API collaborator. It does
// not implement the authentication protocol itself; it consumes tokens that
// an external login flow has already stored on disk.
package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	apperrors "github.com/bruvio/wellness-helper/internal/errors"

	"github.com/bruvio/wellness-helper/internal/config"
	"github.com/bruvio/wellness-helper/internal/domain"
	"github.com/bruvio/wellness-helper/internal/state"
)

const apiName = "Garmin Connect"

// tokenFile is the on-disk session produced by the external login flow.
type tokenFile struct {
	AccessToken string    `json:"access_token"`
	Username    string    `json:"username"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Client fetches per-day wellness summaries over HTTP.
type Client struct {
	cfg        config.GarminConfig
	httpClient *http.Client
	states     state.Manager
	logger     *slog.Logger
}

// NewClient creates a new wellness API client.
func NewClient(cfg config.GarminConfig, states state.Manager, logger *slog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		states:     states,
		logger:     logger,
	}
}

// LoadSession loads the stored session without touching the network. The
// parsed session is cached in the state manager keyed by account email.
func (c *Client) LoadSession(ctx context.Context) (domain.SessionInfo, error) {
	if cached, ok := c.states.GetSession(c.cfg.Email); ok {
		return domain.SessionInfo{
			Authenticated: true,
			Username:      cached.Username,
			Email:         c.cfg.Email,
			ExpiresAt:     cached.ExpiresAt,
		}, nil
	}

	data, err := os.ReadFile(c.cfg.TokenFile)
	if err != nil {
		return domain.SessionInfo{}, apperrors.NewAuthError("no stored session found")
	}

	var tokens tokenFile
	if err := json.Unmarshal(data, &tokens); err != nil {
		return domain.SessionInfo{}, apperrors.NewAuthError("stored session is unreadable")
	}
	if tokens.AccessToken == "" {
		return domain.SessionInfo{}, apperrors.NewAuthError("stored session has no access token")
	}
	if !tokens.ExpiresAt.IsZero() && time.Now().After(tokens.ExpiresAt) {
		return domain.SessionInfo{}, apperrors.NewAuthError("stored session has expired")
	}

	c.states.SetSession(c.cfg.Email, state.Session{
		Username:        tokens.Username,
		AuthenticatedAt: time.Now(),
		ExpiresAt:       tokens.ExpiresAt,
	})

	return domain.SessionInfo{
		Authenticated: true,
		Username:      tokens.Username,
		Email:         c.cfg.Email,
		ExpiresAt:     tokens.ExpiresAt,
	}, nil
}

// IsAuthenticated reports whether an active session exists.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	info, err := c.LoadSession(ctx)
	return err == nil && info.Authenticated
}

// WellnessSummaryForDay fetches one day's wellness summary. The response is a
// mapping of metric-type key to a provider-specific JSON shape.
func (c *Client) WellnessSummaryForDay(ctx context.Context, day time.Time) (domain.DailySummary, error) {
	info, err := c.LoadSession(ctx)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/wellness-service/wellness/dailySummary/%s", c.cfg.APIBaseURL, day.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalAPIError(err, apiName)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		c.states.ClearSession(c.cfg.Email)
		return nil, apperrors.NewAuthError("session rejected by provider")
	default:
		return nil, apperrors.NewExternalAPIError(
			fmt.Errorf("unexpected status: %d", resp.StatusCode), apiName).
			WithContext("date", day.Format("2006-01-02"))
	}

	var summary domain.DailySummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		return nil, apperrors.NewExternalAPIError(fmt.Errorf("decode response: %w", err), apiName)
	}

	c.logger.Debug("fetched daily wellness summary",
		"date", day.Format("2006-01-02"), "user", info.Username, "types", len(summary))
	return summary, nil
}

func (c *Client) accessToken() string {
	data, err := os.ReadFile(c.cfg.TokenFile)
	if err != nil {
		return ""
	}
	var tokens tokenFile
	if err := json.Unmarshal(data, &tokens); err != nil {
		return ""
	}
	return tokens.AccessToken
}
