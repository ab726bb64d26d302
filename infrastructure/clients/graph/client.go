package graph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/configuration"
	"instagram-gateway/infrastructure/logger"
)

const (
	// Hard safety margin before the recorded expiry at which a stored token
	// stops being served without a refresh attempt.
	expiryBuffer = 300 * time.Second
	// Advisory window before expiry in which NeedsRefreshSoon starts
	// reporting true.
	refreshAheadWindow = 24 * time.Hour

	requestTimeout = 30 * time.Second
)

// Client talks to the Facebook Graph API on behalf of one Instagram business
// account. It owns credential resolution: every call gets a token resolved
// through the fixed precedence chain unless the caller overrides it per call.
type Client struct {
	store     repository.ITokenStore
	notifiers []repository.IPublishNotifier

	// provider is an optional caller-supplied token source; it outranks every
	// other credential source when it returns a non-empty token.
	provider func(ctx context.Context) string

	http    *http.Client
	baseURL string
	version string

	clientID     string
	clientSecret string
	redirectURI  string

	// configured identity overrides
	igUserID string

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// NewGraphClient builds a client from the loaded configuration. provider may
// be nil; notifiers may be empty.
func NewGraphClient(store repository.ITokenStore, provider func(ctx context.Context) string, notifiers ...repository.IPublishNotifier) repository.IGraph {
	cfg := configuration.C.Graph
	return &Client{
		store:        store,
		notifiers:    notifiers,
		provider:     provider,
		http:         &http.Client{Timeout: requestTimeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		version:      cfg.Version,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURI:  cfg.RedirectURI,
		igUserID:     cfg.InstagramUserID,
		now:          time.Now,
		sleep:        sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// AccessToken resolves the effective user token. Precedence: provider
// callback, INSTAGRAM_ACCESS_TOKEN, stored token (refreshing when past the
// expiry buffer, serving the stale token if the refresh fails), then the
// legacy INSTAGRAM_OAUTH_ACCESS_TOKEN variable.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	if c.provider != nil {
		if token := c.provider(ctx); token != "" {
			return token, nil
		}
	}
	if token := os.Getenv("INSTAGRAM_ACCESS_TOKEN"); token != "" {
		return token, nil
	}

	rec := c.store.Load(ctx)
	if rec.AccessToken != "" {
		if !c.expired(rec.SavedAt, rec.ExpiresIn) {
			return rec.AccessToken, nil
		}
		logger.GetLogger().Info("Stored access token expired; attempting refresh")
		if fresh := c.RefreshToken(ctx, rec.RefreshToken); fresh != "" {
			return fresh, nil
		}
		// Refresh failed; the stale token may still be accepted upstream.
		logger.GetLogger().Warn("Token refresh failed; using stored token as-is")
		return rec.AccessToken, nil
	}

	if token := os.Getenv("INSTAGRAM_OAUTH_ACCESS_TOKEN"); token != "" {
		return token, nil
	}

	return "", errors.New("no Instagram access token configured. Set INSTAGRAM_ACCESS_TOKEN, or complete the OAuth flow: open GET /auth/url, authorize, and retry")
}

// expired applies the hard buffer. Records without a saved-at stamp or a
// lifetime never expire here.
func (c *Client) expired(savedAt, expiresIn int64) bool {
	if savedAt == 0 || expiresIn == 0 {
		return false
	}
	deadline := time.Unix(savedAt, 0).Add(time.Duration(expiresIn) * time.Second).Add(-expiryBuffer)
	return !c.now().Before(deadline)
}

// NeedsRefreshSoon reports whether the stored token is inside the one-day
// advisory window before expiry. Unstamped records never report true.
func (c *Client) NeedsRefreshSoon(ctx context.Context) bool {
	rec := c.store.Load(ctx)
	if rec.AccessToken == "" || rec.SavedAt == 0 || rec.ExpiresIn == 0 {
		return false
	}
	deadline := time.Unix(rec.SavedAt, 0).Add(time.Duration(rec.ExpiresIn) * time.Second).Add(-refreshAheadWindow)
	return !c.now().Before(deadline)
}

// Do issues one authenticated Graph API call. params ride the query string;
// body, when non-nil, is form-encoded (POST/DELETE). The access token is
// attached as a query parameter unless the caller already set one.
func (c *Client) Do(ctx context.Context, method, endpoint string, params url.Values, body url.Values, opts ...repository.CallOption) (map[string]interface{}, error) {
	settings := repository.CallSettings{Version: c.version}
	for _, opt := range opts {
		opt(&settings)
	}

	if params == nil {
		params = url.Values{}
	}
	if params.Get("access_token") == "" {
		token := settings.Token
		if token == "" {
			resolved, err := c.AccessToken(ctx)
			if err != nil {
				return nil, err
			}
			token = resolved
		}
		params.Set("access_token", token)
	}

	return c.request(ctx, method, settings.Version, endpoint, params, body)
}

// request performs the HTTP exchange without touching credential resolution.
// The OAuth calls use it directly with app-secret parameters instead of a
// user token.
func (c *Client) request(ctx context.Context, method, version, endpoint string, params, body url.Values) (map[string]interface{}, error) {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, version, strings.TrimLeft(endpoint, "/"))
	if len(params) > 0 {
		u = u + "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(body.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph API request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.GetLogger().WithField("error", cerr).Warn("Error closing response body")
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading graph API response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, graphError(resp.StatusCode, data)
	}

	var payload map[string]interface{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &payload); err != nil {
			return nil, fmt.Errorf("decoding graph API response: %w", err)
		}
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, nil
}

// graphError extracts the nested error message the Graph API returns.
func graphError(status int, body []byte) error {
	var ge dto.GraphError
	if err := json.Unmarshal(body, &ge); err == nil && ge.Error.Message != "" {
		if ge.Error.Code != 0 {
			return fmt.Errorf("graph API error (code %d): %s", ge.Error.Code, ge.Error.Message)
		}
		return fmt.Errorf("graph API error: %s", ge.Error.Message)
	}
	return fmt.Errorf("graph API returned status %d", status)
}

// notifyPublished fans a publish event out to the configured notifiers.
// Failures are logged and swallowed.
func (c *Client) notifyPublished(ctx context.Context, event model.PublishEvent) {
	for _, n := range c.notifiers {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, event); err != nil {
			logger.GetLogger().WithField("error", err).Warn("Publish notification failed")
		}
	}
}
