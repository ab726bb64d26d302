package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"

	"github.com/google/go-querystring/query"
)

const (
	// Default lifetime for long-lived tokens when the response omits
	// expires_in: 60 days.
	defaultLongLivedTTL = 5184000
	// Assumed lifetime for a short-lived token kept after a failed
	// long-lived exchange.
	shortLivedTTL = 3600
)

// tokenRequest calls the oauth/access_token endpoint and decodes the token
// payload. No user token is attached; the app credentials ride in params.
func (c *Client) tokenRequest(ctx context.Context, params url.Values) (dto.TokenResponse, error) {
	var tok dto.TokenResponse

	u := fmt.Sprintf("%s/%s/oauth/access_token?%s", c.baseURL, c.version, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return tok, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return tok, fmt.Errorf("token endpoint request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.GetLogger().WithField("error", cerr).Warn("Error closing response body")
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return tok, fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return tok, graphError(resp.StatusCode, data)
	}
	if err := json.Unmarshal(data, &tok); err != nil {
		return tok, fmt.Errorf("decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return tok, fmt.Errorf("token response carried no access_token")
	}
	return tok, nil
}

// ExchangeCode trades an OAuth authorization code for a long-lived user token
// and persists it. The short-lived token is always upgraded immediately; when
// the upgrade fails the short token is stored with a one-hour lifetime so the
// session still works.
func (c *Client) ExchangeCode(ctx context.Context, code string) (model.TokenRecord, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return model.TokenRecord{}, fmt.Errorf("OAUTH2_CLIENT_ID and OAUTH2_CLIENT_SECRET must be set before exchanging a code")
	}

	qs, err := query.Values(dto.ExchangeParams{
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		RedirectURI:  c.redirectURI,
		Code:         code,
	})
	if err != nil {
		return model.TokenRecord{}, err
	}
	short, err := c.tokenRequest(ctx, qs)
	if err != nil {
		return model.TokenRecord{}, fmt.Errorf("code exchange failed: %w", err)
	}

	accessToken := short.AccessToken
	refreshToken := short.RefreshToken
	var expiresIn int64

	longQs, err := query.Values(dto.LongLivedParams{
		GrantType:    "fb_exchange_token",
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		ExchangeTok:  short.AccessToken,
	})
	if err != nil {
		return model.TokenRecord{}, err
	}
	long, err := c.tokenRequest(ctx, longQs)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Long-lived exchange failed; keeping short-lived token")
		expiresIn = shortLivedTTL
	} else {
		accessToken = long.AccessToken
		if long.RefreshToken != "" {
			refreshToken = long.RefreshToken
		}
		expiresIn = long.ExpiresIn
		if expiresIn == 0 {
			expiresIn = defaultLongLivedTTL
		}
	}

	c.store.Save(ctx, model.TokenUpdate{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	})

	rec := model.TokenRecord{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		SavedAt:      c.now().Unix(),
	}

	// Best-effort page binding resolution so messaging tools work right after
	// setup. Failures here never fail the exchange.
	if igID, idErr := c.InstagramUserID(ctx, ""); idErr == nil {
		rec.InstagramUserID = igID
		if binding := c.PageForIGAccount(ctx, igID); binding.Found() {
			rec.PageAccessToken = binding.PageAccessToken
			rec.FacebookPageID = binding.PageID
		}
	} else {
		logger.GetLogger().WithField("error", idErr).Info("Instagram account not resolved during exchange")
	}

	return rec, nil
}

// RefreshToken exchanges the refresh credential (or, failing that, the stored
// access token) for a fresh long-lived token. Returns the new token, or ""
// when no refresh could be performed; the caller keeps whatever it holds.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) string {
	rec := c.store.Load(ctx)
	exchangeTok := refreshToken
	if exchangeTok == "" {
		exchangeTok = rec.RefreshToken
	}
	if exchangeTok == "" {
		// A still-valid long-lived token can be exchanged for a new one.
		exchangeTok = rec.AccessToken
	}
	if exchangeTok == "" {
		logger.GetLogger().Info("No credential available to refresh")
		return ""
	}
	if c.clientID == "" || c.clientSecret == "" {
		logger.GetLogger().Warn("OAuth client credentials missing; cannot refresh token")
		return ""
	}

	qs, err := query.Values(dto.LongLivedParams{
		GrantType:    "fb_exchange_token",
		ClientID:     c.clientID,
		ClientSecret: c.clientSecret,
		ExchangeTok:  exchangeTok,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Unable to encode refresh params")
		return ""
	}
	resp, err := c.tokenRequest(ctx, qs)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Token refresh failed")
		return ""
	}

	expiresIn := resp.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultLongLivedTTL
	}
	newRefresh := resp.RefreshToken
	if newRefresh == "" {
		// Keep the prior refresh credential when the response omits one.
		newRefresh = rec.RefreshToken
	}
	c.store.Save(ctx, model.TokenUpdate{
		AccessToken:  resp.AccessToken,
		RefreshToken: newRefresh,
		ExpiresIn:    expiresIn,
	})

	// Re-derive the page binding with the fresh token. Best-effort.
	if pages, perr := c.accounts(ctx, repository.WithToken(resp.AccessToken)); perr == nil {
		if binding := selectPage(pages.Data, rec.InstagramUserID); binding.Found() {
			c.store.Save(ctx, model.TokenUpdate{
				PageAccessToken: binding.PageAccessToken,
				FacebookPageID:  binding.PageID,
			})
		}
	} else {
		logger.GetLogger().WithField("error", perr).Info("Page binding not refreshed")
	}

	return resp.AccessToken
}
