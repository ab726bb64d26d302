package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory token store with the same merge semantics as the
// file store.
type memStore struct {
	mu  sync.Mutex
	rec model.TokenRecord
	now func() time.Time
}

func newMemStore() *memStore {
	return &memStore{now: time.Now}
}

func (s *memStore) Load(_ context.Context) model.TokenRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec
}

func (s *memStore) Save(_ context.Context, upd model.TokenUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if upd.AccessToken != "" {
		s.rec.AccessToken = upd.AccessToken
		s.rec.SavedAt = s.now().Unix()
	}
	if upd.RefreshToken != "" {
		s.rec.RefreshToken = upd.RefreshToken
	}
	if upd.ExpiresIn != 0 {
		s.rec.ExpiresIn = upd.ExpiresIn
	}
	if upd.PageAccessToken != "" {
		s.rec.PageAccessToken = upd.PageAccessToken
	}
	if upd.FacebookPageID != "" {
		s.rec.FacebookPageID = upd.FacebookPageID
	}
	if upd.InstagramUserID != "" {
		s.rec.InstagramUserID = upd.InstagramUserID
	}
}

func testClient(baseURL string, store *memStore) *Client {
	return &Client{
		store:        store,
		http:         &http.Client{Timeout: 5 * time.Second},
		baseURL:      baseURL,
		version:      "v21.0",
		clientID:     "client-id",
		clientSecret: "client-secret",
		redirectURI:  "http://localhost:8080/callback",
		now:          time.Now,
		sleep:        func(context.Context, time.Duration) error { return nil },
	}
}

func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("INSTAGRAM_ACCESS_TOKEN", "")
	t.Setenv("INSTAGRAM_OAUTH_ACCESS_TOKEN", "")
	t.Setenv("INSTAGRAM_PAGE_ACCESS_TOKEN", "")
	t.Setenv("FACEBOOK_PAGE_ID", "")
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func TestAccessTokenProviderWins(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("INSTAGRAM_ACCESS_TOKEN", "env-token")

	store := newMemStore()
	client := testClient("http://unused", store)
	client.provider = func(context.Context) string { return "provider-token" }

	token, err := client.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "provider-token", token)
}

func TestAccessTokenDirectEnv(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("INSTAGRAM_ACCESS_TOKEN", "env-token")

	client := testClient("http://unused", newMemStore())
	token, err := client.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "env-token", token)
}

func TestAccessTokenStoredValid(t *testing.T) {
	clearTokenEnv(t)
	store := newMemStore()
	store.rec = model.TokenRecord{
		AccessToken: "stored-token",
		ExpiresIn:   5184000,
		SavedAt:     time.Now().Unix(),
	}

	client := testClient("http://unused", store)
	token, err := client.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-token", token)
}

func TestExpiredFlipsAtBufferBoundary(t *testing.T) {
	clearTokenEnv(t)
	savedAt := int64(1700000000)
	expiresIn := int64(3600)
	// The token stops being served exactly 300s before savedAt+expiresIn.
	deadline := time.Unix(savedAt+expiresIn-300, 0)

	store := newMemStore()
	store.rec = model.TokenRecord{
		AccessToken: "stored-token",
		ExpiresIn:   expiresIn,
		SavedAt:     savedAt,
	}
	client := testClient("http://unused", store)

	client.now = func() time.Time { return deadline.Add(-time.Second) }
	assert.False(t, client.expired(savedAt, expiresIn))

	// One second before the boundary the stored token is served without any
	// refresh round trip (the base URL is unreachable on purpose).
	token, err := client.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stored-token", token)

	client.now = func() time.Time { return deadline }
	assert.True(t, client.expired(savedAt, expiresIn))

	client.now = func() time.Time { return deadline.Add(time.Second) }
	assert.True(t, client.expired(savedAt, expiresIn))
}

func TestAccessTokenExpiredRefreshes(t *testing.T) {
	clearTokenEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v21.0/me/accounts" {
			writeJSON(w, http.StatusOK, map[string]interface{}{"data": []interface{}{}})
			return
		}
		assert.Equal(t, "/v21.0/oauth/access_token", r.URL.Path)
		assert.Equal(t, "fb_exchange_token", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "refresh-cred", r.URL.Query().Get("fb_exchange_token"))
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"access_token": "fresh-token",
			"expires_in":   5184000,
		})
	}))
	defer srv.Close()

	store := newMemStore()
	store.rec = model.TokenRecord{
		AccessToken:  "stale-token",
		RefreshToken: "refresh-cred",
		ExpiresIn:    3600,
		SavedAt:      time.Now().Add(-2 * time.Hour).Unix(),
	}

	client := testClient(srv.URL, store)
	token, err := client.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	assert.Equal(t, "fresh-token", store.rec.AccessToken)
	assert.Equal(t, "refresh-cred", store.rec.RefreshToken)
}

func TestAccessTokenStaleFallbackWhenRefreshFails(t *testing.T) {
	clearTokenEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error": map[string]interface{}{"message": "token invalid", "code": 190},
		})
	}))
	defer srv.Close()

	store := newMemStore()
	store.rec = model.TokenRecord{
		AccessToken:  "stale-token",
		RefreshToken: "refresh-cred",
		ExpiresIn:    3600,
		SavedAt:      time.Now().Add(-2 * time.Hour).Unix(),
	}

	client := testClient(srv.URL, store)
	token, err := client.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stale-token", token)
}

func TestAccessTokenLegacyEnvFallback(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("INSTAGRAM_OAUTH_ACCESS_TOKEN", "legacy-token")

	client := testClient("http://unused", newMemStore())
	token, err := client.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "legacy-token", token)
}

func TestAccessTokenNoCredentialsIsActionable(t *testing.T) {
	clearTokenEnv(t)
	client := testClient("http://unused", newMemStore())
	_, err := client.AccessToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INSTAGRAM_ACCESS_TOKEN")
	assert.Contains(t, err.Error(), "/auth/url")
}

func TestDoAttachesTokenAndVersion(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("INSTAGRAM_ACCESS_TOKEN", "env-token")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v21.0/1789/media", r.URL.Path)
		assert.Equal(t, "env-token", r.URL.Query().Get("access_token"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": []interface{}{}})
	}))
	defer srv.Close()

	client := testClient(srv.URL, newMemStore())
	payload, err := client.Do(context.Background(), "GET", "1789/media", nil, nil)
	require.NoError(t, err)
	assert.Contains(t, payload, "data")
}

func TestDoWithTokenAndVersionOverrides(t *testing.T) {
	clearTokenEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v23.0/me/conversations", r.URL.Path)
		assert.Equal(t, "page-token", r.URL.Query().Get("access_token"))
		writeJSON(w, http.StatusOK, map[string]interface{}{"data": []interface{}{}})
	}))
	defer srv.Close()

	client := testClient(srv.URL, newMemStore())
	_, err := client.Do(context.Background(), "GET", "me/conversations", nil, nil,
		repository.WithToken("page-token"), repository.WithVersion("v23.0"))
	require.NoError(t, err)
}

func TestDoSurfacesGraphErrorMessage(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("INSTAGRAM_ACCESS_TOKEN", "env-token")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"error": map[string]interface{}{
				"message": "Unsupported request",
				"type":    "GraphMethodException",
				"code":    100,
			},
		})
	}))
	defer srv.Close()

	client := testClient(srv.URL, newMemStore())
	_, err := client.Do(context.Background(), "GET", "bad/endpoint", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unsupported request")
	assert.Contains(t, err.Error(), "100")
}

func TestNeedsRefreshSoon(t *testing.T) {
	store := newMemStore()
	client := testClient("http://unused", store)

	// No record: nothing to refresh.
	assert.False(t, client.NeedsRefreshSoon(context.Background()))

	// Fresh 60-day token: outside the advisory window.
	store.rec = model.TokenRecord{AccessToken: "a", ExpiresIn: 5184000, SavedAt: time.Now().Unix()}
	assert.False(t, client.NeedsRefreshSoon(context.Background()))

	// Expires in 12 hours: inside the one-day window.
	store.rec = model.TokenRecord{
		AccessToken: "a",
		ExpiresIn:   5184000,
		SavedAt:     time.Now().Add(-time.Duration(5184000)*time.Second + 12*time.Hour).Unix(),
	}
	assert.True(t, client.NeedsRefreshSoon(context.Background()))
}
