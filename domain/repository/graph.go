package repository

import (
	"context"
	"errors"
	"net/url"
	"time"

	"instagram-gateway/domain/model"
)

// Sentinel errors the publish pollers report, so tool handlers can map each
// terminal outcome to its own remediation text.
var (
	// ErrContainerFailed: the container reached ERROR status; recreate it.
	ErrContainerFailed = errors.New("media container processing failed")
	// ErrContainerExpired: the container's 24h processing window lapsed.
	ErrContainerExpired = errors.New("media container expired before publishing")
	// ErrPollBudgetExceeded: the wall-clock budget ran out while the container
	// was still IN_PROGRESS. Distinct from ERROR so the caller may retry.
	ErrPollBudgetExceeded = errors.New("media container did not finish processing in time")
)

// CallSettings carries per-call overrides threaded explicitly through the
// request path. This replaces mutating process environment as a side channel:
// the page token for messaging calls and ad-hoc API version overrides travel
// with the call, never through shared state.
type CallSettings struct {
	Token   string
	Version string
}

// CallOption mutates the per-call settings.
type CallOption func(*CallSettings)

// WithToken overrides the resolved access token for one call. Used for
// page-token-scoped endpoints (conversations, messaging).
func WithToken(token string) CallOption {
	return func(s *CallSettings) { s.Token = token }
}

// WithVersion overrides the Graph API version for one call.
func WithVersion(version string) CallOption {
	return func(s *CallSettings) { s.Version = version }
}

// IGraph is the outbound Instagram Graph API surface consumed by the usecase
// layer. All blocking operations take a context.
type IGraph interface {
	// Do issues one HTTP call against the versioned Graph base URL. params go
	// on the query string, body (may be nil) is form-encoded for POST. The
	// resolved access token is appended unless overridden via WithToken.
	Do(ctx context.Context, method, endpoint string, params url.Values, body url.Values, opts ...CallOption) (map[string]interface{}, error)

	// AccessToken resolves the effective user access token per the fixed
	// precedence order (provider > direct env > store with refresh > legacy
	// env), or fails with an actionable setup error.
	AccessToken(ctx context.Context) (string, error)

	// InstagramUserID returns the caller-supplied id, or auto-detects the
	// connected Instagram business account.
	InstagramUserID(ctx context.Context, provided string) (string, error)

	// PageForIGAccount finds the owning Facebook Page and its page token for
	// the given Instagram account. A zero binding means not found; lookups
	// never surface transport errors.
	PageForIGAccount(ctx context.Context, igUserID string) model.PageBinding

	// ContainerStatus reads a creation_id's status_code field.
	ContainerStatus(ctx context.Context, creationID string, opts ...CallOption) (model.ContainerStatus, error)

	// WaitAndPublish polls with bounded attempts and backoff, then publishes.
	// Optimistic: exhausting attempts without FINISHED still tries to publish.
	WaitAndPublish(ctx context.Context, igUserID, creationID string, opts ...CallOption) (map[string]interface{}, error)

	// PublishWithBudget polls against a wall-clock budget and publishes only
	// on FINISHED; budget exhaustion returns ErrPollBudgetExceeded without a
	// publish attempt.
	PublishWithBudget(ctx context.Context, igUserID, creationID string, budget, interval time.Duration, opts ...CallOption) (map[string]interface{}, error)

	// ExchangeCode trades an OAuth authorization code for a long-lived token
	// and persists it alongside the page binding.
	ExchangeCode(ctx context.Context, code string) (model.TokenRecord, error)

	// RefreshToken exchanges the refresh credential for a fresh access token,
	// persisting the result. Returns "" when the refresh could not be
	// performed; callers must fall back to whatever token they hold.
	RefreshToken(ctx context.Context, refreshToken string) string

	// NeedsRefreshSoon reports whether the stored token enters the advisory
	// refresh-ahead window (one day before expiry).
	NeedsRefreshSoon(ctx context.Context) bool
}
