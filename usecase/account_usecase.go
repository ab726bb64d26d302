package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"instagram-gateway/domain/repository"
)

const defaultUserFields = "id,username,website,biography,profile_picture_url,followers_count,follows_count,media_count"

const discoveryCacheTTL = 10 * time.Minute

// discoveryFields is the projection requested through business discovery.
// The braces are part of the Graph field-expansion syntax, not templating.
const discoveryFields = "{id,username,name,profile_picture_url,biography,followers_count,follows_count,media_count}"

// IAccountUsecase defines the interface for profile reads.
type IAccountUsecase interface {
	UserInfo(ctx context.Context, fields, igUserID, graphVersion string) (map[string]interface{}, error)
	UserByUsername(ctx context.Context, username, igUserID, graphVersion string) (map[string]interface{}, error)
}

// AccountUsecase implements the profile reads.
type AccountUsecase struct {
	graph repository.IGraph
	cache repository.IMediaCache // optional
}

// NewAccountUsecase creates a new account use case instance
func NewAccountUsecase(graph repository.IGraph) IAccountUsecase {
	return &AccountUsecase{graph: graph}
}

// NewAccountUsecaseWithCache creates a new account use case with cache configured
func NewAccountUsecaseWithCache(graph repository.IGraph, cache repository.IMediaCache) IAccountUsecase {
	return (&AccountUsecase{graph: graph}).WithCache(cache)
}

// WithCache enables cache on the use case (fluent)
func (u *AccountUsecase) WithCache(cache repository.IMediaCache) *AccountUsecase {
	u.cache = cache
	return u
}

// UserInfo reads the authenticated account's profile and statistics.
func (u *AccountUsecase) UserInfo(ctx context.Context, fields, igUserID, graphVersion string) (map[string]interface{}, error) {
	resolved, err := u.graph.InstagramUserID(ctx, igUserID)
	if err != nil {
		return nil, err
	}
	if fields == "" {
		fields = defaultUserFields
	}
	params := url.Values{"fields": {fields}}
	return u.graph.Do(ctx, http.MethodGet, resolved, params, nil, versionOpts(graphVersion)...)
}

// UserByUsername looks up another account through business discovery. Only
// public Business and Creator accounts are discoverable; anything else comes
// back as not found.
func (u *AccountUsecase) UserByUsername(ctx context.Context, username, igUserID, graphVersion string) (map[string]interface{}, error) {
	username = strings.TrimPrefix(strings.TrimSpace(username), "@")
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	resolved, err := u.graph.InstagramUserID(ctx, igUserID)
	if err != nil {
		return nil, err
	}

	key := "discovery:" + graphVersion + ":" + username
	if u.cache != nil {
		if cached, ok := u.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	params := url.Values{"fields": {"business_discovery.username(" + username + ")" + discoveryFields}}
	res, err := u.graph.Do(ctx, http.MethodGet, resolved, params, nil, versionOpts(graphVersion)...)
	if err != nil {
		return nil, err
	}

	discovered, ok := res["business_discovery"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("user not found or account is not a Business/Creator account")
	}

	info := map[string]interface{}{
		"instagram_user_id":   discovered["id"],
		"username":            discovered["username"],
		"name":                discovered["name"],
		"profile_picture_url": discovered["profile_picture_url"],
		"biography":           discovered["biography"],
		"followers_count":     discovered["followers_count"],
		"follows_count":       discovered["follows_count"],
		"media_count":         discovered["media_count"],
	}
	if u.cache != nil {
		u.cache.Set(ctx, key, info, discoveryCacheTTL)
	}
	return info, nil
}
