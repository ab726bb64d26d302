package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/repository"
)

// Default field selections per edge. A caller-supplied fields string always
// wins; these only fill the gap when the request leaves fields empty.
const (
	defaultMediaFields    = "id,caption,media_type,media_url,permalink,thumbnail_url,timestamp,username"
	defaultChildrenFields = "id,media_type,media_url,permalink,timestamp"
	defaultStoryFields    = "id,media_type,media_url,permalink,timestamp"
	defaultTagFields      = "id,caption,media_type,media_url,permalink,timestamp,username"
	defaultLiveFields     = "id,media_type,media_url,timestamp,permalink"
)

const mediaCacheTTL = 10 * time.Minute

// IMediaUsecase defines the interface for media read operations.
type IMediaUsecase interface {
	UserMedia(ctx context.Context, req *dto.MediaListRequest) (map[string]interface{}, error)
	Media(ctx context.Context, req *dto.MediaRequest) (map[string]interface{}, error)
	MediaChildren(ctx context.Context, req *dto.MediaRequest) (map[string]interface{}, error)
	Stories(ctx context.Context, req *dto.MediaListRequest) (map[string]interface{}, error)
	TaggedMedia(ctx context.Context, req *dto.MediaListRequest) (map[string]interface{}, error)
	LiveMedia(ctx context.Context, req *dto.MediaListRequest) (map[string]interface{}, error)
}

// MediaUsecase implements the media read operations.
type MediaUsecase struct {
	graph repository.IGraph
	cache repository.IMediaCache // optional
}

// NewMediaUsecase creates a new media use case instance
func NewMediaUsecase(graph repository.IGraph) IMediaUsecase {
	return &MediaUsecase{graph: graph}
}

// NewMediaUsecaseWithCache creates a new media use case with cache configured
func NewMediaUsecaseWithCache(graph repository.IGraph, cache repository.IMediaCache) IMediaUsecase {
	return (&MediaUsecase{graph: graph}).WithCache(cache)
}

// WithCache enables cache on the use case (fluent)
func (u *MediaUsecase) WithCache(cache repository.IMediaCache) *MediaUsecase {
	u.cache = cache
	return u
}

func listParams(req *dto.MediaListRequest, defaultFields string) url.Values {
	fields := req.Fields
	if fields == "" {
		fields = defaultFields
	}
	params := url.Values{"fields": {fields}}
	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.After != "" {
		params.Set("after", req.After)
	}
	if req.Before != "" {
		params.Set("before", req.Before)
	}
	if req.Since != "" {
		params.Set("since", req.Since)
	}
	if req.Until != "" {
		params.Set("until", req.Until)
	}
	return params
}

func (u *MediaUsecase) listEdge(ctx context.Context, req *dto.MediaListRequest, edge, defaultFields string) (map[string]interface{}, error) {
	if req == nil {
		req = &dto.MediaListRequest{}
	}
	igUserID, err := u.graph.InstagramUserID(ctx, req.IGUserID)
	if err != nil {
		return nil, err
	}
	params := listParams(req, defaultFields)
	return u.graph.Do(ctx, http.MethodGet, igUserID+"/"+edge, params, nil, versionOpts(req.GraphVersion)...)
}

// UserMedia lists the account's published media.
func (u *MediaUsecase) UserMedia(ctx context.Context, req *dto.MediaListRequest) (map[string]interface{}, error) {
	return u.listEdge(ctx, req, "media", defaultMediaFields)
}

// Media reads a single published media object. Responses are served from the
// cache when one is wired; a media object rarely changes within the TTL.
func (u *MediaUsecase) Media(ctx context.Context, req *dto.MediaRequest) (map[string]interface{}, error) {
	if req == nil || req.MediaID == "" {
		return nil, fmt.Errorf("media_id is required")
	}
	fields := req.Fields
	if fields == "" {
		fields = defaultMediaFields
	}

	key := "media:" + req.GraphVersion + ":" + req.MediaID + ":" + fields
	if u.cache != nil {
		if cached, ok := u.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	params := url.Values{"fields": {fields}}
	res, err := u.graph.Do(ctx, http.MethodGet, req.MediaID, params, nil, versionOpts(req.GraphVersion)...)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.Set(ctx, key, res, mediaCacheTTL)
	}
	return res, nil
}

// MediaChildren lists the child media of a carousel post. Children do not
// support insights; analytics stay at the parent level.
func (u *MediaUsecase) MediaChildren(ctx context.Context, req *dto.MediaRequest) (map[string]interface{}, error) {
	if req == nil || req.MediaID == "" {
		return nil, fmt.Errorf("media_id is required")
	}
	fields := req.Fields
	if fields == "" {
		fields = defaultChildrenFields
	}
	params := url.Values{"fields": {fields}}
	return u.graph.Do(ctx, http.MethodGet, req.MediaID+"/children", params, nil, versionOpts(req.GraphVersion)...)
}

// Stories lists the account's active stories.
func (u *MediaUsecase) Stories(ctx context.Context, req *dto.MediaListRequest) (map[string]interface{}, error) {
	return u.listEdge(ctx, req, "stories", defaultStoryFields)
}

// TaggedMedia lists media the account has been tagged in.
func (u *MediaUsecase) TaggedMedia(ctx context.Context, req *dto.MediaListRequest) (map[string]interface{}, error) {
	return u.listEdge(ctx, req, "tags", defaultTagFields)
}

// LiveMedia lists the account's live media.
func (u *MediaUsecase) LiveMedia(ctx context.Context, req *dto.MediaListRequest) (map[string]interface{}, error) {
	return u.listEdge(ctx, req, "live_media", defaultLiveFields)
}
