package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/repository"
)

// IPublishingUsecase defines the interface for the two-step container/publish
// flow: create a draft container, poll its processing status, then publish.
type IPublishingUsecase interface {
	CreateContainer(ctx context.Context, req *dto.CreateContainerRequest) (map[string]interface{}, error)
	CreateCarousel(ctx context.Context, req *dto.CreateCarouselRequest) (map[string]interface{}, error)
	PostStatus(ctx context.Context, creationID, graphVersion string) (map[string]interface{}, error)
	CreatePost(ctx context.Context, creationID, igUserID, graphVersion string) (map[string]interface{}, error)
	PublishMedia(ctx context.Context, req *dto.PublishRequest) (map[string]interface{}, error)
	PublishingLimit(ctx context.Context, fields, igUserID, graphVersion string) (map[string]interface{}, error)
}

// PublishingUsecase implements the publishing operations on top of the Graph
// client.
type PublishingUsecase struct {
	graph repository.IGraph
}

// NewPublishingUsecase creates a new publishing use case instance
func NewPublishingUsecase(graph repository.IGraph) IPublishingUsecase {
	return &PublishingUsecase{graph: graph}
}

// CreateContainer creates a draft media container for a photo, video, reel, or
// carousel parent. The container id it returns is the creation_id consumed by
// the publish operations.
func (u *PublishingUsecase) CreateContainer(ctx context.Context, req *dto.CreateContainerRequest) (map[string]interface{}, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if req.ImageURL == "" && req.VideoURL == "" && len(req.Children) == 0 {
		return nil, fmt.Errorf("either image_url, video_url, or children must be provided")
	}

	mediaType := strings.ToUpper(req.MediaType)
	if mediaType == "" {
		switch {
		case req.VideoURL != "":
			mediaType = "VIDEO"
		case req.ImageURL != "":
			mediaType = "IMAGE"
		default:
			mediaType = "CAROUSEL"
		}
	}
	if mediaType == "IMAGE" && req.ImageURL == "" {
		return nil, fmt.Errorf("media_type IMAGE requires image_url")
	}
	if mediaType == "VIDEO" && req.VideoURL == "" {
		return nil, fmt.Errorf("media_type VIDEO requires video_url")
	}

	igUserID, err := u.graph.InstagramUserID(ctx, req.IGUserID)
	if err != nil {
		return nil, err
	}

	params := dto.ContainerParams{
		MediaType:      mediaType,
		ImageURL:       req.ImageURL,
		VideoURL:       req.VideoURL,
		Caption:        req.Caption,
		CoverURL:       req.CoverURL,
		ContentType:    req.ContentType,
		IsCarouselItem: req.IsCarouselItem,
		Children:       strings.Join(req.Children, ","),
		LocationID:     req.LocationID,
		ThumbOffset:    req.ThumbOffset,
		ShareToFeed:    req.ShareToFeed,
		AudioName:      req.AudioName,
	}
	body, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode container params: %w", err)
	}

	return u.graph.Do(ctx, http.MethodPost, igUserID+"/media", nil, body, versionOpts(req.GraphVersion)...)
}

// CreateCarousel creates a carousel container. Callers supply either
// ready-made child container ids or child media URLs; with URLs the child
// containers are created here first, in order, images before videos.
func (u *PublishingUsecase) CreateCarousel(ctx context.Context, req *dto.CreateCarouselRequest) (map[string]interface{}, error) {
	if req == nil {
		return nil, fmt.Errorf("request is required")
	}
	if len(req.Children) > 0 && (len(req.ChildImageURLs) > 0 || len(req.ChildVideoURLs) > 0) {
		return nil, fmt.Errorf("provide either children or child_image_urls/child_video_urls, not both")
	}
	if len(req.Children) == 0 && len(req.ChildImageURLs) == 0 && len(req.ChildVideoURLs) == 0 {
		return nil, fmt.Errorf("provide children or at least one of child_image_urls/child_video_urls")
	}

	igUserID, err := u.graph.InstagramUserID(ctx, req.IGUserID)
	if err != nil {
		return nil, err
	}

	opts := versionOpts(req.GraphVersion)
	children := req.Children
	if len(children) == 0 {
		for _, mediaURL := range req.ChildImageURLs {
			id, err := u.createChild(ctx, igUserID, mediaURL, "IMAGE", opts)
			if err != nil {
				return nil, err
			}
			children = append(children, id)
		}
		for _, mediaURL := range req.ChildVideoURLs {
			id, err := u.createChild(ctx, igUserID, mediaURL, "VIDEO", opts)
			if err != nil {
				return nil, err
			}
			children = append(children, id)
		}
	}

	params := dto.ContainerParams{
		MediaType: "CAROUSEL",
		Children:  strings.Join(children, ","),
		Caption:   req.Caption,
	}
	body, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode carousel params: %w", err)
	}

	return u.graph.Do(ctx, http.MethodPost, igUserID+"/media", nil, body, opts...)
}

func (u *PublishingUsecase) createChild(ctx context.Context, igUserID, mediaURL, mediaType string, opts []repository.CallOption) (string, error) {
	params := dto.ContainerParams{
		MediaType:      mediaType,
		IsCarouselItem: true,
	}
	if mediaType == "IMAGE" {
		params.ImageURL = mediaURL
	} else {
		params.VideoURL = mediaURL
	}
	body, err := query.Values(params)
	if err != nil {
		return "", fmt.Errorf("failed to encode child container params: %w", err)
	}

	res, err := u.graph.Do(ctx, http.MethodPost, igUserID+"/media", nil, body, opts...)
	if err != nil {
		return "", err
	}
	id, _ := res["id"].(string)
	if id == "" {
		return "", fmt.Errorf("failed to create child media container")
	}
	return id, nil
}

// PostStatus reads the processing status of a draft container.
func (u *PublishingUsecase) PostStatus(ctx context.Context, creationID, graphVersion string) (map[string]interface{}, error) {
	if creationID == "" {
		return nil, fmt.Errorf("creation_id is required")
	}
	params := url.Values{"fields": {"status_code,status"}}
	return u.graph.Do(ctx, http.MethodGet, creationID, params, nil, versionOpts(graphVersion)...)
}

// CreatePost publishes a draft container with the optimistic poller: bounded
// retries with backoff, then a publish attempt even if processing never
// reported FINISHED.
func (u *PublishingUsecase) CreatePost(ctx context.Context, creationID, igUserID, graphVersion string) (map[string]interface{}, error) {
	if creationID == "" {
		return nil, fmt.Errorf("creation_id is required")
	}
	resolved, err := u.graph.InstagramUserID(ctx, igUserID)
	if err != nil {
		return nil, err
	}
	return u.graph.WaitAndPublish(ctx, resolved, creationID, versionOpts(graphVersion)...)
}

// PublishMedia publishes a draft container with the strict poller: a
// wall-clock budget, and no publish attempt unless the container finished.
func (u *PublishingUsecase) PublishMedia(ctx context.Context, req *dto.PublishRequest) (map[string]interface{}, error) {
	if req == nil || req.CreationID == "" {
		return nil, fmt.Errorf("creation_id is required")
	}
	igUserID, err := u.graph.InstagramUserID(ctx, req.IGUserID)
	if err != nil {
		return nil, err
	}
	budget := time.Duration(req.MaxWaitSeconds) * time.Second
	interval := time.Duration(req.PollIntervalSec) * time.Second
	return u.graph.PublishWithBudget(ctx, igUserID, req.CreationID, budget, interval, versionOpts(req.GraphVersion)...)
}

// PublishingLimit reads the account's publishing quota usage.
func (u *PublishingUsecase) PublishingLimit(ctx context.Context, fields, igUserID, graphVersion string) (map[string]interface{}, error) {
	if fields == "" {
		fields = "quota_usage,config"
	}
	resolved, err := u.graph.InstagramUserID(ctx, igUserID)
	if err != nil {
		return nil, err
	}
	params := url.Values{"fields": {fields}}
	return u.graph.Do(ctx, http.MethodGet, resolved+"/content_publishing_limit", params, nil, versionOpts(graphVersion)...)
}
