package tools

import (
	"context"
	"errors"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/repository"
)

// Shared parameter specs. Every tool accepts the per-call overrides; the
// account id is auto-detected when absent.
var (
	igUserIDParam = ParamSpec{Name: "ig_user_id", Type: "string",
		Description: "Instagram user id, auto-detected from the access token when omitted"}
	graphVersionParam = ParamSpec{Name: "graph_api_version", Type: "string",
		Description: "Graph API version override for this call"}
)

func publishingTools() []Tool {
	return []Tool{
		{
			Name:        "CREATE_MEDIA_CONTAINER",
			Description: "Create a draft media container for a photo, video, or reel. Returns the creation_id consumed by GET_POST_STATUS, CREATE_POST, and PUBLISH_MEDIA.",
			Params: []ParamSpec{
				{Name: "image_url", Type: "string", Description: "Image URL for a photo post"},
				{Name: "video_url", Type: "string", Description: "Video URL for a video or reel post"},
				{Name: "caption", Type: "string"},
				{Name: "media_type", Type: "string", Description: "IMAGE or VIDEO; derived from the URL kind when omitted"},
				{Name: "content_type", Type: "string"},
				{Name: "cover_url", Type: "string", Description: "Cover image URL for a video or reel"},
				{Name: "is_carousel_item", Type: "boolean"},
				{Name: "children", Type: "array", Description: "Child container ids for a carousel parent"},
				{Name: "location_id", Type: "string"},
				{Name: "thumb_offset", Type: "integer", Description: "Video thumbnail offset in seconds"},
				{Name: "share_to_feed", Type: "boolean"},
				{Name: "audio_name", Type: "string"},
				igUserIDParam, graphVersionParam,
			},
			Handler: createMediaContainer,
		},
		{
			Name:        "CREATE_CAROUSEL_CONTAINER",
			Description: "Create a draft carousel container from existing child container ids, or from child media URLs (child containers are created first).",
			Params: []ParamSpec{
				{Name: "children", Type: "array", Description: "Ready-made child container ids"},
				{Name: "child_image_urls", Type: "array"},
				{Name: "child_video_urls", Type: "array"},
				{Name: "caption", Type: "string"},
				igUserIDParam, graphVersionParam,
			},
			Handler: createCarouselContainer,
		},
		{
			Name:        "GET_POST_STATUS",
			Description: "Check the processing status of a draft container. status_code is IN_PROGRESS, FINISHED, ERROR, EXPIRED, or PUBLISHED.",
			Params: []ParamSpec{
				{Name: "creation_id", Type: "string", Required: true},
				graphVersionParam,
			},
			Handler: getPostStatus,
		},
		{
			Name:        "CREATE_POST",
			Description: "Publish a draft container with bounded status polling. Still attempts the publish when polling runs out, so slow video processing does not strand the container.",
			Params: []ParamSpec{
				{Name: "creation_id", Type: "string", Required: true},
				igUserIDParam, graphVersionParam,
			},
			Handler: createPost,
		},
		{
			Name:        "PUBLISH_MEDIA",
			Description: "Publish a draft container under a wall-clock budget. Fails without publishing when the container does not reach FINISHED in time.",
			Params: []ParamSpec{
				{Name: "creation_id", Type: "string", Required: true},
				{Name: "max_wait_seconds", Type: "integer", Default: 45},
				{Name: "poll_interval_seconds", Type: "integer", Default: 3},
				igUserIDParam, graphVersionParam,
			},
			Handler: publishMedia,
		},
		{
			Name:        "GET_CONTENT_PUBLISHING_LIMIT",
			Description: "Read the account's publishing quota usage. The API allows 25 published posts per 24 hours.",
			Params: []ParamSpec{
				{Name: "fields", Type: "string", Default: "quota_usage,config"},
				igUserIDParam, graphVersionParam,
			},
			Handler: getPublishingLimit,
		},
	}
}

func createMediaContainer(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.CreateContainerRequest{
		ImageURL:       argString(args, "image_url"),
		VideoURL:       argString(args, "video_url"),
		Caption:        argString(args, "caption"),
		MediaType:      argString(args, "media_type"),
		ContentType:    argString(args, "content_type"),
		CoverURL:       argString(args, "cover_url"),
		IsCarouselItem: argBool(args, "is_carousel_item"),
		Children:       argStrings(args, "children"),
		LocationID:     argString(args, "location_id"),
		ThumbOffset:    argInt(args, "thumb_offset"),
		ShareToFeed:    argBool(args, "share_to_feed"),
		AudioName:      argString(args, "audio_name"),
		IGUserID:       argString(args, "ig_user_id"),
		GraphVersion:   argString(args, "graph_api_version"),
	}
	res, err := deps.Publishing.CreateContainer(ctx, req)
	if err != nil {
		return dto.Fail("Failed to create media container: %v", err)
	}
	return dto.OK(res)
}

func createCarouselContainer(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.CreateCarouselRequest{
		Children:       argStrings(args, "children"),
		ChildImageURLs: argStrings(args, "child_image_urls"),
		ChildVideoURLs: argStrings(args, "child_video_urls"),
		Caption:        argString(args, "caption"),
		IGUserID:       argString(args, "ig_user_id"),
		GraphVersion:   argString(args, "graph_api_version"),
	}
	res, err := deps.Publishing.CreateCarousel(ctx, req)
	if err != nil {
		return dto.Fail("Failed to create carousel container: %v", err)
	}
	return dto.OK(res)
}

func getPostStatus(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Publishing.PostStatus(ctx, argString(args, "creation_id"), argString(args, "graph_api_version"))
	if err != nil {
		return dto.Fail("Failed to get post status: %v", err)
	}
	return dto.OK(res)
}

func createPost(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Publishing.CreatePost(ctx,
		argString(args, "creation_id"), argString(args, "ig_user_id"), argString(args, "graph_api_version"))
	if err != nil {
		return dto.Fail("Failed to create post: %v", err)
	}
	return dto.OK(res)
}

func publishMedia(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.PublishRequest{
		CreationID:      argString(args, "creation_id"),
		MaxWaitSeconds:  argInt(args, "max_wait_seconds"),
		PollIntervalSec: argInt(args, "poll_interval_seconds"),
		IGUserID:        argString(args, "ig_user_id"),
		GraphVersion:    argString(args, "graph_api_version"),
	}
	res, err := deps.Publishing.PublishMedia(ctx, req)
	if err != nil {
		if errors.Is(err, repository.ErrPollBudgetExceeded) {
			return dto.Fail("Failed to publish media: %v. The status may still be IN_PROGRESS; try again later or check GET_POST_STATUS manually.", err)
		}
		return dto.Fail("Failed to publish media: %v", err)
	}
	return dto.OK(res)
}

func getPublishingLimit(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Publishing.PublishingLimit(ctx,
		argString(args, "fields"), argString(args, "ig_user_id"), argString(args, "graph_api_version"))
	if err != nil {
		return dto.Fail("Failed to get content publishing limit: %v", err)
	}
	return dto.OK(res)
}
