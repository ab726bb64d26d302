package tools

import (
	"context"

	"instagram-gateway/domain/dto"
)

func mediaListParams() []ParamSpec {
	return []ParamSpec{
		{Name: "fields", Type: "string"},
		{Name: "limit", Type: "integer", Default: 25},
		{Name: "after", Type: "string", Description: "Paging cursor"},
		{Name: "before", Type: "string", Description: "Paging cursor"},
		{Name: "since", Type: "string"},
		{Name: "until", Type: "string"},
		igUserIDParam, graphVersionParam,
	}
}

func mediaTools() []Tool {
	return []Tool{
		{
			Name:        "GET_USER_MEDIA",
			Description: "List the account's published media. Each entry's id feeds GET_MEDIA, GET_MEDIA_INSIGHTS, and GET_MEDIA_COMMENTS.",
			Params:      mediaListParams(),
			Handler:     getUserMedia,
		},
		{
			Name:        "GET_MEDIA",
			Description: "Read one published media object.",
			Params: []ParamSpec{
				{Name: "media_id", Type: "string", Required: true},
				{Name: "fields", Type: "string"},
				graphVersionParam,
			},
			Handler: getMedia,
		},
		{
			Name:        "GET_MEDIA_CHILDREN",
			Description: "List the child media of a carousel post. Children do not support insights; query metrics at the parent.",
			Params: []ParamSpec{
				{Name: "media_id", Type: "string", Required: true},
				{Name: "fields", Type: "string"},
				graphVersionParam,
			},
			Handler: getMediaChildren,
		},
		{
			Name:        "GET_STORIES",
			Description: "List the account's active stories.",
			Params:      mediaListParams(),
			Handler:     getStories,
		},
		{
			Name:        "GET_TAGGED_MEDIA",
			Description: "List media the account has been tagged in.",
			Params:      mediaListParams(),
			Handler:     getTaggedMedia,
		},
		{
			Name:        "GET_LIVE_MEDIA",
			Description: "List the account's live media.",
			Params:      mediaListParams(),
			Handler:     getLiveMedia,
		},
	}
}

func mediaListRequest(args map[string]interface{}) *dto.MediaListRequest {
	return &dto.MediaListRequest{
		Fields:       argString(args, "fields"),
		Limit:        argInt(args, "limit"),
		After:        argString(args, "after"),
		Before:       argString(args, "before"),
		Since:        argString(args, "since"),
		Until:        argString(args, "until"),
		IGUserID:     argString(args, "ig_user_id"),
		GraphVersion: argString(args, "graph_api_version"),
	}
}

func getUserMedia(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Media.UserMedia(ctx, mediaListRequest(args))
	if err != nil {
		return dto.FailPaged("Failed to get user media: %v", err)
	}
	return paged(res)
}

func getMedia(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.MediaRequest{
		MediaID:      argString(args, "media_id"),
		Fields:       argString(args, "fields"),
		GraphVersion: argString(args, "graph_api_version"),
	}
	res, err := deps.Media.Media(ctx, req)
	if err != nil {
		return dto.Fail("Failed to get media: %v", err)
	}
	return dto.OK(res)
}

func getMediaChildren(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.MediaRequest{
		MediaID:      argString(args, "media_id"),
		Fields:       argString(args, "fields"),
		GraphVersion: argString(args, "graph_api_version"),
	}
	res, err := deps.Media.MediaChildren(ctx, req)
	if err != nil {
		return dto.FailPaged("Failed to get media children: %v", err)
	}
	return paged(res)
}

func getStories(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Media.Stories(ctx, mediaListRequest(args))
	if err != nil {
		return dto.FailPaged("Failed to get stories: %v", err)
	}
	return paged(res)
}

func getTaggedMedia(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Media.TaggedMedia(ctx, mediaListRequest(args))
	if err != nil {
		return dto.FailPaged("Failed to get tagged media: %v", err)
	}
	return paged(res)
}

func getLiveMedia(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Media.LiveMedia(ctx, mediaListRequest(args))
	if err != nil {
		return dto.FailPaged("Failed to get live media: %v", err)
	}
	return paged(res)
}
