package tools

import (
	"context"

	"instagram-gateway/domain/dto"
)

func commentTools() []Tool {
	return []Tool{
		{
			Name:        "GET_MEDIA_COMMENTS",
			Description: "List comments on a media object.",
			Params: []ParamSpec{
				{Name: "media_id", Type: "string", Required: true},
				{Name: "fields", Type: "string"},
				{Name: "limit", Type: "integer", Default: 25},
				{Name: "after", Type: "string"},
				{Name: "before", Type: "string"},
				graphVersionParam,
			},
			Handler: getMediaComments,
		},
		{
			Name:        "GET_COMMENT_REPLIES",
			Description: "List replies to a comment.",
			Params: []ParamSpec{
				{Name: "comment_id", Type: "string", Required: true},
				{Name: "fields", Type: "string"},
				{Name: "limit", Type: "integer", Default: 25},
				{Name: "after", Type: "string"},
				{Name: "before", Type: "string"},
				graphVersionParam,
			},
			Handler: getCommentReplies,
		},
		{
			Name:        "CREATE_COMMENT",
			Description: "Post a comment on a media object. Max 300 characters, 4 hashtags, 1 URL, not all caps.",
			Params: []ParamSpec{
				{Name: "media_id", Type: "string", Required: true},
				{Name: "message", Type: "string", Required: true},
				graphVersionParam,
			},
			Handler: createComment,
		},
		{
			Name:        "REPLY_TO_COMMENT",
			Description: "Post a threaded reply to an existing comment.",
			Params: []ParamSpec{
				{Name: "comment_id", Type: "string", Required: true},
				{Name: "message", Type: "string", Required: true},
				graphVersionParam,
			},
			Handler: replyToComment,
		},
		{
			Name:        "DELETE_COMMENT",
			Description: "Delete a comment authored by or directed at the account.",
			Params: []ParamSpec{
				{Name: "comment_id", Type: "string", Required: true},
				graphVersionParam,
			},
			Handler: deleteComment,
		},
		{
			Name:        "REPLY_TO_MENTION",
			Description: "Reply to a mention of the account: on the comment's thread when comment_id is given, otherwise as a comment on the mentioning media.",
			Params: []ParamSpec{
				{Name: "media_id", Type: "string", Required: true},
				{Name: "message", Type: "string", Required: true},
				{Name: "comment_id", Type: "string"},
				igUserIDParam, graphVersionParam,
			},
			Handler: replyToMention,
		},
	}
}

func commentListRequest(args map[string]interface{}) *dto.CommentListRequest {
	return &dto.CommentListRequest{
		MediaID:      argString(args, "media_id"),
		CommentID:    argString(args, "comment_id"),
		Fields:       argString(args, "fields"),
		Limit:        argInt(args, "limit"),
		After:        argString(args, "after"),
		Before:       argString(args, "before"),
		GraphVersion: argString(args, "graph_api_version"),
	}
}

func commentCreateRequest(args map[string]interface{}) *dto.CommentCreateRequest {
	return &dto.CommentCreateRequest{
		MediaID:      argString(args, "media_id"),
		CommentID:    argString(args, "comment_id"),
		Message:      argString(args, "message"),
		GraphVersion: argString(args, "graph_api_version"),
	}
}

func getMediaComments(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Comments.MediaComments(ctx, commentListRequest(args))
	if err != nil {
		return dto.FailPaged("Failed to get media comments: %v", err)
	}
	return paged(res)
}

func getCommentReplies(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Comments.CommentReplies(ctx, commentListRequest(args))
	if err != nil {
		return dto.FailPaged("Failed to get comment replies: %v", err)
	}
	return paged(res)
}

func createComment(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Comments.CreateComment(ctx, commentCreateRequest(args))
	if err != nil {
		return dto.Fail("Failed to create comment: %v", err)
	}
	return dto.OK(res)
}

func replyToComment(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Comments.ReplyToComment(ctx, commentCreateRequest(args))
	if err != nil {
		return dto.Fail("Failed to reply to comment: %v", err)
	}
	return dto.OK(res)
}

func deleteComment(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Comments.DeleteComment(ctx, argString(args, "comment_id"), argString(args, "graph_api_version"))
	if err != nil {
		return dto.Fail("Failed to delete comment: %v", err)
	}
	return dto.OK(res)
}

func replyToMention(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Comments.ReplyToMention(ctx, commentCreateRequest(args))
	if err != nil {
		return dto.Fail("Failed to reply to mention: %v", err)
	}
	return dto.OK(res)
}
