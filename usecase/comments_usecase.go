package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/repository"
)

const (
	defaultCommentFields = "id,text,username,timestamp,like_count,from,hidden,media,parent_id"
	defaultReplyFields   = "id,text,username,timestamp,like_count,hidden,from,media,parent_id,legacy_instagram_comment_id"
)

// ICommentsUsecase defines the interface for comment operations.
type ICommentsUsecase interface {
	MediaComments(ctx context.Context, req *dto.CommentListRequest) (map[string]interface{}, error)
	CommentReplies(ctx context.Context, req *dto.CommentListRequest) (map[string]interface{}, error)
	CreateComment(ctx context.Context, req *dto.CommentCreateRequest) (map[string]interface{}, error)
	ReplyToComment(ctx context.Context, req *dto.CommentCreateRequest) (map[string]interface{}, error)
	DeleteComment(ctx context.Context, commentID, graphVersion string) (map[string]interface{}, error)
	ReplyToMention(ctx context.Context, req *dto.CommentCreateRequest) (map[string]interface{}, error)
}

// CommentsUsecase implements the comment operations.
type CommentsUsecase struct {
	graph repository.IGraph
}

// NewCommentsUsecase creates a new comments use case instance
func NewCommentsUsecase(graph repository.IGraph) ICommentsUsecase {
	return &CommentsUsecase{graph: graph}
}

func commentListParams(req *dto.CommentListRequest, defaultFields string) url.Values {
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
	return params
}

// MediaComments lists comments on a media object.
func (u *CommentsUsecase) MediaComments(ctx context.Context, req *dto.CommentListRequest) (map[string]interface{}, error) {
	if req == nil || req.MediaID == "" {
		return nil, fmt.Errorf("media_id is required")
	}
	params := commentListParams(req, defaultCommentFields)
	return u.graph.Do(ctx, http.MethodGet, req.MediaID+"/comments", params, nil, versionOpts(req.GraphVersion)...)
}

// CommentReplies lists replies to a comment.
func (u *CommentsUsecase) CommentReplies(ctx context.Context, req *dto.CommentListRequest) (map[string]interface{}, error) {
	if req == nil || req.CommentID == "" {
		return nil, fmt.Errorf("comment_id is required")
	}
	params := commentListParams(req, defaultReplyFields)
	return u.graph.Do(ctx, http.MethodGet, req.CommentID+"/replies", params, nil, versionOpts(req.GraphVersion)...)
}

// CreateComment posts a new top-level comment on a media object. The API
// enforces the content rules (300 chars, 4 hashtags, 1 URL).
func (u *CommentsUsecase) CreateComment(ctx context.Context, req *dto.CommentCreateRequest) (map[string]interface{}, error) {
	if req == nil || req.MediaID == "" {
		return nil, fmt.Errorf("media_id is required")
	}
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}
	body := url.Values{"message": {req.Message}}
	return u.graph.Do(ctx, http.MethodPost, req.MediaID+"/comments", nil, body, versionOpts(req.GraphVersion)...)
}

// ReplyToComment posts a threaded reply to an existing comment.
func (u *CommentsUsecase) ReplyToComment(ctx context.Context, req *dto.CommentCreateRequest) (map[string]interface{}, error) {
	if req == nil || req.CommentID == "" {
		return nil, fmt.Errorf("comment_id is required")
	}
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}
	body := url.Values{"message": {req.Message}}
	return u.graph.Do(ctx, http.MethodPost, req.CommentID+"/replies", nil, body, versionOpts(req.GraphVersion)...)
}

// DeleteComment removes a comment authored by or directed at the account.
func (u *CommentsUsecase) DeleteComment(ctx context.Context, commentID, graphVersion string) (map[string]interface{}, error) {
	if commentID == "" {
		return nil, fmt.Errorf("comment_id is required")
	}
	return u.graph.Do(ctx, http.MethodDelete, commentID, nil, nil, versionOpts(graphVersion)...)
}

// ReplyToMention answers a mention of the account. With a comment id the
// reply lands on that comment's thread; without one it becomes a top-level
// comment on the mentioning media.
func (u *CommentsUsecase) ReplyToMention(ctx context.Context, req *dto.CommentCreateRequest) (map[string]interface{}, error) {
	if req == nil || req.MediaID == "" {
		return nil, fmt.Errorf("media_id is required")
	}
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}
	endpoint := req.MediaID + "/comments"
	if req.CommentID != "" {
		endpoint = req.CommentID + "/replies"
	}
	body := url.Values{"message": {req.Message}}
	return u.graph.Do(ctx, http.MethodPost, endpoint, nil, body, versionOpts(req.GraphVersion)...)
}
