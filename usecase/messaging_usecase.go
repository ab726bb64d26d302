package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/go-querystring/query"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/model"
	"instagram-gateway/domain/repository"
)

const (
	defaultConversationFields = "id,participants,updated_time"
	defaultMessageFields      = "id,message,from,created_time,attachments"
)

// IMessagingUsecase defines the interface for Instagram DM operations. Every
// operation here runs on the page access token; the user token is rejected by
// the messaging endpoints.
type IMessagingUsecase interface {
	Conversations(ctx context.Context, req *dto.ConversationListRequest) (map[string]interface{}, error)
	Conversation(ctx context.Context, conversationID, graphVersion string) (map[string]interface{}, error)
	Messages(ctx context.Context, req *dto.MessageListRequest) (map[string]interface{}, error)
	SendText(ctx context.Context, req *dto.SendMessageRequest) (map[string]interface{}, error)
	SendImage(ctx context.Context, req *dto.SendMessageRequest) (map[string]interface{}, error)
	MarkSeen(ctx context.Context, recipientID, igUserID, graphVersion string) (map[string]interface{}, error)
}

// MessagingUsecase implements the DM operations.
type MessagingUsecase struct {
	graph repository.IGraph
}

// NewMessagingUsecase creates a new messaging use case instance
func NewMessagingUsecase(graph repository.IGraph) IMessagingUsecase {
	return &MessagingUsecase{graph: graph}
}

// pageBinding resolves the Facebook Page identity that owns the Instagram
// account. requireToken distinguishes endpoints that hard-fail without a page
// token from those that fall back to the user token.
func (u *MessagingUsecase) pageBinding(ctx context.Context, igUserID string, requireToken bool) (model.PageBinding, error) {
	resolved, err := u.graph.InstagramUserID(ctx, igUserID)
	if err != nil {
		return model.PageBinding{}, err
	}
	binding := u.graph.PageForIGAccount(ctx, resolved)
	binding.InstagramUserID = resolved
	if binding.PageID == "" {
		return model.PageBinding{}, fmt.Errorf("could not find Facebook Page ID. Connect your Instagram account to a Facebook Page or set FACEBOOK_PAGE_ID environment variable")
	}
	if requireToken && binding.PageAccessToken == "" {
		return model.PageBinding{}, fmt.Errorf("page access token is required for the conversations API. Set INSTAGRAM_PAGE_ACCESS_TOKEN or complete the OAuth flow again to capture it")
	}
	return binding, nil
}

// messagingOpts threads the page token and version overrides into one call.
func messagingOpts(pageToken, version string) []repository.CallOption {
	opts := versionOpts(version)
	if pageToken != "" {
		opts = append(opts, repository.WithToken(pageToken))
	}
	return opts
}

// Conversations lists the page's Instagram DM conversations.
func (u *MessagingUsecase) Conversations(ctx context.Context, req *dto.ConversationListRequest) (map[string]interface{}, error) {
	if req == nil {
		req = &dto.ConversationListRequest{}
	}
	binding, err := u.pageBinding(ctx, req.IGUserID, true)
	if err != nil {
		return nil, err
	}
	pageID := binding.PageID
	if req.PageID != "" {
		pageID = req.PageID
	}

	params, err := query.Values(dto.ConversationParams{
		Platform: "instagram",
		Fields:   defaultConversationFields,
		Limit:    req.Limit,
		After:    req.After,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode conversation params: %w", err)
	}

	return u.graph.Do(ctx, http.MethodGet, pageID+"/conversations", params, nil,
		messagingOpts(binding.PageAccessToken, req.GraphVersion)...)
}

// Conversation reads one conversation's participants and activity time.
func (u *MessagingUsecase) Conversation(ctx context.Context, conversationID, graphVersion string) (map[string]interface{}, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}
	binding, err := u.pageBinding(ctx, "", true)
	if err != nil {
		return nil, err
	}
	params := url.Values{"fields": {defaultConversationFields}}
	return u.graph.Do(ctx, http.MethodGet, conversationID, params, nil,
		messagingOpts(binding.PageAccessToken, graphVersion)...)
}

// Messages lists the messages of one conversation, newest first.
func (u *MessagingUsecase) Messages(ctx context.Context, req *dto.MessageListRequest) (map[string]interface{}, error) {
	if req == nil || req.ConversationID == "" {
		return nil, fmt.Errorf("conversation_id is required")
	}
	binding, err := u.pageBinding(ctx, "", false)
	if err != nil {
		return nil, err
	}

	params := url.Values{"fields": {defaultMessageFields}}
	if req.Limit > 0 {
		params.Set("limit", strconv.Itoa(req.Limit))
	}
	if req.After != "" {
		params.Set("after", req.After)
	}

	return u.graph.Do(ctx, http.MethodGet, req.ConversationID+"/messages", params, nil,
		messagingOpts(binding.PageAccessToken, req.GraphVersion)...)
}

// SendText sends a text DM, optionally threading it as a reply. The recipient
// must have an open 24-hour messaging window.
func (u *MessagingUsecase) SendText(ctx context.Context, req *dto.SendMessageRequest) (map[string]interface{}, error) {
	if req == nil || req.RecipientID == "" {
		return nil, fmt.Errorf("recipient_id is required")
	}
	if req.Text == "" {
		return nil, fmt.Errorf("text is required")
	}

	message := map[string]interface{}{"text": req.Text}
	if req.ReplyToMessageID != "" {
		message["reply_to"] = map[string]interface{}{"message_id": req.ReplyToMessageID}
	}
	return u.sendMessage(ctx, req.IGUserID, req.GraphVersion, req.RecipientID, message, "")
}

// SendImage sends an image DM from a publicly reachable URL.
func (u *MessagingUsecase) SendImage(ctx context.Context, req *dto.SendMessageRequest) (map[string]interface{}, error) {
	if req == nil || req.RecipientID == "" {
		return nil, fmt.Errorf("recipient_id is required")
	}
	if req.ImageURL == "" {
		return nil, fmt.Errorf("image_url is required")
	}

	message := map[string]interface{}{
		"attachment": map[string]interface{}{
			"type":    "image",
			"payload": map[string]interface{}{"url": req.ImageURL},
		},
	}
	return u.sendMessage(ctx, req.IGUserID, req.GraphVersion, req.RecipientID, message, "")
}

// MarkSeen marks the recipient's messages as read. Support for the
// sender_action endpoint varies by account type.
func (u *MessagingUsecase) MarkSeen(ctx context.Context, recipientID, igUserID, graphVersion string) (map[string]interface{}, error) {
	if recipientID == "" {
		return nil, fmt.Errorf("recipient_id is required")
	}
	return u.sendMessage(ctx, igUserID, graphVersion, recipientID, nil, "mark_seen")
}

// sendMessage posts to {ig-user-id}/messages. recipient and message travel as
// JSON-encoded form fields. The page token is preferred when available; the
// call still goes out on the user token without one, and the API reports the
// permission failure.
func (u *MessagingUsecase) sendMessage(ctx context.Context, igUserID, graphVersion, recipientID string, message map[string]interface{}, senderAction string) (map[string]interface{}, error) {
	resolved, err := u.graph.InstagramUserID(ctx, igUserID)
	if err != nil {
		return nil, err
	}
	binding := u.graph.PageForIGAccount(ctx, resolved)

	recipient, err := json.Marshal(map[string]string{"id": recipientID})
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipient: %w", err)
	}
	body := url.Values{"recipient": {string(recipient)}}
	if senderAction != "" {
		body.Set("sender_action", senderAction)
	}
	if message != nil {
		encoded, err := json.Marshal(message)
		if err != nil {
			return nil, fmt.Errorf("failed to encode message: %w", err)
		}
		body.Set("message", string(encoded))
	}

	return u.graph.Do(ctx, http.MethodPost, resolved+"/messages", nil, body,
		messagingOpts(binding.PageAccessToken, graphVersion)...)
}
