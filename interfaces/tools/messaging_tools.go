package tools

import (
	"context"

	"instagram-gateway/domain/dto"
)

func messagingTools() []Tool {
	return []Tool{
		{
			Name:        "LIST_CONVERSATIONS",
			Description: "List the page's Instagram DM conversations. Participant ids are the recipient_id for the send tools. Requires the page access token.",
			Params: []ParamSpec{
				{Name: "page_id", Type: "string", Description: "Facebook Page id override; auto-detected when omitted"},
				{Name: "limit", Type: "integer", Default: 25},
				{Name: "after", Type: "string"},
				igUserIDParam, graphVersionParam,
			},
			Handler: listConversations,
		},
		{
			Name:        "GET_CONVERSATION",
			Description: "Read one conversation's participants and last activity time. Requires the page access token.",
			Params: []ParamSpec{
				{Name: "conversation_id", Type: "string", Required: true},
				graphVersionParam,
			},
			Handler: getConversation,
		},
		{
			Name:        "LIST_MESSAGES",
			Description: "List the messages of one conversation.",
			Params: []ParamSpec{
				{Name: "conversation_id", Type: "string", Required: true},
				{Name: "limit", Type: "integer", Default: 25},
				{Name: "after", Type: "string"},
				graphVersionParam,
			},
			Handler: listMessages,
		},
		{
			Name:        "SEND_TEXT_MESSAGE",
			Description: "Send a text DM. The recipient must have messaged the account within the last 24 hours.",
			Params: []ParamSpec{
				{Name: "recipient_id", Type: "string", Required: true},
				{Name: "text", Type: "string", Required: true},
				{Name: "reply_to_message_id", Type: "string"},
				igUserIDParam, graphVersionParam,
			},
			Handler: sendTextMessage,
		},
		{
			Name:        "SEND_IMAGE",
			Description: "Send an image DM from a publicly reachable URL. The recipient must have an open 24-hour messaging window.",
			Params: []ParamSpec{
				{Name: "recipient_id", Type: "string", Required: true},
				{Name: "image_url", Type: "string", Required: true},
				igUserIDParam, graphVersionParam,
			},
			Handler: sendImage,
		},
		{
			Name:        "MARK_SEEN",
			Description: "Mark the recipient's messages as read. sender_action support varies by account type.",
			Params: []ParamSpec{
				{Name: "recipient_id", Type: "string", Required: true},
				igUserIDParam, graphVersionParam,
			},
			Handler: markSeen,
		},
	}
}

func listConversations(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.ConversationListRequest{
		PageID:       argString(args, "page_id"),
		Limit:        argInt(args, "limit"),
		After:        argString(args, "after"),
		IGUserID:     argString(args, "ig_user_id"),
		GraphVersion: argString(args, "graph_api_version"),
	}
	res, err := deps.Messaging.Conversations(ctx, req)
	if err != nil {
		return dto.FailPaged("Failed to list conversations: %s", messagingHint(err))
	}
	return paged(res)
}

func getConversation(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Messaging.Conversation(ctx,
		argString(args, "conversation_id"), argString(args, "graph_api_version"))
	if err != nil {
		return dto.Fail("Failed to get conversation: %s", messagingHint(err))
	}
	return dto.OK(res)
}

func listMessages(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.MessageListRequest{
		ConversationID: argString(args, "conversation_id"),
		Limit:          argInt(args, "limit"),
		After:          argString(args, "after"),
		GraphVersion:   argString(args, "graph_api_version"),
	}
	res, err := deps.Messaging.Messages(ctx, req)
	if err != nil {
		return dto.FailPaged("Failed to list messages: %s", messagingHint(err))
	}
	return paged(res)
}

func sendTextMessage(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.SendMessageRequest{
		RecipientID:      argString(args, "recipient_id"),
		Text:             argString(args, "text"),
		ReplyToMessageID: argString(args, "reply_to_message_id"),
		IGUserID:         argString(args, "ig_user_id"),
		GraphVersion:     argString(args, "graph_api_version"),
	}
	res, err := deps.Messaging.SendText(ctx, req)
	if err != nil {
		return dto.Fail("Failed to send text message: %s", messagingHint(err))
	}
	return dto.OK(res)
}

func sendImage(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.SendMessageRequest{
		RecipientID:  argString(args, "recipient_id"),
		ImageURL:     argString(args, "image_url"),
		IGUserID:     argString(args, "ig_user_id"),
		GraphVersion: argString(args, "graph_api_version"),
	}
	res, err := deps.Messaging.SendImage(ctx, req)
	if err != nil {
		return dto.Fail("Failed to send image: %s", messagingHint(err))
	}
	return dto.OK(res)
}

func markSeen(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Messaging.MarkSeen(ctx,
		argString(args, "recipient_id"), argString(args, "ig_user_id"), argString(args, "graph_api_version"))
	if err != nil {
		return dto.Fail("Failed to mark messages as seen: %s", markSeenHint(err))
	}
	return dto.OK(res)
}
