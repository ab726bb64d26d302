package tools

import (
	"context"

	"instagram-gateway/domain/dto"
)

func accountTools() []Tool {
	return []Tool{
		{
			Name:        "GET_USER_INFO",
			Description: "Read the authenticated account's profile and statistics.",
			Params: []ParamSpec{
				{Name: "fields", Type: "string"},
				igUserIDParam, graphVersionParam,
			},
			Handler: getUserInfo,
		},
		{
			Name:        "GET_USER_BY_USERNAME",
			Description: "Look up another account by username through business discovery. Only public Business and Creator accounts are discoverable. The instagram_user_id in the response is the recipient_id for messaging tools.",
			Params: []ParamSpec{
				{Name: "username", Type: "string", Required: true, Description: "Username, with or without the @ prefix"},
				igUserIDParam, graphVersionParam,
			},
			Handler: getUserByUsername,
		},
	}
}

func getUserInfo(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Account.UserInfo(ctx,
		argString(args, "fields"), argString(args, "ig_user_id"), argString(args, "graph_api_version"))
	if err != nil {
		return dto.Fail("Failed to get user info: %v", err)
	}
	return dto.OK(res)
}

func getUserByUsername(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	res, err := deps.Account.UserByUsername(ctx,
		argString(args, "username"), argString(args, "ig_user_id"), argString(args, "graph_api_version"))
	if err != nil {
		return dto.Fail("Failed to get user by username: %v", err)
	}
	return dto.OK(res)
}
