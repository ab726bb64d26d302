package tools

import (
	"context"

	"instagram-gateway/domain/dto"
)

func insightTools() []Tool {
	return []Tool{
		{
			Name:        "GET_USER_INSIGHTS",
			Description: "Read account-level insights. Metrics with different metric_type requirements cannot be mixed in one request: profile_views and reach need metric_type=total_value, follower_count does not accept it.",
			Params: []ParamSpec{
				{Name: "metric", Type: "array", Required: true},
				{Name: "period", Type: "string", Default: "day"},
				{Name: "metric_type", Type: "string", Description: "time_series or total_value"},
				{Name: "breakdown", Type: "string", Description: "Only with metric_type=total_value"},
				{Name: "since", Type: "string"},
				{Name: "until", Type: "string"},
				{Name: "timeframe", Type: "string", Description: "Required for demographics metrics"},
				igUserIDParam, graphVersionParam,
			},
			Handler: getUserInsights,
		},
		{
			Name:        "GET_MEDIA_INSIGHTS",
			Description: "Read insights for one media object. impressions is not supported on Graph API v22.0+ and is swapped for reach automatically there.",
			Params: []ParamSpec{
				{Name: "media_id", Type: "string", Required: true},
				{Name: "metric", Type: "array", Required: true},
				{Name: "period", Type: "string", Default: "lifetime"},
				graphVersionParam,
			},
			Handler: getMediaInsights,
		},
	}
}

func getUserInsights(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.UserInsightsRequest{
		Metrics:      argStrings(args, "metric"),
		Period:       argString(args, "period"),
		MetricType:   argString(args, "metric_type"),
		Breakdown:    argString(args, "breakdown"),
		Since:        argString(args, "since"),
		Until:        argString(args, "until"),
		Timeframe:    argString(args, "timeframe"),
		IGUserID:     argString(args, "ig_user_id"),
		GraphVersion: argString(args, "graph_api_version"),
	}
	res, err := deps.Insights.UserInsights(ctx, req)
	if err != nil {
		return dto.FailPaged("Failed to get user insights: %s", userInsightsHint(err))
	}
	return paged(res)
}

func getMediaInsights(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult {
	req := &dto.MediaInsightsRequest{
		MediaID:      argString(args, "media_id"),
		Metrics:      argStrings(args, "metric"),
		Period:       argString(args, "period"),
		GraphVersion: argString(args, "graph_api_version"),
	}
	res, err := deps.Insights.MediaInsights(ctx, req)
	if err != nil {
		return dto.FailPaged("Failed to get media insights: %s", mediaInsightsHint(err))
	}
	return paged(res)
}
