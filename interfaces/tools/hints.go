package tools

import "strings"

// Remediation hints for Graph API error classes that reliably confuse
// callers. The raw message is kept and the fix appended.

func userInsightsHint(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "should be specified with parameter metric_type"):
		msg += " Metrics like profile_views and reach require metric_type=total_value, while follower_count does not support it. Request them separately."
	case strings.Contains(lower, "incompatible"):
		msg += " Some metrics do not support the requested metric_type. Remove metric_type, or switch between total_value and time_series."
	case strings.Contains(lower, "metric") && strings.Contains(lower, "must be one of"):
		msg += " Valid user insight metrics include reach, follower_count, website_clicks, profile_views, online_followers, accounts_engaged, total_interactions and views. impressions is only valid for media insights."
	}
	return msg
}

func mediaInsightsHint(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "impressions") && strings.Contains(lower, "no longer supported"):
		msg += " Remove impressions from the metric list and use reach instead, or request graph_api_version=v21.0."
	case strings.Contains(lower, "metric") && strings.Contains(lower, "must be one of"):
		msg += " Common valid metrics for v22.0+: reach, likes, comments, shares, saved, video_views, plays, total_interactions, views, replies."
	case strings.Contains(lower, "permission") || strings.Contains(msg, "#10"):
		msg += " Generate a new token with the instagram_manage_insights permission."
	}
	return msg
}

func messagingHint(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "(#3)") || strings.Contains(lower, "does not have the capability"):
		msg += " The recipient must message you first, or the app needs App Review for Instagram Messaging."
	case strings.Contains(msg, "(#100)") || strings.Contains(lower, "no matching user found"):
		msg += " Check that the recipient_id is correct, that the recipient messaged you within the last 24 hours, and that both accounts are Business or Creator accounts. GET_USER_BY_USERNAME returns the correct recipient_id."
	case strings.Contains(lower, "permission") || strings.Contains(msg, "#10") || strings.Contains(msg, "#200"):
		msg += " The access token needs the pages_messaging and instagram_manage_messages permissions."
	}
	return msg
}

func markSeenHint(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "500") || strings.Contains(lower, "internal server error"):
		msg += " The sender_action endpoint has limited support; it may not work for this account or recipient."
	case strings.Contains(lower, "permission") || strings.Contains(msg, "#10"):
		msg += " Generate a new token with the instagram_manage_messages permission."
	case strings.Contains(lower, "messaging window") || strings.Contains(msg, "24"):
		msg += " The recipient must have an active 24-hour messaging window; they need to message you first."
	}
	return msg
}
