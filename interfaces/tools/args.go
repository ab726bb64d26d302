package tools

import (
	"strconv"
	"strings"

	"instagram-gateway/domain/dto"
)

// Argument coercion. Tool arguments arrive as decoded JSON, so numbers are
// float64 and arrays are []interface{}; these helpers normalize the loose
// shapes clients actually send.

func argString(args map[string]interface{}, key string) string {
	switch v := args[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

func argInt(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n
		}
	}
	return 0
}

func argBool(args map[string]interface{}, key string) bool {
	switch v := args[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return false
}

// argStrings accepts a JSON array of strings or a single comma-separated
// string, matching how clients pass metric and children lists.
func argStrings(args map[string]interface{}, key string) []string {
	var out []string
	switch v := args[key].(type) {
	case []string:
		out = append(out, v...)
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// paged splits a raw Graph list response into the list envelope.
func paged(res map[string]interface{}) dto.ToolResult {
	return dto.OKPaged(res["data"], res["paging"])
}
