package dto

import "fmt"

// Res is the generic error payload used by the middleware layer.
type Res struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}

// ToolResult is the uniform envelope every tool returns. Callers branch on
// Successful, never on errors propagating out of a tool: nothing is allowed to
// escape the tool boundary.
type ToolResult struct {
	Data       interface{} `json:"data"`
	Paging     interface{} `json:"paging,omitempty"`
	Error      string      `json:"error"`
	Successful bool        `json:"successful"`
}

// OK wraps data in a successful envelope.
func OK(data interface{}) ToolResult {
	if data == nil {
		data = map[string]interface{}{}
	}
	return ToolResult{Data: data, Error: "", Successful: true}
}

// OKPaged wraps a list payload plus its paging cursor object.
func OKPaged(data, paging interface{}) ToolResult {
	if data == nil {
		data = []interface{}{}
	}
	if paging == nil {
		paging = map[string]interface{}{}
	}
	return ToolResult{Data: data, Paging: paging, Error: "", Successful: true}
}

// Fail builds a failed envelope with an empty-object data payload.
func Fail(format string, args ...interface{}) ToolResult {
	return ToolResult{
		Data:       map[string]interface{}{},
		Error:      fmt.Sprintf(format, args...),
		Successful: false,
	}
}

// FailPaged is Fail for list tools, which keep array/object shapes on error.
func FailPaged(format string, args ...interface{}) ToolResult {
	return ToolResult{
		Data:       []interface{}{},
		Paging:     map[string]interface{}{},
		Error:      fmt.Sprintf(format, args...),
		Successful: false,
	}
}
