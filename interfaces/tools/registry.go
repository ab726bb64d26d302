package tools

import (
	"context"
	"sort"

	"instagram-gateway/domain/dto"
	"instagram-gateway/domain/repository"
	"instagram-gateway/infrastructure/logger"
	"instagram-gateway/usecase"
)

// Deps bundles the usecases the tool handlers dispatch into.
type Deps struct {
	Publishing usecase.IPublishingUsecase
	Media      usecase.IMediaUsecase
	Comments   usecase.ICommentsUsecase
	Insights   usecase.IInsightsUsecase
	Account    usecase.IAccountUsecase
	Messaging  usecase.IMessagingUsecase
	Graph      repository.IGraph
}

// ParamSpec describes one tool parameter for the discovery endpoint and for
// pre-dispatch validation. Type is the JSON type name.
type ParamSpec struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Required    bool        `json:"required"`
	Default     interface{} `json:"default,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Handler executes one tool invocation. Failures are reported through the
// envelope, never as a returned error.
type Handler func(ctx context.Context, deps *Deps, args map[string]interface{}) dto.ToolResult

// Tool is one registry entry.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Params      []ParamSpec `json:"params"`
	Handler     Handler     `json:"-"`
}

// Registry is the static tool table. It is assembled once at startup from the
// fixed group lists; there is no runtime registration.
type Registry struct {
	deps  *Deps
	tools map[string]Tool
	names []string
}

// NewRegistry builds the full tool table over the supplied dependencies.
func NewRegistry(deps *Deps) *Registry {
	r := &Registry{deps: deps, tools: make(map[string]Tool)}
	r.add(publishingTools())
	r.add(mediaTools())
	r.add(commentTools())
	r.add(insightTools())
	r.add(accountTools())
	r.add(messagingTools())
	sort.Strings(r.names)
	return r
}

func (r *Registry) add(tools []Tool) {
	for _, t := range tools {
		if _, dup := r.tools[t.Name]; dup {
			// The table is hardcoded; a duplicate is a programming error.
			panic("duplicate tool name: " + t.Name)
		}
		r.tools[t.Name] = t
		r.names = append(r.names, t.Name)
	}
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Describe returns every tool's schema, sorted by name.
func (r *Registry) Describe() []Tool {
	out := make([]Tool, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.tools[name])
	}
	return out
}

// Dispatch runs one tool by name. Unknown names, missing required parameters,
// and handler panics all come back as failed envelopes; nothing escapes the
// tool boundary.
func (r *Registry) Dispatch(ctx context.Context, name string, args map[string]interface{}) (res dto.ToolResult) {
	tool, ok := r.tools[name]
	if !ok {
		return dto.Fail("unknown tool: %s", name)
	}

	// Callers keep ownership of their argument map.
	merged := make(map[string]interface{}, len(args))
	for k, v := range args {
		merged[k] = v
	}
	for _, p := range tool.Params {
		v, present := merged[p.Name]
		if p.Required && (!present || v == nil || v == "") {
			return dto.Fail("%s: missing required parameter %q", name, p.Name)
		}
		if !present && p.Default != nil {
			merged[p.Name] = p.Default
		}
	}

	defer func() {
		if rec := recover(); rec != nil {
			logger.GetLogger().WithField("tool", name).Errorf("Tool handler panicked: %v", rec)
			res = dto.Fail("%s: internal error", name)
		}
	}()

	return tool.Handler(ctx, r.deps, merged)
}
