// Package tools assembles the capability groups (profile, repos, issues,
// pull requests, commits, files) into one static tool registry and routes
// validated calls to their handlers.
package tools

import (
	"context"
	"fmt"

	"hubgate/server/pkg/githubapi"
)

// Registry is the immutable union of all capability groups, computed once at
// startup. Tool names must be globally unique across groups; that is an
// implementer invariant, not a runtime check.
type Registry struct {
	tools    []Tool
	handlers map[string]Handler
	schemas  map[string]InputSchema
}

// New builds the registry over the given upstream client.
func New(client *githubapi.Client) *Registry {
	return newRegistry(
		profileGroup(client),
		reposGroup(client),
		issuesGroup(client),
		pullRequestsGroup(client),
		commitsGroup(client),
		filesGroup(client),
	)
}

func newRegistry(groups ...Group) *Registry {
	r := &Registry{
		handlers: make(map[string]Handler),
		schemas:  make(map[string]InputSchema),
	}
	for _, g := range groups {
		r.tools = append(r.tools, g.Tools...)
		for _, t := range g.Tools {
			r.schemas[t.Name] = t.InputSchema
		}
		for name, h := range g.Handlers {
			r.handlers[name] = h
		}
	}
	return r
}

// Schemas returns every tool descriptor, unfiltered by identity.
func (r *Registry) Schemas() []Tool {
	return r.tools
}

// Call invokes a tool by name. It always returns a result payload: unknown
// tools, invalid arguments, upstream failures, and handler faults all come
// back as an error-shaped object rather than a Go error, so the dispatcher
// can wrap any outcome in the same success envelope.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any, token string) (result any) {
	handler, ok := r.handlers[name]
	if !ok {
		return map[string]any{"error": "Unknown tool"}
	}

	validated, err := ValidateArgs(r.schemas[name], args)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}

	// A fault inside a handler must never take the dispatcher down.
	defer func() {
		if rec := recover(); rec != nil {
			result = map[string]any{"error": fmt.Sprintf("Tool execution failed: %v", rec)}
		}
	}()

	out, err := handler(ctx, validated, token)
	if err != nil {
		if apiErr, ok := err.(*githubapi.APIError); ok {
			return apiErr
		}
		return map[string]any{"error": fmt.Sprintf("Tool execution failed: %s", err)}
	}
	return out
}
