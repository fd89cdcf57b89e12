package tools

import "context"

// Tool describes one named operation exposed over the MCP endpoint.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"input_schema"`
}

// InputSchema defines the input parameters for a tool
type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property defines a single property in the input schema
type Property struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Default     any      `json:"default,omitempty"`
}

// Handler executes one tool call. Arguments have already been validated
// against the tool's InputSchema, so required keys are guaranteed present.
// Upstream failures come back as *githubapi.APIError and are propagated
// unchanged; any other error becomes a generic error result.
type Handler func(ctx context.Context, args map[string]any, token string) (any, error)

// Group is one capability group's contribution to the registry.
type Group struct {
	Name     string
	Tools    []Tool
	Handlers map[string]Handler
}
