package tools

import (
	"context"
	"net/http"

	"hubgate/server/pkg/githubapi"
)

func profileGroup(c *githubapi.Client) Group {
	return Group{
		Name: "profile",
		Tools: []Tool{
			{
				Name:        "github.get_me",
				Description: "Get connected GitHub user profile",
				InputSchema: InputSchema{
					Type:       "object",
					Properties: map[string]Property{},
				},
			},
		},
		Handlers: map[string]Handler{
			"github.get_me": func(ctx context.Context, _ map[string]any, token string) (any, error) {
				raw, apiErr := c.Do(ctx, http.MethodGet, "user", token, nil, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeUser), nil
			},
		},
	}
}
