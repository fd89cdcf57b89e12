package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hubgate/server/pkg/githubapi"
)

func reposGroup(c *githubapi.Client) Group {
	return Group{
		Name: "repos",
		Tools: []Tool{
			{
				Name:        "github.list_repos",
				Description: "List GitHub repositories",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"limit": {Type: "integer", Default: 10, Description: "Max repositories (max 30)"},
					},
				},
			},
			{
				Name:        "github.get_repo_details",
				Description: "Get details of a specific repository",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string", Description: "Repository owner"},
						"repo":  {Type: "string", Description: "Repository name"},
					},
					Required: []string{"owner", "repo"},
				},
			},
			{
				Name:        "github.list_branches",
				Description: "List branches of a repository",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string", Description: "Repository owner"},
						"repo":  {Type: "string", Description: "Repository name"},
					},
					Required: []string{"owner", "repo"},
				},
			},
		},
		Handlers: map[string]Handler{
			"github.list_repos": func(ctx context.Context, args map[string]any, token string) (any, error) {
				limit := SafeLimit(args["limit"])
				q := url.Values{"per_page": {strconv.Itoa(limit)}}
				raw, apiErr := c.Do(ctx, http.MethodGet, "user/repos", token, q, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeRepo), nil
			},
			"github.get_repo_details": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s", strArg(args, "owner"), strArg(args, "repo"))
				raw, apiErr := c.Do(ctx, http.MethodGet, path, token, nil, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeRepo), nil
			},
			"github.list_branches": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/branches", strArg(args, "owner"), strArg(args, "repo"))
				raw, apiErr := c.Do(ctx, http.MethodGet, path, token, nil, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return raw, nil
			},
		},
	}
}
