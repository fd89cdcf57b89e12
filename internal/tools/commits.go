package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hubgate/server/pkg/githubapi"
)

func commitsGroup(c *githubapi.Client) Group {
	return Group{
		Name: "commits",
		Tools: []Tool{
			{
				Name:        "github.list_commits",
				Description: "List commits of a repository",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string"},
						"repo":  {Type: "string"},
						"limit": {Type: "integer", Default: 10, Description: "Max commits (max 30)"},
					},
					Required: []string{"owner", "repo"},
				},
			},
			{
				Name:        "github.get_commit",
				Description: "Get a specific commit",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string"},
						"repo":  {Type: "string"},
						"ref":   {Type: "string", Description: "The commit reference or SHA"},
					},
					Required: []string{"owner", "repo", "ref"},
				},
			},
		},
		Handlers: map[string]Handler{
			"github.list_commits": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/commits", strArg(args, "owner"), strArg(args, "repo"))
				q := url.Values{"per_page": {strconv.Itoa(SafeLimit(args["limit"]))}}
				raw, apiErr := c.Do(ctx, http.MethodGet, path, token, q, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeCommit), nil
			},
			"github.get_commit": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/commits/%s",
					strArg(args, "owner"), strArg(args, "repo"), strArg(args, "ref"))
				raw, apiErr := c.Do(ctx, http.MethodGet, path, token, nil, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeCommit), nil
			},
		},
	}
}
