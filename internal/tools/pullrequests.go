package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hubgate/server/pkg/githubapi"
)

func pullRequestsGroup(c *githubapi.Client) Group {
	return Group{
		Name: "pull_requests",
		Tools: []Tool{
			{
				Name:        "github.list_pull_requests",
				Description: "List pull requests of a repository",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string"},
						"repo":  {Type: "string"},
						"state": {
							Type:        "string",
							Enum:        []string{"open", "closed", "all"},
							Default:     "open",
							Description: "State of the pull requests to list.",
						},
						"limit": {Type: "integer", Default: 10, Description: "Max pull requests (max 30)"},
					},
					Required: []string{"owner", "repo"},
				},
			},
			{
				Name:        "github.get_pull_request",
				Description: "Get details of a pull request",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner":       {Type: "string"},
						"repo":        {Type: "string"},
						"pull_number": {Type: "integer"},
					},
					Required: []string{"owner", "repo", "pull_number"},
				},
			},
			{
				Name:        "github.create_pull_request",
				Description: "Create a pull request",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string"},
						"repo":  {Type: "string"},
						"title": {Type: "string"},
						"head":  {Type: "string", Description: "The name of the branch where your changes are implemented."},
						"base":  {Type: "string", Description: "The name of the branch you want the changes pulled into."},
						"body":  {Type: "string"},
					},
					Required: []string{"owner", "repo", "title", "head", "base"},
				},
			},
			{
				Name:        "github.comment_on_pull_request",
				Description: "Add a comment to a pull request",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner":       {Type: "string"},
						"repo":        {Type: "string"},
						"pull_number": {Type: "integer"},
						"body":        {Type: "string"},
					},
					Required: []string{"owner", "repo", "pull_number", "body"},
				},
			},
			{
				Name:        "github.merge_pull_request",
				Description: "Merge a pull request",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner":          {Type: "string"},
						"repo":           {Type: "string"},
						"pull_number":    {Type: "integer"},
						"commit_title":   {Type: "string"},
						"commit_message": {Type: "string"},
						"merge_method":   {Type: "string", Enum: []string{"merge", "squash", "rebase"}, Default: "merge"},
					},
					Required: []string{"owner", "repo", "pull_number"},
				},
			},
		},
		Handlers: map[string]Handler{
			"github.list_pull_requests": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/pulls", strArg(args, "owner"), strArg(args, "repo"))
				state := strArg(args, "state")
				if state == "" {
					state = "open"
				}
				q := url.Values{
					"per_page": {strconv.Itoa(SafeLimit(args["limit"]))},
					"state":    {state},
				}
				raw, apiErr := c.Do(ctx, http.MethodGet, path, token, q, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializePullRequest), nil
			},
			"github.get_pull_request": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/pulls/%d",
					strArg(args, "owner"), strArg(args, "repo"), intArg(args, "pull_number"))
				raw, apiErr := c.Do(ctx, http.MethodGet, path, token, nil, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializePullRequest), nil
			},
			"github.create_pull_request": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/pulls", strArg(args, "owner"), strArg(args, "repo"))
				body := map[string]any{
					"title": strArg(args, "title"),
					"head":  strArg(args, "head"),
					"base":  strArg(args, "base"),
					"body":  strArg(args, "body"),
				}
				raw, apiErr := c.Do(ctx, http.MethodPost, path, token, nil, body)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializePullRequest), nil
			},
			"github.comment_on_pull_request": func(ctx context.Context, args map[string]any, token string) (any, error) {
				// PR comments go through the issues comment endpoint.
				path := fmt.Sprintf("repos/%s/%s/issues/%d/comments",
					strArg(args, "owner"), strArg(args, "repo"), intArg(args, "pull_number"))
				raw, apiErr := c.Do(ctx, http.MethodPost, path, token, nil, map[string]any{"body": strArg(args, "body")})
				if apiErr != nil {
					return nil, apiErr
				}
				return raw, nil
			},
			"github.merge_pull_request": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/pulls/%d/merge",
					strArg(args, "owner"), strArg(args, "repo"), intArg(args, "pull_number"))
				body := map[string]any{}
				for _, key := range []string{"commit_title", "commit_message", "merge_method"} {
					if v, ok := args[key]; ok {
						body[key] = v
					}
				}
				raw, apiErr := c.Do(ctx, http.MethodPut, path, token, nil, body)
				if apiErr != nil {
					return nil, apiErr
				}
				return raw, nil
			},
		},
	}
}
