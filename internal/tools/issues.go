package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hubgate/server/pkg/githubapi"
)

func issuesGroup(c *githubapi.Client) Group {
	return Group{
		Name: "issues",
		Tools: []Tool{
			{
				Name:        "github.list_issues",
				Description: "List issues of a repository",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string", Description: "Repository owner"},
						"repo":  {Type: "string", Description: "Repository name"},
						"limit": {Type: "integer", Default: 10, Description: "Max issues (max 30)"},
					},
					Required: []string{"owner", "repo"},
				},
			},
			{
				Name:        "github.create_issue",
				Description: "Create a GitHub issue",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string"},
						"repo":  {Type: "string"},
						"title": {Type: "string"},
						"body":  {Type: "string"},
					},
					Required: []string{"owner", "repo", "title"},
				},
			},
			{
				Name:        "github.comment_on_issue",
				Description: "Comment on a GitHub issue",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner":        {Type: "string"},
						"repo":         {Type: "string"},
						"issue_number": {Type: "integer"},
						"body":         {Type: "string"},
					},
					Required: []string{"owner", "repo", "issue_number", "body"},
				},
			},
			{
				Name:        "github.close_issue",
				Description: "Close a GitHub issue",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner":        {Type: "string"},
						"repo":         {Type: "string"},
						"issue_number": {Type: "integer"},
					},
					Required: []string{"owner", "repo", "issue_number"},
				},
			},
		},
		Handlers: map[string]Handler{
			"github.list_issues": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/issues", strArg(args, "owner"), strArg(args, "repo"))
				q := url.Values{"per_page": {strconv.Itoa(SafeLimit(args["limit"]))}}
				raw, apiErr := c.Do(ctx, http.MethodGet, path, token, q, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeIssue), nil
			},
			"github.create_issue": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/issues", strArg(args, "owner"), strArg(args, "repo"))
				body := map[string]any{
					"title": strArg(args, "title"),
					"body":  strArg(args, "body"),
				}
				raw, apiErr := c.Do(ctx, http.MethodPost, path, token, nil, body)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeIssue), nil
			},
			"github.comment_on_issue": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/issues/%d/comments",
					strArg(args, "owner"), strArg(args, "repo"), intArg(args, "issue_number"))
				raw, apiErr := c.Do(ctx, http.MethodPost, path, token, nil, map[string]any{"body": strArg(args, "body")})
				if apiErr != nil {
					return nil, apiErr
				}
				return raw, nil
			},
			"github.close_issue": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/issues/%d",
					strArg(args, "owner"), strArg(args, "repo"), intArg(args, "issue_number"))
				raw, apiErr := c.Do(ctx, http.MethodPatch, path, token, nil, map[string]any{"state": "closed"})
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeIssue), nil
			},
		},
	}
}
