package tools

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"hubgate/server/pkg/githubapi"
)

func filesGroup(c *githubapi.Client) Group {
	return Group{
		Name: "files",
		Tools: []Tool{
			{
				Name:        "github.get_file_contents",
				Description: "Get file contents from a repository",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner": {Type: "string"},
						"repo":  {Type: "string"},
						"path":  {Type: "string", Description: "File path in the repository"},
						"ref":   {Type: "string", Description: "The name of the commit/branch/tag."},
					},
					Required: []string{"owner", "repo", "path"},
				},
			},
			{
				Name:        "github.create_or_update_file",
				Description: "Create or update file contents",
				InputSchema: InputSchema{
					Type: "object",
					Properties: map[string]Property{
						"owner":   {Type: "string"},
						"repo":    {Type: "string"},
						"path":    {Type: "string"},
						"message": {Type: "string", Description: "The commit message."},
						"content": {Type: "string", Description: "The new file content in Base64 encoding."},
						"sha":     {Type: "string", Description: "The blob SHA of the file being replaced (required for updating)."},
						"branch":  {Type: "string"},
					},
					Required: []string{"owner", "repo", "path", "message", "content"},
				},
			},
		},
		Handlers: map[string]Handler{
			"github.get_file_contents": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/contents/%s",
					strArg(args, "owner"), strArg(args, "repo"), strArg(args, "path"))
				var q url.Values
				if ref := strArg(args, "ref"); ref != "" {
					q = url.Values{"ref": {ref}}
				}
				raw, apiErr := c.Do(ctx, http.MethodGet, path, token, q, nil)
				if apiErr != nil {
					return nil, apiErr
				}
				return safeList(raw, serializeFile), nil
			},
			"github.create_or_update_file": func(ctx context.Context, args map[string]any, token string) (any, error) {
				path := fmt.Sprintf("repos/%s/%s/contents/%s",
					strArg(args, "owner"), strArg(args, "repo"), strArg(args, "path"))
				body := map[string]any{
					"message": strArg(args, "message"),
					"content": strArg(args, "content"),
				}
				for _, key := range []string{"sha", "branch"} {
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
