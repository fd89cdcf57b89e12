package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"hubgate/server/pkg/githubapi"
)

func TestNewRegistryAggregatesAllGroups(t *testing.T) {
	r := New(githubapi.NewClient())

	wantTools := []string{
		"github.get_me",
		"github.list_repos", "github.get_repo_details", "github.list_branches",
		"github.list_issues", "github.create_issue", "github.comment_on_issue", "github.close_issue",
		"github.list_pull_requests", "github.get_pull_request", "github.create_pull_request",
		"github.comment_on_pull_request", "github.merge_pull_request",
		"github.list_commits", "github.get_commit",
		"github.get_file_contents", "github.create_or_update_file",
	}

	if len(r.Schemas()) != len(wantTools) {
		t.Fatalf("registry has %d tools, want %d", len(r.Schemas()), len(wantTools))
	}
	for _, name := range wantTools {
		if _, ok := r.handlers[name]; !ok {
			t.Errorf("handler missing for %s", name)
		}
		if _, ok := r.schemas[name]; !ok {
			t.Errorf("schema missing for %s", name)
		}
	}
}

func TestCallUnknownTool(t *testing.T) {
	r := New(githubapi.NewClient())
	got := r.Call(context.Background(), "github.not_a_tool", nil, "tok")
	want := map[string]any{"error": "Unknown tool"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Call = %#v, want %#v", got, want)
	}
}

func TestCallValidationError(t *testing.T) {
	r := New(githubapi.NewClient())
	got := r.Call(context.Background(), "github.get_repo_details", map[string]any{"owner": "octocat"}, "tok")
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Call = %#v, want error object", got)
	}
	if m["error"] != "missing required parameter(s): repo" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestCallRecoversHandlerPanic(t *testing.T) {
	r := newRegistry(Group{
		Name:  "boom",
		Tools: []Tool{{Name: "boom.tool", InputSchema: InputSchema{Type: "object"}}},
		Handlers: map[string]Handler{
			"boom.tool": func(context.Context, map[string]any, string) (any, error) {
				panic("handler exploded")
			},
		},
	})

	got := r.Call(context.Background(), "boom.tool", nil, "tok")
	m, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Call = %#v, want error object", got)
	}
	if m["error"] != "Tool execution failed: handler exploded" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestCallWrapsPlainHandlerError(t *testing.T) {
	r := newRegistry(Group{
		Name:  "bad",
		Tools: []Tool{{Name: "bad.tool", InputSchema: InputSchema{Type: "object"}}},
		Handlers: map[string]Handler{
			"bad.tool": func(context.Context, map[string]any, string) (any, error) {
				return nil, errors.New("nope")
			},
		},
	})

	got := r.Call(context.Background(), "bad.tool", nil, "tok")
	want := map[string]any{"error": "Tool execution failed: nope"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Call = %#v, want %#v", got, want)
	}
}

func TestCallPropagatesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not Found"}`))
	}))
	defer srv.Close()

	r := New(githubapi.NewClientWithBaseURL(srv.URL))
	got := r.Call(context.Background(), "github.get_me", nil, "tok")
	apiErr, ok := got.(*githubapi.APIError)
	if !ok {
		t.Fatalf("Call = %#v, want *githubapi.APIError passed through", got)
	}
	if apiErr.Details == nil {
		t.Error("gateway error lost its details")
	}
}

func TestCallListReposSerializesAndClamps(t *testing.T) {
	var gotPerPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		w.Write([]byte(`[{"id":1,"name":"a","html_url":"u","stargazers_count":3}]`))
	}))
	defer srv.Close()

	r := New(githubapi.NewClientWithBaseURL(srv.URL))
	got := r.Call(context.Background(), "github.list_repos", map[string]any{"limit": float64(99)}, "tok")

	if gotPerPage != "30" {
		t.Errorf("per_page = %q, want clamped 30", gotPerPage)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 1 {
		t.Fatalf("Call = %#v, want one serialized repo", got)
	}
	repo := list[0].(map[string]any)
	if repo["stars"] != float64(3) || repo["url"] != "u" {
		t.Errorf("serialized repo = %#v", repo)
	}
}
