package githubapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
)

func TestDoSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q, want Bearer tok-1", got)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.github+json" {
			t.Errorf("Accept = %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "10" {
			t.Errorf("per_page = %q, want 10", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id": 1, "name": "repo-a"}]`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	q := url.Values{"per_page": {"10"}}
	got, apiErr := c.Do(context.Background(), http.MethodGet, "user/repos", "tok-1", q, nil)
	if apiErr != nil {
		t.Fatalf("Do returned error: %v", apiErr)
	}
	want := []any{map[string]any{"id": float64(1), "name": "repo-a"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Do = %#v, want %#v", got, want)
	}
}

func TestDoNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	got, apiErr := c.Do(context.Background(), http.MethodDelete, "user/starred/a/b", "tok", nil, nil)
	if apiErr != nil {
		t.Fatalf("Do returned error: %v", apiErr)
	}
	if !reflect.DeepEqual(got, NoContent) {
		t.Errorf("Do = %#v, want NoContent marker", got)
	}
}

func TestDoUpstreamError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantDetails any
	}{
		{
			"structured error body",
			http.StatusNotFound,
			`{"message":"Not Found","documentation_url":"https://docs.github.com"}`,
			map[string]any{"message": "Not Found", "documentation_url": "https://docs.github.com"},
		},
		{
			"plain text body",
			http.StatusBadGateway,
			"upstream exploded",
			"upstream exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClientWithBaseURL(srv.URL)
			_, apiErr := c.Do(context.Background(), http.MethodGet, "repos/a/b", "tok", nil, nil)
			if apiErr == nil {
				t.Fatal("Do returned nil error for non-2xx status")
			}
			if apiErr.Message == "" {
				t.Error("APIError.Message is empty")
			}
			if !reflect.DeepEqual(apiErr.Details, tt.wantDetails) {
				t.Errorf("Details = %#v, want %#v", apiErr.Details, tt.wantDetails)
			}
		})
	}
}

func TestDoTransportFailure(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	_, apiErr := c.Do(context.Background(), http.MethodGet, "user", "tok", nil, nil)
	if apiErr == nil {
		t.Fatal("Do returned nil error for unreachable upstream")
	}
	if _, ok := apiErr.Details.(string); !ok {
		t.Errorf("Details = %#v, want transport error string", apiErr.Details)
	}
}

func TestDoSendsJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"number": 7}`))
	}))
	defer srv.Close()

	c := NewClientWithBaseURL(srv.URL)
	got, apiErr := c.Do(context.Background(), http.MethodPost, "repos/a/b/issues", "tok", nil,
		map[string]any{"title": "bug"})
	if apiErr != nil {
		t.Fatalf("Do returned error: %v", apiErr)
	}
	want := map[string]any{"number": float64(7)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Do = %#v, want %#v", got, want)
	}
}
