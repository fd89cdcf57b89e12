package oauth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hubgate/server/internal/store"
)

func newTestRouter(t *testing.T) (chi.Router, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	f := NewFlow(testConfig(), st, zap.NewNop().Sugar())
	h := NewHandler(f, zap.NewNop().Sugar())
	r := chi.NewRouter()
	h.Routes(r)
	return r, st
}

func TestLoginRedirectsToGitHub(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, LoginPath+"?user_id=u1&redirect_origin=http://localhost:3000", nil)
	req.Host = "broker.local:8080"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, authorizeURL) {
		t.Errorf("Location = %q", loc)
	}
	if !strings.Contains(loc, "state=") {
		t.Error("authorize URL missing state")
	}
	if !strings.Contains(loc, "broker.local%3A8080") {
		t.Errorf("redirect_uri not derived from request host: %q", loc)
	}
}

func TestLoginMissingRedirectOrigin(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, LoginPath+"?user_id=u1", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "redirect_origin is required" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestLoginUntrustedOrigin(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, LoginPath+"?user_id=u1&redirect_origin=http://evil.example.com", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["error"] != "Invalid redirect_origin" {
		t.Errorf("error = %q", body["error"])
	}
}

func TestCallbackBadStateRedirectsWithError(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, CallbackPath+"?code=abc&state=forged", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	loc := rec.Header().Get("Location")
	if loc != "http://localhost:3000/integrations/callback?service=github&status=error" {
		t.Errorf("Location = %q", loc)
	}
}

func TestDisconnectEndpoint(t *testing.T) {
	r, st := newTestRouter(t)
	st.SaveToken(httptest.NewRequest("GET", "/", nil).Context(), "u1", "gho_x")

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"malformed JSON", "{", http.StatusBadRequest, "Invalid JSON body"},
		{"missing user_id", `{}`, http.StatusBadRequest, "Missing user_id"},
		{"connected user", `{"user_id":"u1"}`, http.StatusOK, ""},
		{"already disconnected", `{"user_id":"u1"}`, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/auth/disconnect", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.wantErr != "" {
				if body["error"] != tt.wantErr {
					t.Errorf("error = %v", body["error"])
				}
				return
			}
			if body["success"] != true || body["service"] != "github" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestRequestBaseURL(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Host = "broker.local:8080"
	if got := RequestBaseURL(req); got != "http://broker.local:8080" {
		t.Errorf("RequestBaseURL = %q", got)
	}

	req.Header.Set("X-Forwarded-Proto", "https")
	if got := RequestBaseURL(req); got != "https://broker.local:8080" {
		t.Errorf("forwarded RequestBaseURL = %q", got)
	}
}
