package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hubgate/server/internal/jsonrpc"
	"hubgate/server/internal/middleware"
	"hubgate/server/internal/oauth"
	"hubgate/server/internal/observability"
	"hubgate/server/internal/store"
	"hubgate/server/internal/tools"
	"hubgate/server/pkg/githubapi"
)

// ============================================================
// MCP Dispatcher
// ============================================================

// Handler serves the single MCP endpoint. Discovery needs no identity;
// invocation resolves the caller's credential and turns a missing one into a
// recoverable 401 carrying a ready-to-use login URL.
type Handler struct {
	registry *tools.Registry
	creds    store.CredentialStore
	log      *zap.SugaredLogger
}

func NewHandler(reg *tools.Registry, creds store.CredentialStore, log *zap.SugaredLogger) *Handler {
	return &Handler{registry: reg, creds: creds, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/mcp", h.dispatch)
}

// callParams is the invocation payload under params.
type callParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	var req jsonrpc.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON body"})
		return
	}

	// Discovery is unauthenticated and unfiltered.
	if req.Method == "tools/list" {
		writeJSON(w, http.StatusOK, jsonrpc.Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]any{"tools": h.registry.Schemas()},
		})
		return
	}

	userID := req.Meta.UserID
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "meta.user_id is required (test mode)"})
		return
	}

	token, err := h.creds.GetToken(r.Context(), userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			h.log.Errorw("credential lookup failed", "user_id", userID, "error", err)
		}
		authURL := oauth.LoginURL(oauth.RequestBaseURL(r), userID)
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error":    fmt.Sprintf("GitHub not connected for user_id=%s", userID),
			"auth_url": authURL,
			"message":  fmt.Sprintf("Please visit %s to connect your GitHub account.", authURL),
		})
		return
	}

	if req.Method == "tools/call" {
		var params callParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON body"})
				return
			}
		}
		if params.Name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Tool name is required in arguments"})
			return
		}
		if params.Arguments == nil {
			params.Arguments = map[string]any{}
		}

		start := time.Now()
		result := h.registry.Call(r.Context(), params.Name, params.Arguments, token)
		status := "ok"
		switch v := result.(type) {
		case *githubapi.APIError:
			status = "error"
		case map[string]any:
			if _, failed := v["error"]; failed {
				status = "error"
			}
		}
		observability.LogToolCall(middleware.RequestIDFrom(r.Context()), userID, params.Name, time.Since(start).Milliseconds(), status)

		writeJSON(w, http.StatusOK, jsonrpc.Response{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  result,
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid MCP method"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
