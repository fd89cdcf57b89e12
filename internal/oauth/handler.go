package oauth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the flow over HTTP.
type Handler struct {
	flow *Flow
	log  *zap.SugaredLogger
}

func NewHandler(flow *Flow, log *zap.SugaredLogger) *Handler {
	return &Handler{flow: flow, log: log}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get(LoginPath, h.login)
	r.Get(CallbackPath, h.callback)
	r.Post("/auth/disconnect", h.disconnect)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = "default"
	}

	redirectOrigin := r.URL.Query().Get("redirect_origin")
	if redirectOrigin == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "redirect_origin is required"})
		return
	}

	authURL, err := h.flow.Initiate(r.Context(), userID, redirectOrigin, RequestBaseURL(r))
	if err == ErrInvalidRedirect {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid redirect_origin"})
		return
	}
	if err != nil {
		h.log.Errorw("login initiation failed", "user_id", userID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to start login"})
		return
	}

	http.Redirect(w, r, authURL, http.StatusFound)
}

func (h *Handler) callback(w http.ResponseWriter, r *http.Request) {
	outcome := h.flow.Complete(r.Context(), r.URL.Query().Get("code"), r.URL.Query().Get("state"))
	http.Redirect(w, r, outcome.RedirectURL(), http.StatusFound)
}

func (h *Handler) disconnect(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON body"})
		return
	}
	if payload.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing user_id"})
		return
	}

	if err := h.flow.Disconnect(r.Context(), payload.UserID); err != nil {
		h.log.Errorw("disconnect failed", "user_id", payload.UserID, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to disconnect"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "service": "github"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
