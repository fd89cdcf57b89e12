// Package oauth runs the GitHub authorization-code dance: issue the
// redirect, validate the callback against the stored state, exchange the
// code, and persist the resulting token.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"hubgate/server/internal/config"
	"hubgate/server/internal/observability"
	"hubgate/server/internal/store"
)

const (
	authorizeURL = "https://github.com/login/oauth/authorize"
	tokenURL     = "https://github.com/login/oauth/access_token"

	// Scopes requested from GitHub on every login.
	oauthScopes = "repo read:user user:email"

	// CallbackPath is where GitHub sends the user back; the full redirect_uri
	// is derived from the host serving the login request.
	CallbackPath = "/auth/callback/github"

	// LoginPath initiates a login for a user identity.
	LoginPath = "/auth/github/login"
)

// ErrInvalidRedirect means the requested redirect origin is not in the
// allow-list. Surfaced to the client as a 400, never silently defaulted.
var ErrInvalidRedirect = errors.New("oauth: redirect origin not in allow-list")

// Outcome is where a completed (or failed) callback sends the browser.
type Outcome struct {
	Success bool
	Origin  string
}

// RedirectURL is the frontend landing location for this outcome.
func (o Outcome) RedirectURL() string {
	status := "error"
	if o.Success {
		status = "success"
	}
	return o.Origin + "/integrations/callback?service=github&status=" + status
}

// Flow orchestrates login initiation and callback completion against the
// injected stores.
type Flow struct {
	cfg        config.Config
	store      store.Store
	log        *zap.SugaredLogger
	httpClient *http.Client

	// tokenURL is swappable so tests can stand in for GitHub.
	tokenURL string
}

func NewFlow(cfg config.Config, st store.Store, log *zap.SugaredLogger) *Flow {
	return &Flow{
		cfg:        cfg,
		store:      st,
		log:        log,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		tokenURL:   tokenURL,
	}
}

// Initiate validates the redirect origin, parks the pending login under a
// fresh state token, and returns the GitHub authorize URL to redirect to.
// baseURL is the address of the host serving this request.
func (f *Flow) Initiate(ctx context.Context, userID, redirectOrigin, baseURL string) (string, error) {
	if !f.cfg.TrustedOrigin(redirectOrigin) {
		return "", ErrInvalidRedirect
	}

	state, err := newStateToken()
	if err != nil {
		return "", errors.Wrap(err, "generate state")
	}

	pending := store.PendingAuth{UserID: userID, RedirectOrigin: redirectOrigin}
	if err := f.store.SaveState(ctx, state, pending, store.StateTTL); err != nil {
		return "", errors.Wrap(err, "save state")
	}

	q := url.Values{
		"client_id":    {f.cfg.ClientID},
		"redirect_uri": {strings.TrimRight(baseURL, "/") + CallbackPath},
		"scope":        {oauthScopes},
		"state":        {state},
	}
	return authorizeURL + "?" + q.Encode(), nil
}

// Complete consumes the callback. Every failure path lands the browser on a
// trusted origin with status=error; upstream error bodies are logged, never
// forwarded.
func (f *Flow) Complete(ctx context.Context, code, state string) Outcome {
	origin := f.cfg.DefaultFrontendURL()

	if code == "" || state == "" {
		return Outcome{Origin: origin}
	}

	pending, err := f.store.GetState(ctx, state)
	if err != nil {
		// Missing, expired, or already consumed: fail closed at the default
		// origin since the true one is unknown.
		return Outcome{Origin: origin}
	}

	// The stored origin was validated at login time, but re-check against
	// the current allow-list before redirecting anywhere.
	if f.cfg.TrustedOrigin(pending.RedirectOrigin) {
		origin = pending.RedirectOrigin
	}

	accessToken, err := f.exchangeCode(ctx, code)
	if err != nil {
		f.log.Warnw("oauth code exchange failed", "err", err)
		return Outcome{Origin: origin}
	}

	if err := f.store.SaveToken(ctx, pending.UserID, accessToken); err != nil {
		f.log.Errorw("persist token failed", "user_id", pending.UserID, "err", err)
		return Outcome{Origin: origin}
	}

	// Single-use enforcement: the state cannot complete a second login.
	if err := f.store.DeleteState(ctx, state); err != nil {
		f.log.Warnw("delete consumed state failed", "err", err)
	}

	observability.LogAuthEvent("callback", pending.UserID, true)
	return Outcome{Success: true, Origin: origin}
}

// Disconnect drops the stored token. Deleting an absent token is fine.
func (f *Flow) Disconnect(ctx context.Context, userID string) error {
	if err := f.store.DeleteToken(ctx, userID); err != nil {
		return err
	}
	observability.LogAuthEvent("disconnect", userID, true)
	return nil
}

func (f *Flow) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"client_id":     {f.cfg.ClientID},
		"client_secret": {f.cfg.ClientSecret},
		"code":          {code},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", errors.Wrap(err, "build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "token request")
	}
	defer resp.Body.Close()

	var tokenResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", errors.Wrap(err, "decode token response")
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("no access token in response")
	}
	return tokenResp.AccessToken, nil
}

// newStateToken returns 16 bytes of entropy, URL-safe encoded.
func newStateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RequestBaseURL reconstructs the externally visible address of the host
// serving r, honoring X-Forwarded-Proto behind a proxy.
func RequestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// LoginURL builds a ready-to-use login initiation address for a user.
func LoginURL(baseURL, userID string) string {
	return strings.TrimRight(baseURL, "/") + LoginPath + "?user_id=" + url.QueryEscape(userID)
}
