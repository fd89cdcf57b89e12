package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries all environment-driven settings. Loaded once at startup.
type Config struct {
	Env      string
	HTTPAddr string

	// GitHub OAuth app
	ClientID     string
	ClientSecret string

	// FrontendURLs is the allow-list of trusted redirect origins.
	// Never empty; the first entry is the fallback for failure redirects.
	FrontendURLs []string

	RedisURL string
}

const defaultFrontendURL = "http://localhost:3000"

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Env:          env("HUBGATE_ENV", "dev"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		ClientID:     env("GITHUB_CLIENT_ID", ""),
		ClientSecret: env("GITHUB_CLIENT_SECRET", ""),
		FrontendURLs: splitURLs(env("FRONTEND_URLS", defaultFrontendURL)),
		RedisURL:     env("REDIS_URL", "redis://localhost:6379"),
	}
}

// DefaultFrontendURL is the origin used when a callback arrives with no
// recoverable redirect target.
func (c Config) DefaultFrontendURL() string {
	return c.FrontendURLs[0]
}

// TrustedOrigin reports whether origin is in the allow-list.
func (c Config) TrustedOrigin(origin string) bool {
	for _, u := range c.FrontendURLs {
		if u == origin {
			return true
		}
	}
	return false
}

func splitURLs(raw string) []string {
	var urls []string
	for _, u := range strings.Split(raw, ",") {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		urls = []string{defaultFrontendURL}
	}
	return urls
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
