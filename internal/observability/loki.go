package observability

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// LokiClient ships structured events to a Grafana Loki push endpoint.
// When the GRAFANA_LOKI_* environment is absent the client is a no-op,
// so local runs need no Loki instance.
type LokiClient struct {
	url        string
	username   string
	apiKey     string
	httpClient *http.Client
	enabled    bool
	appName    string
	log        *zap.SugaredLogger
}

type lokiPushRequest struct {
	Streams []lokiStream `json:"streams"`
}

type lokiStream struct {
	Stream map[string]string `json:"stream"`
	Values [][]string        `json:"values"`
}

var defaultClient *LokiClient

func Init(log *zap.SugaredLogger) {
	url := os.Getenv("GRAFANA_LOKI_URL")
	username := os.Getenv("GRAFANA_LOKI_USER")
	apiKey := os.Getenv("GRAFANA_LOKI_API_KEY")

	appName := os.Getenv("HUBGATE_ENV")
	if appName == "" {
		appName = "hubgate-dev"
	}

	if url == "" || username == "" || apiKey == "" {
		log.Info("loki not configured, event shipping disabled")
		defaultClient = &LokiClient{enabled: false, appName: appName, log: log}
		return
	}

	defaultClient = &LokiClient{
		url:        url + "/loki/api/v1/push",
		username:   username,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		enabled:    true,
		appName:    appName,
		log:        log,
	}
	log.Info("loki client initialized")
}

func Push(labels map[string]string, data map[string]any) {
	if defaultClient == nil || !defaultClient.enabled {
		return
	}
	go defaultClient.push(labels, data)
}

func (c *LokiClient) push(labels map[string]string, data map[string]any) {
	if labels == nil {
		labels = make(map[string]string)
	}
	labels["app"] = c.appName

	dataJSON, err := json.Marshal(data)
	if err != nil {
		c.log.Warnw("loki marshal failed", "error", err)
		return
	}

	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	req := lokiPushRequest{
		Streams: []lokiStream{
			{
				Stream: labels,
				Values: [][]string{{timestamp, string(dataJSON)}},
			},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		c.log.Warnw("loki marshal failed", "error", err)
		return
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.log.Warnw("loki request build failed", "error", err)
		return
	}
	httpReq.SetBasicAuth(c.username, c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.log.Warnw("loki push failed", "error", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warnw("loki push rejected", "status", resp.StatusCode)
	}
}

// LogToolCall records one dispatched tool invocation.
func LogToolCall(requestID, userID, tool string, durationMs int64, status string) {
	level := "info"
	if status == "error" {
		level = "error"
	}
	Push(
		map[string]string{"type": "tool_call", "status": status, "level": level},
		map[string]any{
			"request_id":  requestID,
			"user_id":     userID,
			"tool":        tool,
			"duration_ms": durationMs,
			"status":      status,
		},
	)
}

// LogAuthEvent records an authorization flow transition (login, callback,
// disconnect) without ever including tokens or codes.
func LogAuthEvent(event, userID string, success bool) {
	level := "info"
	if !success {
		level = "error"
	}
	Push(
		map[string]string{"type": "auth", "event": event, "level": level},
		map[string]any{
			"event":   event,
			"user_id": userID,
			"success": success,
		},
	)
}
