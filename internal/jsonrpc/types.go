package jsonrpc

import "encoding/json"

// Request is the inbound MCP call envelope. Meta carries the caller-supplied
// identity; this service does not authenticate it (test-mode trust boundary).
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	Meta    Meta            `json:"meta,omitempty"`
}

// Meta is the per-call metadata block.
type Meta struct {
	UserID string `json:"user_id,omitempty"`
}

// Response is the uniform result envelope. At most one of Result and Error is
// populated; ID is always echoed back verbatim.
type Response struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id,omitempty"`
	Result  interface{} `json:"result,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error is a JSON-RPC 2.0 Error
type Error struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// JSON-RPC 2.0 standard error codes
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)
