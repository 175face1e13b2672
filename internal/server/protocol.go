package server

import "encoding/json"

const (
	jsonRPCVersion  = "2.0"
	protocolVersion = "2024-11-05"
)

// JSON-RPC error codes used by the server.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// MCPRequest is one JSON-RPC request line. Notifications have no ID.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse carries either Result or Error.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError is the JSON-RPC error object; Data holds the Go error text.
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func resultResponse(id, result interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result}
}

func errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	resp := &MCPResponse{
		JSONRPC: jsonRPCVersion,
		ID:      id,
		Error:   &MCPError{Code: code, Message: message},
	}
	if data != "" {
		resp.Error.Data = data
	}
	return resp
}

// textContent wraps a tool result in MCP's content format, the result
// encoded as indented JSON text.
func textContent(v interface{}) map[string]interface{} {
	b, _ := json.MarshalIndent(v, "", "  ")
	return map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": string(b)},
		},
	}
}
