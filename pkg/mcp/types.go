package mcp

import "encoding/json"

// ProtocolVersion is the MCP protocol version advertised when the client
// does not send one of its own.
const ProtocolVersion = "2025-06-18"

// ServerVersion is the browsd server version.
const ServerVersion = "0.2.0"

// Recognized JSON-RPC method names. The dispatcher branches over this closed
// set; anything else is answered with a method-not-found error.
const (
	MethodInitialize       = "initialize"
	MethodToolsList        = "tools/list"
	MethodToolsCall        = "tools/call"
	MethodNotifInitialized = "notifications/initialized"
	MethodNotifCancelled   = "notifications/cancelled"
)

// JSON-RPC 2.0 Types

// JSONRPCRequest represents an incoming JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"` // string or number; absent defaults to 0
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// RequestID returns the request's id, defaulting to 0 when absent.
func (r *JSONRPCRequest) RequestID() interface{} {
	if r.ID == nil {
		return 0
	}
	return r.ID
}

// JSONRPCResponse represents an outgoing JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}

// JSONRPCError represents a JSON-RPC 2.0 error object.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// InvalidJSONResponse is the deliberately non-enveloped reply to a request
// body that is not valid JSON. It carries no jsonrpc or id fields.
type InvalidJSONResponse struct {
	Error string `json:"error"`
}

// MCP Protocol Types

// InitializeParams represents parameters for the initialize request.
type InitializeParams struct {
	ProtocolVersion string     `json:"protocolVersion,omitempty"`
	ClientInfo      ClientInfo `json:"clientInfo,omitempty"`
}

// InitializeResult represents the result of a successful initialize.
type InitializeResult struct {
	ProtocolVersion string             `json:"protocolVersion"`
	Capabilities    ServerCapabilities `json:"capabilities"`
	ServerInfo      ServerInfo         `json:"serverInfo"`
}

// ClientInfo identifies the MCP client.
type ClientInfo struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// ServerInfo identifies the MCP server.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ServerCapabilities describes server-supported features.
type ServerCapabilities struct {
	Tools        SupportedCapability    `json:"tools"`
	Browsing     SupportedCapability    `json:"browsing"`
	Experimental map[string]interface{} `json:"experimental"`
}

// SupportedCapability is a capability flag.
type SupportedCapability struct {
	Supported bool `json:"supported"`
}

// Tool Types

// ToolDefinition describes a tool exposed by the MCP server.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// ToolsListResult is the response for tools/list.
type ToolsListResult struct {
	Tools []ToolDefinition `json:"tools"`
}

// ToolCallParams are parameters for tools/call.
type ToolCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
}

// ToolResult is the result from tool execution.
type ToolResult struct {
	Content []ContentBlock `json:"content"`
}

// ContentBlock represents a content item in tool results.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Notification Types

// AckResult acknowledges a notification.
type AckResult struct {
	Ack bool `json:"ack"`
}

// CancelledParams carry the parameters of notifications/cancelled. They are
// logged for observability; no in-flight work is actually cancelled because
// no in-flight work model exists.
type CancelledParams struct {
	RequestID interface{} `json:"requestId,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}
