// Package mcp implements the Model Context Protocol (MCP) server for browsd.
//
// MCP lets AI agents discover and drive the managed browser page through a
// standardized JSON-RPC 2.0 based protocol: the agent performs the
// initialize handshake, lists the available tools, and invokes them with
// tools/call.
//
// # Protocol Version
//
// This implementation follows MCP protocol version 2025-06-18. The
// initialize response echoes whatever protocolVersion the client sent, so
// older clients keep working.
//
// # Tools (4 total)
//
//   - open_url: navigate the page to a URL
//   - click: click the first element matching a CSS selector
//   - fill_form: set the value of a form field
//   - get_text: read the first 1000 characters of the page body text
//
// # Transports
//
// HTTP (primary): JSON-RPC over POST / plus an SSE heartbeat stream on GET /.
// Stdio: "browsd stdio" speaks newline-delimited JSON-RPC over stdin/stdout.
//
// # Error Behavior
//
// A body that is not valid JSON gets the bare {"error": "invalid JSON"}
// object without the JSON-RPC envelope. Existing clients depend on that
// shape, so it is preserved even though it breaks the envelope contract.
// Everything else is enveloped: unrecognized methods are -32601, malformed
// tool arguments are -32602, and any tool execution failure (unknown tool,
// launch failure, navigation or selector errors) is -32000 with the
// underlying message. JSON-RPC errors ride on HTTP 200.
package mcp
