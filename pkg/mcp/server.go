package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/browsd/browsd/pkg/logging"
)

// Server is the MCP protocol server. It owns the request dispatcher and the
// HTTP transport; the browser session is injected at construction and shared
// by every tool call.
type Server struct {
	config     *Config
	browser    Browser
	tools      *ToolRegistry
	httpServer *http.Server
	mu         sync.RWMutex
	running    bool
	log        *slog.Logger
}

// NewServer creates a new MCP server around the given browser session.
func NewServer(cfg *Config, b Browser) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	s := &Server{
		config:  cfg,
		browser: b,
		log:     logging.Nop(),
	}
	s.tools = NewToolRegistry(s)
	return s
}

// SetLogger sets the operational logger for the server.
func (s *Server) SetLogger(log *slog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if log != nil {
		s.log = log
	}
}

// Start starts the MCP HTTP server.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("MCP server is already running")
	}

	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid MCP config: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleMCP)

	s.httpServer = &http.Server{
		Addr:        s.config.Address(),
		Handler:     s.withMiddleware(mux),
		ReadTimeout: s.config.ReadTimeout,
		// No WriteTimeout: the SSE heartbeat stream stays open for the
		// lifetime of the client connection.
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("MCP server error", "error", err)
		}
	}()

	s.running = true
	s.log.Info("MCP server listening", "addr", s.config.Address(), "path", s.config.Path)
	return nil
}

// Stop gracefully shuts down the MCP HTTP server. The browser session is
// owned by the caller and must be shut down separately.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("MCP server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// Handler returns the HTTP handler for the MCP server.
// This is useful for testing without starting the HTTP server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.handleMCP)
	return s.withMiddleware(mux)
}

// withMiddleware wraps the handler with fully open CORS. The endpoint is
// meant for local LLM frontends that send requests from arbitrary origins.
func (s *Server) withMiddleware(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Echo the origin when present so credentialed requests work;
		// browsers reject "*" combined with credentials.
		if origin := r.Header.Get("Origin"); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		handler.ServeHTTP(w, r)
	})
}

// handleMCP is the main handler for MCP requests.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		// SSE heartbeat stream
		s.handleSSE(w, r)
	case http.MethodPost:
		// JSON-RPC request
		s.handleJSONRPC(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleJSONRPC handles JSON-RPC POST requests. Every reply, including
// JSON-RPC errors and the bare invalid-JSON object, is HTTP 200.
func (s *Server) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeJSON(w, &InvalidJSONResponse{Error: "invalid JSON"})
		return
	}

	s.writeJSON(w, s.HandleMessage(body))
}

// HandleMessage parses one JSON-RPC message and dispatches it. The return
// value is the JSON-marshalable response object: a *JSONRPCResponse, or the
// non-enveloped InvalidJSONResponse when the body does not parse. Shared by
// the HTTP and stdio transports.
func (s *Server) HandleMessage(data []byte) interface{} {
	var req JSONRPCRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.log.Warn("could not parse request body", "error", err)
		return &InvalidJSONResponse{Error: "invalid JSON"}
	}

	return s.dispatch(&req)
}

// dispatch routes the request to the appropriate handler. The method set is
// closed; anything unrecognized falls through to method-not-found.
func (s *Server) dispatch(req *JSONRPCRequest) *JSONRPCResponse {
	id := req.RequestID()

	switch req.Method {
	case MethodInitialize:
		return s.handleInitialize(id, req.Params)

	case MethodToolsList:
		return s.handleToolsList(id)

	case MethodToolsCall:
		return s.handleToolsCall(id, req.Params)

	case MethodNotifInitialized:
		s.log.Debug("client initialized")
		return SuccessResponse(id, &AckResult{Ack: true})

	case MethodNotifCancelled:
		// Acknowledged but nothing is cancelled: there is no in-flight
		// work model to cancel into.
		params, _ := UnmarshalParams[CancelledParams](req.Params)
		if params != nil {
			s.log.Info("operation cancelled by client",
				"requestId", params.RequestID, "reason", params.Reason)
		}
		return SuccessResponse(id, &AckResult{Ack: true})

	default:
		s.log.Warn("unknown method", "method", req.Method)
		return ErrorResponse(id, MethodNotFoundError(req.Method))
	}
}

// handleInitialize handles the initialize request. The client's
// protocolVersion is echoed back when present; absent or unparsable params
// fall back to the default version.
func (s *Server) handleInitialize(id interface{}, params json.RawMessage) *JSONRPCResponse {
	version := ProtocolVersion
	if initParams, err := UnmarshalParams[InitializeParams](params); err == nil {
		if initParams.ProtocolVersion != "" {
			version = initParams.ProtocolVersion
		}
	}

	s.log.Info("initialize", "protocolVersion", version)

	return SuccessResponse(id, &InitializeResult{
		ProtocolVersion: version,
		Capabilities: ServerCapabilities{
			Tools:        SupportedCapability{Supported: true},
			Browsing:     SupportedCapability{Supported: true},
			Experimental: map[string]interface{}{},
		},
		ServerInfo: ServerInfo{
			Name:        "browsd",
			Version:     ServerVersion,
			Description: "Playwright MCP browser agent",
		},
	})
}

// handleToolsList returns the static tool catalog.
func (s *Server) handleToolsList(id interface{}) *JSONRPCResponse {
	return SuccessResponse(id, &ToolsListResult{
		Tools: s.tools.List(),
	})
}

// handleToolsCall executes a tool and wraps its result or failure.
func (s *Server) handleToolsCall(id interface{}, params json.RawMessage) *JSONRPCResponse {
	callParams, rpcErr := UnmarshalParams[ToolCallParams](params)
	if rpcErr != nil {
		return ErrorResponse(id, rpcErr)
	}

	s.log.Info("tool call", "tool", callParams.Name)

	result, rpcErr := s.tools.Execute(callParams.Name, callParams.Arguments)
	if rpcErr != nil {
		s.log.Warn("tool execution failed",
			"tool", callParams.Name, "code", rpcErr.Code, "error", rpcErr.Message)
		return ErrorResponse(id, rpcErr)
	}

	return SuccessResponse(id, result)
}

// writeJSON writes any response object with HTTP 200.
func (s *Server) writeJSON(w http.ResponseWriter, resp interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to write response", "error", err)
	}
}
