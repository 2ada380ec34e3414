package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/browsd/browsd/pkg/logging"
)

// StdioServer runs the MCP protocol over stdin/stdout (newline-delimited
// JSON-RPC). This lets MCP clients like Claude Desktop or Cursor spawn
// browsd directly instead of connecting over HTTP.
//
// Usage in a client config:
//
//	{
//	  "mcpServers": {
//	    "browsd": {
//	      "command": "browsd",
//	      "args": ["stdio"]
//	    }
//	  }
//	}
type StdioServer struct {
	server *Server
	reader io.Reader
	writer io.Writer
	log    *slog.Logger
	mu     sync.Mutex
}

// NewStdioServer creates a new stdio MCP server. The server parameter
// provides the dispatch logic and tools.
func NewStdioServer(server *Server) *StdioServer {
	return &StdioServer{
		server: server,
		reader: os.Stdin,
		writer: os.Stdout,
		log:    logging.Nop(),
	}
}

// SetLogger sets the logger. Logs go to stderr to avoid interfering with the
// stdio protocol on stdout.
func (s *StdioServer) SetLogger(log *slog.Logger) {
	if log != nil {
		s.log = log
	}
}

// SetIO overrides the default stdin/stdout for testing.
func (s *StdioServer) SetIO(reader io.Reader, writer io.Writer) {
	s.reader = reader
	s.writer = writer
}

// Run starts the stdio event loop. Blocks until EOF on stdin or an error.
func (s *StdioServer) Run() error {
	s.log.Info("MCP stdio server starting",
		"version", ServerVersion,
		"protocol", ProtocolVersion,
	)

	scanner := bufio.NewScanner(s.reader)
	// Newline-delimited JSON; allow up to 10MB per message.
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		s.log.Debug("received", "message", string(line))
		s.writeResponse(s.server.HandleMessage(line))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("stdin read error: %w", err)
	}

	s.log.Info("MCP stdio server stopped (EOF)")
	return nil
}

// writeResponse writes a response object as a single line to stdout.
func (s *StdioServer) writeResponse(resp interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("failed to marshal response", "error", err)
		return
	}

	s.log.Debug("sending", "message", string(data))

	data = append(data, '\n')
	if _, err := s.writer.Write(data); err != nil {
		s.log.Error("failed to write response", "error", err)
	}
}
