package mcp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// readyEvent is the first frame on every SSE stream.
type readyEvent struct {
	Event   string `json:"event"`
	Message string `json:"message"`
}

// heartbeatEvent is emitted at the configured interval for as long as the
// client stays connected.
type heartbeatEvent struct {
	Event     string `json:"event"`
	Timestamp int64  `json:"timestamp"`
}

// handleSSE serves the GET heartbeat stream. The stream is a liveness signal
// only; tool-call results are never delivered over it. It produces events
// until the client disconnects, detected through the request context.
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	connID := uuid.NewString()
	s.log.Info("SSE stream opened", "conn", connID, "remote", r.RemoteAddr)

	writeEvent := func(v interface{}) bool {
		data, err := json.Marshal(v)
		if err != nil {
			return false
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if !writeEvent(&readyEvent{Event: "ready", Message: "MCP Browser connected"}) {
		return
	}

	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("SSE stream closed", "conn", connID)
			return

		case <-ticker.C:
			if !writeEvent(&heartbeatEvent{Event: "heartbeat", Timestamp: time.Now().Unix()}) {
				s.log.Info("SSE stream closed", "conn", connID)
				return
			}
		}
	}
}
