package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readEvent reads SSE lines until one data frame has been consumed and
// returns its decoded payload.
func readEvent(t *testing.T, r *bufio.Reader) map[string]interface{} {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if line == "" {
			continue
		}
		require.True(t, strings.HasPrefix(line, "data: "), "unexpected SSE line: %q", line)

		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &payload))
		return payload
	}
}

func newSSETestServer(t *testing.T, heartbeat time.Duration) (*httptest.Server, *Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.HeartbeatInterval = heartbeat
	s := NewServer(cfg, &fakeBrowser{})

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts, s
}

func TestSSE_ReadyThenHeartbeats(t *testing.T) {
	ts, _ := newSSETestServer(t, 20*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	assert.Equal(t, "keep-alive", resp.Header.Get("Connection"))
	assert.Equal(t, "no", resp.Header.Get("X-Accel-Buffering"))

	reader := bufio.NewReader(resp.Body)

	ready := readEvent(t, reader)
	assert.Equal(t, "ready", ready["event"])
	assert.Equal(t, "MCP Browser connected", ready["message"])

	// Two heartbeats in a row, each carrying an epoch timestamp.
	now := float64(time.Now().Unix())
	for i := 0; i < 2; i++ {
		hb := readEvent(t, reader)
		assert.Equal(t, "heartbeat", hb["event"])
		assert.InDelta(t, now, hb["timestamp"].(float64), 10)
	}
}

func TestSSE_ClientDisconnectStopsStream(t *testing.T) {
	ts, _ := newSSETestServer(t, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	reader := bufio.NewReader(resp.Body)
	readEvent(t, reader) // ready

	cancel()

	// The stream ends once the server observes the dropped connection.
	deadline := time.After(2 * time.Second)
	done := make(chan struct{})
	go func() {
		for {
			if _, err := reader.ReadString('\n'); err != nil {
				close(done)
				return
			}
		}
	}()
	select {
	case <-done:
	case <-deadline:
		t.Fatal("stream did not terminate after client disconnect")
	}
}
