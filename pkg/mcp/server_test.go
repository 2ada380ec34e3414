package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/browsd/browsd/pkg/browser"
)

// fakeBrowser satisfies the Browser interface without launching anything.
type fakeBrowser struct {
	openErr  error
	clickErr error
	fillErr  error
	textErr  error

	lastURL      string
	lastSelector string
	lastText     string
	body         string
}

func (b *fakeBrowser) OpenURL(url string) (*browser.OpenURLResult, error) {
	if b.openErr != nil {
		return nil, b.openErr
	}
	b.lastURL = url
	return &browser.OpenURLResult{Title: "Example Domain", URL: url}, nil
}

func (b *fakeBrowser) Click(selector string) (*browser.ClickResult, error) {
	if b.clickErr != nil {
		return nil, b.clickErr
	}
	b.lastSelector = selector
	return &browser.ClickResult{Status: "clicked", Selector: selector}, nil
}

func (b *fakeBrowser) Fill(selector, text string) (*browser.FillResult, error) {
	if b.fillErr != nil {
		return nil, b.fillErr
	}
	b.lastSelector = selector
	b.lastText = text
	return &browser.FillResult{Status: "filled", Selector: selector, Text: text}, nil
}

func (b *fakeBrowser) Text() (*browser.TextResult, error) {
	if b.textErr != nil {
		return nil, b.textErr
	}
	return &browser.TextResult{Text: b.body}, nil
}

func newTestServer(b Browser) *Server {
	if b == nil {
		b = &fakeBrowser{}
	}
	return NewServer(DefaultConfig(), b)
}

// post sends body to the server and decodes the reply into a generic map so
// tests can assert on the exact wire shape.
func post(t *testing.T, s *Server, body string) (map[string]interface{}, *http.Response) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	resp := rec.Result()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return decoded, resp
}

func rpcError(t *testing.T, resp map[string]interface{}) map[string]interface{} {
	t.Helper()
	errObj, ok := resp["error"].(map[string]interface{})
	require.True(t, ok, "expected a JSON-RPC error object, got: %v", resp)
	return errObj
}

func TestInitialize_EchoesClientVersion(t *testing.T) {
	s := newTestServer(nil)

	resp, httpResp := post(t, s, `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05","clientInfo":{"name":"test-client"}}}`)

	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	assert.Equal(t, "2.0", resp["jsonrpc"])
	assert.Equal(t, float64(1), resp["id"])

	result := resp["result"].(map[string]interface{})
	assert.Equal(t, "2024-11-05", result["protocolVersion"])

	info := result["serverInfo"].(map[string]interface{})
	assert.Equal(t, "browsd", info["name"])
	assert.Equal(t, ServerVersion, info["version"])

	caps := result["capabilities"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"supported": true}, caps["tools"])
	assert.Equal(t, map[string]interface{}{"supported": true}, caps["browsing"])
	assert.Equal(t, map[string]interface{}{}, caps["experimental"])
}

func TestInitialize_DefaultVersionWhenAbsent(t *testing.T) {
	s := newTestServer(nil)

	tests := []struct {
		name string
		body string
	}{
		{"no params", `{"jsonrpc":"2.0","id":1,"method":"initialize"}`},
		{"empty params", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`},
		{"empty version", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":""}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := post(t, s, tt.body)
			result := resp["result"].(map[string]interface{})
			assert.Equal(t, ProtocolVersion, result["protocolVersion"])
		})
	}
}

func TestToolsList_StaticCatalog(t *testing.T) {
	s := newTestServer(nil)

	resp, _ := post(t, s, `{"jsonrpc":"2.0","id":7,"method":"tools/list"}`)
	result := resp["result"].(map[string]interface{})
	tools := result["tools"].([]interface{})
	require.Len(t, tools, 4)

	var names []string
	for _, raw := range tools {
		tool := raw.(map[string]interface{})
		names = append(names, tool["name"].(string))
		assert.NotEmpty(t, tool["description"])

		schema := tool["inputSchema"].(map[string]interface{})
		assert.Equal(t, "object", schema["type"])
	}
	assert.Equal(t, []string{"open_url", "click", "fill_form", "get_text"}, names)

	// The catalog is identical across calls.
	again, _ := post(t, s, `{"jsonrpc":"2.0","id":8,"method":"tools/list"}`)
	assert.Equal(t, result["tools"], again["result"].(map[string]interface{})["tools"])
}

func TestToolsCall_OpenURL(t *testing.T) {
	fake := &fakeBrowser{}
	s := newTestServer(fake)

	resp, _ := post(t, s, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"open_url","arguments":{"url":"https://example.com"}}}`)
	require.Nil(t, resp["error"])
	assert.Equal(t, "https://example.com", fake.lastURL)

	result := resp["result"].(map[string]interface{})
	content := result["content"].([]interface{})
	require.Len(t, content, 1)

	block := content[0].(map[string]interface{})
	assert.Equal(t, "text", block["type"])

	// The text payload is itself JSON.
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(block["text"].(string)), &payload))
	assert.Equal(t, "Example Domain", payload["title"])
	assert.Equal(t, "https://example.com", payload["url"])
}

func TestToolsCall_ClickFillGetText(t *testing.T) {
	fake := &fakeBrowser{body: "hello world"}
	s := newTestServer(fake)

	resp, _ := post(t, s, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"click","arguments":{"selector":"#submit"}}}`)
	require.Nil(t, resp["error"])
	assert.Equal(t, "#submit", fake.lastSelector)

	resp, _ = post(t, s, `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"fill_form","arguments":{"selector":"#name","text":"Alice"}}}`)
	require.Nil(t, resp["error"])
	assert.Equal(t, "#name", fake.lastSelector)
	assert.Equal(t, "Alice", fake.lastText)

	resp, _ = post(t, s, `{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"get_text","arguments":{}}}`)
	require.Nil(t, resp["error"])
	block := resp["result"].(map[string]interface{})["content"].([]interface{})[0].(map[string]interface{})

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(block["text"].(string)), &payload))
	assert.Equal(t, "hello world", payload["text"])
}

func TestToolsCall_UnknownTool(t *testing.T) {
	s := newTestServer(nil)

	resp, httpResp := post(t, s, `{"jsonrpc":"2.0","id":9,"method":"tools/call","params":{"name":"screenshot","arguments":{}}}`)

	assert.Equal(t, http.StatusOK, httpResp.StatusCode, "JSON-RPC errors ride on HTTP 200")
	errObj := rpcError(t, resp)
	assert.Equal(t, float64(ErrCodeToolExecution), errObj["code"])
	assert.Contains(t, errObj["message"], "screenshot")
}

func TestToolsCall_MissingRequiredArgument(t *testing.T) {
	s := newTestServer(nil)

	tests := []struct {
		name string
		body string
	}{
		{"open_url without url", `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"open_url","arguments":{}}}`},
		{"click without selector", `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"click"}}`},
		{"fill_form without text", `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"fill_form","arguments":{"selector":"#name"}}}`},
		{"open_url with non-string url", `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"open_url","arguments":{"url":42}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := post(t, s, tt.body)
			errObj := rpcError(t, resp)
			assert.Equal(t, float64(ErrCodeInvalidParams), errObj["code"])
			assert.Contains(t, errObj["message"], "Invalid params")
		})
	}
}

func TestToolsCall_ExecutionFailure(t *testing.T) {
	fake := &fakeBrowser{openErr: errors.New("navigation failed: net::ERR_NAME_NOT_RESOLVED")}
	s := newTestServer(fake)

	resp, _ := post(t, s, `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"open_url","arguments":{"url":"https://nope.invalid"}}}`)

	errObj := rpcError(t, resp)
	assert.Equal(t, float64(ErrCodeToolExecution), errObj["code"])
	assert.Contains(t, errObj["message"], "ERR_NAME_NOT_RESOLVED")
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer(nil)

	resp, _ := post(t, s, `{"jsonrpc":"2.0","id":1,"method":"resources/list"}`)

	errObj := rpcError(t, resp)
	assert.Equal(t, float64(ErrCodeMethodNotFound), errObj["code"])
	assert.Equal(t, "Method 'resources/list' not implemented", errObj["message"])
}

func TestNotifications_Acknowledged(t *testing.T) {
	s := newTestServer(nil)

	for _, method := range []string{"notifications/initialized", "notifications/cancelled"} {
		resp, _ := post(t, s, `{"jsonrpc":"2.0","method":"`+method+`","params":{"requestId":5,"reason":"user abort"}}`)
		require.Nil(t, resp["error"])
		result := resp["result"].(map[string]interface{})
		assert.Equal(t, true, result["ack"])
	}
}

func TestRequestID_DefaultsToZero(t *testing.T) {
	s := newTestServer(nil)

	resp, _ := post(t, s, `{"jsonrpc":"2.0","method":"tools/list"}`)
	assert.Equal(t, float64(0), resp["id"])
}

func TestInvalidJSON_BareErrorObject(t *testing.T) {
	s := newTestServer(nil)

	resp, httpResp := post(t, s, `{not json`)

	assert.Equal(t, http.StatusOK, httpResp.StatusCode)
	assert.Equal(t, "invalid JSON", resp["error"])

	// Deliberately not a JSON-RPC envelope.
	_, hasJSONRPC := resp["jsonrpc"]
	_, hasID := resp["id"]
	assert.False(t, hasJSONRPC)
	assert.False(t, hasID)
	assert.Len(t, resp, 1)
}

func TestHTTPMethodNotAllowed(t *testing.T) {
	s := newTestServer(nil)

	req := httptest.NewRequest(http.MethodPut, "/", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(nil)

	// Preflight with an origin echoes it back.
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	// No origin falls back to the wildcard.
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
