package mcp

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/browsd/browsd/pkg/browser"
)

// Browser performs the page actions behind the browser tools. It is injected
// into the server at construction; pkg/browser's Manager is the production
// implementation.
type Browser interface {
	OpenURL(url string) (*browser.OpenURLResult, error)
	Click(selector string) (*browser.ClickResult, error)
	Fill(selector, text string) (*browser.FillResult, error)
	Text() (*browser.TextResult, error)
}

// ToolHandler is the signature for tool execution functions.
type ToolHandler func(args map[string]interface{}, server *Server) (*ToolResult, error)

// Tool represents a registered MCP tool.
type Tool struct {
	Definition ToolDefinition
	Handler    ToolHandler
	schema     *jsonschema.Schema
}

// ToolRegistry manages all registered MCP tools.
// Tools are stored in a slice to preserve registration order for tools/list.
type ToolRegistry struct {
	tools  []*Tool
	byName map[string]*Tool
	server *Server
}

// NewToolRegistry creates a new tool registry and registers the browser
// tools. Panics if a static tool schema does not compile; the schemas ship
// with the binary, so that is a build defect, not a runtime condition.
func NewToolRegistry(server *Server) *ToolRegistry {
	r := &ToolRegistry{
		tools:  make([]*Tool, 0, 4),
		byName: make(map[string]*Tool, 4),
		server: server,
	}

	handlers := map[string]ToolHandler{
		"open_url":  handleOpenURL,
		"click":     handleClick,
		"fill_form": handleFillForm,
		"get_text":  handleGetText,
	}

	// Register in definition order (from tool_defs.go) to guarantee
	// consistent ordering in tools/list responses.
	for _, def := range allToolDefinitions() {
		handler, ok := handlers[def.Name]
		if !ok {
			continue
		}
		schema, err := compileInputSchema(def.Name, def.InputSchema)
		if err != nil {
			panic(err)
		}
		r.Register(&Tool{
			Definition: def,
			Handler:    handler,
			schema:     schema,
		})
	}

	return r
}

// Register adds a tool to the registry.
func (r *ToolRegistry) Register(tool *Tool) {
	r.tools = append(r.tools, tool)
	r.byName[tool.Definition.Name] = tool
}

// Get retrieves a tool by name.
func (r *ToolRegistry) Get(name string) *Tool {
	return r.byName[name]
}

// List returns all tool definitions in registration order.
func (r *ToolRegistry) List() []ToolDefinition {
	defs := make([]ToolDefinition, 0, len(r.tools))
	for _, tool := range r.tools {
		defs = append(defs, tool.Definition)
	}
	return defs
}

// Execute executes a tool by name. An unknown tool name or a handler failure
// is a tool-execution error; arguments that fail the tool's schema are an
// invalid-params error.
func (r *ToolRegistry) Execute(name string, args map[string]interface{}) (*ToolResult, *JSONRPCError) {
	tool := r.byName[name]
	if tool == nil {
		return nil, ToolExecutionError(fmt.Errorf("unknown tool: %s", name))
	}

	if err := validateArguments(tool.schema, args); err != nil {
		return nil, InvalidParamsError(err.Error())
	}

	result, err := tool.Handler(args, r.server)
	if err != nil {
		return nil, ToolExecutionError(err)
	}
	return result, nil
}

// =============================================================================
// Tool handlers
// =============================================================================

func handleOpenURL(args map[string]interface{}, s *Server) (*ToolResult, error) {
	result, err := s.browser.OpenURL(getString(args, "url", ""))
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(result)
}

func handleClick(args map[string]interface{}, s *Server) (*ToolResult, error) {
	result, err := s.browser.Click(getString(args, "selector", ""))
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(result)
}

func handleFillForm(args map[string]interface{}, s *Server) (*ToolResult, error) {
	result, err := s.browser.Fill(
		getString(args, "selector", ""),
		getString(args, "text", ""),
	)
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(result)
}

func handleGetText(args map[string]interface{}, s *Server) (*ToolResult, error) {
	result, err := s.browser.Text()
	if err != nil {
		return nil, err
	}
	return ToolResultJSON(result)
}

// =============================================================================
// Argument extraction helpers
// =============================================================================

func getString(args map[string]interface{}, key, defaultVal string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return defaultVal
}
