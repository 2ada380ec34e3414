package mcp

// allToolDefinitions returns the 4 tool definitions in display order. The
// catalog is static: tools/list always returns exactly these entries.
func allToolDefinitions() []ToolDefinition {
	return []ToolDefinition{
		defOpenURL,
		defClick,
		defFillForm,
		defGetText,
	}
}

var defOpenURL = ToolDefinition{
	Name:        "open_url",
	Description: "Open a URL in the browser",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"url": map[string]interface{}{
				"type":        "string",
				"description": "The URL to navigate to",
			},
		},
		"required": []string{"url"},
	},
}

var defClick = ToolDefinition{
	Name:        "click",
	Description: "Click an element by CSS selector",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the element to click",
			},
		},
		"required": []string{"selector"},
	},
}

var defFillForm = ToolDefinition{
	Name:        "fill_form",
	Description: "Fill a form field",
	InputSchema: map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"selector": map[string]interface{}{
				"type":        "string",
				"description": "CSS selector of the input to fill",
			},
			"text": map[string]interface{}{
				"type":        "string",
				"description": "Text to set as the input's value",
			},
		},
		"required": []string{"selector", "text"},
	},
}

var defGetText = ToolDefinition{
	Name:        "get_text",
	Description: "Retrieve the first 1000 characters of the page text",
	InputSchema: map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	},
}
