package mcp

import "encoding/json"

// UnmarshalParams unmarshals request params into a typed struct. Empty or
// absent params yield the zero value.
func UnmarshalParams[T any](params json.RawMessage) (*T, *JSONRPCError) {
	var result T
	if len(params) == 0 {
		return &result, nil
	}
	if err := json.Unmarshal(params, &result); err != nil {
		return nil, InvalidParamsError(err.Error())
	}
	return &result, nil
}

// ToolResultText creates a text content tool result.
func ToolResultText(text string) *ToolResult {
	return &ToolResult{
		Content: []ContentBlock{
			{
				Type: "text",
				Text: text,
			},
		},
	}
}

// ToolResultJSON creates a tool result whose text block is the
// pretty-printed JSON serialization of data.
func ToolResultJSON(data interface{}) (*ToolResult, error) {
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, err
	}
	return ToolResultText(string(jsonBytes)), nil
}
