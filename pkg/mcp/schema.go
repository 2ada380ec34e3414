package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// compileInputSchema compiles a tool's inputSchema map into a validator.
// Schemas are static, so compilation failure is a programming error surfaced
// at registry construction.
func compileInputSchema(toolName string, schema map[string]interface{}) (*jsonschema.Schema, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("marshal schema for %s: %w", toolName, err)
	}

	compiled, err := jsonschema.CompileString(toolName+".schema.json", string(data))
	if err != nil {
		return nil, fmt.Errorf("compile schema for %s: %w", toolName, err)
	}
	return compiled, nil
}

// validateArguments checks tool arguments against the tool's compiled
// schema. A nil argument map is validated as an empty object so tools
// without required fields accept calls with no arguments at all.
func validateArguments(schema *jsonschema.Schema, args map[string]interface{}) error {
	if schema == nil {
		return nil
	}

	// jsonschema validates decoded JSON values; the arguments map is
	// already in that shape.
	var value interface{} = map[string]interface{}{}
	if args != nil {
		value = args
	}

	return schema.Validate(value)
}
