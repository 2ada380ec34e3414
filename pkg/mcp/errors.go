package mcp

import "fmt"

// JSON-RPC 2.0 error codes used by browsd.
const (
	// ErrCodeMethodNotFound indicates the method is not in the recognized set.
	ErrCodeMethodNotFound = -32601

	// ErrCodeInvalidParams indicates malformed parameters for a known method
	// or tool arguments that fail their schema.
	ErrCodeInvalidParams = -32602

	// ErrCodeToolExecution indicates tool execution failed: unknown tool
	// name, browser launch failure, navigation timeout, selector not found.
	// This is the single catch-all code for the tools/call branch.
	ErrCodeToolExecution = -32000
)

// MethodNotFoundError creates a method not found error naming the method.
func MethodNotFoundError(method string) *JSONRPCError {
	return &JSONRPCError{
		Code:    ErrCodeMethodNotFound,
		Message: fmt.Sprintf("Method '%s' not implemented", method),
	}
}

// InvalidParamsError creates an invalid params error.
func InvalidParamsError(detail string) *JSONRPCError {
	return &JSONRPCError{
		Code:    ErrCodeInvalidParams,
		Message: "Invalid params: " + detail,
	}
}

// ToolExecutionError wraps a tool failure. The message is the stringified
// underlying failure, matching what clients already parse.
func ToolExecutionError(err error) *JSONRPCError {
	return &JSONRPCError{
		Code:    ErrCodeToolExecution,
		Message: err.Error(),
	}
}

// Error implements the error interface for JSONRPCError.
func (e *JSONRPCError) Error() string {
	return fmt.Sprintf("%s (%d)", e.Message, e.Code)
}

// ErrorResponse creates a JSON-RPC error response.
func ErrorResponse(id interface{}, err *JSONRPCError) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   err,
	}
}

// SuccessResponse creates a JSON-RPC success response.
func SuccessResponse(id interface{}, result interface{}) *JSONRPCResponse {
	return &JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
}
