// Package protocol defines the MCP JSON-RPC 2.0 message types and error codes.
//
// This package provides the low-level wire structures used by the server.
// Most users should use the higher-level kagimcp package instead.
//
// # Request and Response Types
//
// The package defines the core JSON-RPC 2.0 message types:
//
//	type Request struct {
//	    JSONRPC string          `json:"jsonrpc"`
//	    ID      json.RawMessage `json:"id"`
//	    Method  string          `json:"method"`
//	    Params  json.RawMessage `json:"params,omitempty"`
//	}
//
//	type Response struct {
//	    JSONRPC string          `json:"jsonrpc"`
//	    ID      json.RawMessage `json:"id"`
//	    Result  any             `json:"result,omitempty"`
//	    Error   *Error          `json:"error,omitempty"`
//	}
//
// A Response is only built through NewResponse or NewErrorResponse, so exactly
// one of Result and Error is ever populated.
//
// # Error Codes
//
// Standard JSON-RPC 2.0 error codes plus the tool invocation code:
//
//	CodeParseError     = -32700  // Invalid JSON
//	CodeMethodNotFound = -32601  // Method or tool not found
//	CodeInvalidParams  = -32602  // Invalid method parameters
//	CodeInternalError  = -32603  // Internal server error
//	CodeToolError      = -1      // Tool implementation reported a failure
//
// Helper functions create properly formatted errors:
//
//	err := protocol.NewMethodNotFound("Unknown method: foo")
//	err := protocol.NewInvalidParams("Missing name parameter")
package protocol
