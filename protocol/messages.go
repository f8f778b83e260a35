package protocol

import (
	"encoding/json"
	"fmt"
)

// JSONRPCVersion is the JSON-RPC protocol version.
const JSONRPCVersion = "2.0"

// NullID is the literal null request ID, used when a request could not be
// parsed or carried no ID of its own.
var NullID = json.RawMessage("null")

// Request represents a JSON-RPC 2.0 request.
//
// The ID is opaque: it is echoed back verbatim in the response and never
// interpreted. It may be a number, a string, or null.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC 2.0 response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// NewResponse creates a successful response.
func NewResponse(id json.RawMessage, result any) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      normalizeID(id),
		Result:  result,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(id json.RawMessage, err *Error) *Response {
	return &Response{
		JSONRPC: JSONRPCVersion,
		ID:      normalizeID(id),
		Error:   err,
	}
}

// normalizeID maps an absent request ID to the null literal so the response
// always carries an id field.
func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return NullID
	}
	return id
}

// DecodeRequest parses a single line into a Request. It fails if the line is
// not a valid JSON object or the method field is missing. Field values are
// not normalized or coerced.
func DecodeRequest(line []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return nil, err
	}
	if req.Method == "" {
		return nil, fmt.Errorf("missing method field")
	}
	return &req, nil
}

// EncodeResponse serializes a response as compact single-line JSON. Absent
// result and error fields are omitted rather than emitted as null.
func EncodeResponse(resp *Response) ([]byte, error) {
	return json.Marshal(resp)
}
