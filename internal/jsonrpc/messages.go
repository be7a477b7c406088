// Package jsonrpc implements the JSON-RPC 2.0 envelope used by every
// transport. Envelope decoding is deliberately lenient: a structurally
// malformed message still unmarshals so the dispatcher can answer it with an
// invalid-request error instead of dropping it on the floor.
package jsonrpc

import (
	"encoding/json"
	"fmt"
)

// ProtocolVersion is the supported JSON-RPC protocol version.
const ProtocolVersion = "2.0"

// Request represents a JSON-RPC request (with an ID) or notification (without ID).
type Request struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Method         string          `json:"method"`
	Params         json.RawMessage `json:"params,omitempty"`
	ID             *RequestID      `json:"id,omitempty"`
}

// IsNotification reports whether the request carries no ID and therefore
// expects no response.
func (r *Request) IsNotification() bool { return r.ID.IsNil() }

// ValidateEnvelope checks the JSON-RPC 2.0 structural requirements. A non-nil
// error means the dispatcher must answer with ErrorCodeInvalidRequest.
func (r *Request) ValidateEnvelope() error {
	if r.JSONRPCVersion != ProtocolVersion {
		return fmt.Errorf("jsonrpc version must be %q, got %q", ProtocolVersion, r.JSONRPCVersion)
	}
	if r.Method == "" {
		return fmt.Errorf("method is required")
	}
	return nil
}

// Response represents a JSON-RPC response. Exactly one of Result or Error is
// set; ID echoes the request's ID. The id member is always emitted: when the
// request's ID could not be determined (a parse error, say) it must be null,
// not absent.
type Response struct {
	JSONRPCVersion string          `json:"jsonrpc"`
	Result         json.RawMessage `json:"result,omitempty"`
	Error          *Error          `json:"error,omitempty"`
	ID             *RequestID      `json:"id"`
}

// NewResultResponse builds a successful JSON-RPC response object.
func NewResultResponse(id *RequestID, result any) (*Response, error) {
	resultBytes, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Result:         resultBytes,
		ID:             id,
	}, nil
}

// NewErrorResponse builds an error JSON-RPC response with the given code.
func NewErrorResponse(id *RequestID, code ErrorCode, message string, data any) *Response {
	return &Response{
		JSONRPCVersion: ProtocolVersion,
		Error: &Error{
			Code:    code,
			Message: message,
			Data:    data,
		},
		ID: id,
	}
}
