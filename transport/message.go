// Package transport defines the wire-level JSON-RPC 2.0 envelope used by
// every MCP transport, the shared Transport/Handler contracts transports and
// the coordinator exchange, and the reusable plumbing (id allocation,
// pending-request table, reconnection backoff) that each concrete transport
// builds on.
package transport

import (
	"fmt"

	"github.com/goccy/go-json"
)

// Version is the JSON-RPC protocol version every envelope carries.
const Version = "2.0"

// Standard JSON-RPC 2.0 error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// RequestID is the type used to represent the id of a JSON-RPC request. The
// wire value may be a number or a string; it is never mutated once assigned.
type RequestID any

// Request represents a JSON-RPC request message.
type Request struct {
	Id      RequestID       `json:"id"`
	Jsonrpc string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Notification is a JSON-RPC request message with no id.
type Notification struct {
	Jsonrpc string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// InnerError carries the JSON-RPC error object nested inside a Response.
type InnerError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e InnerError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// Response represents a JSON-RPC response message (result xor error).
type Response struct {
	Id      RequestID       `json:"id"`
	Jsonrpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *InnerError     `json:"error,omitempty"`
}

// NewRequest builds a Request for method with the given id. Parameters that
// are already encoded (string, []byte, json.RawMessage) pass through
// unchanged; anything else is run through json.Marshal.
func NewRequest(id RequestID, method string, parameters interface{}) (*Request, error) {
	params, err := asParams(method, parameters)
	if err != nil {
		return nil, err
	}
	return &Request{Id: id, Jsonrpc: Version, Method: method, Params: params}, nil
}

// NewNotification builds a Notification for method.
func NewNotification(method string, parameters interface{}) (*Notification, error) {
	params, err := asParams(method, parameters)
	if err != nil {
		return nil, err
	}
	return &Notification{Jsonrpc: Version, Method: method, Params: params}, nil
}

func asParams(method string, parameters interface{}) (json.RawMessage, error) {
	if parameters == nil {
		return nil, nil
	}
	switch actual := parameters.(type) {
	case string:
		return []byte(actual), nil
	case []byte:
		return actual, nil
	case json.RawMessage:
		return actual, nil
	default:
		data, err := json.Marshal(actual)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal params for %v: %w", method, err)
		}
		return data, nil
	}
}

// NewErrorResponse builds a Response carrying an error for requestID.
func NewErrorResponse(requestID RequestID, code int, message string, data interface{}) *Response {
	return &Response{
		Id:      requestID,
		Jsonrpc: Version,
		Error:   &InnerError{Code: code, Message: message, Data: data},
	}
}

// NewResultResponse builds a Response carrying a result payload.
func NewResultResponse(requestID RequestID, result json.RawMessage) *Response {
	return &Response{Id: requestID, Jsonrpc: Version, Result: result}
}

// Marshal encodes v as a single newline-terminated JSON line, matching the
// NDJSON framing used by stdio and the line-delimited SSE `data:` payloads.
func Marshal(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}
