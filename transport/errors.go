package transport

import (
	"errors"
	"fmt"
)

// TransportError covers I/O failures, framing violations, HTTP status and
// content-type violations raised by any transport.
type TransportError struct {
	Message string
	Code    int // HTTP status code, when applicable; zero otherwise
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Cause }

// NewTransportError builds a TransportError with no HTTP status.
func NewTransportError(message string, cause error) *TransportError {
	return &TransportError{Message: message, Cause: cause}
}

// NewHTTPTransportError builds a TransportError carrying an HTTP status code.
func NewHTTPTransportError(message string, code int, cause error) *TransportError {
	return &TransportError{Message: message, Code: code, Cause: cause}
}

// TimeoutError reports that a request exceeded its request_timeout.
type TimeoutError struct {
	RequestID RequestID
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request %v timed out", e.RequestID)
}

// SessionExpiredError reports a Streamable HTTP 404 on an established
// session: the server has forgotten it.
type SessionExpiredError struct {
	Message string
}

func (e *SessionExpiredError) Error() string { return e.Message }

// InvalidProtocolVersionError reports that the server returned a protocol
// version the client does not support.
type InvalidProtocolVersionError struct {
	Version string
}

func (e *InvalidProtocolVersionError) Error() string {
	return fmt.Sprintf("unsupported protocol version: %s", e.Version)
}

// RPCError surfaces a JSON-RPC error envelope returned by the server as a
// generic error to callers of the Coordinator's request helpers.
type RPCError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// NewRPCError builds an RPCError from a decoded InnerError.
func NewRPCError(inner *InnerError) *RPCError {
	if inner == nil {
		return nil
	}
	return &RPCError{Code: inner.Code, Message: inner.Message, Data: inner.Data}
}

// UnauthorizedError represents an HTTP 401 response. Streamable HTTP's
// SendData returns nil rather than raising on 401, leaving the policy to the
// caller, but constructs one of these on every 401 and hands it to the
// callback registered via streamablehttp.WithUnauthorizedHandler so the
// status and body are still observable.
type UnauthorizedError struct {
	StatusCode int
	Body       []byte
}

func (e *UnauthorizedError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("unauthorized (status %d): %s", e.StatusCode, string(e.Body))
	}
	return fmt.Sprintf("unauthorized (status %d)", e.StatusCode)
}

// IsUnauthorized reports whether err is or wraps an UnauthorizedError.
func IsUnauthorized(err error) bool {
	var target *UnauthorizedError
	return errors.As(err, &target)
}
