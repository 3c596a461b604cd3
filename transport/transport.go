package transport

import "context"

// Transport is the common contract every wire transport (stdio, SSE,
// Streamable HTTP) implements. Dispatch between the three concrete
// implementations is by tag at construction time; no virtual-method
// hierarchy is needed beyond this interface.
type Transport interface {
	// Start opens the transport (spawns the child process, opens the event
	// stream, ...). It must return once the transport is ready to Send.
	Start(ctx context.Context) error

	// Send marshals method/params as a request, allocates and attaches an
	// id, writes it, and - if waitForResponse is true - blocks on the
	// matching Rendezvous bounded by the coordinator's request_timeout. With
	// waitForResponse false it returns nil as soon as the bytes are
	// accepted.
	Send(ctx context.Context, method string, params []byte, waitForResponse bool) (*Result, error)

	// Notify writes a notification (no id, no wait).
	Notify(ctx context.Context, method string, params []byte) error

	// Reply sends a pre-built Response back to the server with add_id:false,
	// wait_for_response:false, used to answer server-initiated requests.
	Reply(ctx context.Context, response *Response) error

	// Alive reports whether the transport believes it can currently send.
	Alive() bool

	// SetProtocolVersion records the version negotiated on initialize; only
	// Streamable HTTP attaches it as a request header, but every transport
	// accepts the call.
	SetProtocolVersion(version string)

	// Close tears down the transport and its background readers.
	Close(ctx context.Context) error
}

// Interceptor allows method-level post-processing of a response, optionally
// issuing a follow-up request before the original caller is unblocked.
type Interceptor interface {
	Intercept(ctx context.Context, method string, response *Response) (followUpMethod string, followUpParams []byte, err error)
}
