package transport

import "context"

// Handler is implemented by the coordinator and invoked by a transport's
// background reader for messages that are not responses to a pending
// request: server-initiated requests and notifications.
type Handler interface {
	// Serve answers a server-initiated request (ping, sampling/createMessage,
	// roots/list). It returns the Response to send back; the transport sends
	// it with add_id:false, wait_for_response:false.
	Serve(ctx context.Context, request *Result) *Response

	// OnNotification routes a server notification (tools/list_changed,
	// resources/updated, message, cancelled, progress, ...). Implementations
	// must not block: enqueue work or stay trivial.
	OnNotification(ctx context.Context, notification *Result)
}
