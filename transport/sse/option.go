package sse

import (
	"net/http"
	"time"

	"github.com/arrowmcp/mcp-client-go/transport"
)

// Option mutates Client at construction time.
type Option func(*Client)

// WithHTTPClient overrides the default *http.Client used for both the
// event GET and the message POSTs.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// WithHandshakeTimeout bounds how long New waits for the endpoint event.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.handshakeTimeout = timeout
		}
	}
}

// WithRequestTimeout sets how long Send waits for a response.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.requestTimeout = timeout
		}
	}
}

// WithHeader attaches a custom header to the event-stream GET and to every
// outbound POST.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(http.Header)
		}
		c.headers.Set(key, value)
	}
}

// WithHandler sets the notification/server-request handler.
func WithHandler(handler transport.Handler) Option {
	return func(c *Client) { c.handler = handler }
}

// WithLogger overrides the default stderr logger.
func WithLogger(logger transport.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithListener observes every framed message sent or received.
func WithListener(listener func(data []byte, outbound bool)) Option {
	return func(c *Client) { c.listener = listener }
}
