package streamablehttp

import (
	"net/http"
	"time"

	"github.com/arrowmcp/mcp-client-go/transport"
)

// Option mutates Client at construction time.
type Option func(*Client)

// WithHTTPClient overrides the default cookie-jar-backed *http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) { c.httpClient = client }
}

// WithHandshakeTimeout sets the Client's handshake timeout field. No request
// of this transport reads it, so it does not bound the initial POST or any
// other request.
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

// WithProtocolVersion sets the MCP-Protocol-Version header value sent on
// every request. Defaults to "2025-06-18".
func WithProtocolVersion(version string) Option {
	return func(c *Client) { c.protocolVersion = version }
}

// WithClientID overrides the generated X-CLIENT-ID header value.
func WithClientID(id string) Option {
	return func(c *Client) { c.clientID = id }
}

// WithHeader attaches a custom header to every outbound request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(http.Header)
		}
		c.headers.Set(key, value)
	}
}

// WithReconnectPolicy overrides the backoff used by the persistent GET
// stream's reconnect loop.
func WithReconnectPolicy(policy transport.ReconnectPolicy) Option {
	return func(c *Client) { c.policy = policy }
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

// WithUnauthorizedHandler registers a callback invoked with a
// *transport.UnauthorizedError whenever the server responds 401. SendData
// still returns nil on a 401 (the caller decides whether that is fatal);
// this is the only way to observe the status and body.
func WithUnauthorizedHandler(fn func(*transport.UnauthorizedError)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}
