package stdio

import (
	"time"

	"github.com/arrowmcp/mcp-client-go/transport"
	"github.com/viant/scy/cred/secret"
)

// Option mutates Client at construction time.
type Option func(c *Client)

// WithArguments sets the child process's command-line arguments.
func WithArguments(args ...string) Option {
	return func(c *Client) { c.args = args }
}

// WithEnvironment adds key=value to the child process's environment.
func WithEnvironment(key, value string) Option {
	return func(c *Client) {
		if c.env == nil {
			c.env = make(map[string]string)
		}
		c.env[key] = value
	}
}

// WithHost launches the command on a remote host over SSH via gosh's ssh
// runner instead of spawning it locally. Requires WithSecret.
func WithHost(host string) Option {
	return func(c *Client) { c.host = host }
}

// WithSecret supplies the SSH credential resource resolved for WithHost.
func WithSecret(resource secret.Resource) Option {
	return func(c *Client) { c.secret = resource }
}

// WithRequestTimeout sets how long Send waits for a response, in milliseconds.
func WithRequestTimeout(timeoutMs int) Option {
	return func(c *Client) { c.requestTimeout = time.Duration(timeoutMs) * time.Millisecond }
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
