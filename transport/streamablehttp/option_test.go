package streamablehttp

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowmcp/mcp-client-go/transport"
)

func TestOptions_ApplyToClient(t *testing.T) {
	customClient := &http.Client{}
	policy := transport.ReconnectPolicy{InitialDelay: time.Second, MaxRetries: 5}

	c := &Client{}
	for _, opt := range []Option{
		WithHTTPClient(customClient),
		WithHandshakeTimeout(5 * time.Second),
		WithRequestTimeout(10 * time.Second),
		WithProtocolVersion("2024-11-05"),
		WithClientID("fixed-id"),
		WithHeader("X-Extra", "yes"),
		WithReconnectPolicy(policy),
	} {
		opt(c)
	}

	assert.Same(t, customClient, c.httpClient)
	assert.Equal(t, 5*time.Second, c.handshakeTimeout)
	assert.Equal(t, 10*time.Second, c.requestTimeout)
	assert.Equal(t, "2024-11-05", c.protocolVersion)
	assert.Equal(t, "fixed-id", c.clientID)
	assert.Equal(t, "yes", c.headers.Get("X-Extra"))
	assert.Equal(t, policy, c.policy)
}

func TestWithRequestTimeout_IgnoresNonPositive(t *testing.T) {
	c := &Client{requestTimeout: time.Minute}
	WithRequestTimeout(0)(c)
	assert.Equal(t, time.Minute, c.requestTimeout)
}

func TestWithUnauthorizedHandler_SetsCallback(t *testing.T) {
	c := &Client{}
	called := false
	WithUnauthorizedHandler(func(*transport.UnauthorizedError) { called = true })(c)
	require.NotNil(t, c.onUnauthorized)
	c.onUnauthorized(&transport.UnauthorizedError{StatusCode: 401})
	assert.True(t, called)
}
