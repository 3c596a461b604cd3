package sse

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOptions_ApplyToClient(t *testing.T) {
	customClient := &http.Client{}

	c := &Client{}
	for _, opt := range []Option{
		WithHTTPClient(customClient),
		WithHandshakeTimeout(5 * time.Second),
		WithRequestTimeout(10 * time.Second),
		WithHeader("X-Extra", "yes"),
	} {
		opt(c)
	}

	assert.Same(t, customClient, c.httpClient)
	assert.Equal(t, 5*time.Second, c.handshakeTimeout)
	assert.Equal(t, 10*time.Second, c.requestTimeout)
	assert.Equal(t, "yes", c.headers.Get("X-Extra"))
}

func TestWithHandshakeTimeout_IgnoresNonPositive(t *testing.T) {
	c := &Client{handshakeTimeout: time.Minute}
	WithHandshakeTimeout(0)(c)
	assert.Equal(t, time.Minute, c.handshakeTimeout)
}
