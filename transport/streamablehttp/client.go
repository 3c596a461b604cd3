// Package streamablehttp implements the Streamable HTTP MCP transport: a
// single endpoint URL that accepts POST for every outbound message and GET
// to open a persistent server-to-client stream, with session continuity
// carried by a server-issued session id header instead of a separate
// events URL.
package streamablehttp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arrowmcp/mcp-client-go/transport"
	"github.com/arrowmcp/mcp-client-go/transport/base"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"
)

// Client is the Streamable HTTP transport. It satisfies transport.Transport.
type Client struct {
	endpointURL string

	httpClient       *http.Client
	handshakeTimeout time.Duration
	requestTimeout   time.Duration
	protocolVersion  string
	clientID         string
	headers          http.Header
	policy           transport.ReconnectPolicy
	handler          transport.Handler
	logger           transport.Logger
	listener         func(data []byte, outbound bool)
	onUnauthorized   func(*transport.UnauthorizedError)

	sessionID   atomic.Value // string
	lastEventID atomic.Value // string

	sender *httpSender
	base   *base.Base

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc

	streamMu     sync.Mutex
	streamActive bool
}

// New builds a Client bound to endpointURL. No network call is made until
// the first Send/Notify; a session is established lazily on first use.
func New(ctx context.Context, endpointURL string, options ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	c := &Client{
		endpointURL:      endpointURL,
		httpClient:       &http.Client{Jar: jar},
		handshakeTimeout: 30 * time.Second,
		requestTimeout:   15 * time.Minute,
		protocolVersion:  defaultProtocolVersion,
		clientID:         uuid.NewString(),
		policy:           transport.DefaultReconnectPolicy(),
		logger:           transport.DefaultLogger,
	}
	for _, opt := range options {
		opt(c)
	}
	c.sessionID.Store("")
	c.lastEventID.Store("")

	c.sender = &httpSender{client: c}
	c.base = base.NewBase(c.sender, c.handler, c.logger, c.requestTimeout)
	c.base.Listener = c.listener

	return c, c.Start(ctx)
}

// Start records the run context; the stream itself opens once a session id
// is known, after the first successful POST.
func (c *Client) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	c.ctx = runCtx
	c.cancel = cancel
	c.running.Store(true)
	return nil
}

func (c *Client) session() string {
	v, _ := c.sessionID.Load().(string)
	return v
}

func (c *Client) setSession(id string) {
	c.sessionID.Store(id)
}

// ensureStream launches the persistent GET stream exactly once, after a
// session id is available.
func (c *Client) ensureStream() {
	c.streamMu.Lock()
	if c.streamActive || c.session() == "" {
		c.streamMu.Unlock()
		return
	}
	c.streamActive = true
	c.streamMu.Unlock()

	go c.runStream()
}

func (c *Client) runStream() {
	defer func() {
		c.streamMu.Lock()
		c.streamActive = false
		c.streamMu.Unlock()
	}()

	attempt := 0
	for c.running.Load() {
		if c.session() == "" {
			return
		}
		supported, err := c.openStream(c.ctx)
		if !c.running.Load() {
			return
		}
		if !supported {
			// Server does not support the persistent GET stream at all;
			// retrying would just repeat the same 405 forever.
			return
		}
		if err != nil {
			c.logger.Debugf("streamable http stream error: %v", err)
			if !c.policy.ShouldRetry(attempt) {
				c.logger.Errorf("streamable http stream exhausted retries: %v", err)
				return
			}
			time.Sleep(c.policy.Delay(attempt))
			attempt++
			continue
		}
		attempt = 0
	}
}

// openStream opens the persistent GET stream. The returned bool reports
// whether the server supports it at all (false on 405, which runStream
// treats as terminal rather than something worth retrying).
func (c *Client) openStream(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL, nil)
	if err != nil {
		return true, fmt.Errorf("failed to create request: %w", err)
	}
	c.applyCommonHeaders(req)
	req.Header.Set("Accept", sseMime)
	if last, _ := c.lastEventID.Load().(string); last != "" {
		req.Header.Set(lastEventIDHeader, last)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, transport.NewTransportError("failed to open stream", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusMethodNotAllowed:
		return false, nil
	default:
		return true, transport.NewHTTPTransportError("unexpected stream status", resp.StatusCode, nil)
	}

	return true, c.consumeStream(ctx, resp)
}

func (c *Client) applyCommonHeaders(req *http.Request) {
	if c.protocolVersion != "" {
		req.Header.Set(protocolVersionHeader, c.protocolVersion)
	}
	if c.clientID != "" {
		req.Header.Set(clientIDHeader, c.clientID)
	}
	if sid := c.session(); sid != "" {
		req.Header.Set(sessionHeader, sid)
	}
	for k, v := range c.headers {
		req.Header[k] = v
	}
}

// Send implements transport.Transport.
func (c *Client) Send(ctx context.Context, method string, params []byte, waitForResponse bool) (*transport.Result, error) {
	return c.base.Send(ctx, method, params, waitForResponse)
}

// Notify implements transport.Transport.
func (c *Client) Notify(ctx context.Context, method string, params []byte) error {
	return c.base.Notify(ctx, method, params)
}

// Reply implements transport.Transport.
func (c *Client) Reply(ctx context.Context, response *transport.Response) error {
	return c.base.Reply(ctx, response)
}

// Alive implements transport.Transport.
func (c *Client) Alive() bool { return c.running.Load() }

// SetProtocolVersion implements transport.Transport, and changes the header
// value sent on every subsequent request.
func (c *Client) SetProtocolVersion(v string) {
	c.protocolVersion = v
	c.base.SetProtocolVersion(v)
}

// Close terminates the session with a DELETE request, stops the stream
// loop and fails every pending request. The session id is cleared
// unconditionally, even when the DELETE itself fails, since the transport
// is torn down either way; a failed termination is still reported to the
// caller as a *transport.TransportError.
func (c *Client) Close(ctx context.Context) error {
	c.running.Store(false)
	if c.cancel != nil {
		c.cancel()
	}
	c.base.Pending().FailAll(transport.NewTransportError("transport closed", nil))

	sid := c.session()
	if sid == "" {
		return nil
	}
	defer c.setSession("")

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.endpointURL, nil)
	if err != nil {
		return transport.NewTransportError("failed to build session termination request", err)
	}
	c.applyCommonHeaders(req)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transport.NewTransportError("failed to terminate session", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK, http.StatusMethodNotAllowed, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		return transport.NewHTTPTransportError("failed to terminate session", resp.StatusCode, nil)
	}
}
