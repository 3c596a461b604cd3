// Package sse implements the legacy HTTP+SSE MCP transport: a streaming GET
// to the event URL, whose first "endpoint" frame announces a separate
// messages URL that subsequent requests POST to. A read error on the event
// stream triggers a one-second pause and a full reconnect, including a
// fresh endpoint handshake.
package sse

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arrowmcp/mcp-client-go/transport"
	"github.com/arrowmcp/mcp-client-go/transport/base"
	"github.com/viant/afs/url"
)

// Client is the legacy SSE transport. It satisfies transport.Transport.
type Client struct {
	eventsURL string
	origin    string

	httpClient       *http.Client
	handshakeTimeout time.Duration
	requestTimeout   time.Duration
	headers          http.Header
	handler          transport.Handler
	logger           transport.Logger
	listener         func(data []byte, outbound bool)

	sender *messagesSender
	base   *base.Base

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc

	endpointOnce sync.Once
	endpointCh   chan string
}

// New opens the event stream, blocks until the endpoint handshake
// completes (or handshakeTimeout elapses), and returns a ready Client.
func New(ctx context.Context, eventsURL string, options ...Option) (*Client, error) {
	scheme := url.Scheme(eventsURL, "http")
	host := url.Host(eventsURL)

	c := &Client{
		eventsURL:        eventsURL,
		origin:           fmt.Sprintf("%s://%s", scheme, host),
		httpClient:       &http.Client{},
		handshakeTimeout: 30 * time.Second,
		requestTimeout:   time.Minute,
		logger:           transport.DefaultLogger,
		endpointCh:       make(chan string, 1),
	}
	for _, opt := range options {
		opt(c)
	}
	c.sender = &messagesSender{client: c.httpClient, headers: c.headers}
	c.base = base.NewBase(c.sender, c.handler, c.logger, c.requestTimeout)
	c.base.Listener = c.listener

	return c, c.Start(ctx)
}

// Start opens the streaming GET and blocks until the endpoint event
// arrives or the handshake times out.
func (c *Client) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	c.ctx = runCtx
	c.cancel = cancel
	c.running.Store(true)

	if err := c.connect(runCtx); err != nil {
		c.running.Store(false)
		cancel()
		return err
	}

	select {
	case endpoint := <-c.endpointCh:
		c.sender.setURL(endpoint)
		return nil
	case <-time.After(c.handshakeTimeout):
		c.running.Store(false)
		cancel()
		return fmt.Errorf("timed out waiting for sse endpoint event")
	}
}

func (c *Client) connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.eventsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "keep-alive")
	for k, v := range c.headers {
		req.Header[k] = v
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transport.NewTransportError("failed to connect to sse stream", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return transport.NewHTTPTransportError("unexpected sse handshake status", resp.StatusCode, nil)
	}

	go c.listen(ctx, bufio.NewReader(resp.Body))
	return nil
}

// listen reads frames until the stream ends or the transport is closed,
// reconnecting after a one-second delay on any read error while running.
func (c *Client) listen(ctx context.Context, reader *bufio.Reader) {
	for {
		evt, err := readEvent(ctx, reader)
		if err != nil {
			if !c.running.Load() {
				return
			}
			c.logger.Debugf("sse stream error, reconnecting: %v", err)
			time.Sleep(time.Second)
			if reconnErr := c.connect(c.ctx); reconnErr != nil {
				c.logger.Errorf("sse reconnect failed: %v", reconnErr)
			}
			return
		}

		switch evt.Event {
		case "endpoint":
			if evt.Data == "" {
				c.logger.Debugf("dropping empty endpoint event")
				continue
			}
			endpoint := url.Join(c.origin, evt.Data)
			c.endpointOnce.Do(func() { c.endpointCh <- endpoint })
			c.sender.setURL(endpoint)
		case "message":
			if strings.TrimSpace(evt.Data) == "" {
				c.logger.Debugf("dropping sse frame with empty data")
				continue
			}
			c.base.HandleMessage(ctx, []byte(evt.Data))
		default:
			c.logger.Debugf("dropping unrecognized sse event: %s", evt.Event)
		}
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

// SetProtocolVersion implements transport.Transport. The legacy SSE
// transport does not attach it to any wire field.
func (c *Client) SetProtocolVersion(v string) { c.base.SetProtocolVersion(v) }

// Close implements transport.Transport.
func (c *Client) Close(ctx context.Context) error {
	c.running.Store(false)
	if c.cancel != nil {
		c.cancel()
	}
	c.base.Pending().FailAll(transport.NewTransportError("transport closed", nil))
	return nil
}
