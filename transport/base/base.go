// Package base provides the engine every concrete transport (stdio, SSE,
// Streamable HTTP) embeds: id allocation, the pending-request table,
// marshalling outbound envelopes, and classifying/dispatching inbound ones.
// The pending table holds at most one entry per id at any time regardless
// of how many requests are in flight.
package base

import (
	"bytes"
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/arrowmcp/mcp-client-go/transport"
)

// Sender is implemented by a concrete transport to push already-framed
// bytes onto the wire (a stdio pipe write, an SSE POST, a Streamable HTTP
// POST). It is the only transport-specific primitive Base depends on.
type Sender interface {
	SendData(ctx context.Context, data []byte) error
}

// Base is embedded by every concrete transport. It is not itself a
// transport.Transport: concrete transports add Start/Alive/SetProtocolVersion/
// Close around it.
type Base struct {
	Sender  Sender
	Handler transport.Handler
	Logger  transport.Logger
	// Listener, if set, observes every inbound/outbound message.
	Listener func(data []byte, outbound bool)

	RequestTimeout time.Duration

	ids     transport.IdAllocator
	pending *transport.PendingTable

	protocolVersion atomic.Value // string
}

// NewBase constructs a Base with its own pending table.
func NewBase(sender Sender, handler transport.Handler, logger transport.Logger, timeout time.Duration) *Base {
	if logger == nil {
		logger = transport.DefaultLogger
	}
	return &Base{
		Sender:         sender,
		Handler:        handler,
		Logger:         logger,
		RequestTimeout: timeout,
		pending:        transport.NewPendingTable(),
	}
}

// SetProtocolVersion records the negotiated protocol version.
func (b *Base) SetProtocolVersion(v string) { b.protocolVersion.Store(v) }

// ProtocolVersion returns the last value set by SetProtocolVersion, or "".
func (b *Base) ProtocolVersion() string {
	v, _ := b.protocolVersion.Load().(string)
	return v
}

// Pending exposes the pending table for transport-level failure handling
// (e.g. a reconnect loop calling FailAll).
func (b *Base) Pending() *transport.PendingTable { return b.pending }

// Send allocates an id, writes the framed request, and optionally waits for
// the matching response.
func (b *Base) Send(ctx context.Context, method string, params []byte, waitForResponse bool) (*transport.Result, error) {
	id := b.ids.Next()
	req, err := transport.NewRequest(id, method, params)
	if err != nil {
		return nil, err
	}

	var rendezvous *transport.Rendezvous
	if waitForResponse {
		rendezvous, err = b.pending.Register(id)
		if err != nil {
			return nil, transport.NewTransportError("failed to register pending request", err)
		}
	}

	data, err := transport.Marshal(req)
	if err != nil {
		if rendezvous != nil {
			b.pending.Remove(id)
		}
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	b.notify(data, true)

	if err := b.Sender.SendData(ctx, data); err != nil {
		if rendezvous != nil {
			b.pending.Remove(id)
		}
		return nil, transport.NewTransportError("failed to send request", err)
	}

	if !waitForResponse {
		return nil, nil
	}

	result, err := rendezvous.Wait(ctx, b.RequestTimeout)
	if err != nil {
		b.pending.Remove(id)
		return nil, err
	}
	return result, nil
}

// Notify writes a framed notification and returns as soon as it is accepted.
func (b *Base) Notify(ctx context.Context, method string, params []byte) error {
	note, err := transport.NewNotification(method, params)
	if err != nil {
		return err
	}
	data, err := transport.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	b.notify(data, true)
	if err := b.Sender.SendData(ctx, data); err != nil {
		return transport.NewTransportError("failed to send notification", err)
	}
	return nil
}

// Reply sends a pre-built Response with no id allocation and no wait.
func (b *Base) Reply(ctx context.Context, response *transport.Response) error {
	data, err := transport.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	b.notify(data, true)
	if err := b.Sender.SendData(ctx, data); err != nil {
		return transport.NewTransportError("failed to send response", err)
	}
	return nil
}

// HandleMessage classifies one decoded line/event and either resolves a
// pending request, invokes the handler's notification callback, or serves a
// server-initiated request. It never panics: malformed input is logged and
// dropped.
func (b *Base) HandleMessage(ctx context.Context, data []byte) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return
	}
	b.notify(data, false)

	result, err := transport.Parse(data)
	if err != nil {
		if b.Logger != nil {
			b.Logger.Errorf("failed to parse message: %v: %s", err, data)
		}
		return
	}

	switch {
	case result.Response():
		if !b.pending.Resolve(result) {
			if b.Logger != nil {
				b.Logger.Debugf("no pending request matches id %v", result.ID())
			}
		}
	case result.Notification():
		if b.Handler != nil {
			b.Handler.OnNotification(ctx, result)
		}
	case result.Request():
		b.serveRequest(ctx, result)
	default:
		if b.Logger != nil {
			b.Logger.Debugf("dropping unrecognized message: %s", data)
		}
	}
}

func (b *Base) serveRequest(ctx context.Context, request *transport.Result) {
	if b.Handler == nil {
		return
	}
	response := b.Handler.Serve(ctx, request)
	if response == nil {
		return
	}
	if err := b.Reply(ctx, response); err != nil && b.Logger != nil {
		b.Logger.Errorf("failed to send response: %v", err)
	}
}

func (b *Base) notify(data []byte, outbound bool) {
	if b.Listener != nil {
		b.Listener(data, outbound)
	}
}
