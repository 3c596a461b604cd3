package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/arrowmcp/mcp-client-go/transport"
	"github.com/arrowmcp/mcp-client-go/transport/sse"
	"github.com/arrowmcp/mcp-client-go/transport/stdio"
	"github.com/arrowmcp/mcp-client-go/transport/streamablehttp"
	"github.com/viant/scy/cred/secret"
)

// TransportType selects which wire transport a Config builds.
type TransportType string

const (
	TransportStdio      TransportType = "stdio"
	TransportSSE        TransportType = "sse"
	TransportStreamable TransportType = "streamable"
)

// Config describes how to build and initialize a Coordinator. Only the
// fields relevant to TransportType need to be set; the rest are ignored.
type Config struct {
	// Name is advertised as clientInfo.name on initialize.
	Name    string
	Version string

	TransportType  TransportType
	RequestTimeout time.Duration

	// ClientCapabilities overrides the zero-value (nothing advertised)
	// capability set sent on initialize.
	ClientCapabilities *ClientCapabilities

	// ProtocolVersion overrides DefaultProtocolVersion in the initialize
	// request.
	ProtocolVersion string

	Logger   transport.Logger
	Listener func(data []byte, outbound bool)

	// Stdio transport.
	Command string
	Args    []string
	Env     map[string]string
	Host    string
	Secret  secret.Resource

	// SSE / Streamable HTTP transport.
	URL     string
	Headers map[string]string

	// Streamable HTTP only.
	ReconnectPolicy *transport.ReconnectPolicy
	ClientID        string
	OnUnauthorized  func(*transport.UnauthorizedError)
}

// New builds the transport named by cfg.TransportType, wraps it in a
// Coordinator, and returns it without performing the initialize handshake;
// call Start to run it.
func New(ctx context.Context, cfg Config) (*Coordinator, error) {
	c := newCoordinator(cfg)

	var (
		tr  transport.Transport
		err error
	)
	switch cfg.TransportType {
	case TransportStdio:
		tr, err = stdio.New(ctx, cfg.Command, stdioOptions(cfg, c)...)
	case TransportSSE:
		tr, err = sse.New(ctx, cfg.URL, sseOptions(cfg, c)...)
	case TransportStreamable:
		tr, err = streamablehttp.New(ctx, cfg.URL, streamableOptions(cfg, c)...)
	default:
		return nil, &InvalidTransportTypeError{TransportType: cfg.TransportType}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build transport: %w", err)
	}
	c.transport = tr
	return c, nil
}

func stdioOptions(cfg Config, handler transport.Handler) []stdio.Option {
	opts := []stdio.Option{stdio.WithHandler(handler)}
	if len(cfg.Args) > 0 {
		opts = append(opts, stdio.WithArguments(cfg.Args...))
	}
	for k, v := range cfg.Env {
		opts = append(opts, stdio.WithEnvironment(k, v))
	}
	if cfg.Host != "" {
		opts = append(opts, stdio.WithHost(cfg.Host))
	}
	if cfg.Secret != "" {
		opts = append(opts, stdio.WithSecret(cfg.Secret))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, stdio.WithRequestTimeout(int(cfg.RequestTimeout.Milliseconds())))
	}
	if cfg.Logger != nil {
		opts = append(opts, stdio.WithLogger(cfg.Logger))
	}
	if cfg.Listener != nil {
		opts = append(opts, stdio.WithListener(cfg.Listener))
	}
	return opts
}

func sseOptions(cfg Config, handler transport.Handler) []sse.Option {
	opts := []sse.Option{sse.WithHandler(handler)}
	for k, v := range cfg.Headers {
		opts = append(opts, sse.WithHeader(k, v))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, sse.WithRequestTimeout(cfg.RequestTimeout))
	}
	if cfg.Logger != nil {
		opts = append(opts, sse.WithLogger(cfg.Logger))
	}
	if cfg.Listener != nil {
		opts = append(opts, sse.WithListener(cfg.Listener))
	}
	return opts
}

func streamableOptions(cfg Config, handler transport.Handler) []streamablehttp.Option {
	opts := []streamablehttp.Option{streamablehttp.WithHandler(handler)}
	for k, v := range cfg.Headers {
		opts = append(opts, streamablehttp.WithHeader(k, v))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, streamablehttp.WithRequestTimeout(cfg.RequestTimeout))
	}
	if cfg.ProtocolVersion != "" {
		opts = append(opts, streamablehttp.WithProtocolVersion(cfg.ProtocolVersion))
	}
	if cfg.ClientID != "" {
		opts = append(opts, streamablehttp.WithClientID(cfg.ClientID))
	}
	if cfg.ReconnectPolicy != nil {
		opts = append(opts, streamablehttp.WithReconnectPolicy(*cfg.ReconnectPolicy))
	}
	if cfg.OnUnauthorized != nil {
		opts = append(opts, streamablehttp.WithUnauthorizedHandler(cfg.OnUnauthorized))
	}
	if cfg.Logger != nil {
		opts = append(opts, streamablehttp.WithLogger(cfg.Logger))
	}
	if cfg.Listener != nil {
		opts = append(opts, streamablehttp.WithListener(cfg.Listener))
	}
	return opts
}
