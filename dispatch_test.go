package mcp

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowmcp/mcp-client-go/transport"
)

func parseResult(t *testing.T, raw string) *transport.Result {
	t.Helper()
	r, err := transport.Parse([]byte(raw))
	require.NoError(t, err)
	return r
}

func TestCoordinator_Serve_Ping(t *testing.T) {
	c := newCoordinator(Config{})
	req := parseResult(t, `{"jsonrpc":"2.0","id":1,"method":"ping"}`)
	resp := c.Serve(context.Background(), req)
	require.NotNil(t, resp)
	assert.Nil(t, resp.Error)
	assert.JSONEq(t, `{}`, string(resp.Result))
}

func TestCoordinator_Serve_UnknownMethod(t *testing.T) {
	c := newCoordinator(Config{})
	req := parseResult(t, `{"jsonrpc":"2.0","id":1,"method":"totally/unknown"}`)
	resp := c.Serve(context.Background(), req)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, transport.MethodNotFound, resp.Error.Code)
}

func TestCoordinator_Serve_SamplingWithoutHandler(t *testing.T) {
	c := newCoordinator(Config{})
	req := parseResult(t, `{"jsonrpc":"2.0","id":1,"method":"sampling/createMessage","params":{}}`)
	resp := c.Serve(context.Background(), req)
	require.NotNil(t, resp.Error)
	assert.Equal(t, transport.MethodNotFound, resp.Error.Code)
}

func TestCoordinator_Serve_SamplingWithHandler(t *testing.T) {
	c := newCoordinator(Config{})
	c.SetSamplingHandler(func(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
		return json.RawMessage(`{"role":"assistant"}`), nil
	})
	req := parseResult(t, `{"jsonrpc":"2.0","id":1,"method":"sampling/createMessage","params":{}}`)
	resp := c.Serve(context.Background(), req)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"role":"assistant"}`, string(resp.Result))
}

func TestCoordinator_Serve_RootsListDefaultsEmpty(t *testing.T) {
	c := newCoordinator(Config{})
	req := parseResult(t, `{"jsonrpc":"2.0","id":1,"method":"roots/list"}`)
	resp := c.Serve(context.Background(), req)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"roots":[]}`, string(resp.Result))
}

func TestCoordinator_Serve_RootsListWithProvider(t *testing.T) {
	c := newCoordinator(Config{})
	c.SetRootsProvider(func(ctx context.Context) ([]Root, error) {
		return []Root{{URI: "file:///a", Name: "a"}}, nil
	})
	req := parseResult(t, `{"jsonrpc":"2.0","id":1,"method":"roots/list"}`)
	resp := c.Serve(context.Background(), req)
	require.Nil(t, resp.Error)
	assert.JSONEq(t, `{"roots":[{"uri":"file:///a","name":"a"}]}`, string(resp.Result))
}

func TestCoordinator_OnNotification_ToolsListChanged(t *testing.T) {
	c := newCoordinator(Config{})
	called := false
	c.OnToolsListChanged(func() { called = true })
	note := parseResult(t, `{"jsonrpc":"2.0","method":"notifications/tools/list_changed"}`)
	c.OnNotification(context.Background(), note)
	assert.True(t, called)
}

func TestCoordinator_OnNotification_ResourceUpdated(t *testing.T) {
	c := newCoordinator(Config{})
	var gotURI string
	c.OnResourceUpdated(func(uri string) { gotURI = uri })
	note := parseResult(t, `{"jsonrpc":"2.0","method":"notifications/resources/updated","params":{"uri":"file:///x"}}`)
	c.OnNotification(context.Background(), note)
	assert.Equal(t, "file:///x", gotURI)
}

func TestCoordinator_OnNotification_Log(t *testing.T) {
	c := newCoordinator(Config{})
	var got LogMessage
	c.OnLog(func(m LogMessage) { got = m })
	note := parseResult(t, `{"jsonrpc":"2.0","method":"notifications/message","params":{"level":"warning","logger":"core"}}`)
	c.OnNotification(context.Background(), note)
	assert.Equal(t, LogWarning, got.Level)
	assert.Equal(t, "core", got.Logger)
}

func TestCoordinator_OnNotification_Progress(t *testing.T) {
	c := newCoordinator(Config{})
	var got ProgressNotification
	c.OnProgress(func(p ProgressNotification) { got = p })
	note := parseResult(t, `{"jsonrpc":"2.0","method":"notifications/progress","params":{"progressToken":"tok","progress":0.5}}`)
	c.OnNotification(context.Background(), note)
	assert.Equal(t, 0.5, got.Progress)
}

func TestCoordinator_OnNotification_Cancelled(t *testing.T) {
	c := newCoordinator(Config{})
	var got CancelledNotification
	c.OnCancelled(func(n CancelledNotification) { got = n })
	note := parseResult(t, `{"jsonrpc":"2.0","method":"notifications/cancelled","params":{"requestId":7,"reason":"user abort"}}`)
	c.OnNotification(context.Background(), note)
	assert.Equal(t, "user abort", got.Reason)
}

func TestCoordinator_OnNotification_MalformedParamsDropped(t *testing.T) {
	c := newCoordinator(Config{})
	called := false
	c.OnLog(func(m LogMessage) { called = true })
	note := parseResult(t, `{"jsonrpc":"2.0","method":"notifications/message","params":"not-an-object"}`)
	assert.NotPanics(t, func() {
		c.OnNotification(context.Background(), note)
	})
	assert.False(t, called)
}

func TestCoordinator_OnNotification_NilCallbackIsNoOp(t *testing.T) {
	c := newCoordinator(Config{})
	note := parseResult(t, `{"jsonrpc":"2.0","method":"notifications/tools/list_changed"}`)
	assert.NotPanics(t, func() {
		c.OnNotification(context.Background(), note)
	})
}

func TestCoordinator_OnNotification_Unrecognized(t *testing.T) {
	c := newCoordinator(Config{})
	note := parseResult(t, `{"jsonrpc":"2.0","method":"notifications/something/else"}`)
	assert.NotPanics(t, func() {
		c.OnNotification(context.Background(), note)
	})
}
