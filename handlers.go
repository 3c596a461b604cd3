package mcp

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
)

type progressTokenKey struct{}

// WithProgressToken returns a context that carries token as the
// progressToken attached to _meta on the next outgoing request made with
// it. Outgoing requests carry no progress token unless a caller opts in
// this way.
func WithProgressToken(ctx context.Context, token interface{}) context.Context {
	return context.WithValue(ctx, progressTokenKey{}, token)
}

// attachProgressToken merges the context's progress token (if any) into
// params as _meta.progressToken, leaving params untouched when ctx carries
// no token. params must marshal to a JSON object or be nil.
func attachProgressToken(ctx context.Context, params interface{}) (interface{}, error) {
	token := ctx.Value(progressTokenKey{})
	if token == nil {
		return params, nil
	}

	var obj map[string]interface{}
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("progress token requires object-shaped params: %w", err)
		}
	}
	if obj == nil {
		obj = map[string]interface{}{}
	}
	obj["_meta"] = map[string]interface{}{"progressToken": token}
	return obj, nil
}

// OnToolsListChanged registers a callback invoked for every
// notifications/tools/list_changed received. Callbacks must not block;
// enqueue work instead of doing it inline.
func (c *Coordinator) OnToolsListChanged(fn func()) {
	c.mu.Lock()
	c.toolsChanged = fn
	c.mu.Unlock()
}

// OnResourcesListChanged registers a callback for
// notifications/resources/list_changed.
func (c *Coordinator) OnResourcesListChanged(fn func()) {
	c.mu.Lock()
	c.resourcesChanged = fn
	c.mu.Unlock()
}

// OnPromptsListChanged registers a callback for
// notifications/prompts/list_changed.
func (c *Coordinator) OnPromptsListChanged(fn func()) {
	c.mu.Lock()
	c.promptsChanged = fn
	c.mu.Unlock()
}

// OnResourceUpdated registers a callback for
// notifications/resources/updated, invoked with the updated resource's URI.
func (c *Coordinator) OnResourceUpdated(fn func(uri string)) {
	c.mu.Lock()
	c.resourceUpdated = fn
	c.mu.Unlock()
}

// OnLog registers a callback for notifications/message (server-side log
// forwarding).
func (c *Coordinator) OnLog(fn func(LogMessage)) {
	c.mu.Lock()
	c.onLog = fn
	c.mu.Unlock()
}

// OnProgress registers a callback for notifications/progress.
func (c *Coordinator) OnProgress(fn func(ProgressNotification)) {
	c.mu.Lock()
	c.onProgress = fn
	c.mu.Unlock()
}

// OnCancelled registers a callback for notifications/cancelled.
func (c *Coordinator) OnCancelled(fn func(CancelledNotification)) {
	c.mu.Lock()
	c.onCancelled = fn
	c.mu.Unlock()
}

// SetRootsProvider registers the callback that answers a server-initiated
// roots/list request. With no provider set, roots/list is answered with an
// empty list.
func (c *Coordinator) SetRootsProvider(fn func(ctx context.Context) ([]Root, error)) {
	c.mu.Lock()
	c.rootsProvider = fn
	c.mu.Unlock()
}

// SetSamplingHandler registers the callback that answers a server-initiated
// sampling/createMessage request. With no handler set, the request is
// answered with a method-not-found error.
func (c *Coordinator) SetSamplingHandler(fn func(ctx context.Context, params json.RawMessage) (json.RawMessage, error)) {
	c.mu.Lock()
	c.samplingHandler = fn
	c.mu.Unlock()
}
