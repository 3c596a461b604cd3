package mcp

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/arrowmcp/mcp-client-go/transport"
)

// Serve implements transport.Handler for server-to-client requests: ping,
// sampling/createMessage, and roots/list. Every other method is answered
// with a method-not-found error so the server is never left hanging.
func (c *Coordinator) Serve(ctx context.Context, request *transport.Result) *transport.Response {
	switch request.Method() {
	case "ping":
		return transport.NewResultResponse(request.ID(), json.RawMessage("{}"))

	case "sampling/createMessage":
		c.mu.RLock()
		handler := c.samplingHandler
		c.mu.RUnlock()
		if handler == nil {
			return transport.NewErrorResponse(request.ID(), transport.MethodNotFound, "sampling is not supported by this client", nil)
		}
		result, err := handler(ctx, request.Params())
		if err != nil {
			return transport.NewErrorResponse(request.ID(), transport.InternalError, err.Error(), nil)
		}
		return transport.NewResultResponse(request.ID(), result)

	case "roots/list":
		c.mu.RLock()
		provider := c.rootsProvider
		c.mu.RUnlock()
		var roots []Root
		if provider != nil {
			var err error
			roots, err = provider(ctx)
			if err != nil {
				return transport.NewErrorResponse(request.ID(), transport.InternalError, err.Error(), nil)
			}
		}
		if roots == nil {
			roots = []Root{}
		}
		data, err := json.Marshal(map[string]interface{}{"roots": roots})
		if err != nil {
			return transport.NewErrorResponse(request.ID(), transport.InternalError, err.Error(), nil)
		}
		return transport.NewResultResponse(request.ID(), data)

	default:
		c.logger.Debugf("unknown server request method: %s", request.Method())
		err := &UnknownRequestError{Method: request.Method()}
		return transport.NewErrorResponse(request.ID(), transport.MethodNotFound, err.Error(), nil)
	}
}

// OnNotification implements transport.Handler for server-to-client
// notifications. Unrecognized methods are logged at debug and dropped;
// malformed params are logged at debug and the notification is skipped
// rather than propagated as an error.
func (c *Coordinator) OnNotification(ctx context.Context, notification *transport.Result) {
	switch notification.Method() {
	case "notifications/tools/list_changed":
		c.mu.RLock()
		handler := c.toolsChanged
		c.mu.RUnlock()
		if handler != nil {
			handler()
		}

	case "notifications/resources/list_changed":
		c.mu.RLock()
		handler := c.resourcesChanged
		c.mu.RUnlock()
		if handler != nil {
			handler()
		}

	case "notifications/prompts/list_changed":
		c.mu.RLock()
		handler := c.promptsChanged
		c.mu.RUnlock()
		if handler != nil {
			handler()
		}

	case "notifications/resources/updated":
		var payload ResourceUpdatedNotification
		if err := json.Unmarshal(notification.Params(), &payload); err != nil {
			c.logger.Debugf("dropping malformed resources/updated notification: %v", err)
			return
		}
		c.mu.RLock()
		handler := c.resourceUpdated
		c.mu.RUnlock()
		if handler != nil {
			handler(payload.URI)
		}

	case "notifications/message":
		var payload LogMessage
		if err := json.Unmarshal(notification.Params(), &payload); err != nil {
			c.logger.Debugf("dropping malformed log notification: %v", err)
			return
		}
		c.mu.RLock()
		handler := c.onLog
		c.mu.RUnlock()
		if handler != nil {
			handler(payload)
		}

	case "notifications/progress":
		var payload ProgressNotification
		if err := json.Unmarshal(notification.Params(), &payload); err != nil {
			c.logger.Debugf("dropping malformed progress notification: %v", err)
			return
		}
		c.mu.RLock()
		handler := c.onProgress
		c.mu.RUnlock()
		if handler != nil {
			handler(payload)
		}

	case "notifications/cancelled":
		var payload CancelledNotification
		if err := json.Unmarshal(notification.Params(), &payload); err != nil {
			c.logger.Debugf("dropping malformed cancelled notification: %v", err)
			return
		}
		c.mu.RLock()
		handler := c.onCancelled
		c.mu.RUnlock()
		if handler != nil {
			handler(payload)
		}

	default:
		c.logger.Debugf("dropping unrecognized notification: %s", notification.Method())
	}
}
