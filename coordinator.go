package mcp

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"

	"github.com/arrowmcp/mcp-client-go/transport"
)

var knownProtocolVersions = map[string]bool{
	"2024-11-05": true,
	"2025-03-26": true,
	"2025-06-18": true,
}

// Coordinator owns one transport, tracks the negotiated protocol version and
// server capabilities, and exposes typed request helpers for every MCP
// method. It implements transport.Handler so the transport's reader loop can
// route server-initiated requests and notifications back into it.
type Coordinator struct {
	name               string
	version            string
	clientCapabilities ClientCapabilities
	protocolProposed   string
	requestTimeout     time.Duration
	logger             transport.Logger

	transport transport.Transport

	serverCaps      atomic.Value // ServerCapabilities
	protocolVersion atomic.Value // string

	mu               sync.RWMutex
	toolsChanged     func()
	resourcesChanged func()
	promptsChanged   func()
	resourceUpdated  func(uri string)
	onLog            func(LogMessage)
	onProgress       func(ProgressNotification)
	onCancelled      func(CancelledNotification)
	rootsProvider    func(ctx context.Context) ([]Root, error)
	samplingHandler  func(ctx context.Context, params json.RawMessage) (json.RawMessage, error)
}

func newCoordinator(cfg Config) *Coordinator {
	clientCaps := ClientCapabilities{}
	if cfg.ClientCapabilities != nil {
		clientCaps = *cfg.ClientCapabilities
	}
	proposed := cfg.ProtocolVersion
	if proposed == "" {
		proposed = DefaultProtocolVersion
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Minute
	}
	logger := cfg.Logger
	if logger == nil {
		logger = transport.DefaultLogger
	}
	c := &Coordinator{
		name:               cfg.Name,
		version:            cfg.Version,
		clientCapabilities: clientCaps,
		protocolProposed:   proposed,
		requestTimeout:     timeout,
		logger:             logger,
	}
	c.serverCaps.Store(ServerCapabilities{})
	c.protocolVersion.Store("")
	return c
}

// ServerCapabilities returns the capability set negotiated on Start. Before
// Start completes it returns the zero value, in which every predicate is
// false.
func (c *Coordinator) ServerCapabilities() ServerCapabilities {
	return c.serverCaps.Load().(ServerCapabilities)
}

// ProtocolVersion returns the protocol version negotiated on Start, or "" if
// Start has not completed.
func (c *Coordinator) ProtocolVersion() string {
	v, _ := c.protocolVersion.Load().(string)
	return v
}

// Start runs the initialize handshake: send initialize, validate the
// returned protocol version, store server capabilities, attach the version
// to the transport, then send notifications/initialized. The transport
// itself is already started by the time Start is called (New starts it:
// stdio spawns the child, SSE completes the endpoint handshake, Streamable
// HTTP makes no request until the first send); Start performs only the
// steps that require the coordinator's own state.
func (c *Coordinator) Start(ctx context.Context) error {
	params := map[string]interface{}{
		"protocolVersion": c.protocolProposed,
		"capabilities":    c.clientCapabilities,
		"clientInfo":      ClientInfo{Name: c.name, Version: c.version},
	}
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal initialize params: %w", err)
	}

	result, err := c.transport.Send(ctx, "initialize", data, true)
	if err != nil {
		return err
	}
	if rpcErr := result.Err(); rpcErr != nil {
		return transport.NewRPCError(rpcErr)
	}

	var init InitializeResult
	if err := json.Unmarshal(result.RawResult(), &init); err != nil {
		return fmt.Errorf("failed to decode initialize result: %w", err)
	}
	if !knownProtocolVersions[init.ProtocolVersion] {
		return &transport.InvalidProtocolVersionError{Version: init.ProtocolVersion}
	}

	c.serverCaps.Store(init.Capabilities)
	c.protocolVersion.Store(init.ProtocolVersion)
	c.transport.SetProtocolVersion(init.ProtocolVersion)

	if err := c.transport.Notify(ctx, "notifications/initialized", nil); err != nil {
		return err
	}
	return nil
}

// Stop tears down the transport and its background readers.
func (c *Coordinator) Stop(ctx context.Context) error {
	return c.transport.Close(ctx)
}

// request marshals params, sends method, and decodes the result into out
// (when non-nil). A JSON-RPC error envelope surfaces as *transport.RPCError.
func (c *Coordinator) request(ctx context.Context, method string, params interface{}, out interface{}) error {
	merged, err := attachProgressToken(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to attach progress token to %s params: %w", method, err)
	}
	var data []byte
	if merged != nil {
		encoded, err := json.Marshal(merged)
		if err != nil {
			return fmt.Errorf("failed to marshal %s params: %w", method, err)
		}
		data = encoded
	}
	result, err := c.transport.Send(ctx, method, data, true)
	if err != nil {
		return err
	}
	if rpcErr := result.Err(); rpcErr != nil {
		return transport.NewRPCError(rpcErr)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(result.RawResult(), out)
}

// ListTools calls tools/list.
func (c *Coordinator) ListTools(ctx context.Context, cursor string) (*ListToolsResult, error) {
	var params interface{}
	if cursor != "" {
		params = map[string]string{"cursor": cursor}
	}
	var out ListToolsResult
	if err := c.request(ctx, "tools/list", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CallTool calls tools/call. Wrap ctx with WithProgressToken beforehand to
// attach a progressToken under _meta, so the server can correlate
// notifications/progress updates with this call; with no token in ctx the
// request carries no _meta at all.
func (c *Coordinator) CallTool(ctx context.Context, name string, arguments interface{}) (*CallToolResult, error) {
	params := map[string]interface{}{"name": name, "arguments": arguments}
	var out CallToolResult
	if err := c.request(ctx, "tools/call", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListResources calls resources/list.
func (c *Coordinator) ListResources(ctx context.Context, cursor string) (*ListResourcesResult, error) {
	var params interface{}
	if cursor != "" {
		params = map[string]string{"cursor": cursor}
	}
	var out ListResourcesResult
	if err := c.request(ctx, "resources/list", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReadResource calls resources/read.
func (c *Coordinator) ReadResource(ctx context.Context, uri string) (*ReadResourceResult, error) {
	var out ReadResourceResult
	if err := c.request(ctx, "resources/read", map[string]string{"uri": uri}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubscribeResource calls resources/subscribe. It fails locally with
// *ResourceSubscriptionNotAvailableError if the server never advertised
// subscribe support.
func (c *Coordinator) SubscribeResource(ctx context.Context, uri string) error {
	if !c.ServerCapabilities().ResourceSubscribe() {
		return &ResourceSubscriptionNotAvailableError{}
	}
	return c.request(ctx, "resources/subscribe", map[string]string{"uri": uri}, nil)
}

// UnsubscribeResource calls resources/unsubscribe. It shares
// resources/subscribe's capability gate: *ResourceSubscriptionNotAvailableError
// if the server never advertised subscribe support.
func (c *Coordinator) UnsubscribeResource(ctx context.Context, uri string) error {
	if !c.ServerCapabilities().ResourceSubscribe() {
		return &ResourceSubscriptionNotAvailableError{}
	}
	return c.request(ctx, "resources/unsubscribe", map[string]string{"uri": uri}, nil)
}

// ListPrompts calls prompts/list.
func (c *Coordinator) ListPrompts(ctx context.Context, cursor string) (*ListPromptsResult, error) {
	var params interface{}
	if cursor != "" {
		params = map[string]string{"cursor": cursor}
	}
	var out ListPromptsResult
	if err := c.request(ctx, "prompts/list", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPrompt calls prompts/get.
func (c *Coordinator) GetPrompt(ctx context.Context, name string, arguments map[string]string) (*GetPromptResult, error) {
	params := map[string]interface{}{"name": name}
	if len(arguments) > 0 {
		params["arguments"] = arguments
	}
	var out GetPromptResult
	if err := c.request(ctx, "prompts/get", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ValidatePromptArguments checks arguments against prompt's declared
// required arguments, returning *PromptArgumentError for the first missing
// one. Callers that have a cached Prompt (from ListPrompts) can use this
// before GetPrompt to fail locally instead of round-tripping.
func ValidatePromptArguments(prompt Prompt, arguments map[string]string) error {
	for _, arg := range prompt.Arguments {
		if !arg.Required {
			continue
		}
		if _, ok := arguments[arg.Name]; !ok {
			return &PromptArgumentError{Prompt: prompt.Name, Argument: arg.Name}
		}
	}
	return nil
}

// CompletionReference names what completion/complete is completing against:
// either a prompt or a resource template.
type CompletionReference struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	URI  string `json:"uri,omitempty"`
}

// CompletionArgument is the partially typed argument completion/complete
// resolves suggestions for.
type CompletionArgument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Complete calls completion/complete. It raises *CompletionNotAvailableError
// locally if the server never advertised the completions capability.
func (c *Coordinator) Complete(ctx context.Context, ref CompletionReference, argument CompletionArgument) (*CompleteResult, error) {
	if !c.ServerCapabilities().Completion() {
		return nil, &CompletionNotAvailableError{}
	}
	params := map[string]interface{}{"ref": ref, "argument": argument}
	var out CompleteResult
	if err := c.request(ctx, "completion/complete", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping calls the ping method and waits for its (empty) result.
func (c *Coordinator) Ping(ctx context.Context) error {
	return c.request(ctx, "ping", nil, nil)
}

// SetLogLevel calls logging/setLevel. It raises *LoggingNotAvailableError
// locally if the server never advertised the logging capability.
func (c *Coordinator) SetLogLevel(ctx context.Context, level LogLevel) error {
	if !c.ServerCapabilities().Logging() {
		return &LoggingNotAvailableError{}
	}
	return c.request(ctx, "logging/setLevel", map[string]string{"level": string(level)}, nil)
}
