package mcp

// ClientCapabilities is advertised by this client on initialize. Each
// nested pointer is present only when the corresponding feature is
// supported; a nil pointer means "not offered," distinct from an offered
// feature with every sub-flag false.
type ClientCapabilities struct {
	Roots        *RootsCapability       `json:"roots,omitempty"`
	Sampling     *SamplingCapability    `json:"sampling,omitempty"`
	Elicitation  *ElicitationCapability `json:"elicitation,omitempty"`
	Experimental map[string]interface{} `json:"experimental,omitempty"`
}

// RootsCapability advertises support for the roots/list_changed notification.
type RootsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

// SamplingCapability advertises support for sampling/createMessage.
type SamplingCapability struct{}

// ElicitationCapability advertises support for server-initiated elicitation.
type ElicitationCapability struct{}

// ServerCapabilities is the capability set returned by the server on
// initialize. Predicate methods are the only supported way to query it;
// fields stay unexported-by-convention access outside this file.
type ServerCapabilities struct {
	Tools        *ToolsCapability       `json:"tools,omitempty"`
	Resources    *ResourcesCapability   `json:"resources,omitempty"`
	Prompts      *PromptsCapability     `json:"prompts,omitempty"`
	Log          *LoggingCapability     `json:"logging,omitempty"`
	Completions  *CompletionsCapability `json:"completions,omitempty"`
	Experimental map[string]interface{} `json:"experimental,omitempty"`
}

type ToolsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type ResourcesCapability struct {
	Subscribe   bool `json:"subscribe,omitempty"`
	ListChanged bool `json:"listChanged,omitempty"`
}

type PromptsCapability struct {
	ListChanged bool `json:"listChanged,omitempty"`
}

type LoggingCapability struct{}

type CompletionsCapability struct{}

// ToolsList reports whether the server advertises the tools namespace at all.
func (s ServerCapabilities) ToolsList() bool { return s.Tools != nil }

// ToolsListChanges reports whether the server will emit
// notifications/tools/list_changed.
func (s ServerCapabilities) ToolsListChanges() bool {
	return s.ToolsList() && s.Tools.ListChanged
}

// ResourcesList reports whether the server advertises the resources namespace.
func (s ServerCapabilities) ResourcesList() bool { return s.Resources != nil }

// ResourcesListChanges reports whether the server will emit
// notifications/resources/list_changed.
func (s ServerCapabilities) ResourcesListChanges() bool {
	return s.ResourcesList() && s.Resources.ListChanged
}

// ResourceSubscribe reports whether resources/subscribe is supported.
func (s ServerCapabilities) ResourceSubscribe() bool {
	return s.ResourcesList() && s.Resources.Subscribe
}

// PromptsList reports whether the server advertises the prompts namespace.
func (s ServerCapabilities) PromptsList() bool { return s.Prompts != nil }

// PromptsListChanges reports whether the server will emit
// notifications/prompts/list_changed.
func (s ServerCapabilities) PromptsListChanges() bool {
	return s.PromptsList() && s.Prompts.ListChanged
}

// Completion reports whether completion/complete is supported.
func (s ServerCapabilities) Completion() bool { return s.Completions != nil }

// Logging reports whether logging/setLevel and notifications/message are
// supported.
func (s ServerCapabilities) Logging() bool { return s.Log != nil }
