package mcp

import "fmt"

// CompletionNotAvailableError is raised by Complete when the server has not
// advertised the completions capability.
type CompletionNotAvailableError struct{}

func (e *CompletionNotAvailableError) Error() string {
	return "server does not advertise the completions capability"
}

// ResourceSubscriptionNotAvailableError is raised by SubscribeResource when
// the server has not advertised resources.subscribe support.
type ResourceSubscriptionNotAvailableError struct{}

func (e *ResourceSubscriptionNotAvailableError) Error() string {
	return "server does not advertise resource subscription support"
}

// LoggingNotAvailableError is raised by SetLogLevel when the server has not
// advertised the logging capability.
type LoggingNotAvailableError struct{}

func (e *LoggingNotAvailableError) Error() string {
	return "server does not advertise the logging capability"
}

// PromptArgumentError is returned by ValidatePromptArguments when a required
// argument named in the prompt's declared schema is missing. GetPrompt does
// not perform this check itself.
type PromptArgumentError struct {
	Prompt   string
	Argument string
}

func (e *PromptArgumentError) Error() string {
	return fmt.Sprintf("prompt %q is missing required argument %q", e.Prompt, e.Argument)
}

// InvalidTransportTypeError is raised by New when Config.TransportType names
// a transport this module does not implement.
type InvalidTransportTypeError struct {
	TransportType TransportType
}

func (e *InvalidTransportTypeError) Error() string {
	return fmt.Sprintf("invalid transport type: %q", e.TransportType)
}

// UnknownRequestError is the response sent back for a server-to-client
// request whose method the coordinator does not implement. It is logged,
// not propagated to any caller: the matching transport.Reply still goes out
// on the wire so the server is not left hanging.
type UnknownRequestError struct {
	Method string
}

func (e *UnknownRequestError) Error() string {
	return fmt.Sprintf("unknown request method: %q", e.Method)
}
