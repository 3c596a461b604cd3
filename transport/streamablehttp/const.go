package streamablehttp

const (
	sessionHeader         = "Mcp-Session-Id"
	protocolVersionHeader = "MCP-Protocol-Version"
	lastEventIDHeader     = "Last-Event-ID"
	clientIDHeader        = "X-CLIENT-ID"

	sseMime  = "text/event-stream"
	jsonMime = "application/json"

	defaultProtocolVersion = "2025-06-18"
)
