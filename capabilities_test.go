package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerCapabilities_Predicates_AllAbsent(t *testing.T) {
	var caps ServerCapabilities
	assert.False(t, caps.ToolsList())
	assert.False(t, caps.ToolsListChanges())
	assert.False(t, caps.ResourcesList())
	assert.False(t, caps.ResourcesListChanges())
	assert.False(t, caps.ResourceSubscribe())
	assert.False(t, caps.PromptsList())
	assert.False(t, caps.PromptsListChanges())
	assert.False(t, caps.Completion())
	assert.False(t, caps.Logging())
}

func TestServerCapabilities_Predicates_Present(t *testing.T) {
	caps := ServerCapabilities{
		Tools:       &ToolsCapability{ListChanged: true},
		Resources:   &ResourcesCapability{Subscribe: true, ListChanged: false},
		Prompts:     &PromptsCapability{ListChanged: true},
		Log:         &LoggingCapability{},
		Completions: &CompletionsCapability{},
	}
	assert.True(t, caps.ToolsList())
	assert.True(t, caps.ToolsListChanges())
	assert.True(t, caps.ResourcesList())
	assert.False(t, caps.ResourcesListChanges())
	assert.True(t, caps.ResourceSubscribe())
	assert.True(t, caps.PromptsList())
	assert.True(t, caps.PromptsListChanges())
	assert.True(t, caps.Completion())
	assert.True(t, caps.Logging())
}

func TestServerCapabilities_OfferedWithoutSubFlags(t *testing.T) {
	caps := ServerCapabilities{
		Resources: &ResourcesCapability{},
	}
	assert.True(t, caps.ResourcesList())
	assert.False(t, caps.ResourcesListChanges())
	assert.False(t, caps.ResourceSubscribe())
}

func TestServerCapabilities_ValueReceiverFromFunctionResult(t *testing.T) {
	makeCaps := func() ServerCapabilities {
		return ServerCapabilities{Tools: &ToolsCapability{}}
	}
	assert.True(t, makeCaps().ToolsList())
}
