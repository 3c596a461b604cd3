package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_MessagesNameTheOffendingValue(t *testing.T) {
	assert.Contains(t, (&CompletionNotAvailableError{}).Error(), "completions")
	assert.Contains(t, (&ResourceSubscriptionNotAvailableError{}).Error(), "subscription")

	promptErr := &PromptArgumentError{Prompt: "greet", Argument: "name"}
	assert.Contains(t, promptErr.Error(), "greet")
	assert.Contains(t, promptErr.Error(), "name")

	transportErr := &InvalidTransportTypeError{TransportType: "bogus"}
	assert.Contains(t, transportErr.Error(), "bogus")

	unknownErr := &UnknownRequestError{Method: "x/y"}
	assert.Contains(t, unknownErr.Error(), "x/y")
}

func TestNew_UnknownTransportType(t *testing.T) {
	_, err := New(context.Background(), Config{TransportType: "bogus"})
	require := assert.New(t)
	require.Error(err)
	_, ok := err.(*InvalidTransportTypeError)
	require.True(ok)
}
