package sse

import (
	"bufio"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEvent_EndpointFrame(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("event: endpoint\ndata: /messages/abc\n\n"))
	evt, err := readEvent(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, "endpoint", evt.Event)
	assert.Equal(t, "/messages/abc", evt.Data)
}

func TestReadEvent_MultiLineData(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("event: message\ndata: part1\ndata: part2\n\n"))
	evt, err := readEvent(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, "part1\npart2", evt.Data)
}

func TestReadEvent_EOFNoPendingRecord(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))
	_, err := readEvent(context.Background(), reader)
	assert.Equal(t, io.EOF, err)
}

func TestReadEvent_BlankLinesSkippedBeforeFields(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("\n\nevent: message\ndata: x\n\n"))
	evt, err := readEvent(context.Background(), reader)
	require.NoError(t, err)
	assert.Equal(t, "message", evt.Event)
	assert.Equal(t, "x", evt.Data)
}
