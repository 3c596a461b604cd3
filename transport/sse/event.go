package sse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Event is one parsed Server-Sent Events record: lines starting data:,
// event:, id: accumulate into fields; multi-line data joins with "\n";
// a record ends at the first blank line.
type Event struct {
	ID    string
	Event string
	Data  string
}

// readEvent reads a single SSE record from reader. It returns io.EOF when
// the stream ends cleanly with no partial record pending.
func readEvent(ctx context.Context, reader *bufio.Reader) (*Event, error) {
	event := &Event{}
	var dataLines []string
	var hasAnyField bool

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err == io.EOF && !hasAnyField {
				return nil, io.EOF
			}
			if err == io.EOF {
				event.Data = strings.Join(dataLines, "\n")
				return event, nil
			}
			return nil, fmt.Errorf("sse stream error: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if hasAnyField {
				event.Data = strings.Join(dataLines, "\n")
				return event, nil
			}
			continue
		}

		hasAnyField = true
		switch {
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case strings.HasPrefix(line, "event:"):
			event.Event = strings.TrimPrefix(strings.TrimPrefix(line, "event:"), " ")
		case strings.HasPrefix(line, "id:"):
			event.ID = strings.TrimPrefix(strings.TrimPrefix(line, "id:"), " ")
		}
	}
}
