package streamablehttp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// event is one parsed Server-Sent Events record.
type event struct {
	ID    string
	Event string
	Data  string
}

// readEvent reads a single SSE record from reader. It returns io.EOF when
// the stream ends cleanly with no partial record pending.
func readEvent(ctx context.Context, reader *bufio.Reader) (*event, error) {
	evt := &event{}
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
				evt.Data = strings.Join(dataLines, "\n")
				return evt, nil
			}
			return nil, fmt.Errorf("sse stream error: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if hasAnyField {
				evt.Data = strings.Join(dataLines, "\n")
				return evt, nil
			}
			continue
		}

		hasAnyField = true
		switch {
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case strings.HasPrefix(line, "event:"):
			evt.Event = strings.TrimPrefix(strings.TrimPrefix(line, "event:"), " ")
		case strings.HasPrefix(line, "id:"):
			evt.ID = strings.TrimPrefix(strings.TrimPrefix(line, "id:"), " ")
		}
	}
}
