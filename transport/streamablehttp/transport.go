package streamablehttp

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/arrowmcp/mcp-client-go/transport"
)

// httpSender implements base.Sender by POSTing framed envelopes to the
// single Streamable HTTP endpoint and dispatching on the response's status
// code and content type.
type httpSender struct {
	client *Client
}

func (s *httpSender) SendData(ctx context.Context, data []byte) error {
	c := s.client

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", jsonMime)
	req.Header.Set("Accept", jsonMime+", "+sseMime)
	c.applyCommonHeaders(req)

	resp, err := c.client().Do(req)
	if err != nil {
		return transport.NewTransportError("failed to send request", err)
	}
	defer resp.Body.Close()

	if sid := resp.Header.Get(sessionHeader); sid != "" && sid != c.session() {
		c.setSession(sid)
		c.ensureStream()
	}

	ct := resp.Header.Get("Content-Type")

	switch resp.StatusCode {
	case http.StatusOK:
		switch {
		case strings.Contains(ct, jsonMime):
			body, _ := io.ReadAll(resp.Body)
			if len(body) > 0 {
				c.base.HandleMessage(ctx, body)
			}
			return nil
		case strings.Contains(ct, sseMime):
			return c.consumeStream(ctx, resp)
		default:
			return transport.NewTransportError(fmt.Sprintf("unexpected content type %q on 200 response", ct), nil)
		}
	case http.StatusAccepted:
		c.ensureStream()
		return nil
	case http.StatusUnauthorized:
		if c.onUnauthorized != nil {
			body, _ := io.ReadAll(resp.Body)
			c.onUnauthorized(&transport.UnauthorizedError{StatusCode: resp.StatusCode, Body: body})
		}
		return nil
	case http.StatusNotFound:
		return &transport.SessionExpiredError{Message: "session not found"}
	case http.StatusMethodNotAllowed:
		return nil
	case http.StatusBadRequest:
		body, _ := io.ReadAll(resp.Body)
		if strings.Contains(strings.ToLower(string(body)), "session") {
			return transport.NewHTTPTransportError(fmt.Sprintf("session rejected: %s", body), resp.StatusCode, nil)
		}
		return transport.NewHTTPTransportError(fmt.Sprintf("bad request: %s", body), resp.StatusCode, nil)
	default:
		body, _ := io.ReadAll(resp.Body)
		return transport.NewHTTPTransportError(fmt.Sprintf("request failed: %s", body), resp.StatusCode, nil)
	}
}

func (c *Client) client() *http.Client { return c.httpClient }

// consumeStream reads SSE frames off resp until the stream ends or the
// context is cancelled, dispatching "message" events through the pending
// table and handler, and tracking the last delivered event id for resume.
func (c *Client) consumeStream(ctx context.Context, resp *http.Response) error {
	reader := bufio.NewReader(resp.Body)
	for {
		evt, err := readEvent(ctx, reader)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return transport.NewTransportError("stream read error", err)
		}
		if evt.ID != "" {
			c.lastEventID.Store(evt.ID)
		}
		if evt.Event != "" && evt.Event != "message" {
			c.logger.Debugf("dropping unrecognized stream event: %s", evt.Event)
			continue
		}
		if strings.TrimSpace(evt.Data) == "" {
			continue
		}
		c.base.HandleMessage(ctx, []byte(evt.Data))
	}
}
