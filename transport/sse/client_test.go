package sse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arrowmcp/mcp-client-go/transport"
)

type recordingHandler struct {
	mu            sync.Mutex
	notifications []*transport.Result
}

func (h *recordingHandler) Serve(ctx context.Context, request *transport.Result) *transport.Response {
	return transport.NewResultResponse(request.ID(), []byte(`{}`))
}

func (h *recordingHandler) OnNotification(ctx context.Context, notification *transport.Result) {
	h.mu.Lock()
	h.notifications = append(h.notifications, notification)
	h.mu.Unlock()
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.notifications)
}

// newFixtureServer serves the event stream at /events, announcing
// /messages/session-1 as the endpoint, and accepts posts at
// /messages/session-1 which it immediately relays back down the event
// stream tagged "message" - enough to exercise the full handshake plus a
// response round trip without a real MCP server.
func newFixtureServer(t *testing.T) (*httptest.Server, chan string) {
	t.Helper()
	relay := make(chan string, 8)
	mux := http.NewServeMux()

	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		fmt.Fprintf(w, "event: endpoint\ndata: /messages/session-1\n\n")
		flusher.Flush()

		for {
			select {
			case line := <-relay:
				fmt.Fprintf(w, "event: message\ndata: %s\n\n", line)
				flusher.Flush()
			case <-r.Context().Done():
				return
			}
		}
	})

	mux.HandleFunc("/messages/session-1", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		relay <- string(body)
		w.WriteHeader(http.StatusAccepted)
	})

	return httptest.NewServer(mux), relay
}

func TestClient_EndpointHandshake(t *testing.T) {
	server, _ := newFixtureServer(t)
	defer server.Close()

	handler := &recordingHandler{}
	client, err := New(context.Background(), server.URL+"/events", WithHandler(handler))
	require.NoError(t, err)
	defer client.Close(context.Background())

	assert.True(t, client.Alive())
	assert.Contains(t, client.sender.currentURL(), "/messages/session-1")
}

func TestClient_NotifyPostsToMessagesURL(t *testing.T) {
	server, _ := newFixtureServer(t)
	defer server.Close()

	client, err := New(context.Background(), server.URL+"/events", WithHandler(&recordingHandler{}), WithRequestTimeout(2*time.Second))
	require.NoError(t, err)
	defer client.Close(context.Background())

	// The fixture accepts the POST at the announced messages URL and relays
	// it back over the event stream tagged "message"; Notify (no id, no
	// wait) only needs the POST to be accepted, so no response is matched.
	err = client.Notify(context.Background(), "notifications/initialized", nil)
	assert.NoError(t, err)
}

func TestClient_HandshakeTimeout(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		<-r.Context().Done()
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := New(context.Background(), server.URL+"/events", WithHandshakeTimeout(100*time.Millisecond))
	assert.Error(t, err)
}

func TestClient_NonOKHandshakeStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := New(context.Background(), server.URL+"/events")
	require.Error(t, err)
	transportErr, ok := err.(*transport.TransportError)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, transportErr.Code)
}

func TestMessagesSender_NotInitialized(t *testing.T) {
	sender := &messagesSender{client: http.DefaultClient}
	err := sender.SendData(context.Background(), []byte("{}"))
	assert.Error(t, err)
}
