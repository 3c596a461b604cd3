package transport

import (
	"fmt"

	"github.com/goccy/go-json"
)

// kind classifies a decoded envelope the way probe() below determines it:
// a notification has no id, a request has both id and method, a response
// has an id but no method.
type kind int

const (
	kindUnknown kind = iota
	kindRequest
	kindNotification
	kindResponse
)

// probe is the minimal shape needed to classify a raw JSON-RPC envelope
// without committing to a full Request/Response/Notification decode.
type probe struct {
	Id     *RequestID      `json:"id"`
	Method string          `json:"method"`
	Result json.RawMessage `json:"result"`
	Error  *InnerError     `json:"error"`
}

// classify inspects data and reports which kind of envelope it holds.
func classify(data []byte) (kind, probe, error) {
	var p probe
	if err := json.Unmarshal(data, &p); err != nil {
		return kindUnknown, p, err
	}
	switch {
	case p.Id == nil && p.Method != "":
		return kindNotification, p, nil
	case p.Id != nil && p.Method != "":
		return kindRequest, p, nil
	case p.Id != nil:
		return kindResponse, p, nil
	default:
		return kindUnknown, p, fmt.Errorf("unrecognized jsonrpc envelope")
	}
}

// Result is an immutable parsed view over a decoded JSON-RPC message. It
// classifies as exactly one of response, request, notification, or unknown,
// and optionally carries a session id when produced by a transport that has
// one (Streamable HTTP).
type Result struct {
	id        RequestID
	hasID     bool
	method    string
	params    json.RawMessage
	result    json.RawMessage
	err       *InnerError
	sessionID string

	isNotification bool
	isRequest      bool
	isResponse     bool
}

// Parse decodes data into a Result. Callers should treat the returned
// Result as read-only; no method mutates it.
func Parse(data []byte) (*Result, error) {
	k, p, err := classify(data)
	if err != nil {
		return nil, err
	}
	r := &Result{method: p.Method, result: p.Result, err: p.Error}
	if p.Id != nil {
		r.id = *p.Id
		r.hasID = true
	}
	switch k {
	case kindNotification:
		r.isNotification = true
		var n Notification
		if err := json.Unmarshal(data, &n); err == nil {
			r.params = n.Params
		}
	case kindRequest:
		r.isRequest = true
		var req Request
		if err := json.Unmarshal(data, &req); err == nil {
			r.params = req.Params
		}
	case kindResponse:
		r.isResponse = true
	}
	return r, nil
}

// WithSessionID returns a shallow copy of r carrying sessionID; used by
// transports that receive a session id alongside the message (e.g. the
// mcp-session-id response header on Streamable HTTP).
func (r *Result) WithSessionID(sessionID string) *Result {
	cp := *r
	cp.sessionID = sessionID
	return &cp
}

func (r *Result) ID() RequestID          { return r.id }
func (r *Result) Method() string         { return r.method }
func (r *Result) Params() json.RawMessage { return r.params }
func (r *Result) RawResult() json.RawMessage { return r.result }
func (r *Result) Err() *InnerError       { return r.err }
func (r *Result) SessionID() string      { return r.sessionID }

// Notification reports whether this Result carries no id and a method.
func (r *Result) Notification() bool { return r.isNotification }

// Request reports whether this Result carries both an id and a method,
// i.e. it is a server-initiated request awaiting a response.
func (r *Result) Request() bool { return r.isRequest }

// Response reports whether this Result carries an id and a result/error but
// no method.
func (r *Result) Response() bool { return r.isResponse }

// Ping reports whether this Result is the "ping" method, either as request
// or notification.
func (r *Result) Ping() bool { return r.method == "ping" }

// MatchingID reports whether id, coerced to string, equals this Result's id
// coerced to string. Coercion is string equality only: no numeric widening.
func (r *Result) MatchingID(id any) bool {
	if !r.hasID {
		return false
	}
	return idString(r.id) == idString(id)
}

func idString(id any) string {
	if id == nil {
		return ""
	}
	switch v := id.(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
