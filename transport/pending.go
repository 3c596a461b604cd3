package transport

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Rendezvous is a one-shot handoff between an outbound request and the
// background reader that will eventually deliver its Result (or a terminal
// error). It is created before the outbound write and resolved exactly
// once, by response arrival, by timeout, or by transport failure.
type Rendezvous struct {
	requestID RequestID
	done      chan struct{}
	once      sync.Once
	result    *Result
	err       error
}

func newRendezvous(requestID RequestID) *Rendezvous {
	return &Rendezvous{requestID: requestID, done: make(chan struct{})}
}

// Resolve hands result to the waiter. A no-op if already resolved.
func (r *Rendezvous) Resolve(result *Result) {
	r.once.Do(func() {
		r.result = result
		close(r.done)
	})
}

// Fail hands err to the waiter. A no-op if already resolved.
func (r *Rendezvous) Fail(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Wait blocks until Resolve/Fail is called, ctx is cancelled, or timeout
// elapses, in which case it returns a *TimeoutError naming the request id.
func (r *Rendezvous) Wait(ctx context.Context, timeout time.Duration) (*Result, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-r.done:
		return r.result, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, &TimeoutError{RequestID: r.requestID}
	}
}

// PendingTable maps a request-id string to its Rendezvous. Invariants: at
// most one entry per id at any time; an entry is created before the
// outbound write and removed on response arrival, timeout, or transport
// failure; removing an absent id is a no-op.
type PendingTable struct {
	mu      sync.Mutex
	entries map[string]*Rendezvous
	closed  error
}

// NewPendingTable creates an empty table.
func NewPendingTable() *PendingTable {
	return &PendingTable{entries: make(map[string]*Rendezvous)}
}

// Register creates and stores a Rendezvous under id. Returns an error if
// the table has been closed (transport torn down) or id is already pending.
func (t *PendingTable) Register(id RequestID) (*Rendezvous, error) {
	key := idString(id)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed != nil {
		return nil, t.closed
	}
	if _, exists := t.entries[key]; exists {
		return nil, fmt.Errorf("request id %v already pending", id)
	}
	r := newRendezvous(id)
	t.entries[key] = r
	return r, nil
}

// Resolve matches result's id against a pending entry, removes it, and
// resolves its waiter. Returns false if no matching entry was found (the
// caller then knows not to treat result as a response hand-off).
func (t *PendingTable) Resolve(result *Result) bool {
	key := idString(result.ID())
	t.mu.Lock()
	r, ok := t.entries[key]
	if ok {
		delete(t.entries, key)
	}
	t.mu.Unlock()
	if !ok {
		return false
	}
	r.Resolve(result)
	return true
}

// Remove deletes id from the table without resolving it, used after Wait
// times out so the entry does not linger.
func (t *PendingTable) Remove(id RequestID) {
	key := idString(id)
	t.mu.Lock()
	delete(t.entries, key)
	t.mu.Unlock()
}

// FailAll resolves every pending entry with err and marks the table closed,
// so any Register after this point fails fast. Used when a transport dies.
func (t *PendingTable) FailAll(err error) {
	t.mu.Lock()
	entries := t.entries
	t.entries = make(map[string]*Rendezvous)
	t.closed = err
	t.mu.Unlock()
	for _, r := range entries {
		r.Fail(err)
	}
}

// Reopen clears a prior FailAll so the table accepts new registrations
// again (used by stdio's restart_process, which succeeds transparently).
func (t *PendingTable) Reopen() {
	t.mu.Lock()
	t.closed = nil
	t.mu.Unlock()
}

// Len reports the number of pending entries; used by tests asserting
// steady-state emptiness.
func (t *PendingTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
