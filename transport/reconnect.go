package transport

import "time"

// ReconnectPolicy is a pure backoff calculator for Streamable HTTP's
// persistent SSE stream. The legacy SSE transport does not use it; it
// sleeps a fixed one second before reconnecting. No side effects; the
// attempt counter itself is owned by the caller. Streamable HTTP resets it
// when a stream that opened with 200 ends without error; a stream that
// delivers events and then fails with a read error does not reset it.
type ReconnectPolicy struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	GrowthFactor float64
	MaxRetries   int
}

// DefaultReconnectPolicy returns 100ms initial delay, doubling, capped at
// 10s, with three retries.
func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		GrowthFactor: 2,
		MaxRetries:   3,
	}
}

// Delay returns min(initial * growth^attempt, max). Monotone non-decreasing
// in attempt and bounded above by MaxDelay.
func (p ReconnectPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := float64(p.InitialDelay)
	growth := p.GrowthFactor
	if growth <= 0 {
		growth = 1
	}
	for i := 0; i < attempt; i++ {
		delay *= growth
		if time.Duration(delay) >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if time.Duration(delay) > p.MaxDelay {
		return p.MaxDelay
	}
	return time.Duration(delay)
}

// ShouldRetry reports whether attempt is still within MaxRetries. A
// MaxRetries of zero means unlimited retries.
func (p ReconnectPolicy) ShouldRetry(attempt int) bool {
	if p.MaxRetries <= 0 {
		return true
	}
	return attempt < p.MaxRetries
}
