package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReconnectPolicy_Delay(t *testing.T) {
	policy := ReconnectPolicy{
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     10 * time.Second,
		GrowthFactor: 2,
	}
	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{10, 10 * time.Second},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, policy.Delay(tt.attempt))
	}
}

func TestReconnectPolicy_Delay_NegativeAttempt(t *testing.T) {
	policy := DefaultReconnectPolicy()
	assert.Equal(t, policy.InitialDelay, policy.Delay(-1))
}

func TestReconnectPolicy_ShouldRetry(t *testing.T) {
	policy := ReconnectPolicy{MaxRetries: 3}
	assert.True(t, policy.ShouldRetry(0))
	assert.True(t, policy.ShouldRetry(2))
	assert.False(t, policy.ShouldRetry(3))

	unlimited := ReconnectPolicy{MaxRetries: 0}
	assert.True(t, unlimited.ShouldRetry(1000))
}

func TestDefaultReconnectPolicy(t *testing.T) {
	policy := DefaultReconnectPolicy()
	assert.Equal(t, 100*time.Millisecond, policy.InitialDelay)
	assert.Equal(t, 10*time.Second, policy.MaxDelay)
	assert.Equal(t, float64(2), policy.GrowthFactor)
	assert.Equal(t, 3, policy.MaxRetries)
}
