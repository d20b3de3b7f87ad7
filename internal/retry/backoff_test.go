package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExponentialBackoff_Defaults(t *testing.T) {
	b := NewExponentialBackoff(3)
	assert.Equal(t, 100*time.Millisecond, b.initialDelay)
	assert.Equal(t, 30*time.Second, b.maxDelay)
	assert.Equal(t, 2.0, b.multiplier)
	assert.Equal(t, 0.1, b.jitter)
	assert.Equal(t, 3, b.MaxAttempts())
}

func TestExponentialBackoff_NextDelay(t *testing.T) {
	b := NewExponentialBackoff(5, WithInitialDelay(100*time.Millisecond), WithJitter(0))

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1600 * time.Millisecond,
	}
	for attempt, expected := range want {
		assert.Equal(t, expected, b.NextDelay(attempt), "attempt %d", attempt)
	}
}

func TestExponentialBackoff_MaxDelayCap(t *testing.T) {
	b := NewExponentialBackoff(10,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(time.Second),
		WithJitter(0),
	)
	assert.Equal(t, 800*time.Millisecond, b.NextDelay(3))
	assert.Equal(t, time.Second, b.NextDelay(4))
	assert.Equal(t, time.Second, b.NextDelay(9))
}

func TestExponentialBackoff_Multiplier(t *testing.T) {
	b := NewExponentialBackoff(3, WithInitialDelay(10*time.Millisecond), WithMultiplier(3), WithJitter(0))
	assert.Equal(t, 90*time.Millisecond, b.NextDelay(2))
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		want   time.Duration
	}{
		{"lowest", 0.0, 900 * time.Millisecond},
		{"middle", 0.5, time.Second},
		{"high", 0.75, 1050 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewExponentialBackoff(1,
				WithInitialDelay(time.Second),
				WithJitter(0.1),
				WithJitterFunc(func() float64 { return tt.random }),
			)
			assert.InDelta(t, float64(tt.want), float64(b.NextDelay(0)), float64(time.Microsecond))
		})
	}
}

func TestExponentialBackoff_RandomJitterStaysInRange(t *testing.T) {
	b := NewExponentialBackoff(1, WithInitialDelay(time.Second), WithJitter(0.2))
	for i := 0; i < 100; i++ {
		d := b.NextDelay(0)
		assert.GreaterOrEqual(t, d, 800*time.Millisecond)
		assert.Less(t, d, 1200*time.Millisecond)
	}
}
