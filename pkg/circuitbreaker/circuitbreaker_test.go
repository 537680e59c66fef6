package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errBackend = errors.New("backend down")

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := NewCircuitBreaker(2, time.Minute)
	fail := func() error { return errBackend }

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(fail, nil), errBackend)
	}
	assert.Equal(t, StateOpen, cb.GetState())

	called := false
	err := cb.Execute(func() error { called = true; return nil }, nil)
	assert.ErrorIs(t, err, ErrOpen)
	assert.False(t, called)
}

func TestFallbackWhenOpen(t *testing.T) {
	cb := NewCircuitBreaker(0, time.Minute)
	_ = cb.Execute(func() error { return errBackend }, nil)

	usedFallback := false
	err := cb.Execute(func() error { return nil }, func() error { usedFallback = true; return nil })
	assert.NoError(t, err)
	assert.True(t, usedFallback)
}

func TestHalfOpenTrialCall(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreaker(0, 10*time.Second)
	cb.now = func() time.Time { return now }

	_ = cb.Execute(func() error { return errBackend }, nil)
	assert.Equal(t, StateOpen, cb.GetState())

	now = now.Add(11 * time.Second)
	assert.NoError(t, cb.Execute(func() error { return nil }, nil))
	assert.Equal(t, StateClosed, cb.GetState())

	_ = cb.Execute(func() error { return errBackend }, nil)
	now = now.Add(11 * time.Second)
	_ = cb.Execute(func() error { return errBackend }, nil)
	assert.Equal(t, StateOpen, cb.GetState())
}

func TestOldFailuresExpire(t *testing.T) {
	now := time.Now()
	cb := NewCircuitBreakerWithWindow(1, time.Minute, time.Second)
	cb.now = func() time.Time { return now }

	_ = cb.Execute(func() error { return errBackend }, nil)
	now = now.Add(2 * time.Second)
	_ = cb.Execute(func() error { return errBackend }, nil)
	assert.Equal(t, StateClosed, cb.GetState())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
}
