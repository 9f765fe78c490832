package infra

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSMTP = errors.New("smtp down")

func failTimes(b *Breaker, n int) {
	for i := 0; i < n; i++ {
		_ = b.Do(func() error { return errSMTP })
	}
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	b := NewBreaker(3, time.Hour)

	failTimes(b, 2)
	assert.False(t, b.Open())
	assert.Equal(t, "closed", b.Status())

	failTimes(b, 1)
	assert.True(t, b.Open())
	assert.Equal(t, "open", b.Status())

	err := b.Do(func() error {
		t.Fatal("call must not run while open")
		return nil
	})
	assert.ErrorIs(t, err, ErrBreakerOpen)
}

func TestBreakerSuccessResetsFailureRun(t *testing.T) {
	b := NewBreaker(3, time.Hour)

	failTimes(b, 2)
	require.NoError(t, b.Do(func() error { return nil }))
	failTimes(b, 2)

	assert.False(t, b.Open(), "non-consecutive failures must not trip")
}

func TestBreakerProbeAfterCooldown(t *testing.T) {
	b := NewBreaker(1, 10*time.Millisecond)

	failTimes(b, 1)
	require.True(t, b.Open())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "probing", b.Status())

	// Failed probe restarts the cooldown.
	err := b.Do(func() error { return errSMTP })
	assert.ErrorIs(t, err, errSMTP)
	assert.True(t, b.Open())
	assert.Equal(t, "open", b.Status())

	// Successful probe closes.
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, b.Do(func() error { return nil }))
	assert.False(t, b.Open())
	assert.Equal(t, "closed", b.Status())
}

func TestBreakerSingleProbeSlot(t *testing.T) {
	b := NewBreaker(1, 10*time.Millisecond)
	failTimes(b, 1)
	time.Sleep(20 * time.Millisecond)

	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- b.Do(func() error {
			<-release
			return nil
		})
	}()

	// Wait until the probe is in flight, then a second call must be refused.
	require.Eventually(t, b.Open, time.Second, time.Millisecond)
	assert.ErrorIs(t, b.Do(func() error { return nil }), ErrBreakerOpen)

	close(release)
	require.NoError(t, <-done)
}
