package infra

import (
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned by Do while the breaker refuses calls.
var ErrBreakerOpen = errors.New("smtp breaker is open")

// Breaker keeps the receipt and alert workers from hammering an SMTP server
// that is down. After a run of consecutive failures it refuses calls for a
// cooldown period, then lets a single probe through: a successful probe
// closes the breaker, a failed one restarts the cooldown.
type Breaker struct {
	mu       sync.Mutex
	failures int
	openedAt time.Time
	probing  bool

	trip     int
	cooldown time.Duration
}

// NewBreaker returns a closed breaker that trips after the given number of
// consecutive failures. Non-positive arguments fall back to 5 failures and
// a one-minute cooldown.
func NewBreaker(trip int, cooldown time.Duration) *Breaker {
	if trip <= 0 {
		trip = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &Breaker{trip: trip, cooldown: cooldown}
}

// Do runs fn unless the breaker is refusing calls, in which case it returns
// ErrBreakerOpen without invoking fn. fn's error is passed through.
func (b *Breaker) Do(fn func() error) error {
	if !b.admit() {
		return ErrBreakerOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.probing = false
	if err != nil {
		b.failures++
		if b.failures >= b.trip {
			b.openedAt = time.Now()
		}
		return err
	}
	b.failures = 0
	b.openedAt = time.Time{}
	return nil
}

// Open reports whether the breaker is currently refusing calls.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tripped() && (time.Since(b.openedAt) < b.cooldown || b.probing)
}

// Status returns "closed", "open" or "probing" for the health endpoint.
func (b *Breaker) Status() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch {
	case !b.tripped():
		return "closed"
	case b.probing || time.Since(b.openedAt) >= b.cooldown:
		return "probing"
	default:
		return "open"
	}
}

// admit decides whether a call may proceed, claiming the probe slot when the
// cooldown has elapsed.
func (b *Breaker) admit() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.tripped() {
		return true
	}
	if b.probing || time.Since(b.openedAt) < b.cooldown {
		return false
	}
	b.probing = true
	return true
}

// tripped must be called under lock.
func (b *Breaker) tripped() bool { return !b.openedAt.IsZero() }
