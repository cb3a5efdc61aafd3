package reconcile

import (
	"sync"
	"time"
)

// DefaultBreakerThreshold is the number of consecutive external-write
// failures before the breaker opens.
const DefaultBreakerThreshold = 3

// DefaultBreakerCooldown is how long the breaker stays open before a
// probe write is allowed.
const DefaultBreakerCooldown = 30 * time.Second

// BreakerState is the state of the external-write breaker.
type BreakerState int

const (
	// BreakerClosed is the normal state, writes go through.
	BreakerClosed BreakerState = iota
	// BreakerOpen means the external file keeps failing, writes are
	// skipped. The cache keeps receiving every snapshot.
	BreakerOpen
	// BreakerHalfOpen means the cooldown elapsed and one probe write is
	// allowed.
	BreakerHalfOpen
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	}
	return "unknown"
}

// breaker stops hammering a failing external file. A run of consecutive
// write failures opens it; after the cooldown a single probe decides
// whether it closes again.
type breaker struct {
	mu        sync.Mutex
	threshold int
	cooldown  time.Duration
	failures  int
	state     BreakerState
	openedAt  time.Time
}

func newBreaker(threshold int, cooldown time.Duration) *breaker {
	return &breaker{threshold: threshold, cooldown: cooldown, state: BreakerClosed}
}

// Allow reports whether the next write should be attempted.
func (b *breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case BreakerOpen:
		if time.Since(b.openedAt) >= b.cooldown {
			b.state = BreakerHalfOpen
			return true
		}
		return false
	default:
		return true
	}
}

// RecordSuccess resets the breaker to closed.
func (b *breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.state = BreakerClosed
}

// RecordFailure counts a failure; reaching the threshold opens the
// breaker. A failed half-open probe reopens it immediately.
func (b *breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	if b.failures >= b.threshold || b.state == BreakerHalfOpen {
		b.state = BreakerOpen
		b.openedAt = time.Now()
	}
}

// State returns the current state, applying the open-to-half-open
// transition when the cooldown has elapsed.
func (b *breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && time.Since(b.openedAt) >= b.cooldown {
		b.state = BreakerHalfOpen
	}
	return b.state
}
