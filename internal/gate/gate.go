// Package gate implements the edit-capability gate: a fixed number of trigger
// activations inside a rolling time window unlocks creating and editing for
// the rest of the session. There are no accounts; this is the sole
// authorization check.
package gate

import (
	"sync"
	"time"
)

// Keeper tracks activations and the unlock state. State is in-memory only:
// restarting the process locks the gate again, matching the session-lifetime
// contract.
type Keeper struct {
	mu       sync.Mutex
	need     int
	window   time.Duration
	count    int
	last     time.Time
	unlocked bool

	now func() time.Time
}

// New creates a locked Keeper requiring need activations with at most window
// between consecutive ones.
func New(need int, window time.Duration) *Keeper {
	return &Keeper{need: need, window: window, now: time.Now}
}

// WithClock overrides the clock (tests).
func (k *Keeper) WithClock(now func() time.Time) *Keeper {
	k.now = now
	return k
}

// Tap registers one activation. The streak resets when the gap since the
// previous activation exceeds the window. Returns the unlock state and how
// many activations remain.
func (k *Keeper) Tap() (unlocked bool, remaining int) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.unlocked {
		return true, 0
	}

	t := k.now()
	if !k.last.IsZero() && t.Sub(k.last) > k.window {
		k.count = 0
	}
	k.last = t
	k.count++

	if k.count >= k.need {
		k.count = 0
		k.unlocked = true
	}
	return k.unlocked, k.remainingLocked()
}

// Unlocked reports whether the edit capability is active.
func (k *Keeper) Unlocked() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.unlocked
}

func (k *Keeper) remainingLocked() int {
	if k.unlocked {
		return 0
	}
	return k.need - k.count
}
