package gate

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestKeeper(need int, window time.Duration) (*Keeper, *fakeClock) {
	c := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	return New(need, window).WithClock(c.now), c
}

func TestTap_UnlocksAtThreshold(t *testing.T) {
	k, c := newTestKeeper(3, 2500*time.Millisecond)

	if unlocked, remaining := k.Tap(); unlocked || remaining != 2 {
		t.Fatalf("tap 1: unlocked=%v remaining=%d", unlocked, remaining)
	}
	c.advance(time.Second)
	if unlocked, _ := k.Tap(); unlocked {
		t.Fatal("unlocked after 2 taps")
	}
	c.advance(time.Second)
	unlocked, remaining := k.Tap()
	if !unlocked || remaining != 0 {
		t.Fatalf("tap 3: unlocked=%v remaining=%d", unlocked, remaining)
	}
	if !k.Unlocked() {
		t.Error("Unlocked() should report true")
	}
}

func TestTap_WindowResetsStreak(t *testing.T) {
	k, c := newTestKeeper(3, 2500*time.Millisecond)

	k.Tap()
	k.Tap()
	// Pause longer than the window: streak starts over.
	c.advance(3 * time.Second)
	if unlocked, remaining := k.Tap(); unlocked || remaining != 2 {
		t.Errorf("after reset: unlocked=%v remaining=%d, want locked with 2 left", unlocked, remaining)
	}
}

func TestTap_StaysUnlocked(t *testing.T) {
	k, c := newTestKeeper(2, time.Second)
	k.Tap()
	k.Tap()
	// Long silence must not relock within the session.
	c.advance(time.Hour)
	if unlocked, _ := k.Tap(); !unlocked {
		t.Error("gate relocked")
	}
	if !k.Unlocked() {
		t.Error("gate relocked")
	}
}
