package imageio

import (
	"testing"
	"time"
)

func TestAnimatorAdvancesOnDelays(t *testing.T) {
	src := &Source{Kind: Animated, Delays: []time.Duration{
		50 * time.Millisecond,
		100 * time.Millisecond,
		50 * time.Millisecond,
	}}
	a := NewAnimator(src)

	if a.Frame() != 0 || !a.Playing() {
		t.Fatalf("initial frame=%d playing=%v", a.Frame(), a.Playing())
	}

	if a.Advance(20 * time.Millisecond) {
		t.Error("advanced before the first delay elapsed")
	}
	if !a.Advance(30 * time.Millisecond) {
		t.Error("did not advance at the first delay boundary")
	}
	if a.Frame() != 1 {
		t.Errorf("frame = %d, want 1", a.Frame())
	}

	// A long tick can skip several frames and wraps around.
	if !a.Advance(150 * time.Millisecond) {
		t.Error("did not advance over a long tick")
	}
	if a.Frame() != 0 {
		t.Errorf("frame = %d, want wrap to 0", a.Frame())
	}
}

func TestAnimatorStillNeverAdvances(t *testing.T) {
	a := NewAnimator(&Source{Kind: Still})
	if a.Playing() {
		t.Error("still source reported playing")
	}
	if a.Advance(time.Second) {
		t.Error("still source advanced")
	}
	a.SetPlaying(true)
	if a.Playing() {
		t.Error("SetPlaying enabled playback without frames")
	}
}

func TestAnimatorPauseAndRewind(t *testing.T) {
	src := &Source{Kind: Animated, Delays: []time.Duration{
		10 * time.Millisecond,
		10 * time.Millisecond,
	}}
	a := NewAnimator(src)

	a.Advance(10 * time.Millisecond)
	if a.Frame() != 1 {
		t.Fatalf("frame = %d, want 1", a.Frame())
	}

	a.SetPlaying(false)
	if a.Advance(time.Second) {
		t.Error("advanced while paused")
	}

	a.Rewind()
	if a.Frame() != 0 {
		t.Errorf("frame after rewind = %d", a.Frame())
	}
}
