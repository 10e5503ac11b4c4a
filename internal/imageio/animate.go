package imageio

import "time"

// Animator advances through an animated source's frames as time passes.
// It is driven by explicit Advance calls from the host's update loop and
// holds no timers of its own.
type Animator struct {
	delays  []time.Duration
	frame   int
	elapsed time.Duration
	playing bool
}

// NewAnimator returns an animator for the source. Still sources yield an
// animator that never advances.
func NewAnimator(src *Source) *Animator {
	a := &Animator{}
	if src != nil && src.Kind == Animated {
		a.delays = src.Delays
		a.playing = true
	}
	return a
}

// NewAnimatorForDelays returns an animator driven by an explicit delay list,
// for callers that keep decoded frames in their own structures. Fewer than
// two delays yield an animator that never advances.
func NewAnimatorForDelays(delays []time.Duration) *Animator {
	a := &Animator{}
	if len(delays) > 1 {
		a.delays = delays
		a.playing = true
	}
	return a
}

// Frame returns the index of the frame to draw.
func (a *Animator) Frame() int { return a.frame }

// Playing reports whether the animation is running.
func (a *Animator) Playing() bool { return a.playing }

// SetPlaying pauses or resumes the animation.
func (a *Animator) SetPlaying(playing bool) {
	if len(a.delays) == 0 {
		return
	}
	a.playing = playing
}

// Rewind restarts from the first frame.
func (a *Animator) Rewind() {
	a.frame = 0
	a.elapsed = 0
}

// Advance accumulates dt and steps frames whose delays have elapsed,
// looping at the end. Returns whether the current frame changed.
func (a *Animator) Advance(dt time.Duration) bool {
	if !a.playing || len(a.delays) == 0 {
		return false
	}
	a.elapsed += dt

	changed := false
	for a.elapsed >= a.delays[a.frame] {
		a.elapsed -= a.delays[a.frame]
		a.frame = (a.frame + 1) % len(a.delays)
		changed = true
	}
	return changed
}
