package navstate

import "time"

// Scroll is the scroll tracker state.
type Scroll struct {
	Offset        int       `json:"y"`
	Previous      int       `json:"py"`
	At            time.Time `json:"at"`
	Observed      bool      `json:"seen,omitempty"`
	IsSticky      bool      `json:"sticky,omitempty"`
	IsScrolled    bool      `json:"scrolled,omitempty"`
	IsScrollingUp bool      `json:"up,omitempty"`
}

// ScrollTracker derives header flags from throttled scroll observations.
type ScrollTracker struct {
	cfg   Config
	state Scroll
}

// NewScrollTracker returns a tracker resuming from state.
func NewScrollTracker(cfg Config, state Scroll) *ScrollTracker {
	return &ScrollTracker{cfg: cfg, state: state}
}

// Observe records the vertical offset seen at the given instant. Observations
// arriving within the throttle window of the last accepted one are dropped and
// Observe reports false. Negative offsets clamp to zero.
func (t *ScrollTracker) Observe(offset int, at time.Time) bool {
	if t.state.Observed && at.Sub(t.state.At) < t.cfg.Throttle {
		return false
	}
	if offset < 0 {
		offset = 0
	}
	prev := t.state.Offset
	if !t.state.Observed {
		prev = offset
	}
	t.state = Scroll{
		Offset:        offset,
		Previous:      prev,
		At:            at,
		Observed:      true,
		IsSticky:      offset > t.cfg.StickyOffset,
		IsScrolled:    offset > t.cfg.ScrolledOffset,
		IsScrollingUp: offset < prev,
	}
	return true
}

// State returns the current snapshot.
func (t *ScrollTracker) State() Scroll { return t.state }
