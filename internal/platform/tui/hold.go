package tui

import (
	"time"

	"github.com/vovakirdan/cybergrid/internal/core"
)

// DefaultHold is how long a key press counts as held when no config is given.
const DefaultHold = 160 * time.Millisecond

// HoldInput turns terminal key presses into per-frame input.
//
// Terminals report presses and auto-repeats but never releases, so a held
// action stays down until no repeat has arrived for the hold window.
// Edge actions are reported on exactly one frame.
type HoldInput struct {
	hold    time.Duration
	held    map[core.Action]time.Time
	pending core.InputFrame
}

// NewHoldInput creates an input tracker with the given hold window.
func NewHoldInput(hold time.Duration) *HoldInput {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &HoldInput{
		hold:    hold,
		held:    make(map[core.Action]time.Time),
		pending: core.NewInputFrame(),
	}
}

// Press records an action at the given time. A held press keeps the action
// down for the hold window; pressing a direction releases the other ones.
func (h *HoldInput) Press(a core.Action, at time.Time, held bool) {
	if a == core.ActionNone {
		return
	}
	if !held {
		h.pending.Set(a)
		return
	}
	if isDirection(a) {
		for d := range h.held {
			if isDirection(d) && d != a {
				delete(h.held, d)
			}
		}
	}
	h.held[a] = at
}

// Release drops every held action.
func (h *HoldInput) Release() {
	for a := range h.held {
		delete(h.held, a)
	}
}

// Held reports whether the action is held at the given time.
func (h *HoldInput) Held(a core.Action, at time.Time) bool {
	t, ok := h.held[a]
	return ok && at.Sub(t) < h.hold
}

// Frame builds the input for the frame at the given time and consumes
// pending edge actions. Expired holds are dropped.
func (h *HoldInput) Frame(at time.Time) core.InputFrame {
	f := core.NewInputFrame()
	for a, t := range h.held {
		if at.Sub(t) < h.hold {
			f.Set(a)
		} else {
			delete(h.held, a)
		}
	}
	for a, on := range h.pending.Actions {
		if on {
			f.Set(a)
		}
	}
	h.pending.Clear()
	return f
}

// holdable reports whether an action is a level signal while playing.
func holdable(a core.Action) bool {
	return isDirection(a) || a == core.ActionFire
}

func isDirection(a core.Action) bool {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		return true
	}
	return false
}
