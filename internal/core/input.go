package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up / menu cursor up
	ActionDown           // S, Down arrow - move down / menu cursor down
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionFire           // Space - fire; also confirms on end screens
	ActionConfirm        // Enter - start level / advance
	ActionBack           // B, Escape - back to menu from pause
	ActionRestart        // R key - return to menu after a level ends
	ActionQuit           // Q, Ctrl+C - exit
	ActionPause          // P - pause/unpause
	ActionLevel1         // 1..5 select a level on the menu
	ActionLevel2
	ActionLevel3
	ActionLevel4
	ActionLevel5
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionLevel1, ActionLevel2, ActionLevel3, ActionLevel4, ActionLevel5:
		return "Level"
	default:
		return "Unknown"
	}
}

// LevelActions lists the direct level-select actions in level order.
var LevelActions = []Action{ActionLevel1, ActionLevel2, ActionLevel3, ActionLevel4, ActionLevel5}

// InputFrame represents the input state during one frame.
// Directions and fire are level signals (set on every frame they are held);
// everything else is edge-triggered and set only on the frame it happened.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// HeldDirection returns the held movement action, or ActionNone.
// When several are held the priority is left, right, up, down.
func (f InputFrame) HeldDirection() Action {
	for _, a := range []Action{ActionLeft, ActionRight, ActionUp, ActionDown} {
		if f.Has(a) {
			return a
		}
	}
	return ActionNone
}

// FireHeld reports whether the fire control is held this frame.
func (f InputFrame) FireHeld() bool {
	return f.Has(ActionFire)
}

// PauseToggled reports whether the pause control was pressed this frame.
func (f InputFrame) PauseToggled() bool {
	return f.Has(ActionPause)
}

// SelectedLevel returns the 1-based level chosen by a digit key, or 0.
func (f InputFrame) SelectedLevel() int {
	for i, a := range LevelActions {
		if f.Has(a) {
			return i + 1
		}
	}
	return 0
}
