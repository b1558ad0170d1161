package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // A, Left arrow - move left (held)
	ActionRight              // D, Right arrow - move right (held)
	ActionUp                 // W, Up arrow - swim up (held, river only)
	ActionDown               // S, Down arrow - swim down (held, river only)
	ActionJump               // Space - jump (edge-triggered)
	ActionFlipGravity        // G - invert gravity (edge-triggered, upside-down only)
	ActionConfirm            // Enter - confirm selection in menu
	ActionBack               // B - go back to menu
	ActionRestart            // R key - restart level after game over
	ActionQuit               // Q, Ctrl+C - exit game/session
	ActionPause              // P, Escape - pause/unpause game
	ActionSaveCheckpoint     // F5 - save a checkpoint now
	ActionLoadCheckpoint     // F9 - reload the last checkpoint in place
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionJump:
		return "Jump"
	case ActionFlipGravity:
		return "FlipGravity"
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
	case ActionSaveCheckpoint:
		return "SaveCheckpoint"
	case ActionLoadCheckpoint:
		return "LoadCheckpoint"
	default:
		return "Unknown"
	}
}

// Held reports whether the action is a continuous (held) movement action
// rather than an edge-triggered one.
func (a Action) Held() bool {
	switch a {
	case ActionLeft, ActionRight, ActionUp, ActionDown:
		return true
	default:
		return false
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame(actions ...Action) InputFrame {
	f := InputFrame{
		Actions: make(map[Action]bool),
	}
	for _, a := range actions {
		f.Actions[a] = true
	}
	return f
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Axis returns -1, 0 or +1 from a pair of opposing held actions.
func (f InputFrame) Axis(negative, positive Action) float64 {
	v := 0.0
	if f.Has(negative) {
		v--
	}
	if f.Has(positive) {
		v++
	}
	return v
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
