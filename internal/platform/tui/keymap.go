package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-biomes/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ", "space":
		return core.ActionJump, false
	case "g":
		return core.ActionFlipGravity, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "f5":
		return core.ActionSaveCheckpoint, false
	case "f9":
		return core.ActionLoadCheckpoint, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionResume
	MenuActionHistory
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ", "space", "n":
		return MenuActionSelect
	case "c":
		return MenuActionResume
	case "tab", "h":
		return MenuActionHistory
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// DefaultHoldTicks is how many ticks a movement key stays held after its
// last press. Terminals report key repeats but no key releases, so a held
// key is one that keeps repeating; the window must outlast the gap between
// the first press and the first auto-repeat.
const DefaultHoldTicks = 30

// InputState accumulates key presses between ticks and produces the
// frame for the next simulation step.
type InputState struct {
	hold    int
	held    map[core.Action]int
	latched map[core.Action]int
	pressed core.InputFrame
}

// NewInputState creates an input state with the given hold window in ticks.
func NewInputState(holdTicks int) *InputState {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &InputState{
		hold:    holdTicks,
		held:    make(map[core.Action]int),
		latched: make(map[core.Action]int),
		pressed: core.NewInputFrame(),
	}
}

// Press records an action. Movement actions start or extend their hold
// window and cancel the opposite direction; other actions fire on the
// next frame only. Jump and gravity flip fire once per press: repeats
// arriving within the hold window of the previous one are swallowed and
// keep the latch open.
func (s *InputState) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if !a.Held() {
		if latches(a) {
			open := s.latched[a] > 0
			s.latched[a] = s.hold
			if open {
				return
			}
		}
		s.pressed.Set(a)
		return
	}
	s.held[a] = s.hold
	if opp := opposite(a); opp != core.ActionNone {
		delete(s.held, opp)
	}
}

// Next returns the frame for the coming tick and ages the hold windows.
func (s *InputState) Next() core.InputFrame {
	frame := s.pressed.Clone()
	for a, n := range s.held {
		frame.Set(a)
		if n <= 1 {
			delete(s.held, a)
		} else {
			s.held[a] = n - 1
		}
	}
	for a, n := range s.latched {
		if n <= 1 {
			delete(s.latched, a)
		} else {
			s.latched[a] = n - 1
		}
	}
	s.pressed.Clear()
	return frame
}

// Reset forgets every pressed and held action.
func (s *InputState) Reset() {
	clear(s.held)
	clear(s.latched)
	s.pressed.Clear()
}

func latches(a core.Action) bool {
	return a == core.ActionJump || a == core.ActionFlipGravity
}

func opposite(a core.Action) core.Action {
	switch a {
	case core.ActionLeft:
		return core.ActionRight
	case core.ActionRight:
		return core.ActionLeft
	case core.ActionUp:
		return core.ActionDown
	case core.ActionDown:
		return core.ActionUp
	}
	return core.ActionNone
}
