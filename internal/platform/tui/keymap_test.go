package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-biomes/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a moves left", runeKey('a'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w swims up", runeKey('w'), core.ActionUp, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"space jumps", runeKey(' '), core.ActionJump, false},
		{"g flips", runeKey('g'), core.ActionFlipGravity, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"esc pauses", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"f5 saves", tea.KeyMsg{Type: tea.KeyF5}, core.ActionSaveCheckpoint, false},
		{"f9 reloads", tea.KeyMsg{Type: tea.KeyF9}, core.ActionLoadCheckpoint, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey() action = %v, want %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey() quit = %v, want %v", quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{runeKey('c'), MenuActionResume},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestInputStateHoldWindow(t *testing.T) {
	s := NewInputState(3)
	s.Press(core.ActionRight)

	for i := 0; i < 3; i++ {
		if !s.Next().Has(core.ActionRight) {
			t.Fatalf("tick %d: right should still be held", i)
		}
	}
	if s.Next().Has(core.ActionRight) {
		t.Error("right should be released after the hold window")
	}
}

func TestInputStateRepeatExtendsHold(t *testing.T) {
	s := NewInputState(2)
	s.Press(core.ActionLeft)
	s.Next()
	s.Press(core.ActionLeft)
	s.Next()
	if !s.Next().Has(core.ActionLeft) {
		t.Error("a repeat should extend the hold window")
	}
}

func TestInputStateOppositeCancels(t *testing.T) {
	s := NewInputState(5)
	s.Press(core.ActionLeft)
	s.Press(core.ActionRight)

	f := s.Next()
	if f.Has(core.ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !f.Has(core.ActionRight) {
		t.Error("right should be held")
	}
}

func TestInputStateEdgeActionsFireOnce(t *testing.T) {
	s := NewInputState(5)
	s.Press(core.ActionJump)
	s.Press(core.ActionNone)

	if !s.Next().Has(core.ActionJump) {
		t.Fatal("jump should fire on the next frame")
	}
	if s.Next().Has(core.ActionJump) {
		t.Error("jump must not repeat")
	}
}

func TestInputStateIgnoresJumpRepeats(t *testing.T) {
	s := NewInputState(3)

	// A held space bar: the first press fires, repeats inside the window do not.
	jumps := 0
	for i := 0; i < 10; i++ {
		s.Press(core.ActionJump)
		if s.Next().Has(core.ActionJump) {
			jumps++
		}
	}
	if jumps != 1 {
		t.Fatalf("holding jump fired %d jumps, want 1", jumps)
	}

	// Released long enough for the latch to close, the next press fires.
	for i := 0; i < 3; i++ {
		s.Next()
	}
	s.Press(core.ActionJump)
	if !s.Next().Has(core.ActionJump) {
		t.Error("a fresh press after the window should jump")
	}
}

func TestInputStateReset(t *testing.T) {
	s := NewInputState(5)
	s.Press(core.ActionUp)
	s.Press(core.ActionPause)
	s.Reset()

	f := s.Next()
	if f.Has(core.ActionUp) || f.Has(core.ActionPause) {
		t.Error("Reset should drop every action")
	}
}
