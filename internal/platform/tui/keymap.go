package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/robot-survival/internal/core"
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
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p":
		return core.ActionPause, false
	case "r", " ":
		return core.ActionRestart, false
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
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}

// HeldKeys emulates key-up events. Terminals only report presses and
// auto-repeats, so a direction counts as held for a few ticks after its
// most recent press.
type HeldKeys struct {
	window   int
	lastSeen map[core.Action]int
}

// NewHeldKeys creates a tracker that holds each direction for window ticks.
func NewHeldKeys(window int) *HeldKeys {
	if window < 1 {
		window = 1
	}
	return &HeldKeys{
		window:   window,
		lastSeen: make(map[core.Action]int),
	}
}

var opposite = map[core.Action]core.Action{
	core.ActionUp:    core.ActionDown,
	core.ActionDown:  core.ActionUp,
	core.ActionLeft:  core.ActionRight,
	core.ActionRight: core.ActionLeft,
}

// Press records a direction press at tick. Pressing a direction releases its
// opposite immediately.
func (h *HeldKeys) Press(a core.Action, tick int) {
	opp, ok := opposite[a]
	if !ok {
		return
	}
	h.lastSeen[a] = tick
	delete(h.lastSeen, opp)
}

// Frame returns the directions held at tick.
func (h *HeldKeys) Frame(tick int) core.InputFrame {
	frame := core.NewInputFrame()
	for a, seen := range h.lastSeen {
		if tick-seen < h.window {
			frame.Set(a)
		} else {
			delete(h.lastSeen, a)
		}
	}
	return frame
}

// Release drops every held direction.
func (h *HeldKeys) Release() {
	clear(h.lastSeen)
}
