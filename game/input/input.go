// Package input maps raw key names and swipe gestures onto controller commands.
package input

import (
	"math"
	"strings"

	"snake-web/game"
	"snake-web/game/types"
)

// Action is a player command independent of the device that produced it
type Action int

const (
	None Action = iota
	Up
	Down
	Left
	Right
	Start
	Pause
	Restart
)

var keyActions = map[string]Action{
	"arrowup":    Up,
	"up":         Up,
	"w":          Up,
	"arrowdown":  Down,
	"down":       Down,
	"s":          Down,
	"arrowleft":  Left,
	"left":       Left,
	"a":          Left,
	"arrowright": Right,
	"right":      Right,
	"d":          Right,
	"enter":      Start,
	"space":      Start,
	" ":          Start,
	"p":          Pause,
	"escape":     Pause,
	"r":          Restart,
}

// FromKey resolves a key name, case-insensitively. Arrows and WASD steer.
func FromKey(name string) Action {
	return keyActions[strings.ToLower(name)]
}

// Direction returns the steering direction of a, if any
func (a Action) Direction() (types.Direction, bool) {
	switch a {
	case Up:
		return types.Up, true
	case Down:
		return types.Down, true
	case Left:
		return types.Left, true
	case Right:
		return types.Right, true
	}
	return "", false
}

// FromSwipe picks the dominant axis of a gesture moving by (dx, dy) in
// screen coordinates. Ties go to the vertical axis; a zero move is ignored.
func FromSwipe(dx, dy float64) Action {
	if dx == 0 && dy == 0 {
		return None
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx < 0 {
			return Left
		}
		return Right
	}
	if dy < 0 {
		return Up
	}
	return Down
}

// Apply runs a on the controller and reports whether it changed anything.
// It must be called from the controller's goroutine.
func Apply(c *game.Controller, a Action) bool {
	if d, ok := a.Direction(); ok {
		return c.SetDirection(d)
	}
	switch a {
	case Start:
		return c.Start()
	case Pause:
		return c.TogglePause()
	case Restart:
		c.Restart()
		return true
	}
	return false
}
