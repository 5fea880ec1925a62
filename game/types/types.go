package types

import (
	"errors"
	"fmt"
	"time"
)

// Grid represents the game grid dimensions
type Grid struct {
	Size int
}

// Contains reports whether c lies inside [1, Size] on both axes
func (g Grid) Contains(c Cell) bool {
	return c.X >= 1 && c.X <= g.Size && c.Y >= 1 && c.Y <= g.Size
}

// Cells returns the number of cells on the board
func (g Grid) Cells() int {
	return g.Size * g.Size
}

// Cell is a 1-indexed board coordinate
type Cell struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// Add returns the cell moved by v
func (c Cell) Add(v Velocity) Cell {
	return Cell{X: c.X + v.X, Y: c.Y + v.Y}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Velocity is a unit step along one axis, or zero before the first input
type Velocity struct {
	X int `json:"x" msgpack:"x"`
	Y int `json:"y" msgpack:"y"`
}

// IsZero reports whether the snake is stationary
func (v Velocity) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Reverses reports whether v points exactly opposite to other
func (v Velocity) Reverses(other Velocity) bool {
	if v.IsZero() || other.IsZero() {
		return false
	}
	return v.X == -other.X && v.Y == -other.Y
}

// Direction is a player steering command
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

// Velocity converts a direction into a unit step, Y grows downwards
func (d Direction) Velocity() (Velocity, bool) {
	switch d {
	case Up:
		return Velocity{X: 0, Y: -1}, true
	case Down:
		return Velocity{X: 0, Y: 1}, true
	case Left:
		return Velocity{X: -1, Y: 0}, true
	case Right:
		return Velocity{X: 1, Y: 0}, true
	}
	return Velocity{}, false
}

// Game constants
const (
	DefaultGridSize = 25

	ShieldUnits        = 100                    // Shield countdown steps
	ShieldUnitInterval = 100 * time.Millisecond // One shield step
	PowerUpLifetime    = 8 * time.Second        // Uncollected power-up expiry
	ScissorsNotice     = 2 * time.Second        // Scissors status display time
	ScissorsMinLength  = 3                      // Snakes at or below this length are not cut

	BoostInterval = 50 * time.Millisecond
	BoostDuration = 3 * time.Second

	CountdownFrom = 3
	CountdownStep = time.Second

	PowerUpScoreStep = 5 // Score multiple that may spawn a power-up
)

var (
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	ErrUnknownMap        = errors.New("unknown map")
	ErrInvalidRules      = errors.New("invalid rules")
)

// DeathCause names the hazard that ended a game
type DeathCause string

const (
	CauseNone     DeathCause = ""
	CauseWall     DeathCause = "wall"
	CauseSelf     DeathCause = "self"
	CauseObstacle DeathCause = "obstacle"
	CauseMine     DeathCause = "mine"
)
