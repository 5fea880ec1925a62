package entity

import (
	"time"

	"github.com/google/uuid"

	"snake-web/game/types"
)

// Session holds all mutable state of one game. It is owned by a single
// controller and only touched from the scheduler goroutine.
type Session struct {
	ID         string
	Grid       types.Grid
	Difficulty types.Difficulty
	Map        types.Map

	Snake     *Snake
	Food      *Food
	Mines     *CellSet
	Obstacles *CellSet
	PowerUp   *PowerUp
	Effect    *Effect

	Score     int
	HighScore int

	StartedAt time.Time
}

func NewSession(grid types.Grid, difficulty types.Difficulty, m types.Map, start types.Cell) *Session {
	return &Session{
		ID:         uuid.New().String(),
		Grid:       grid,
		Difficulty: difficulty,
		Map:        m,
		Snake:      NewSnake(start),
		Mines:      NewCellSet(),
		Obstacles:  NewCellSet(m.Obstacles...),
	}
}
