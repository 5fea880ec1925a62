package manager

import (
	"log"
	"os"

	"golang.org/x/exp/rand"

	"snake-web/game/entity"
	"snake-web/game/types"
)

// PositionManager answers occupancy questions and samples free cells
type PositionManager struct {
	rng    *rand.Rand
	logger *log.Logger
}

func NewPositionManager(rng *rand.Rand) *PositionManager {
	return &PositionManager{
		rng:    rng,
		logger: log.New(os.Stderr, "[spawn] ", log.LstdFlags|log.Lmsgprefix),
	}
}

// SetLogger replaces the logger used for saturation warnings
func (pm *PositionManager) SetLogger(l *log.Logger) {
	pm.logger = l
}

// IsOccupied reports whether c holds food, snake, a mine, an obstacle or the power-up
func (pm *PositionManager) IsOccupied(s *entity.Session, c types.Cell) bool {
	if s.Food != nil && s.Food.Cell == c {
		return true
	}
	if s.PowerUp != nil && s.PowerUp.Cell == c {
		return true
	}
	if s.Mines.Has(c) || s.Obstacles.Has(c) {
		return true
	}
	return s.Snake.Occupies(c)
}

// RandomCell draws a uniform cell in [1, size]²
func (pm *PositionManager) RandomCell(g types.Grid) types.Cell {
	return types.Cell{
		X: pm.rng.Intn(g.Size) + 1,
		Y: pm.rng.Intn(g.Size) + 1,
	}
}

// SampleFreeCell retries random cells until one is free. After size² attempts
// it gives up, logs, and returns the last sample with ok=false.
func (pm *PositionManager) SampleFreeCell(s *entity.Session) (types.Cell, bool) {
	var c types.Cell
	for attempt := 0; attempt < s.Grid.Cells(); attempt++ {
		c = pm.RandomCell(s.Grid)
		if !pm.IsOccupied(s, c) {
			return c, true
		}
	}
	pm.logger.Printf("grid saturated after %d attempts, placing at %v", s.Grid.Cells(), c)
	return c, false
}
