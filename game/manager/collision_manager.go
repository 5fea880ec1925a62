package manager

import (
	"snake-web/game/entity"
	"snake-web/game/types"
)

// CollisionResult describes how the hazards of one step were resolved
type CollisionResult struct {
	Dead         bool
	Cause        types.DeathCause
	Wrapped      bool
	MineConsumed bool
}

type CollisionManager struct{}

func NewCollisionManager() *CollisionManager {
	return &CollisionManager{}
}

// IsWallCollision checks if a position lies outside the board
func (cm *CollisionManager) IsWallCollision(g types.Grid, pos types.Cell) bool {
	return !g.Contains(pos)
}

// Wrap moves an out-of-range coordinate to the opposite edge
func (cm *CollisionManager) Wrap(g types.Grid, pos types.Cell) types.Cell {
	pos.X = wrapAxis(pos.X, g.Size)
	pos.Y = wrapAxis(pos.Y, g.Size)
	return pos
}

func wrapAxis(v, size int) int {
	if v <= 0 {
		return size
	}
	if v > size {
		return 1
	}
	return v
}

// HandleMovement resolves wall, self, obstacle and mine hazards for the
// snake's new head, in that order. The first lethal check wins. With a
// shield the head wraps at walls, passes obstacles and consumes mines.
func (cm *CollisionManager) HandleMovement(s *entity.Session, shield bool) CollisionResult {
	var res CollisionResult
	head := s.Snake.Head()

	if cm.IsWallCollision(s.Grid, head) {
		if !shield {
			return CollisionResult{Dead: true, Cause: types.CauseWall}
		}
		head = cm.Wrap(s.Grid, head)
		s.Snake.SetHead(head)
		res.Wrapped = true
	}

	if s.Snake.BodyHit() {
		res.Dead = true
		res.Cause = types.CauseSelf
		return res
	}

	if s.Obstacles.Has(head) && !shield {
		res.Dead = true
		res.Cause = types.CauseObstacle
		return res
	}

	if s.Mines.Has(head) {
		if !shield {
			res.Dead = true
			res.Cause = types.CauseMine
			return res
		}
		s.Mines.Remove(head)
		res.MineConsumed = true
	}

	return res
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Cell, food *entity.Food) bool {
	return food != nil && pos == food.Cell
}

// IsPowerUpCollision checks if a position collides with the uncollected power-up
func (cm *CollisionManager) IsPowerUpCollision(pos types.Cell, p *entity.PowerUp) bool {
	return p != nil && pos == p.Cell
}
