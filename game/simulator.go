package game

import (
	"snake-web/game/entity"
	"snake-web/game/manager"
	"snake-web/game/types"
)

// Outcome reports what a single step did
type Outcome struct {
	Alive        bool
	Grew         bool
	ScoredPoints int
	Cause        types.DeathCause
	Eaten        string // food kind name, empty when nothing was eaten
	Boost        bool   // eaten food asks for a speed boost
	Wrapped      bool
	MineConsumed bool
	PowerUp      types.PowerUpKind // collected this step
}

// Simulator advances the snake one cell and resolves everything it touches
type Simulator struct {
	collisions *manager.CollisionManager
	spawns     *manager.SpawnManager
	powerUps   *manager.PowerUpManager
	scores     *manager.ScoreKeeper
	notify     func(Event)
}

func NewSimulator(
	collisions *manager.CollisionManager,
	spawns *manager.SpawnManager,
	powerUps *manager.PowerUpManager,
	scores *manager.ScoreKeeper,
	notify func(Event),
) *Simulator {
	if notify == nil {
		notify = func(Event) {}
	}
	return &Simulator{
		collisions: collisions,
		spawns:     spawns,
		powerUps:   powerUps,
		scores:     scores,
		notify:     notify,
	}
}

// Step runs one tick against s. Scoring is applied before hazards so a
// fatal move still counts the food it reached.
func (sim *Simulator) Step(s *entity.Session) Outcome {
	out := Outcome{Alive: true}
	snake := s.Snake

	if snake.Velocity.IsZero() {
		return out
	}

	shield := sim.powerUps.IsShieldActive(s)
	newHead := snake.Head().Add(snake.Velocity)
	// wrap before the food check so a wrapped head can eat
	if shield && sim.collisions.IsWallCollision(s.Grid, newHead) {
		newHead = sim.collisions.Wrap(s.Grid, newHead)
		out.Wrapped = true
	}
	snake.LastMoved = snake.Velocity
	snake.Move(newHead)

	if sim.collisions.IsFoodCollision(newHead, s.Food) {
		kind := s.Food.Kind
		out.Grew = true
		out.Eaten = kind.Name
		out.ScoredPoints = kind.Points
		out.Boost = kind.Effect == types.EffectSpeedBoost
		sim.scores.Award(s, kind.Points)
		sim.spawns.PlaceFood(s)
		sim.notify(EventEat)
	} else {
		snake.RemoveTail()
	}

	res := sim.collisions.HandleMovement(s, shield)
	out.Wrapped = out.Wrapped || res.Wrapped
	out.MineConsumed = res.MineConsumed
	if res.Dead {
		out.Alive = false
		out.Cause = res.Cause
		if res.Cause == types.CauseMine {
			sim.notify(EventMine)
		}
		return out
	}
	if res.MineConsumed {
		sim.notify(EventMine)
	}

	if sim.collisions.IsPowerUpCollision(snake.Head(), s.PowerUp) {
		kind := sim.spawns.CollectPowerUp(s)
		sim.powerUps.Activate(s, kind)
		out.PowerUp = kind
		sim.notify(EventPowerUp)
	}
	return out
}
