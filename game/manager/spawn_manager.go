package manager

import (
	"golang.org/x/exp/rand"

	"snake-web/game/clock"
	"snake-web/game/entity"
	"snake-web/game/types"
)

const TimerPowerUpExpiry clock.Key = "powerup-expiry"

// SpawnManager owns placement of food, mines and power-ups
type SpawnManager struct {
	*FoodManager

	positions *PositionManager
	timers    *clock.Timers
	rng       *rand.Rand
	rules     types.Rules
	onChange  func()
}

func NewSpawnManager(positions *PositionManager, timers *clock.Timers, rng *rand.Rand, rules types.Rules) *SpawnManager {
	return &SpawnManager{
		FoodManager: NewFoodManager(positions, timers, rng, rules.Foods),
		positions:   positions,
		timers:      timers,
		rng:         rng,
		rules:       rules,
		onChange:    func() {},
	}
}

// OnChange registers a hook for spawns and expiries that happen between ticks
func (sm *SpawnManager) OnChange(fn func()) {
	sm.onChange = fn
	sm.FoodManager.OnChange(fn)
}

// PlaceMines replaces the mine set with count freshly sampled cells
func (sm *SpawnManager) PlaceMines(s *entity.Session, count int) {
	s.Mines.Reset()
	for i := 0; i < count; i++ {
		c, _ := sm.positions.SampleFreeCell(s)
		s.Mines.Put(c)
	}
}

// MaybeSpawnPowerUp places a random power-up unless one is already on the
// board. An uncollected power-up disappears after the configured lifetime.
func (sm *SpawnManager) MaybeSpawnPowerUp(s *entity.Session) bool {
	if s.PowerUp != nil {
		return false
	}
	kind := types.PowerUpKinds[sm.rng.Intn(len(types.PowerUpKinds))]
	cell, _ := sm.positions.SampleFreeCell(s)
	p := &entity.PowerUp{
		Cell:      cell,
		Kind:      kind,
		ExpiresAt: sm.timers.Now().Add(sm.rules.PowerUpLifetime),
	}
	s.PowerUp = p

	sm.timers.After(TimerPowerUpExpiry, sm.rules.PowerUpLifetime, func() {
		if s.PowerUp != p || s.PowerUp.Cell != cell {
			return
		}
		s.PowerUp = nil
		sm.onChange()
	})
	return true
}

// CollectPowerUp removes the power-up from the board and returns its kind
func (sm *SpawnManager) CollectPowerUp(s *entity.Session) types.PowerUpKind {
	if s.PowerUp == nil {
		return types.NoPowerUp
	}
	kind := s.PowerUp.Kind
	s.PowerUp = nil
	sm.timers.Cancel(TimerPowerUpExpiry)
	return kind
}
