package manager

import (
	"golang.org/x/exp/rand"

	"snake-web/game/clock"
	"snake-web/game/entity"
	"snake-web/game/types"
)

const TimerFoodExpiry clock.Key = "food-expiry"

// FoodManager places the single food item and relocates short-lived kinds
type FoodManager struct {
	positions *PositionManager
	timers    *clock.Timers
	rng       *rand.Rand
	table     []types.FoodKind
	onChange  func()
}

func NewFoodManager(positions *PositionManager, timers *clock.Timers, rng *rand.Rand, table []types.FoodKind) *FoodManager {
	return &FoodManager{
		positions: positions,
		timers:    timers,
		rng:       rng,
		table:     table,
		onChange:  func() {},
	}
}

// OnChange registers a hook called when food moves on its own
func (fm *FoodManager) OnChange(fn func()) {
	fm.onChange = fn
}

// PickKind performs the weighted draw. The first entry whose cumulative
// weight reaches the draw wins, so ties go to table order.
func (fm *FoodManager) PickKind() types.FoodKind {
	total := 0
	for _, k := range fm.table {
		total += k.Weight
	}
	if total <= 0 {
		return fm.table[0]
	}
	draw := fm.rng.Intn(total) + 1
	cum := 0
	for _, k := range fm.table {
		cum += k.Weight
		if cum >= draw {
			return k
		}
	}
	return fm.table[len(fm.table)-1]
}

// PlaceFood puts a new food on a free cell, replacing the current one
func (fm *FoodManager) PlaceFood(s *entity.Session) *entity.Food {
	fm.timers.Cancel(TimerFoodExpiry)

	// clear first so the old cell counts as free
	s.Food = nil
	cell, _ := fm.positions.SampleFreeCell(s)
	kind := fm.PickKind()
	food := &entity.Food{Cell: cell, Kind: kind}
	s.Food = food

	if kind.Lifetime > 0 {
		food.ExpiresAt = fm.timers.Now().Add(kind.Lifetime)
		fm.timers.After(TimerFoodExpiry, kind.Lifetime, func() {
			if s.Food == nil || s.Food.Cell != cell || s.Food.Kind.Name != kind.Name {
				return
			}
			fm.PlaceFood(s)
			fm.onChange()
		})
	}
	return food
}
