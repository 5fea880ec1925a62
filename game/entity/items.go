package entity

import (
	"sort"
	"time"

	"github.com/zyedidia/generic/mapset"

	"snake-web/game/types"
)

// Food is the single edible item on the board
type Food struct {
	Cell      types.Cell
	Kind      types.FoodKind
	ExpiresAt time.Time // zero when the kind has no lifetime
}

// PowerUp is an uncollected power-up
type PowerUp struct {
	Cell      types.Cell
	Kind      types.PowerUpKind
	ExpiresAt time.Time
}

// Effect is the active power-up effect. Remaining counts shield units,
// Notice is true while the scissors status is on display.
type Effect struct {
	Kind      types.PowerUpKind
	Remaining int
	Notice    bool
}

// CellSet is an unordered set of board cells
type CellSet struct {
	set mapset.Set[types.Cell]
}

func NewCellSet(cells ...types.Cell) *CellSet {
	cs := &CellSet{set: mapset.New[types.Cell]()}
	for _, c := range cells {
		cs.set.Put(c)
	}
	return cs
}

func (cs *CellSet) Put(c types.Cell) {
	cs.set.Put(c)
}

func (cs *CellSet) Has(c types.Cell) bool {
	return cs.set.Has(c)
}

func (cs *CellSet) Remove(c types.Cell) {
	cs.set.Remove(c)
}

func (cs *CellSet) Size() int {
	return cs.set.Size()
}

// Reset empties the set
func (cs *CellSet) Reset() {
	cs.set = mapset.New[types.Cell]()
}

// Sorted returns the cells ordered by row then column, for stable snapshots
func (cs *CellSet) Sorted() []types.Cell {
	out := make([]types.Cell, 0, cs.set.Size())
	cs.set.Each(func(c types.Cell) {
		out = append(out, c)
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}
