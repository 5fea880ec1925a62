package types

import (
	"fmt"
	"time"
)

// Difficulty names a preset of tick interval and mine count
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// DifficultyParams is one row of the difficulty table
type DifficultyParams struct {
	TickInterval time.Duration
	Mines        int
}

var difficultyTable = map[Difficulty]DifficultyParams{
	Easy:   {TickInterval: 150 * time.Millisecond, Mines: 3},
	Medium: {TickInterval: 100 * time.Millisecond, Mines: 5},
	Hard:   {TickInterval: 70 * time.Millisecond, Mines: 8},
}

// Params looks up the preset for d
func (d Difficulty) Params() (DifficultyParams, error) {
	p, ok := difficultyTable[d]
	if !ok {
		return DifficultyParams{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(d))
	}
	return p, nil
}

// ParseDifficulty validates a difficulty name
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, err := d.Params(); err != nil {
		return "", err
	}
	return d, nil
}

// FoodEffect is an optional side effect of eating a food kind
type FoodEffect string

const (
	EffectNone       FoodEffect = ""
	EffectSpeedBoost FoodEffect = "speed"
)

// FoodKind is one row of the weighted food table
type FoodKind struct {
	Name     string
	Points   int
	Weight   int
	Effect   FoodEffect
	Lifetime time.Duration // zero means the food stays until eaten
}

// FoodTable is scanned in order by the weighted draw
var FoodTable = []FoodKind{
	{Name: "apple", Points: 1, Weight: 60},
	{Name: "banana", Points: 2, Weight: 25},
	{Name: "chili", Points: 1, Weight: 10, Effect: EffectSpeedBoost},
	{Name: "star", Points: 5, Weight: 5, Lifetime: 5 * time.Second},
}

// PowerUpKind identifies a collectible power-up and the effect it grants
type PowerUpKind string

const (
	NoPowerUp PowerUpKind = ""
	Shield    PowerUpKind = "shield"
	Scissors  PowerUpKind = "scissors"
)

// PowerUpKinds are drawn uniformly on spawn
var PowerUpKinds = []PowerUpKind{Shield, Scissors}

// Map is a static obstacle layout with a background identifier for renderers
type Map struct {
	ID         string
	Background string
	Obstacles  []Cell
}

var maps = map[string]Map{
	"classic": {ID: "classic", Background: "grass"},
	"box":     {ID: "box", Background: "stone", Obstacles: boxObstacles()},
	"cross":   {ID: "cross", Background: "sand", Obstacles: crossObstacles()},
}

// MapIDs lists the built-in maps in a stable order
var MapIDs = []string{"classic", "box", "cross"}

// LookupMap returns the built-in map with the given id
func LookupMap(id string) (Map, error) {
	m, ok := maps[id]
	if !ok {
		return Map{}, fmt.Errorf("%w: %q", ErrUnknownMap, id)
	}
	return m, nil
}

// four wall segments with open corners, laid out for the default 25x25 grid
func boxObstacles() []Cell {
	var cells []Cell
	for i := 8; i <= 18; i++ {
		cells = append(cells,
			Cell{X: i, Y: 4},
			Cell{X: i, Y: 22},
			Cell{X: 4, Y: i},
			Cell{X: 22, Y: i},
		)
	}
	return cells
}

func crossObstacles() []Cell {
	var cells []Cell
	for i := 9; i <= 17; i++ {
		cells = append(cells, Cell{X: 13, Y: i})
		if i != 13 {
			cells = append(cells, Cell{X: i, Y: 13})
		}
	}
	return cells
}
