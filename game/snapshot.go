package game

import (
	"time"

	"snake-web/game/entity"
	"snake-web/game/types"
)

// State is a phase of the game loop
type State string

const (
	StateIdle      State = "idle"
	StateCountdown State = "countdown"
	StateRunning   State = "running"
	StatePaused    State = "paused"
	StateGameOver  State = "gameover"
)

// FoodView is the renderer's view of the food item
type FoodView struct {
	Cell   types.Cell `json:"cell" msgpack:"cell"`
	Kind   string     `json:"kind" msgpack:"kind"`
	Points int        `json:"points" msgpack:"points"`
}

// PowerUpView is the renderer's view of an uncollected power-up
type PowerUpView struct {
	Cell types.Cell        `json:"cell" msgpack:"cell"`
	Kind types.PowerUpKind `json:"kind" msgpack:"kind"`
}

// EffectView is the renderer's view of the active effect
type EffectView struct {
	Kind      types.PowerUpKind `json:"kind" msgpack:"kind"`
	Remaining int               `json:"remaining,omitempty" msgpack:"remaining,omitempty"`
}

// Summary describes a finished game
type Summary struct {
	Score     int              `json:"score" msgpack:"score"`
	HighScore int              `json:"highScore" msgpack:"highScore"`
	NewRecord bool             `json:"newRecord" msgpack:"newRecord"`
	Length    int              `json:"length" msgpack:"length"`
	Cause     types.DeathCause `json:"cause" msgpack:"cause"`
	Duration  time.Duration    `json:"duration" msgpack:"duration"`
}

// Snapshot is an immutable copy of everything a renderer needs
type Snapshot struct {
	SessionID  string           `json:"sessionId" msgpack:"sessionId"`
	State      State            `json:"state" msgpack:"state"`
	Countdown  int              `json:"countdown,omitempty" msgpack:"countdown,omitempty"`
	GridSize   int              `json:"gridSize" msgpack:"gridSize"`
	Difficulty types.Difficulty `json:"difficulty" msgpack:"difficulty"`
	MapID      string           `json:"map" msgpack:"map"`
	Background string           `json:"background" msgpack:"background"`
	Snake      []types.Cell     `json:"snake" msgpack:"snake"`
	Food       *FoodView        `json:"food,omitempty" msgpack:"food,omitempty"`
	Mines      []types.Cell     `json:"mines" msgpack:"mines"`
	Obstacles  []types.Cell     `json:"obstacles" msgpack:"obstacles"`
	PowerUp    *PowerUpView     `json:"powerUp,omitempty" msgpack:"powerUp,omitempty"`
	Effect     *EffectView      `json:"effect,omitempty" msgpack:"effect,omitempty"`
	Score      int              `json:"score" msgpack:"score"`
	HighScore  int              `json:"highScore" msgpack:"highScore"`
	Summary    *Summary         `json:"summary,omitempty" msgpack:"summary,omitempty"`
}

func snapshotOf(s *entity.Session, state State, countdown int, summary *Summary) Snapshot {
	snap := Snapshot{
		SessionID:  s.ID,
		State:      state,
		Countdown:  countdown,
		GridSize:   s.Grid.Size,
		Difficulty: s.Difficulty,
		MapID:      s.Map.ID,
		Background: s.Map.Background,
		Snake:      s.Snake.Cells(),
		Mines:      s.Mines.Sorted(),
		Obstacles:  s.Obstacles.Sorted(),
		Score:      s.Score,
		HighScore:  s.HighScore,
	}
	if s.Food != nil {
		snap.Food = &FoodView{Cell: s.Food.Cell, Kind: s.Food.Kind.Name, Points: s.Food.Kind.Points}
	}
	if s.PowerUp != nil {
		snap.PowerUp = &PowerUpView{Cell: s.PowerUp.Cell, Kind: s.PowerUp.Kind}
	}
	if s.Effect != nil {
		snap.Effect = &EffectView{Kind: s.Effect.Kind, Remaining: s.Effect.Remaining}
	}
	if summary != nil {
		sum := *summary
		snap.Summary = &sum
	}
	return snap
}
