package types

import (
	"fmt"
	"time"
)

// SpawnPolicy decides when a score change may spawn a power-up
type SpawnPolicy string

const (
	// SpawnOnExactMultiple spawns when the new score is a multiple of the
	// step. An award that jumps over a multiple does not spawn.
	SpawnOnExactMultiple SpawnPolicy = "exact"
	// SpawnOnCrossing spawns whenever an award crosses a multiple of the step.
	SpawnOnCrossing SpawnPolicy = "crossing"
)

// Rules collects the tunable gameplay policy of a session
type Rules struct {
	GridSize int
	Start    Cell

	ShieldUnits        int
	ShieldUnitInterval time.Duration
	PowerUpLifetime    time.Duration
	ScissorsNotice     time.Duration
	ScissorsMinLength  int // 0 cuts unconditionally

	BoostInterval time.Duration
	BoostDuration time.Duration

	CountdownFrom int
	CountdownStep time.Duration

	PowerUpScoreStep int
	SpawnPolicy      SpawnPolicy

	Foods []FoodKind
}

func DefaultRules() Rules {
	return Rules{
		GridSize:           DefaultGridSize,
		Start:              Cell{X: 5, Y: 5},
		ShieldUnits:        ShieldUnits,
		ShieldUnitInterval: ShieldUnitInterval,
		PowerUpLifetime:    PowerUpLifetime,
		ScissorsNotice:     ScissorsNotice,
		ScissorsMinLength:  ScissorsMinLength,
		BoostInterval:      BoostInterval,
		BoostDuration:      BoostDuration,
		CountdownFrom:      CountdownFrom,
		CountdownStep:      CountdownStep,
		PowerUpScoreStep:   PowerUpScoreStep,
		SpawnPolicy:        SpawnOnExactMultiple,
		Foods:              FoodTable,
	}
}

// Validate rejects rules that would stall the timers or leave nothing to spawn.
// Zero is accepted where it has a meaning: ScissorsMinLength, CountdownFrom
// and BoostDuration.
func (r Rules) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: %s", ErrInvalidRules, fmt.Sprintf(format, args...))
	}
	if r.GridSize < 1 {
		return invalid("grid size %d", r.GridSize)
	}
	if !(Grid{Size: r.GridSize}).Contains(r.Start) {
		return invalid("start %v outside a %d grid", r.Start, r.GridSize)
	}
	if r.ShieldUnits < 1 {
		return invalid("shield units %d", r.ShieldUnits)
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"shield unit interval", r.ShieldUnitInterval},
		{"power-up lifetime", r.PowerUpLifetime},
		{"scissors notice", r.ScissorsNotice},
		{"boost interval", r.BoostInterval},
		{"countdown step", r.CountdownStep},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return invalid("%s %v", d.name, d.d)
		}
	}
	if r.ScissorsMinLength < 0 || r.CountdownFrom < 0 || r.BoostDuration < 0 {
		return invalid("negative value")
	}
	if r.PowerUpScoreStep < 1 {
		return invalid("power-up score step %d", r.PowerUpScoreStep)
	}
	switch r.SpawnPolicy {
	case SpawnOnExactMultiple, SpawnOnCrossing:
	default:
		return invalid("spawn policy %q", r.SpawnPolicy)
	}
	if len(r.Foods) == 0 {
		return invalid("empty food table")
	}
	return nil
}
