package manager

import (
	"snake-web/game/clock"
	"snake-web/game/entity"
	"snake-web/game/types"
)

const (
	TimerShield         clock.Key = "shield"
	TimerScissorsNotice clock.Key = "scissors-notice"
)

// PowerUpManager applies power-up effects. At most one effect is active
// and a single timer drives it.
type PowerUpManager struct {
	timers   *clock.Timers
	rules    types.Rules
	onChange func()
	onExpire func(types.PowerUpKind)
}

func NewPowerUpManager(timers *clock.Timers, rules types.Rules) *PowerUpManager {
	return &PowerUpManager{
		timers:   timers,
		rules:    rules,
		onChange: func() {},
		onExpire: func(types.PowerUpKind) {},
	}
}

// OnChange registers a hook for effect changes that happen between ticks
func (pm *PowerUpManager) OnChange(fn func()) {
	pm.onChange = fn
}

// OnExpire registers a hook called when an effect runs out on its own
func (pm *PowerUpManager) OnExpire(fn func(types.PowerUpKind)) {
	pm.onExpire = fn
}

// Activate replaces any running effect with kind
func (pm *PowerUpManager) Activate(s *entity.Session, kind types.PowerUpKind) {
	pm.Clear(s)

	switch kind {
	case types.Shield:
		effect := &entity.Effect{Kind: types.Shield, Remaining: pm.rules.ShieldUnits}
		s.Effect = effect
		pm.timers.Every(TimerShield, pm.rules.ShieldUnitInterval, func() {
			if s.Effect != effect {
				pm.timers.Cancel(TimerShield)
				return
			}
			effect.Remaining--
			if effect.Remaining <= 0 {
				pm.Clear(s)
				pm.onExpire(types.Shield)
				pm.onChange()
			}
		})

	case types.Scissors:
		effect := &entity.Effect{Kind: types.Scissors, Notice: true}
		s.Effect = effect
		pm.Cut(s.Snake)
		pm.timers.After(TimerScissorsNotice, pm.rules.ScissorsNotice, func() {
			if s.Effect != effect {
				return
			}
			s.Effect = nil
			pm.onExpire(types.Scissors)
			pm.onChange()
		})
	}
}

// Cut halves the snake, rounding up, when it is longer than the configured minimum
func (pm *PowerUpManager) Cut(snake *entity.Snake) bool {
	n := snake.Len()
	if pm.rules.ScissorsMinLength > 0 && n <= pm.rules.ScissorsMinLength {
		return false
	}
	snake.Truncate((n + 1) / 2)
	return true
}

// IsShieldActive reports whether hazards other than self-collision are harmless
func (pm *PowerUpManager) IsShieldActive(s *entity.Session) bool {
	return s.Effect != nil && s.Effect.Kind == types.Shield && s.Effect.Remaining > 0
}

// Clear cancels the running effect and its timer
func (pm *PowerUpManager) Clear(s *entity.Session) {
	pm.timers.Cancel(TimerShield)
	pm.timers.Cancel(TimerScissorsNotice)
	s.Effect = nil
}
