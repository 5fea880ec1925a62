package manager

import (
	"log"
	"os"
	"time"

	"snake-web/game/entity"
	"snake-web/game/types"
)

// HighScoreStore persists the best score across sessions
type HighScoreStore interface {
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// ScoreRecorder is implemented by stores that also keep a score history
type ScoreRecorder interface {
	RecordScore(score int, at time.Time) error
}

// ScoreKeeper accumulates the session score and maintains the high score
type ScoreKeeper struct {
	store       HighScoreStore
	logger      *log.Logger
	policy      types.SpawnPolicy
	step        int
	onThreshold func()
}

func NewScoreKeeper(store HighScoreStore, rules types.Rules) *ScoreKeeper {
	return &ScoreKeeper{
		store:       store,
		logger:      log.New(os.Stderr, "[score] ", log.LstdFlags|log.Lmsgprefix),
		policy:      rules.SpawnPolicy,
		step:        rules.PowerUpScoreStep,
		onThreshold: func() {},
	}
}

// SetLogger replaces the logger used for persistence failures
func (sk *ScoreKeeper) SetLogger(l *log.Logger) {
	sk.logger = l
}

// OnThreshold registers the hook fired when the score reaches a power-up step
func (sk *ScoreKeeper) OnThreshold(fn func()) {
	sk.onThreshold = fn
}

// LoadHighScore reads the stored high score, defaulting to zero on failure
func (sk *ScoreKeeper) LoadHighScore() int {
	if sk.store == nil {
		return 0
	}
	score, err := sk.store.LoadHighScore()
	if err != nil {
		sk.logger.Printf("load high score: %v", err)
		return 0
	}
	if score < 0 {
		return 0
	}
	return score
}

// Award adds points and reports whether a power-up step was reached
func (sk *ScoreKeeper) Award(s *entity.Session, points int) bool {
	if points <= 0 {
		return false
	}
	before := s.Score
	s.Score += points

	if sk.step <= 0 {
		return false
	}
	var hit bool
	switch sk.policy {
	case types.SpawnOnCrossing:
		hit = s.Score/sk.step > before/sk.step
	default:
		hit = s.Score%sk.step == 0
	}
	if hit {
		sk.onThreshold()
	}
	return hit
}

// Finalize records the finished game and persists a strictly greater high score.
// It reports whether a new record was set.
func (sk *ScoreKeeper) Finalize(s *entity.Session, at time.Time) bool {
	if rec, ok := sk.store.(ScoreRecorder); ok {
		if err := rec.RecordScore(s.Score, at); err != nil {
			sk.logger.Printf("record score: %v", err)
		}
	}
	if s.Score <= s.HighScore {
		return false
	}
	s.HighScore = s.Score
	if sk.store != nil {
		if err := sk.store.SaveHighScore(s.HighScore); err != nil {
			sk.logger.Printf("save high score: %v", err)
		}
	}
	return true
}
