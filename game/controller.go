package game

import (
	"log"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"snake-web/game/clock"
	"snake-web/game/entity"
	"snake-web/game/manager"
	"snake-web/game/types"
)

const (
	TimerTick      clock.Key = "tick"
	TimerCountdown clock.Key = "countdown"
	TimerBoost     clock.Key = "boost-restore"
)

// Options configures a Controller
type Options struct {
	Rules      types.Rules
	Difficulty types.Difficulty
	MapID      string
	Store      manager.HighScoreStore
	Renderer   Renderer
	Notifier   Notifier
	Seed       uint64 // zero seeds from the clock
	Logger     *log.Logger
}

// Controller runs the game state machine:
//
//	Idle -> Countdown -> Running <-> Paused -> GameOver -> Idle
//
// It is not safe for concurrent use. Every method must be called from the
// goroutine that runs the scheduler's callbacks (see clock.Loop.Do).
type Controller struct {
	timers *clock.Timers
	rules  types.Rules
	logger *log.Logger

	positions  *manager.PositionManager
	collisions *manager.CollisionManager
	spawns     *manager.SpawnManager
	powerUps   *manager.PowerUpManager
	scores     *manager.ScoreKeeper
	sim        *Simulator

	renderer Renderer
	notifier Notifier

	difficulty types.Difficulty
	gameMap    types.Map
	highScore  int

	session   *entity.Session
	state     State
	countdown int
	interval  time.Duration
	summary   *Summary
}

func NewController(sched clock.Scheduler, opts Options) (*Controller, error) {
	if opts.Rules.GridSize == 0 {
		opts.Rules = types.DefaultRules()
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	if opts.Difficulty == "" {
		opts.Difficulty = types.Medium
	}
	if opts.MapID == "" {
		opts.MapID = "classic"
	}
	if _, err := opts.Difficulty.Params(); err != nil {
		return nil, err
	}
	gameMap, err := types.LookupMap(opts.MapID)
	if err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(os.Stderr, "[game] ", log.LstdFlags|log.Lmsgprefix)
	}
	if opts.Renderer == nil {
		opts.Renderer = RendererFunc(func(Snapshot) {})
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	timers := clock.NewTimers(sched)
	c := &Controller{
		timers:     timers,
		rules:      opts.Rules,
		logger:     opts.Logger,
		positions:  manager.NewPositionManager(rng),
		collisions: manager.NewCollisionManager(),
		powerUps:   manager.NewPowerUpManager(timers, opts.Rules),
		scores:     manager.NewScoreKeeper(opts.Store, opts.Rules),
		renderer:   opts.Renderer,
		notifier:   opts.Notifier,
		difficulty: opts.Difficulty,
		gameMap:    gameMap,
	}
	c.positions.SetLogger(opts.Logger)
	c.scores.SetLogger(opts.Logger)
	c.spawns = manager.NewSpawnManager(c.positions, timers, rng, opts.Rules)
	c.sim = NewSimulator(c.collisions, c.spawns, c.powerUps, c.scores, c.notify)

	c.spawns.OnChange(c.emit)
	c.powerUps.OnChange(c.emit)
	c.powerUps.OnExpire(func(kind types.PowerUpKind) {
		if kind == types.Shield {
			c.notify(EventShieldEnd)
		}
	})
	c.scores.OnThreshold(func() {
		c.spawns.MaybeSpawnPowerUp(c.session)
	})

	c.highScore = c.scores.LoadHighScore()
	c.reset()
	c.state = StateIdle
	return c, nil
}

func (c *Controller) State() State {
	return c.state
}

// Session exposes the live session for inspection
func (c *Controller) Session() *entity.Session {
	return c.session
}

// Interval returns the current tick interval, zero when no tick is scheduled
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// Timers exposes the tracked timers for inspection
func (c *Controller) Timers() *clock.Timers {
	return c.timers
}

// Snapshot returns the current view of the game
func (c *Controller) Snapshot() Snapshot {
	return snapshotOf(c.session, c.state, c.countdown, c.summary)
}

// Start begins a countdown from Idle, or a fresh game from GameOver
func (c *Controller) Start() bool {
	switch c.state {
	case StateGameOver:
		c.reset()
	case StateIdle:
	default:
		return false
	}
	c.state = StateCountdown
	c.countdown = c.rules.CountdownFrom
	c.notify(EventStart)
	c.timers.Every(TimerCountdown, c.rules.CountdownStep, c.countdownStep)
	c.emit()
	return true
}

func (c *Controller) countdownStep() {
	if c.state != StateCountdown {
		c.timers.Cancel(TimerCountdown)
		return
	}
	c.countdown--
	if c.countdown > 0 {
		c.notify(EventCountdown)
		c.emit()
		return
	}
	c.timers.Cancel(TimerCountdown)
	c.begin()
}

func (c *Controller) begin() {
	params, _ := c.difficulty.Params()
	s := c.session
	c.spawns.PlaceFood(s)
	c.spawns.PlaceMines(s, params.Mines)
	s.StartedAt = c.timers.Now()

	c.state = StateRunning
	c.setInterval(params.TickInterval)
	c.emit()
}

func (c *Controller) setInterval(d time.Duration) {
	c.interval = d
	c.timers.Ticker(TimerTick, d, c.tick)
}

func (c *Controller) tick() {
	if c.state != StateRunning {
		return
	}
	out := c.sim.Step(c.session)
	if out.Boost {
		c.boost()
	}
	if !out.Alive {
		c.gameOver(out.Cause)
		return
	}
	c.emit()
}

// boost switches to the fast interval; a second boost restarts the window
func (c *Controller) boost() {
	c.setInterval(c.rules.BoostInterval)
	c.timers.After(TimerBoost, c.rules.BoostDuration, func() {
		if c.state != StateRunning {
			return
		}
		params, _ := c.difficulty.Params()
		c.setInterval(params.TickInterval)
	})
}

func (c *Controller) gameOver(cause types.DeathCause) {
	c.timers.CancelAll()
	c.powerUps.Clear(c.session)
	c.interval = 0

	now := c.timers.Now()
	record := c.scores.Finalize(c.session, now)
	c.highScore = c.session.HighScore
	c.summary = &Summary{
		Score:     c.session.Score,
		HighScore: c.session.HighScore,
		NewRecord: record,
		Length:    c.session.Snake.Len(),
		Cause:     cause,
		Duration:  now.Sub(c.session.StartedAt),
	}
	c.state = StateGameOver
	c.notify(EventGameOver)
	c.emit()
}

// TogglePause pauses a running game or resumes a paused one
func (c *Controller) TogglePause() bool {
	switch c.state {
	case StateRunning:
		return c.Pause()
	case StatePaused:
		return c.Resume()
	}
	return false
}

// Pause suspends every timer of a running game
func (c *Controller) Pause() bool {
	if c.state != StateRunning {
		return false
	}
	c.timers.Suspend()
	c.state = StatePaused
	c.notify(EventPause)
	c.emit()
	return true
}

// Resume rearms the tick at its last interval and the one-shot timers with their remaining time
func (c *Controller) Resume() bool {
	if c.state != StatePaused {
		return false
	}
	c.state = StateRunning
	c.timers.Resume()
	c.notify(EventResume)
	c.emit()
	return true
}

// Restart cancels everything and returns to Idle from any state
func (c *Controller) Restart() {
	c.timers.CancelAll()
	c.powerUps.Clear(c.session)
	c.reset()
	c.state = StateIdle
	c.emit()
}

// SetDirection steers the snake. Ignored unless running, and for reversals.
func (c *Controller) SetDirection(d types.Direction) bool {
	if c.state != StateRunning {
		return false
	}
	if !c.session.Snake.SetDirection(d) {
		return false
	}
	c.notify(EventTurn)
	return true
}

// SetDifficulty selects a preset between sessions
func (c *Controller) SetDifficulty(d types.Difficulty) (bool, error) {
	if _, err := d.Params(); err != nil {
		return false, err
	}
	if !c.betweenSessions() {
		return false, nil
	}
	c.difficulty = d
	c.session.Difficulty = d
	c.emit()
	return true, nil
}

// SetMap selects an obstacle layout between sessions
func (c *Controller) SetMap(id string) (bool, error) {
	m, err := types.LookupMap(id)
	if err != nil {
		return false, err
	}
	if !c.betweenSessions() {
		return false, nil
	}
	c.gameMap = m
	if c.state == StateIdle {
		c.reset()
	}
	c.emit()
	return true, nil
}

func (c *Controller) betweenSessions() bool {
	return c.state == StateIdle || c.state == StateGameOver
}

func (c *Controller) reset() {
	s := entity.NewSession(types.Grid{Size: c.rules.GridSize}, c.difficulty, c.gameMap, c.rules.Start)
	s.HighScore = c.highScore
	c.session = s
	c.countdown = 0
	c.interval = 0
	c.summary = nil
}

func (c *Controller) emit() {
	c.renderer.OnStateChanged(c.Snapshot())
}

func (c *Controller) notify(e Event) {
	safeNotify(c.notifier, e, c.logger)
}
