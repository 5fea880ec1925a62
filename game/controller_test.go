package game

import (
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"snake-web/game/clock"
	"snake-web/game/entity"
	"snake-web/game/manager"
	"snake-web/game/types"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeStore struct {
	high  int
	saves int
}

func (f *fakeStore) LoadHighScore() (int, error) { return f.high, nil }

func (f *fakeStore) SaveHighScore(score int) error {
	f.high = score
	f.saves++
	return nil
}

type recorder struct {
	snapshots []Snapshot
	events    []Event
}

func (r *recorder) OnStateChanged(s Snapshot) { r.snapshots = append(r.snapshots, s) }
func (r *recorder) Notify(e Event)            { r.events = append(r.events, e) }

func (r *recorder) saw(e Event) bool {
	for _, got := range r.events {
		if got == e {
			return true
		}
	}
	return false
}

func (r *recorder) last() Snapshot {
	return r.snapshots[len(r.snapshots)-1]
}

type harness struct {
	c     *Controller
	clock *clock.Manual
	rec   *recorder
	store *fakeStore
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		clock: clock.NewManual(epoch),
		rec:   &recorder{},
		store: &fakeStore{},
	}
	if opts.Store == nil {
		opts.Store = h.store
	}
	opts.Renderer = h.rec
	if opts.Notifier == nil {
		opts.Notifier = h.rec
	}
	opts.Seed = 7
	opts.Logger = log.New(io.Discard, "", 0)
	c, err := NewController(h.clock, opts)
	if err != nil {
		t.Fatal(err)
	}
	h.c = c
	return h
}

// run starts a game and clears the random board so moves are predictable
func (h *harness) run(t *testing.T) *entity.Session {
	t.Helper()
	h.c.Start()
	h.clock.Advance(3 * time.Second)
	if h.c.State() != StateRunning {
		t.Fatalf("state after countdown = %s", h.c.State())
	}
	s := h.c.Session()
	s.Mines.Reset()
	s.PowerUp = nil
	h.c.Timers().Cancel(manager.TimerPowerUpExpiry)
	h.c.Timers().Cancel(manager.TimerFoodExpiry)
	s.Food = &entity.Food{Cell: types.Cell{X: 20, Y: 20}, Kind: types.FoodTable[0]}
	return s
}

func (h *harness) tick() {
	h.clock.Advance(h.c.Interval())
}

func TestControllerCountdown(t *testing.T) {
	h := newHarness(t, Options{})
	if h.c.State() != StateIdle || h.c.Timers().Len() != 0 {
		t.Fatal("new controller should be idle with no timers")
	}

	if !h.c.Start() {
		t.Fatal("Start from idle should succeed")
	}
	if h.c.Snapshot().Countdown != 3 || h.c.State() != StateCountdown {
		t.Fatalf("snapshot = %+v", h.c.Snapshot())
	}
	if h.c.Start() {
		t.Error("Start during countdown should be ignored")
	}

	h.clock.Advance(time.Second)
	if h.c.Snapshot().Countdown != 2 {
		t.Errorf("countdown = %d, want 2", h.c.Snapshot().Countdown)
	}
	h.clock.Advance(time.Second)
	if h.c.Snapshot().Countdown != 1 {
		t.Errorf("countdown = %d, want 1", h.c.Snapshot().Countdown)
	}
	h.clock.Advance(time.Second)

	snap := h.c.Snapshot()
	if snap.State != StateRunning {
		t.Fatalf("state = %s, want running", snap.State)
	}
	if snap.Food == nil {
		t.Error("food should be placed when the game begins")
	}
	if len(snap.Mines) != 5 {
		t.Errorf("mines = %d, want 5 for medium", len(snap.Mines))
	}
	if h.c.Timers().Period(TimerTick) != 100*time.Millisecond {
		t.Errorf("tick period = %v", h.c.Timers().Period(TimerTick))
	}
	if h.c.Timers().Active(TimerCountdown) {
		t.Error("countdown timer should be gone")
	}
	if !h.rec.saw(EventStart) || !h.rec.saw(EventCountdown) {
		t.Errorf("events = %v", h.rec.events)
	}
}

func TestControllerMovesOnTick(t *testing.T) {
	h := newHarness(t, Options{})
	s := h.run(t)

	h.tick()
	if s.Snake.Head() != (types.Cell{X: 5, Y: 5}) {
		t.Fatal("snake must stay still before the first input")
	}
	if !h.c.SetDirection(types.Right) {
		t.Fatal("direction should be accepted")
	}
	if h.c.SetDirection(types.Left) {
		t.Error("reversal should be rejected")
	}
	h.tick()
	if s.Snake.Head() != (types.Cell{X: 6, Y: 5}) || s.Snake.Len() != 1 {
		t.Errorf("snake = %v", s.Snake.Body)
	}
	if !h.rec.saw(EventTurn) {
		t.Error("accepted turn should notify")
	}
	if got := h.rec.last().Snake[0]; got != (types.Cell{X: 6, Y: 5}) {
		t.Errorf("rendered head = %v", got)
	}
}

func TestControllerPauseFreezesEverything(t *testing.T) {
	h := newHarness(t, Options{})
	s := h.run(t)
	h.c.SetDirection(types.Down)
	h.c.powerUps.Activate(s, types.Shield)
	h.tick()
	head := s.Snake.Head()
	shield := s.Effect.Remaining

	if !h.c.TogglePause() || h.c.State() != StatePaused {
		t.Fatal("expected paused")
	}
	if h.c.SetDirection(types.Left) {
		t.Error("input must be ignored while paused")
	}
	h.clock.Advance(time.Minute)
	if s.Snake.Head() != head || s.Effect == nil || s.Effect.Remaining != shield {
		t.Fatal("game advanced while paused")
	}

	if !h.c.TogglePause() || h.c.State() != StateRunning {
		t.Fatal("expected running")
	}
	h.clock.Advance(100 * time.Millisecond)
	if s.Snake.Head() == head {
		t.Error("snake should move after resume")
	}
	if !h.rec.saw(EventPause) || !h.rec.saw(EventResume) {
		t.Errorf("events = %v", h.rec.events)
	}
}

func TestControllerShieldDrainsAcrossQuickPauses(t *testing.T) {
	h := newHarness(t, Options{})
	s := h.run(t)
	h.c.powerUps.Activate(s, types.Shield)

	for i := 0; i < 20; i++ {
		h.clock.Advance(80 * time.Millisecond)
		h.c.TogglePause()
		h.c.TogglePause()
	}
	if s.Effect == nil || s.Effect.Remaining != 84 {
		t.Fatalf("effect after 1.6s of play = %+v, want 84 units left", s.Effect)
	}

	// the tick restarts with a full interval after every resume
	if got := h.c.Timers().Remaining(TimerTick); got != 100*time.Millisecond {
		t.Errorf("tick remaining = %v", got)
	}
}

func TestControllerWallDeath(t *testing.T) {
	h := newHarness(t, Options{})
	h.store.high = 3
	h.c.highScore = 3
	s := h.run(t)
	s.HighScore = 3
	s.Score = 7
	s.Snake.Body = []types.Cell{{X: 25, Y: 5}}
	h.c.SetDirection(types.Right)

	h.tick()
	if h.c.State() != StateGameOver {
		t.Fatalf("state = %s", h.c.State())
	}
	sum := h.c.Snapshot().Summary
	if sum == nil || sum.Cause != types.CauseWall || !sum.NewRecord || sum.Score != 7 {
		t.Fatalf("summary = %+v", sum)
	}
	if h.store.high != 7 || h.store.saves != 1 {
		t.Errorf("store = %+v", h.store)
	}
	if h.c.Timers().Len() != 0 || h.clock.Pending() != 0 {
		t.Error("game over must cancel every timer")
	}
	if !h.rec.saw(EventGameOver) {
		t.Error("expected game over event")
	}
	if h.c.SetDirection(types.Up) {
		t.Error("input after game over should be ignored")
	}

	oldID := s.ID
	if !h.c.Start() {
		t.Fatal("Start from game over should begin a new game")
	}
	snap := h.c.Snapshot()
	if snap.SessionID == oldID || snap.Score != 0 || snap.HighScore != 7 || snap.Summary != nil {
		t.Errorf("fresh snapshot = %+v", snap)
	}
}

func TestControllerMineDeath(t *testing.T) {
	h := newHarness(t, Options{})
	s := h.run(t)
	s.Mines.Put(types.Cell{X: 6, Y: 5})
	h.c.SetDirection(types.Right)
	h.tick()

	if h.c.State() != StateGameOver || h.c.Snapshot().Summary.Cause != types.CauseMine {
		t.Fatalf("state = %s summary = %+v", h.c.State(), h.c.Snapshot().Summary)
	}
	if !h.rec.saw(EventMine) {
		t.Error("expected mine event")
	}
}

func TestControllerShieldWrapsAtWall(t *testing.T) {
	h := newHarness(t, Options{})
	s := h.run(t)
	h.c.powerUps.Activate(s, types.Shield)
	s.Snake.Body = []types.Cell{{X: 25, Y: 5}}
	h.c.SetDirection(types.Right)
	h.tick()

	if h.c.State() != StateRunning {
		t.Fatalf("shielded snake died: %+v", h.c.Snapshot().Summary)
	}
	if s.Snake.Head() != (types.Cell{X: 1, Y: 5}) {
		t.Errorf("head = %v, want (1,5)", s.Snake.Head())
	}
}

func TestControllerEatAndBoost(t *testing.T) {
	h := newHarness(t, Options{})
	s := h.run(t)
	chili := types.FoodTable[2]
	if chili.Effect != types.EffectSpeedBoost {
		t.Fatalf("food table changed: %+v", chili)
	}
	s.Food = &entity.Food{Cell: types.Cell{X: 6, Y: 5}, Kind: chili}
	h.c.SetDirection(types.Right)
	h.tick()

	if s.Score != chili.Points || s.Snake.Len() != 2 {
		t.Fatalf("score = %d len = %d", s.Score, s.Snake.Len())
	}
	if s.Food == nil || s.Food.Cell == (types.Cell{X: 6, Y: 5}) {
		t.Error("food should be replaced elsewhere")
	}
	if h.c.Interval() != 50*time.Millisecond || h.c.Timers().Period(TimerTick) != 50*time.Millisecond {
		t.Errorf("boosted interval = %v", h.c.Interval())
	}
	if !h.rec.saw(EventEat) {
		t.Error("expected eat event")
	}

	s.Snake.Velocity = types.Velocity{}
	h.clock.Advance(3 * time.Second)
	if h.c.Interval() != 100*time.Millisecond {
		t.Errorf("interval after boost = %v, want 100ms", h.c.Interval())
	}
}

func TestControllerPowerUpSpawnsOnScoreStep(t *testing.T) {
	h := newHarness(t, Options{})
	s := h.run(t)
	s.Score = 4
	s.Food = &entity.Food{Cell: types.Cell{X: 6, Y: 5}, Kind: types.FoodTable[0]}
	h.c.SetDirection(types.Right)
	h.tick()

	if s.Score != 5 {
		t.Fatalf("score = %d", s.Score)
	}
	if s.PowerUp == nil {
		t.Fatal("expected a power-up at score 5")
	}
	if s.PowerUp.Cell == s.Food.Cell || s.Snake.Occupies(s.PowerUp.Cell) {
		t.Error("power-up placed on an occupied cell")
	}

	// collect it
	s.PowerUp.Cell = s.Snake.Head().Add(s.Snake.Velocity)
	s.Mines.Remove(s.PowerUp.Cell)
	kind := s.PowerUp.Kind
	h.tick()
	if s.PowerUp != nil || !h.rec.saw(EventPowerUp) {
		t.Fatal("power-up should be collected")
	}
	if kind == types.Shield && (s.Effect == nil || s.Effect.Kind != types.Shield) {
		t.Errorf("effect = %+v", s.Effect)
	}
}

func TestControllerRestartIsIdempotent(t *testing.T) {
	h := newHarness(t, Options{})
	s := h.run(t)
	h.c.powerUps.Activate(s, types.Shield)
	h.c.spawns.MaybeSpawnPowerUp(s)

	h.c.Restart()
	first := h.c.Snapshot()
	h.c.Restart()
	second := h.c.Snapshot()

	for _, snap := range []Snapshot{first, second} {
		if snap.State != StateIdle || snap.Score != 0 || snap.Effect != nil || snap.PowerUp != nil || snap.Food != nil {
			t.Errorf("restart snapshot = %+v", snap)
		}
		if len(snap.Snake) != 1 || snap.Snake[0] != (types.Cell{X: 5, Y: 5}) {
			t.Errorf("snake = %v", snap.Snake)
		}
	}
	if h.c.Timers().Len() != 0 || h.clock.Pending() != 0 {
		t.Fatal("restart must cancel every timer")
	}
	h.clock.Advance(time.Minute)
	if h.c.State() != StateIdle {
		t.Error("nothing should run after restart")
	}
}

func TestControllerRestartDuringCountdown(t *testing.T) {
	h := newHarness(t, Options{})
	h.c.Start()
	h.clock.Advance(time.Second)
	h.c.Restart()
	h.clock.Advance(10 * time.Second)
	if h.c.State() != StateIdle {
		t.Errorf("state = %s, want idle", h.c.State())
	}
}

func TestControllerSettingsBetweenSessions(t *testing.T) {
	h := newHarness(t, Options{})

	if _, err := h.c.SetDifficulty("insane"); !errors.Is(err, types.ErrUnknownDifficulty) {
		t.Errorf("err = %v", err)
	}
	if _, err := h.c.SetMap("maze"); !errors.Is(err, types.ErrUnknownMap) {
		t.Errorf("err = %v", err)
	}
	if ok, err := h.c.SetDifficulty(types.Hard); !ok || err != nil {
		t.Fatalf("SetDifficulty = %v, %v", ok, err)
	}
	if ok, err := h.c.SetMap("cross"); !ok || err != nil {
		t.Fatalf("SetMap = %v, %v", ok, err)
	}
	if h.c.Snapshot().MapID != "cross" || len(h.c.Snapshot().Obstacles) == 0 {
		t.Errorf("snapshot = %+v", h.c.Snapshot())
	}

	h.c.Start()
	h.clock.Advance(3 * time.Second)
	if h.c.Interval() != 70*time.Millisecond || len(h.c.Snapshot().Mines) != 8 {
		t.Errorf("hard game: interval %v mines %d", h.c.Interval(), len(h.c.Snapshot().Mines))
	}
	if ok, _ := h.c.SetDifficulty(types.Easy); ok {
		t.Error("difficulty must not change mid-game")
	}
	if ok, _ := h.c.SetMap("classic"); ok {
		t.Error("map must not change mid-game")
	}
}

func TestControllerSurvivesNotifierPanic(t *testing.T) {
	h := newHarness(t, Options{Notifier: NotifierFunc(func(Event) { panic("speaker on fire") })})
	h.c.Start()
	h.clock.Advance(3 * time.Second)
	if h.c.State() != StateRunning {
		t.Errorf("state = %s", h.c.State())
	}
}

func TestControllerLoadsHighScore(t *testing.T) {
	store := &fakeStore{high: 42}
	h := newHarness(t, Options{Store: store})
	if h.c.Snapshot().HighScore != 42 {
		t.Errorf("high score = %d, want 42", h.c.Snapshot().HighScore)
	}
}

func TestNewControllerRejectsUnknownSettings(t *testing.T) {
	m := clock.NewManual(epoch)
	if _, err := NewController(m, Options{Difficulty: "insane"}); !errors.Is(err, types.ErrUnknownDifficulty) {
		t.Errorf("err = %v", err)
	}
	if _, err := NewController(m, Options{MapID: "maze"}); !errors.Is(err, types.ErrUnknownMap) {
		t.Errorf("err = %v", err)
	}
	if _, err := NewController(m, Options{Rules: types.Rules{GridSize: 30}}); !errors.Is(err, types.ErrInvalidRules) {
		t.Errorf("partial rules: err = %v", err)
	}
	if m.Pending() != 0 {
		t.Errorf("rejected controller left %d timers", m.Pending())
	}
}
