package ui

import (
	"context"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-web/game"
	"snake-web/game/input"
	"snake-web/locale"
)

const minSwipe = 20 // pixels

var keyBindings = []struct {
	key  int32
	name string
}{
	{rl.KeyUp, "ArrowUp"},
	{rl.KeyDown, "ArrowDown"},
	{rl.KeyLeft, "ArrowLeft"},
	{rl.KeyRight, "ArrowRight"},
	{rl.KeyW, "w"},
	{rl.KeyS, "s"},
	{rl.KeyA, "a"},
	{rl.KeyD, "d"},
	{rl.KeyEnter, "Enter"},
	{rl.KeySpace, "Space"},
	{rl.KeyP, "p"},
	{rl.KeyR, "r"},
}

// RaylibFrontend is a desktop window. OnStateChanged may be called from any
// goroutine; Run must be called from the main goroutine.
type RaylibFrontend struct {
	mu     sync.Mutex
	snap   game.Snapshot
	status string

	catalog *locale.Catalog
	history func() []int
}

func NewRaylibFrontend(catalog *locale.Catalog) *RaylibFrontend {
	return &RaylibFrontend{
		catalog: catalog,
		history: func() []int { return nil },
	}
}

// SetHistory registers the source of past scores for the graph
func (f *RaylibFrontend) SetHistory(fn func() []int) {
	f.history = fn
}

func (f *RaylibFrontend) OnStateChanged(s game.Snapshot) {
	f.mu.Lock()
	f.snap = s
	f.mu.Unlock()
}

// SetStatus shows a one-line message in the stats panel
func (f *RaylibFrontend) SetStatus(msg string) {
	f.mu.Lock()
	f.status = msg
	f.mu.Unlock()
}

func (f *RaylibFrontend) latest() (game.Snapshot, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.status
}

// Run opens the window and forwards input until it is closed or ctx ends
func (f *RaylibFrontend) Run(ctx context.Context, dispatch func(input.Action)) error {
	rl.InitWindow(1024, 800, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	renderer := NewRenderer(f.catalog)
	var history []int
	var lastState game.State
	var dragStart rl.Vector2

	for !rl.WindowShouldClose() {
		if ctx.Err() != nil {
			return nil
		}
		if rl.IsKeyPressed(rl.KeyQ) {
			return nil
		}
		for _, b := range keyBindings {
			if rl.IsKeyPressed(b.key) {
				dispatch(input.FromKey(b.name))
			}
		}

		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			dragStart = rl.GetMousePosition()
		}
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
			end := rl.GetMousePosition()
			dx, dy := float64(end.X-dragStart.X), float64(end.Y-dragStart.Y)
			if dx*dx+dy*dy >= minSwipe*minSwipe {
				dispatch(input.FromSwipe(dx, dy))
			}
		}

		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}

		snap, status := f.latest()
		// refresh the graph once per finished game
		if snap.State != lastState {
			if snap.State == game.StateGameOver || history == nil {
				history = f.history()
			}
			lastState = snap.State
		}
		renderer.Draw(snap, status, history)
	}
	return nil
}
