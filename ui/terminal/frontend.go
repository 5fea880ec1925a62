// Package terminal renders the game with tcell and reads the keyboard.
package terminal

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"snake-web/game"
	"snake-web/game/input"
	"snake-web/game/types"
	"snake-web/locale"
)

const (
	frameInterval = 33 * time.Millisecond
	cellWidth     = 2
	boardX        = 1
	boardY        = 1
)

var (
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleHead     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBody     = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleShielded = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleObstacle = tcell.StyleDefault.Foreground(tcell.ColorSaddleBrown)
	styleMine     = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

var foodStyles = map[string]tcell.Style{
	"apple":  tcell.StyleDefault.Foreground(tcell.ColorRed),
	"banana": tcell.StyleDefault.Foreground(tcell.ColorYellow),
	"chili":  tcell.StyleDefault.Foreground(tcell.ColorOrange),
	"star":   tcell.StyleDefault.Foreground(tcell.ColorGold),
}

var powerUpRunes = map[types.PowerUpKind]rune{
	types.Shield:   '◆',
	types.Scissors: '✂',
}

const (
	runeHead     = '@'
	runeBody     = 'o'
	runeFood     = '●'
	runeMine     = '✖'
	runeObstacle = '█'
)

// Frontend draws snapshots on a tcell screen. OnStateChanged may be called
// from any goroutine.
type Frontend struct {
	screen  tcell.Screen
	catalog *locale.Catalog

	mu     sync.Mutex
	snap   game.Snapshot
	status string
	dirty  bool
}

func New(screen tcell.Screen, catalog *locale.Catalog) *Frontend {
	return &Frontend{screen: screen, catalog: catalog}
}

func (f *Frontend) OnStateChanged(s game.Snapshot) {
	f.mu.Lock()
	f.snap = s
	f.dirty = true
	f.mu.Unlock()
}

// SetStatus shows a one-line message beside the board
func (f *Frontend) SetStatus(msg string) {
	f.mu.Lock()
	f.status = msg
	f.dirty = true
	f.mu.Unlock()
}

// Run initializes the screen and forwards key presses until the player
// quits or ctx ends
func (f *Frontend) Run(ctx context.Context, dispatch func(input.Action)) error {
	if err := f.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer f.screen.Fini()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	f.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !f.HandleEvent(ev, dispatch) {
				return nil
			}
		case <-ticker.C:
			f.mu.Lock()
			dirty := f.dirty
			f.dirty = false
			f.mu.Unlock()
			if dirty {
				f.Draw()
			}
		}
	}
}

// HandleEvent maps one terminal event to an action. It returns false when
// the player asked to quit.
func (f *Frontend) HandleEvent(ev tcell.Event, dispatch func(input.Action)) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		var name string
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			name = "ArrowUp"
		case tcell.KeyDown:
			name = "ArrowDown"
		case tcell.KeyLeft:
			name = "ArrowLeft"
		case tcell.KeyRight:
			name = "ArrowRight"
		case tcell.KeyEnter:
			name = "Enter"
		case tcell.KeyEscape:
			name = "Escape"
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				name = "Space"
			default:
				name = string(ev.Rune())
			}
		}
		if a := input.FromKey(name); a != input.None {
			dispatch(a)
		}
	case *tcell.EventResize:
		f.screen.Sync()
		f.mu.Lock()
		f.dirty = true
		f.mu.Unlock()
	}
	return true
}

// screenPos returns the left column and row of a 1-indexed board cell
func screenPos(c types.Cell) (int, int) {
	return boardX + 1 + (c.X-1)*cellWidth, boardY + 1 + c.Y - 1
}

func (f *Frontend) put(c types.Cell, r rune, style tcell.Style) {
	x, y := screenPos(c)
	f.screen.SetContent(x, y, r, nil, style)
}

func (f *Frontend) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		f.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

// Draw renders the latest snapshot
func (f *Frontend) Draw() {
	f.mu.Lock()
	s, status := f.snap, f.status
	f.mu.Unlock()

	f.screen.Clear()
	size := s.GridSize
	if size <= 0 {
		size = types.DefaultGridSize
	}
	f.drawBorder(size)

	for _, c := range s.Obstacles {
		f.put(c, runeObstacle, styleObstacle)
	}
	for _, c := range s.Mines {
		f.put(c, runeMine, styleMine)
	}
	if s.Food != nil {
		style, ok := foodStyles[s.Food.Kind]
		if !ok {
			style = styleText
		}
		f.put(s.Food.Cell, runeFood, style)
	}
	if s.PowerUp != nil {
		f.put(s.PowerUp.Cell, powerUpRunes[s.PowerUp.Kind], styleShielded)
	}

	bodyStyle := styleBody
	if s.Effect != nil && s.Effect.Kind == types.Shield {
		bodyStyle = styleShielded
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			f.put(s.Snake[i], runeHead, styleHead)
		} else {
			f.put(s.Snake[i], runeBody, bodyStyle)
		}
	}

	f.drawPanel(s, status, boardX+size*cellWidth+3)
	f.screen.Show()
}

func (f *Frontend) drawBorder(size int) {
	right := boardX + size*cellWidth + 1
	bottom := boardY + size + 1
	for x := boardX; x <= right; x++ {
		f.screen.SetContent(x, boardY, '─', nil, styleBorder)
		f.screen.SetContent(x, bottom, '─', nil, styleBorder)
	}
	for y := boardY; y <= bottom; y++ {
		f.screen.SetContent(boardX, y, '│', nil, styleBorder)
		f.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	f.screen.SetContent(boardX, boardY, '┌', nil, styleBorder)
	f.screen.SetContent(right, boardY, '┐', nil, styleBorder)
	f.screen.SetContent(boardX, bottom, '└', nil, styleBorder)
	f.screen.SetContent(right, bottom, '┘', nil, styleBorder)
}

func (f *Frontend) drawPanel(s game.Snapshot, status string, x int) {
	y := boardY + 1
	line := func(msg string, style tcell.Style) {
		f.text(x, y, msg, style)
		y++
	}

	line(f.catalog.Count("label.score", s.Score), styleText)
	line(f.catalog.Count("label.highScore", s.HighScore), styleText)
	line(fmt.Sprintf("%s / %s", s.Difficulty, s.MapID), styleBorder)
	y++

	if s.Effect != nil {
		switch s.Effect.Kind {
		case types.Shield:
			line(f.catalog.Count("label.shield", s.Effect.Remaining), styleShielded)
		case types.Scissors:
			line(f.catalog.Text("label.scissors"), styleShielded)
		}
	}
	if s.State == game.StateCountdown {
		line(strconv.Itoa(s.Countdown), styleStatus)
	}
	if status != "" {
		line(status, styleStatus)
	}
	if s.State == game.StateGameOver && s.Summary != nil {
		line(f.catalog.Summary(*s.Summary), styleText)
	}
	if hint := f.catalog.Hint(s.State); hint != "" {
		line(hint, styleBorder)
	}
}
