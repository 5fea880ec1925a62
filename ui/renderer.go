package ui

import (
	"fmt"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"snake-web/game"
	"snake-web/game/types"
	"snake-web/locale"
)

const (
	maxScores     = 50 // Maximum number of past games to show in graph
	borderPadding = 10 // Padding around game area
)

var backgrounds = map[string]rl.Color{
	"grass": {R: 34, G: 85, B: 34, A: 255},
	"stone": {R: 70, G: 70, B: 78, A: 255},
	"sand":  {R: 150, G: 125, B: 80, A: 255},
}

var foodColors = map[string]rl.Color{
	"apple":  rl.Red,
	"banana": rl.Yellow,
	"chili":  rl.Orange,
	"star":   rl.Gold,
}

var powerUpColors = map[types.PowerUpKind]rl.Color{
	types.Shield:   rl.SkyBlue,
	types.Scissors: rl.Purple,
}

// Renderer draws snapshots into the current raylib window
type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32

	catalog *locale.Catalog
}

func NewRenderer(catalog *locale.Catalog) *Renderer {
	r := &Renderer{catalog: catalog}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	// Stats panel takes a fifth of the window
	r.statsPanel = r.screenWidth / 5
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20
	r.graphHeight = r.screenHeight / 5
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// cellRect returns the top-left pixel of a 1-indexed board cell
func (r *Renderer) cellRect(c types.Cell) (int32, int32) {
	return r.offsetX + int32(c.X-1)*r.cellSize, r.offsetY + int32(c.Y-1)*r.cellSize
}

func (r *Renderer) fillCell(c types.Cell, color rl.Color) {
	x, y := r.cellRect(c)
	rl.DrawRectangle(x, y, r.cellSize, r.cellSize, color)
}

// Draw renders one frame. status is the latest announcer line, history the
// recent finished scores, most recent first.
func (r *Renderer) Draw(s game.Snapshot, status string, history []int) {
	r.UpdateDimensions()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	fontSize := min(r.screenHeight/40, r.statsPanel/12)
	lineHeight := fontSize + fontSize/2

	size := int32(s.GridSize)
	if size <= 0 {
		size = types.DefaultGridSize
	}
	availableWidth := r.gameWidth - (borderPadding * 2)
	availableHeight := r.gameHeight - (borderPadding * 2)
	r.cellSize = min(availableWidth/size, availableHeight/size)

	r.totalGridWidth = r.cellSize * size
	r.totalGridHeight = r.cellSize * size
	r.offsetX = borderPadding + (availableWidth-r.totalGridWidth)/2
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	bg, ok := backgrounds[s.Background]
	if !ok {
		bg = rl.DarkGray
	}
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, bg)

	for _, c := range s.Obstacles {
		r.fillCell(c, rl.Brown)
	}
	for _, c := range s.Mines {
		x, y := r.cellRect(c)
		half := r.cellSize / 2
		rl.DrawCircle(x+half, y+half, float32(half)*0.8, rl.Black)
		rl.DrawCircle(x+half, y+half, float32(half)*0.3, rl.Red)
	}
	if s.Food != nil {
		color, ok := foodColors[s.Food.Kind]
		if !ok {
			color = rl.Red
		}
		r.fillCell(s.Food.Cell, color)
	}
	if s.PowerUp != nil {
		x, y := r.cellRect(s.PowerUp.Cell)
		rl.DrawRectangleLines(x, y, r.cellSize, r.cellSize, rl.White)
		rl.DrawRectangle(x+2, y+2, r.cellSize-4, r.cellSize-4, powerUpColors[s.PowerUp.Kind])
	}

	r.drawSnake(s)
	r.drawOverlay(s, fontSize)
	r.drawStatsPanel(s, status, history, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) drawSnake(s game.Snapshot) {
	shielded := s.Effect != nil && s.Effect.Kind == types.Shield
	for j := len(s.Snake) - 1; j >= 0; j-- {
		p := s.Snake[j]
		color := rl.Lime
		if shielded {
			color = rl.SkyBlue
		}
		if j == 0 {
			color = rl.Green
		}
		r.fillCell(p, color)
	}
	if len(s.Snake) < 2 {
		return
	}

	// Direction indicator on the head
	head, neck := s.Snake[0], s.Snake[1]
	dx, dy := head.X-neck.X, head.Y-neck.Y
	if dx > 1 || dx < -1 || dy > 1 || dy < -1 {
		// wrapped through a wall
		dx, dy = -dx, -dy
	}
	headX, headY := r.cellRect(head)
	halfCell := r.cellSize / 2
	switch {
	case dx > 0: // Right
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Yellow)
	case dx < 0: // Left
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Yellow)
	case dy > 0: // Down
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY + r.cellSize)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Yellow)
	default: // Up
		rl.DrawTriangle(
			rl.Vector2{X: float32(headX + halfCell), Y: float32(headY)},
			rl.Vector2{X: float32(headX), Y: float32(headY + halfCell)},
			rl.Vector2{X: float32(headX + r.cellSize), Y: float32(headY + halfCell)},
			rl.Yellow)
	}
}

func (r *Renderer) centerText(text string, y, fontSize int32, color rl.Color) {
	textWidth := rl.MeasureText(text, fontSize)
	rl.DrawText(text, r.offsetX+(r.totalGridWidth-textWidth)/2, y, fontSize, color)
}

func (r *Renderer) drawOverlay(s game.Snapshot, fontSize int32) {
	midY := r.offsetY + r.totalGridHeight/2
	switch s.State {
	case game.StateCountdown:
		big := fontSize * 4
		r.centerText(strconv.Itoa(s.Countdown), midY-big/2, big, rl.White)
	case game.StateGameOver:
		if s.Summary != nil {
			r.centerText(r.catalog.Summary(*s.Summary), midY-fontSize*2, fontSize, rl.White)
		}
	}
	if hint := r.catalog.Hint(s.State); hint != "" {
		r.centerText(hint, midY+fontSize, fontSize, rl.RayWhite)
	}
}

func (r *Renderer) drawStatsPanel(s game.Snapshot, status string, history []int, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5
	statsY := int32(10)

	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	rl.DrawText(r.catalog.Count("label.score", s.Score), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(r.catalog.Count("label.highScore", s.HighScore), statsX, statsY, fontSize, rl.White)
	statsY += lineHeight
	rl.DrawText(fmt.Sprintf("%s / %s", s.Difficulty, s.MapID), statsX, statsY, fontSize, rl.LightGray)
	statsY += lineHeight

	if s.Effect != nil {
		switch s.Effect.Kind {
		case types.Shield:
			rl.DrawText(r.catalog.Count("label.shield", s.Effect.Remaining), statsX, statsY, fontSize, rl.SkyBlue)
		case types.Scissors:
			rl.DrawText(r.catalog.Text("label.scissors"), statsX, statsY, fontSize, rl.Purple)
		}
	}
	statsY += lineHeight
	if status != "" {
		rl.DrawText(status, statsX, statsY, fontSize, rl.Yellow)
	}

	r.drawScoreGraph(statsX, fontSize, history)
}

func (r *Renderer) drawScoreGraph(graphX, fontSize int32, history []int) {
	graphHeight := r.graphHeight
	graphWidth := r.graphWidth
	graphY := r.screenHeight - graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, graphWidth, graphHeight, rl.White)

	if len(history) > maxScores {
		history = history[:maxScores]
	}
	// oldest on the left
	scores := make([]int, len(history))
	for i, v := range history {
		scores[len(history)-1-i] = v
	}

	maxScore := 1
	total := 0
	for _, score := range scores {
		if score > maxScore {
			maxScore = score
		}
		total += score
	}
	rl.DrawText(fmt.Sprintf("Games: %d", len(scores)), graphX, r.screenHeight-fontSize-5, fontSize, rl.White)
	if len(scores) < 2 {
		return
	}

	for j := 1; j < len(scores); j++ {
		x1 := graphX + int32(float32(graphWidth)*float32(j-1)/float32(maxScores))
		y1 := graphY + graphHeight - int32(float32(graphHeight)*float32(scores[j-1])/float32(maxScore))
		x2 := graphX + int32(float32(graphWidth)*float32(j)/float32(maxScores))
		y2 := graphY + graphHeight - int32(float32(graphHeight)*float32(scores[j])/float32(maxScore))
		rl.DrawLine(x1, y1, x2, y2, rl.Green)
	}

	// Average score line (dashed)
	avg := float32(total) / float32(len(scores))
	avgY := graphY + graphHeight - int32(float32(graphHeight)*avg/float32(maxScore))
	for x := graphX; x < graphX+graphWidth; x += 5 {
		rl.DrawLine(x, avgY, x+2, avgY, rl.Yellow)
	}
}
