// Package locale translates game events and labels into status text.
package locale

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/leonelquinteros/gotext"

	"snake-web/game"
	"snake-web/game/types"
)

//go:embed po/*.po
var poFiles embed.FS

var ErrUnknownLanguage = errors.New("unknown language")

// Catalog holds the messages of one language
type Catalog struct {
	lang     string
	messages map[string]string
}

// Languages lists the bundled translations
func Languages() []string {
	entries, _ := poFiles.ReadDir("po")
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		langs = append(langs, strings.TrimSuffix(e.Name(), ".po"))
	}
	sort.Strings(langs)
	return langs
}

func New(lang string) (*Catalog, error) {
	data, err := poFiles.ReadFile("po/" + lang + ".po")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	po := gotext.NewPo()
	po.Parse(data)

	c := &Catalog{lang: lang, messages: make(map[string]string)}
	for id, tr := range po.GetDomain().GetTranslations() {
		if id != "" && tr.IsTranslated() {
			c.messages[id] = tr.Get()
		}
	}
	return c, nil
}

func (c *Catalog) Lang() string {
	return c.lang
}

// Text returns the translation for key, or key itself when missing
func (c *Catalog) Text(key string) string {
	if msg, ok := c.messages[key]; ok {
		return msg
	}
	return key
}

// Count formats a message holding a single %d
func (c *Catalog) Count(key string, n int) string {
	return fmt.Sprintf(c.Text(key), n)
}

// Event returns the status line for e, empty for silent events
func (c *Catalog) Event(e game.Event) string {
	return c.messages["event."+string(e)]
}

// Cause describes how the snake died
func (c *Catalog) Cause(cause types.DeathCause) string {
	if cause == types.CauseNone {
		return ""
	}
	return c.Text("cause." + string(cause))
}

// Summary renders the game over line
func (c *Catalog) Summary(s game.Summary) string {
	if s.NewRecord {
		return c.Count("summary.record", s.Score)
	}
	return fmt.Sprintf(c.Text("summary"), s.Score, s.HighScore, c.Cause(s.Cause))
}

// Hint returns the key help for a state, empty while playing
func (c *Catalog) Hint(state game.State) string {
	switch state {
	case game.StateIdle:
		return c.Text("hint.idle")
	case game.StatePaused:
		return c.Text("hint.paused")
	case game.StateGameOver:
		return c.Text("hint.gameover")
	}
	return ""
}
