package locale

import (
	"sync"

	"snake-web/game"
)

// Announcer is a game.Notifier that keeps the latest translated status line
type Announcer struct {
	catalog *Catalog

	mu   sync.Mutex
	last string
	sink func(string)
}

func NewAnnouncer(c *Catalog) *Announcer {
	return &Announcer{catalog: c, sink: func(string) {}}
}

// OnMessage registers a callback for every new status line
func (a *Announcer) OnMessage(fn func(string)) {
	a.mu.Lock()
	a.sink = fn
	a.mu.Unlock()
}

func (a *Announcer) Notify(e game.Event) {
	msg := a.catalog.Event(e)
	if msg == "" {
		return
	}
	a.mu.Lock()
	a.last = msg
	sink := a.sink
	a.mu.Unlock()
	sink(msg)
}

// Last returns the most recent status line
func (a *Announcer) Last() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}
