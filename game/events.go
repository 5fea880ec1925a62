package game

import (
	"log"
)

// Event is a fire-and-forget notification for audio and locale adapters
type Event string

const (
	EventEat       Event = "eat"
	EventGameOver  Event = "gameOver"
	EventPowerUp   Event = "powerUp"
	EventMine      Event = "mine"
	EventStart     Event = "start"
	EventTurn      Event = "turn"
	EventCountdown Event = "countdown"
	EventPause     Event = "pause"
	EventResume    Event = "resume"
	EventShieldEnd Event = "shieldEnd"
)

// Renderer receives a snapshot after every tick and every spawn, expiry or state change
type Renderer interface {
	OnStateChanged(Snapshot)
}

// Notifier receives gameplay events. It must not block.
type Notifier interface {
	Notify(Event)
}

// RendererFunc adapts a function to Renderer
type RendererFunc func(Snapshot)

func (f RendererFunc) OnStateChanged(s Snapshot) { f(s) }

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Renderers fans a snapshot out to several renderers
type Renderers []Renderer

func (rs Renderers) OnStateChanged(s Snapshot) {
	for _, r := range rs {
		r.OnStateChanged(s)
	}
}

// Notifiers fans an event out to several notifiers
type Notifiers []Notifier

func (ns Notifiers) Notify(e Event) {
	for _, n := range ns {
		n.Notify(e)
	}
}

// safeNotify shields the simulation from notifier failures
func safeNotify(n Notifier, e Event, logger *log.Logger) {
	if n == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("notifier panic on %s: %v", e, r)
		}
	}()
	n.Notify(e)
}
