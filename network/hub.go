// Package network serves the game to browsers over HTTP and websockets.
package network

import (
	"context"
	"log"
	"os"
	"sync"

	"snake-web/game"
)

// Hub fans snapshots and events out to websocket clients and feeds their
// commands back to a dispatcher. It implements game.Renderer and
// game.Notifier without ever blocking the caller.
type Hub struct {
	codec  Codec
	logger *log.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan frame
	done       chan struct{}
	closing    sync.Once

	mu     sync.Mutex
	onCmd  func(Command)
	latest []byte
}

type frame struct {
	data     []byte
	snapshot bool
}

func NewHub(codec Codec) *Hub {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Hub{
		codec:      codec,
		logger:     log.New(os.Stderr, "[hub] ", log.LstdFlags|log.Lmsgprefix),
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan frame, 64),
		done:       make(chan struct{}),
		onCmd:      func(Command) {},
	}
}

func (h *Hub) SetLogger(l *log.Logger) {
	h.logger = l
}

// OnCommand registers the handler for client commands. It runs on the
// client's read goroutine.
func (h *Hub) OnCommand(fn func(Command)) {
	h.mu.Lock()
	h.onCmd = fn
	h.mu.Unlock()
}

func (h *Hub) dispatch(cmd Command) {
	h.mu.Lock()
	fn := h.onCmd
	h.mu.Unlock()
	fn(cmd)
}

func (h *Hub) OnStateChanged(s game.Snapshot) {
	h.publish(Envelope{Type: TypeSnapshot, Snapshot: &s}, true)
}

func (h *Hub) Notify(e game.Event) {
	h.publish(Envelope{Type: TypeEvent, Event: e}, false)
}

func (h *Hub) publish(env Envelope, snapshot bool) {
	data, err := h.codec.Marshal(env)
	if err != nil {
		h.logger.Printf("encode %s: %v", env.Type, err)
		return
	}
	select {
	case h.broadcast <- frame{data: data, snapshot: snapshot}:
	case <-h.done:
	default:
		h.logger.Printf("broadcast queue full, dropping %s", env.Type)
	}
}

// Run delivers frames until ctx ends, then closes every client
func (h *Hub) Run(ctx context.Context) {
	defer h.closing.Do(func() { close(h.done) })
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			if h.latest != nil {
				c.send <- h.latest
			}

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case f := <-h.broadcast:
			if f.snapshot {
				h.latest = f.data
			}
			for c := range h.clients {
				select {
				case c.send <- f.data:
				default:
					// slow client
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}
