package network

import (
	"errors"
	"fmt"

	"snake-web/game"
	"snake-web/game/input"
	"snake-web/game/types"
)

var ErrUnknownCommand = errors.New("unknown command")

// Command is a message sent by a browser client
//
//	{"cmd":"dir","dir":"up"}
//	{"cmd":"swipe","dx":-40,"dy":3}
//	{"cmd":"difficulty","difficulty":"hard"}
type Command struct {
	Cmd        string  `json:"cmd" msgpack:"cmd"`
	Dir        string  `json:"dir,omitempty" msgpack:"dir,omitempty"`
	DX         float64 `json:"dx,omitempty" msgpack:"dx,omitempty"`
	DY         float64 `json:"dy,omitempty" msgpack:"dy,omitempty"`
	Difficulty string  `json:"difficulty,omitempty" msgpack:"difficulty,omitempty"`
	Map        string  `json:"map,omitempty" msgpack:"map,omitempty"`
}

// Envelope is a message sent to browser clients
type Envelope struct {
	Type     string         `json:"type" msgpack:"type"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty" msgpack:"snapshot,omitempty"`
	Event    game.Event     `json:"event,omitempty" msgpack:"event,omitempty"`
}

const (
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
)

// Apply runs cmd on the controller. It must be called from the
// controller's goroutine.
func Apply(c *game.Controller, cmd Command) error {
	switch cmd.Cmd {
	case "dir":
		d := types.Direction(cmd.Dir)
		if _, ok := d.Velocity(); !ok {
			return fmt.Errorf("%w: direction %q", ErrUnknownCommand, cmd.Dir)
		}
		c.SetDirection(d)
	case "swipe":
		input.Apply(c, input.FromSwipe(cmd.DX, cmd.DY))
	case "start":
		c.Start()
	case "pause":
		c.TogglePause()
	case "restart":
		c.Restart()
	case "difficulty":
		_, err := c.SetDifficulty(types.Difficulty(cmd.Difficulty))
		return err
	case "map":
		_, err := c.SetMap(cmd.Map)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Cmd)
	}
	return nil
}
