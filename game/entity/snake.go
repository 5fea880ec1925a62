package entity

import (
	"snake-web/game/types"
)

// Snake is the player's body, head first
type Snake struct {
	Body      []types.Cell
	Velocity  types.Velocity // applied on the next step
	LastMoved types.Velocity // applied on the previous step
}

func NewSnake(start types.Cell) *Snake {
	return &Snake{
		Body: []types.Cell{start},
	}
}

// Head returns the first segment
func (s *Snake) Head() types.Cell {
	return s.Body[0]
}

// SetHead overwrites the stored head, used when the head wraps around a wall
func (s *Snake) SetHead(c types.Cell) {
	s.Body[0] = c
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Move prepends the new head
func (s *Snake) Move(newHead types.Cell) {
	s.Body = append(s.Body, types.Cell{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = newHead
}

// RemoveTail drops the last segment, never the head
func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Occupies reports whether any segment sits on c
func (s *Snake) Occupies(c types.Cell) bool {
	for _, p := range s.Body {
		if p == c {
			return true
		}
	}
	return false
}

// BodyHit reports whether the head overlaps a non-head segment
func (s *Snake) BodyHit() bool {
	head := s.Body[0]
	for _, p := range s.Body[1:] {
		if p == head {
			return true
		}
	}
	return false
}

// Truncate keeps the first n segments
func (s *Snake) Truncate(n int) {
	if n < 1 {
		n = 1
	}
	if n < len(s.Body) {
		s.Body = s.Body[:n]
	}
}

// SetDirection accepts a turn unless it reverses the current or last applied velocity
func (s *Snake) SetDirection(dir types.Direction) bool {
	v, ok := dir.Velocity()
	if !ok {
		return false
	}
	if v.Reverses(s.Velocity) || v.Reverses(s.LastMoved) {
		return false
	}
	if v == s.Velocity {
		return false
	}
	s.Velocity = v
	return true
}

// Cells returns a copy of the body
func (s *Snake) Cells() []types.Cell {
	out := make([]types.Cell, len(s.Body))
	copy(out, s.Body)
	return out
}
