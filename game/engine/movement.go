package engine

import (
	"errors"
	"fmt"
)

// ErrUnknownDirection reports a direction string outside the four cardinal
// movement commands.
var ErrUnknownDirection = errors.New("unknown direction")

// Direction represents one of the four cardinal movement directions
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Delta returns the x,y offset of a single step in direction d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// String returns the transport-level name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("direction(%d)", int(d))
}

// Directions lists the four movement directions in a stable order.
func Directions() []Direction {
	return []Direction{Up, Down, Left, Right}
}

// ParseDirection maps a transport-level direction string ("up", "down",
// "left", "right") onto its Direction value.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Propose returns the coordinate one step away from `from` in direction d.
// It performs no validation; Apply decides acceptance.
func Propose(from Position, d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: from.X + dx, Y: from.Y + dy}
}

// Apply reports whether candidate is an acceptable destination on g, which
// is exactly the grid's walkability check. A rejected candidate has no side
// effects anywhere; committing an accepted one is the caller's job.
func Apply(g *Grid, candidate Position) bool {
	return g.Walkable(candidate)
}
