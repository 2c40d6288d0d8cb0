package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLayout reports layout text that cannot be turned into a grid.
var ErrMalformedLayout = errors.New("malformed layout")

// Grid is an immutable rectangular maze. The entry and exit coordinates come
// verbatim from the level descriptor, never from scanning the layout text:
// the S and E markers are render hints and may sit elsewhere entirely.
type Grid struct {
	cells  [][]Cell
	width  int
	height int
	start  Position
	end    Position
}

// ParseGrid classifies layout text into a width x height grid.
//
// The text is normalized rather than trusted: surrounding blank space is
// trimmed, each row loses a trailing carriage return, rows beyond height are
// discarded, missing rows are synthesized as all-wall, short rows are
// right-padded with walls and overlong rows are cut at width. A non-positive
// size, an empty layout, an unknown character, or a start or end coordinate
// that is out of bounds or lands on a wall fails with ErrMalformedLayout.
func ParseGrid(layout string, width, height int, start, end Position) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid size %dx%d", ErrMalformedLayout, width, height)
	}
	trimmed := strings.TrimSpace(layout)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty layout", ErrMalformedLayout)
	}

	rows := strings.Split(trimmed, "\n")
	cells := make([][]Cell, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]Cell, width)
		var row string
		if y < len(rows) {
			row = strings.TrimSuffix(rows[y], "\r")
		}
		for x := 0; x < width; x++ {
			if x >= len(row) {
				cells[y][x] = Cell{Type: Wall}
				continue
			}
			cellType, ok := classify(row[x])
			if !ok {
				return nil, fmt.Errorf("%w: unknown character %q at row %d col %d", ErrMalformedLayout, row[x], y, x)
			}
			cells[y][x] = Cell{Type: cellType}
		}
	}

	g := &Grid{cells: cells, width: width, height: height, start: start, end: end}
	if !g.Walkable(start) {
		return nil, fmt.Errorf("%w: start (%d,%d) is not a walkable cell", ErrMalformedLayout, start.X, start.Y)
	}
	if !g.Walkable(end) {
		return nil, fmt.Errorf("%w: end (%d,%d) is not a walkable cell", ErrMalformedLayout, end.X, end.Y)
	}
	return g, nil
}

// classify maps a layout character onto its cell type.
func classify(c byte) (CellType, bool) {
	switch c {
	case '#':
		return Wall, true
	case '.':
		return Path, true
	case 'S':
		return Start, true
	case 'E':
		return End, true
	}
	return "", false
}

// Walkable reports whether p is inside the grid and not a wall. Every
// coordinate outside the grid reads as wall.
func (g *Grid) Walkable(p Position) bool {
	if p.Y < 0 || p.Y >= g.height || p.X < 0 || p.X >= g.width {
		return false
	}
	return g.cells[p.Y][p.X].Walkable()
}

// CellAt returns the cell at p. Out-of-bounds positions read as wall.
func (g *Grid) CellAt(p Position) Cell {
	if p.Y < 0 || p.Y >= g.height || p.X < 0 || p.X >= g.width {
		return Cell{Type: Wall}
	}
	return g.cells[p.Y][p.X]
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// Start returns the entry coordinate taken from the level descriptor.
func (g *Grid) Start() Position { return g.start }

// End returns the exit coordinate taken from the level descriptor.
func (g *Grid) End() Position { return g.end }

// Rows renders the grid back into one string per row. Padding and
// truncation applied during parsing show up in the result, so the rows are
// always exactly Width characters and there are always exactly Height rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		b.Reset()
		for x := 0; x < g.width; x++ {
			b.WriteByte(layoutChar(g.cells[y][x].Type))
		}
		rows[y] = b.String()
	}
	return rows
}

// layoutChar is the inverse of classify.
func layoutChar(t CellType) byte {
	switch t {
	case Path:
		return '.'
	case Start:
		return 'S'
	case End:
		return 'E'
	}
	return '#'
}
