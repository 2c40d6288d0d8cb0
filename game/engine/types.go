package engine

// CellType represents different types of maze cells
type CellType string

const (
	Wall  CellType = "wall"
	Path  CellType = "path"
	Start CellType = "start"
	End   CellType = "end"
)

// Cell represents a single maze cell
type Cell struct {
	Type CellType `json:"type"`
}

// Walkable reports whether the cell can be stepped on. Only walls block.
func (c Cell) Walkable() bool {
	return c.Type != Wall
}

// Position represents x,y coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Player carries the avatar coordinate and the per-stage move counter.
// Moves counts accepted moves only; rejected commands never touch it.
type Player struct {
	Pos   Position `json:"pos"`
	Moves int      `json:"moves"`
}
