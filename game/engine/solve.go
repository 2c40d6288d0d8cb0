package engine

// step backlinks a visited cell to the cell and direction that reached it.
type step struct {
	from Position
	dir  Direction
}

// ShortestPath returns a minimal move sequence from the grid's entry to its
// exit, or false when the exit is unreachable. Breadth-first search over
// walkable cells; an entry that equals the exit yields an empty path.
func ShortestPath(g *Grid) ([]Direction, bool) {
	start, end := g.Start(), g.End()
	visited := map[Position]bool{start: true}
	prev := make(map[Position]step)
	queue := []Position{start}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == end {
			return backtrack(prev, start, end), true
		}
		for _, d := range Directions() {
			candidate := Propose(current, d)
			if visited[candidate] || !Apply(g, candidate) {
				continue
			}
			visited[candidate] = true
			prev[candidate] = step{from: current, dir: d}
			queue = append(queue, candidate)
		}
	}
	return nil, false
}

// backtrack rebuilds the move sequence by walking the backlinks from the
// exit to the entry, then reversing.
func backtrack(prev map[Position]step, start, end Position) []Direction {
	var dirs []Direction
	for p := end; p != start; {
		s := prev[p]
		dirs = append(dirs, s.dir)
		p = s.from
	}
	for i, j := 0, len(dirs)-1; i < j; i, j = i+1, j-1 {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}

// Solvable reports whether the exit is reachable from the entry.
func Solvable(g *Grid) bool {
	_, ok := ShortestPath(g)
	return ok
}
