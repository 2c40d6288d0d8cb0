// Command analyze prints quick, human-readable difficulty heuristics for the
// maze stage set. It summarizes dimensions, wall density, shortest-solution
// length, dead ends, and junctions, and highlights stages that solve in fewer
// moves than the stage before them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/localfirst-games/mazerunner/game/engine"
	"github.com/localfirst-games/mazerunner/game/level"
	"github.com/localfirst-games/mazerunner/levelsvc"
)

var (
	dbPath  = flag.String("db", "levels.db", "path to the SQLite level database")
	builtin = flag.Bool("builtin", false, "analyze the built-in stage set instead of a database")
)

// StageMetrics summarizes one maze for difficulty review.
type StageMetrics struct {
	Stage       int
	Width       int
	Height      int
	OpenCells   int
	WallDensity float64 // percent of cells that are walls
	SolutionLen int     // shortest path in moves, -1 when unsolvable
	DeadEnds    int     // open cells with a single open neighbor
	Junctions   int     // open cells with three or more open neighbors
	Directness  float64 // manhattan distance over solution length, 1.0 means no detours
}

// analyzeStage computes metrics for one stage descriptor. A descriptor the
// engine rejects outright returns an error; an unsolvable maze is reported
// through SolutionLen instead.
func analyzeStage(d level.Descriptor) (StageMetrics, error) {
	grid, err := engine.ParseGrid(d.Layout, d.Width, d.Height, engine.Position{X: d.StartX, Y: d.StartY}, engine.Position{X: d.EndX, Y: d.EndY})
	if err != nil {
		return StageMetrics{}, err
	}

	m := StageMetrics{
		Stage:       d.StageNumber,
		Width:       d.Width,
		Height:      d.Height,
		SolutionLen: -1,
	}

	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			p := engine.Position{X: x, Y: y}
			if !grid.Walkable(p) {
				continue
			}
			m.OpenCells++
			switch openNeighbors(grid, p) {
			case 1:
				m.DeadEnds++
			case 3, 4:
				m.Junctions++
			}
		}
	}

	total := d.Width * d.Height
	m.WallDensity = 100 * float64(total-m.OpenCells) / float64(total)

	if path, ok := engine.ShortestPath(grid); ok {
		m.SolutionLen = len(path)
		if m.SolutionLen > 0 {
			manhattan := abs(d.EndX-d.StartX) + abs(d.EndY-d.StartY)
			m.Directness = float64(manhattan) / float64(m.SolutionLen)
		}
	}

	return m, nil
}

// openNeighbors counts the orthogonally adjacent cells of p that can be
// stepped on.
func openNeighbors(grid *engine.Grid, p engine.Position) int {
	n := 0
	for _, d := range engine.Directions() {
		if grid.Walkable(engine.Propose(p, d)) {
			n++
		}
	}
	return n
}

func printMetrics(m StageMetrics) {
	fmt.Printf("Grid Size: %d x %d\n", m.Width, m.Height)
	fmt.Printf("Open Cells: %d (wall density %.0f%%)\n", m.OpenCells, m.WallDensity)
	if m.SolutionLen < 0 {
		fmt.Printf("⚠️  CRITICAL: the exit is unreachable from the entry!\n")
	} else {
		fmt.Printf("Shortest Solution: %d moves (directness %.2f)\n", m.SolutionLen, m.Directness)
	}
	fmt.Printf("Dead Ends: %d\n", m.DeadEnds)
	fmt.Printf("Junctions: %d\n", m.Junctions)
}

// loadStages returns the stage set to analyze, either from the SQLite store
// or the compiled-in defaults.
func loadStages() ([]level.Descriptor, error) {
	if *builtin {
		return levelsvc.DefaultStages(), nil
	}

	store, err := levelsvc.Open(*dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", *dbPath, err)
	}
	defer store.Close()

	ctx := context.Background()
	numbers, err := store.StageNumbers(ctx)
	if err != nil {
		return nil, err
	}

	stages := make([]level.Descriptor, 0, len(numbers))
	for _, n := range numbers {
		d, err := store.Stage(ctx, n)
		if err != nil {
			return nil, err
		}
		stages = append(stages, *d)
	}
	return stages, nil
}

func main() {
	flag.Parse()

	stages, err := loadStages()
	if err != nil {
		fmt.Printf("Error loading stages: %v\n", err)
		os.Exit(1)
	}

	prevStage, prevLen := 0, -1
	for _, d := range stages {
		fmt.Printf("\n=== Analyzing stage %d ===\n", d.StageNumber)

		m, err := analyzeStage(d)
		if err != nil {
			fmt.Printf("Error parsing stage: %v\n", err)
			continue
		}

		printMetrics(m)

		if prevLen >= 0 && m.SolutionLen >= 0 && m.SolutionLen < prevLen {
			fmt.Printf("⚠️  WARNING: stage %d solves in fewer moves than stage %d (%d vs %d)\n", m.Stage, prevStage, m.SolutionLen, prevLen)
		}
		prevStage, prevLen = m.Stage, m.SolutionLen
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
