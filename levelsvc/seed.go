package levelsvc

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/localfirst-games/mazerunner/game/engine"
	"github.com/localfirst-games/mazerunner/game/level"
)

// The first three stages are the hand-authored mazes the game shipped with.
// Stage 1 and 2 place their E marker one cell past the exit coordinate; the
// coordinates are what the engine honors, the marker is cosmetic.
const (
	stage1Layout = `###########
#S........#
#.########.
#.........#
########.##
#.........#
#.#######.#
#.........E
###########`

	stage2Layout = `#############
#S..........#
##.########.#
#..#......#.#
#.##.####.#.#
#....#....#.#
######.####.#
#...........E
#############`

	stage3Layout = `###############
#S............#
#.###########.#
#.#.........#.#
#.#.#######.#.#
#...#.....#...#
#####.###.###.#
#.............#
#.###########.#
#...........E.#
###############`
)

// DefaultStages returns the built-in stage set: the three hand-authored
// mazes, then switchback mazes of growing size through stage 10.
func DefaultStages() []level.Descriptor {
	stages := []level.Descriptor{
		{StageNumber: 1, Layout: stage1Layout, Width: 11, Height: 9, StartX: 1, StartY: 1, EndX: 9, EndY: 7},
		{StageNumber: 2, Layout: stage2Layout, Width: 13, Height: 9, StartX: 1, StartY: 1, EndX: 11, EndY: 7},
		{StageNumber: 3, Layout: stage3Layout, Width: 15, Height: 11, StartX: 1, StartY: 1, EndX: 12, EndY: 9},
	}

	sizes := []struct{ w, h int }{
		{13, 11},
		{15, 11},
		{15, 13},
		{17, 13},
		{19, 15},
		{21, 15},
		{23, 17},
	}
	for i, size := range sizes {
		stages = append(stages, level.Descriptor{
			StageNumber: 4 + i,
			Layout:      serpentine(size.w, size.h),
			Width:       size.w,
			Height:      size.h,
			StartX:      1,
			StartY:      1,
			EndX:        size.w - 2,
			EndY:        size.h - 2,
		})
	}
	return stages
}

// serpentine builds a switchback maze: open corridor rows separated by wall
// rows pierced at alternating ends. Height must be odd so the first and last
// interior rows are corridors.
func serpentine(width, height int) string {
	grid := make([][]byte, height)
	for y := range grid {
		grid[y] = bytes.Repeat([]byte{'#'}, width)
	}
	for y := 1; y < height-1; y += 2 {
		for x := 1; x < width-1; x++ {
			grid[y][x] = '.'
		}
	}
	gapRight := true
	for y := 2; y < height-1; y += 2 {
		if gapRight {
			grid[y][width-2] = '.'
		} else {
			grid[y][1] = '.'
		}
		gapRight = !gapRight
	}
	grid[1][1] = 'S'
	grid[height-2][width-2] = 'E'

	rows := make([]string, height)
	for y, row := range grid {
		rows[y] = string(row)
	}
	return strings.Join(rows, "\n")
}

// ValidateStage checks that a descriptor parses and that its exit is
// reachable from its entry.
func ValidateStage(d level.Descriptor) error {
	grid, err := engine.ParseGrid(d.Layout, d.Width, d.Height,
		engine.Position{X: d.StartX, Y: d.StartY},
		engine.Position{X: d.EndX, Y: d.EndY})
	if err != nil {
		return fmt.Errorf("stage %d: %w", d.StageNumber, err)
	}
	if !engine.Solvable(grid) {
		return fmt.Errorf("stage %d: exit unreachable from entry", d.StageNumber)
	}
	return nil
}

// Seed installs the default stage set into an empty store and returns how
// many stages it wrote. A store that already holds stages is left untouched.
// Stages that fail ValidateStage are refused rather than stored.
func Seed(ctx context.Context, store *Store) (int, error) {
	count, err := store.CountStages(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}
	stages := DefaultStages()
	for _, d := range stages {
		if err := ValidateStage(d); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
		if err := store.PutStage(ctx, d); err != nil {
			return 0, fmt.Errorf("seed: %w", err)
		}
	}
	return len(stages), nil
}
