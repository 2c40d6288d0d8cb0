// Command validate provides a small CLI that validates maze stage definitions
// before they are served to players. It checks:
//   - Allowed layout characters (#, ., S, E)
//   - Declared width/height against the actual layout rows, since the game
//     engine silently pads and truncates drifting layouts
//   - Start and end coordinates in bounds and not inside walls
//   - Solvability: the exit must be reachable from the entry
//
// It reads stages from a SQLite level database (-db) or, with -builtin,
// validates the compiled-in stage set.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/localfirst-games/mazerunner/game/engine"
	"github.com/localfirst-games/mazerunner/game/level"
	"github.com/localfirst-games/mazerunner/levelsvc"
)

var (
	dbPath  = flag.String("db", "levels.db", "path to the SQLite level database")
	builtin = flag.Bool("builtin", false, "validate the built-in stage set instead of a database")
)

// ValidationResult captures the outcome of validating a single stage.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	Stage  int
	Valid  bool
	Errors []string
}

// validateStage checks one stage descriptor. It performs raw layout checks
// the forgiving engine parser would paper over, then parses the grid and
// runs a reachability search from entry to exit.
func validateStage(d level.Descriptor) ValidationResult {
	result := ValidationResult{
		Stage:  d.StageNumber,
		Valid:  true,
		Errors: []string{},
	}

	if d.StageNumber < 1 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Stage number must be positive, got %d", d.StageNumber))
	}

	// Raw layout checks. The engine pads short rows and cuts long ones, so
	// drift still loads, but hand-authored stages should not rely on that.
	rows := strings.Split(strings.TrimSpace(d.Layout), "\n")
	if len(rows) != d.Height {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Layout has %d rows, declared height is %d", len(rows), d.Height))
	}
	for i, row := range rows {
		row = strings.TrimSuffix(row, "\r")
		if len(row) != d.Width {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Inconsistent row width at row %d: expected %d, got %d", i+1, d.Width, len(row)))
		}
		for j := 0; j < len(row); j++ {
			switch row[j] {
			case '#', '.', 'S', 'E':
			default:
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Invalid character %q at position [%d,%d]", row[j], i+1, j+1))
			}
		}
	}

	grid, err := engine.ParseGrid(d.Layout, d.Width, d.Height, engine.Position{X: d.StartX, Y: d.StartY}, engine.Position{X: d.EndX, Y: d.EndY})
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Grid rejected: %v", err))
		return result
	}

	path, ok := engine.ShortestPath(grid)
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Exit (%d,%d) is unreachable from entry (%d,%d)", d.EndX, d.EndY, d.StartX, d.StartY))
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", d.Width, d.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Entry: (%d,%d)  Exit: (%d,%d)", d.StartX, d.StartY, d.EndX, d.EndY))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Shortest solution: %d moves", len(path)))
		result.Errors = append(result.Errors, markerNotes(grid, d)...)
	}

	return result
}

// markerNotes reports S/E markers that sit away from the authoritative
// coordinates. The shipped stages do this on purpose, so a mismatch is a
// note rather than an error.
func markerNotes(grid *engine.Grid, d level.Descriptor) []string {
	var notes []string
	for y, row := range grid.Rows() {
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case 'S':
				if x != d.StartX || y != d.StartY {
					notes = append(notes, fmt.Sprintf("✓ Note: S marker at (%d,%d) is cosmetic; entry is (%d,%d)", x, y, d.StartX, d.StartY))
				}
			case 'E':
				if x != d.EndX || y != d.EndY {
					notes = append(notes, fmt.Sprintf("✓ Note: E marker at (%d,%d) is cosmetic; exit is (%d,%d)", x, y, d.EndX, d.EndY))
				}
			}
		}
	}
	return notes
}

// loadStages returns the stage set to validate, either from the SQLite store
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

// main validates every stage, printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	flag.Parse()

	stages, err := loadStages()
	if err != nil {
		fmt.Printf("Error loading stages: %v\n", err)
		os.Exit(1)
	}
	if len(stages) == 0 {
		fmt.Println("No stages found")
		os.Exit(1)
	}

	allValid := true
	for _, d := range stages {
		result := validateStage(d)

		fmt.Printf("\n%s Stage %d\n", strings.Repeat("=", 20), result.Stage)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All stages are valid!")
	} else {
		fmt.Println("❌ Some stages have errors")
		os.Exit(1)
	}
}
