// Package engine provides the core gameplay logic for the maze runner.
//
// The engine package implements the pure game mechanics including:
//   - Layout text parsing into immutable rectangular grids
//   - Grid-based movement and collision detection
//   - Stage and run lifecycle with per-stage and total counters
//   - Breadth-first path solving for layout validation
//
// Core Types:
//
// Grid is the immutable maze board built by ParseGrid from a level
// descriptor. Stage couples a grid with the player on it, and Game strings
// stages together into a run, deriving the externally visible Phase from
// structural state instead of keeping a parallel flag. Everything in this
// package is free of I/O: level data arrives from the caller and the clock
// is passed in explicitly, which keeps the whole lifecycle deterministic
// under test.
//
// Usage:
//
//	grid, err := engine.ParseGrid(layout, 11, 9,
//		engine.Position{X: 1, Y: 1}, engine.Position{X: 9, Y: 7})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	game := engine.NewGame(10)
//	stage, _ := game.Start()
//	game.Activate(grid, time.Now())
//	outcome, _ := game.Move(engine.Right, time.Now())
//
// Game Rules:
//
// The player appears on the descriptor's entry coordinate and moves one cell
// per command. Walls and the grid boundary reject moves without side
// effects; stepping onto the descriptor's exit coordinate clears the stage.
// Clearing the final stage finishes the run and freezes its totals. The
// descriptor's coordinates govern throughout, even when the S and E markers
// in the layout text disagree with them.
package engine
