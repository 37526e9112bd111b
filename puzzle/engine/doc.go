// Package engine provides the core puzzle model for the Rush Hour solver.
//
// The engine package implements the sliding-vehicle mechanics including:
//   - Board parsing from the plain-text grid format
//   - Immutable vehicle and state snapshots with value equality
//   - Occupancy grids and legal one-cell slide generation
//   - Goal detection for the target vehicle at the exit cell
//
// Core Types:
//
// Board is the static puzzle layout parsed once from text and read-only
// afterwards. State is an immutable snapshot of every vehicle's placement;
// successor states are produced copy-on-write, one slid vehicle per step.
// Vehicle is a plain value describing a single placement.
//
// Usage:
//
//	board, err := engine.LoadBoardFile("boards/classic.txt")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	state := board.InitialState()
//	for _, next := range state.Successors(board) {
//		if next.IsGoal(board) {
//			fmt.Println(next.Render(board))
//		}
//	}
//
// Coordinates:
//
// X is the column and Y the row; (0,0) is the top-left cell and Y grows
// downward. The exit sits on the rightmost column of the target vehicle's
// row, which is why the loader requires the target to be horizontal.
package engine
