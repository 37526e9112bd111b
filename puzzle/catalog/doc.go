// Package catalog provides board management for the Rush Hour solver.
//
// The catalog package handles:
//   - Loading puzzle boards from plain text files
//   - Board caching with concurrent access
//   - Default board management
//   - Board discovery and listing
//
// Board Format:
//
// Boards are stored as .txt files in the boards directory. Each file holds
// one grid of uppercase vehicle letters and '.' for empty cells, one row per
// line:
//
//	AA...O
//	P..Q.O
//	PXXQ.O
//	P..Q..
//	B...CC
//	B.RR..
//
// The vehicle X is the target; it must be horizontal and escapes through the
// right edge of its row. Short rows are padded with empty cells and missing
// rows are treated as empty.
//
// Available Boards:
//
// The shipped catalog covers several difficulty levels:
//   - classic: the well-known starter layout
//   - trivial: a clear run to the exit
//   - easy, medium, hard: increasing blocker counts
//   - unsolvable: a walled exit, useful for exercising negative results
//
// Usage:
//
//	manager, err := catalog.NewManager("boards")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	board, err := manager.LoadBoard("classic")
//	if errors.Is(err, catalog.ErrBoardNotFound) {
//		// unknown name
//	}
//
// A missing boards directory fails construction; a directory without a
// classic.txt falls back to the built-in classic layout as the default.
package catalog
