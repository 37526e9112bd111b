// Command analyze prints quick, human-readable stats about the board files
// in the project's boards directory. It summarizes dimensions, vehicle
// counts, the blocking-vehicle count for the starting position, and probes
// solvability with a breadth-first search.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/gridrush/rushhour/puzzle/engine"
	"github.com/gridrush/rushhour/puzzle/solver"
)

func main() {
	boards := []string{
		"classic.txt",
		"easy.txt",
		"medium.txt",
		"hard.txt",
		"trivial.txt",
		"unsolvable.txt",
	}

	for _, boardFile := range boards {
		fmt.Printf("\n=== Analyzing %s ===\n", boardFile)
		analyzeBoard(filepath.Join("boards", boardFile))
	}
}

func analyzeBoard(path string) {
	b, err := engine.LoadBoardFile(path)
	if err != nil {
		fmt.Printf("Error loading board: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", b.Name)
	fmt.Printf("Grid Size: %d x %d\n", b.Width, b.Height)

	cars, trucks := countKinds(b)
	fmt.Printf("Vehicles: %d (%d cars, %d trucks)\n", b.NumVehicles(), cars, trucks)

	target, _ := b.Vehicle(b.Target)
	fmt.Printf("Target: %c at (%d, %d), exit at (%d, %d)\n",
		target.ID, target.X, target.Y, b.Goal.X, b.Goal.Y)

	initial := b.InitialState()
	fmt.Printf("Blocking vehicles: %d\n", blockers(b, initial))

	sv, err := solver.New(solver.BFS)
	if err != nil {
		fmt.Printf("Error creating solver: %v\n", err)
		return
	}
	result := sv.Solve(b, initial)
	stats := sv.Stats()

	if result.Found {
		fmt.Printf("✅ Solvable in %d moves (cost %d), expanded %d states\n",
			result.Moves, result.Cost, stats.Expanded)
	} else {
		fmt.Printf("⚠️  WARNING: no solution exists (expanded %d states)\n", stats.Expanded)
	}
}

// countKinds splits the vehicle census into cars (length 2) and trucks
// (length 3 or more).
func countKinds(b *engine.Board) (cars, trucks int) {
	for _, v := range b.Vehicles() {
		if v.Length >= 3 {
			trucks++
		} else {
			cars++
		}
	}
	return cars, trucks
}

// blockers counts the distinct vehicles sitting between the target's front
// bumper and the exit column.
func blockers(b *engine.Board, s *engine.State) int {
	target, _ := s.Vehicle(b.Target)
	grid := s.Grid(b)

	seen := make(map[byte]bool)
	for x := target.X + target.Length; x <= b.Goal.X; x++ {
		if cell := grid[target.Y][x]; cell != engine.Empty {
			seen[cell] = true
		}
	}
	return len(seen)
}
