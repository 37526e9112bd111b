// Command validate provides a small CLI that validates puzzle board text
// files in the boards directory. It checks:
//   - File readability and the fixed 6x6 grid shape
//   - Vehicle geometry: contiguous straight runs, one per id
//   - Presence of a horizontal target vehicle (X)
//   - Solvability via a breadth-first probe; unsolvable boards are
//     warnings unless -strict is set
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridrush/rushhour/puzzle/engine"
	"github.com/gridrush/rushhour/puzzle/solver"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validateBoard loads and validates a single board text file. It performs
// shape checks, parses the vehicle geometry, and probes solvability.
func validateBoard(filePath string, strict bool) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	// Validate grid shape. The parser pads and truncates silently, so the
	// linter is the place that complains about ragged files.
	if shapeErrors := checkShape(string(data)); len(shapeErrors) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors, shapeErrors...)
	}

	name := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	b, err := engine.ParseBoard(name, string(data))
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("%v", err))
		return result
	}

	cars := 0
	trucks := 0
	for _, v := range b.Vehicles() {
		if v.Length >= 3 {
			trucks++
		} else {
			cars++
		}
	}

	// Solvability probe
	sv, err := solver.New(solver.BFS)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to create solver: %v", err))
		return result
	}
	probe := sv.Solve(b, b.InitialState())
	stats := sv.Stats()

	if !probe.Found && strict {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("No solution exists (expanded %d states)", stats.Expanded))
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", b.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", b.Width, b.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Vehicles: %d (%d cars, %d trucks)", b.NumVehicles(), cars, trucks))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Exit: row %d", b.Goal.Y))
		if probe.Found {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Solvable: %d moves (cost %d), expanded %d states", probe.Moves, probe.Cost, stats.Expanded))
		} else {
			result.Errors = append(result.Errors, fmt.Sprintf("⚠ No solution found (expanded %d states)", stats.Expanded))
		}
	}

	return result
}

// checkShape verifies the raw text forms a full grid: the fixed row count,
// every row at the fixed width. Trailing blank lines are ignored.
func checkShape(text string) []string {
	var errors []string

	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimRight(lines[len(lines)-1], " \t\r") == "" {
		lines = lines[:len(lines)-1]
	}

	if len(lines) == 0 {
		errors = append(errors, "Board is empty")
		return errors
	}

	if len(lines) != engine.DefaultHeight {
		errors = append(errors, fmt.Sprintf("Expected %d rows, got %d", engine.DefaultHeight, len(lines)))
	}

	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if len(line) != engine.DefaultWidth {
			errors = append(errors, fmt.Sprintf("Row %d has %d columns, expected %d", i+1, len(line), engine.DefaultWidth))
		}
	}

	return errors
}

// main scans the boards directory for *.txt files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	boardDir := flag.String("dir", "boards", "Directory containing board files")
	strict := flag.Bool("strict", false, "Treat unsolvable boards as errors")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*boardDir, "*.txt"))
	if err != nil {
		fmt.Printf("Error finding board files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No board files found in %s\n", *boardDir)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateBoard(file, *strict)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

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
		fmt.Println("✅ All boards are valid!")
	} else {
		fmt.Println("❌ Some boards have errors")
		os.Exit(1)
	}
}
