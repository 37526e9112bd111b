package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gridrush/rushhour/puzzle/engine"
)

func mustBoard(t *testing.T, text string) *engine.Board {
	t.Helper()
	b, err := engine.ParseBoard("test", text)
	if err != nil {
		t.Fatalf("Failed to parse board: %v", err)
	}
	return b
}

func TestCountKinds(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		cars   int
		trucks int
	}{
		{
			name:   "cars only",
			text:   "..O...\nXXO...\n......\n......\n......\n......",
			cars:   2,
			trucks: 0,
		},
		{
			name:   "mixed lengths",
			text:   "AA...O\nP..Q.O\nPXXQ.O\nP..Q..\nB...CC\nB.RR..",
			cars:   5,
			trucks: 3,
		},
		{
			name:   "exit column trucks",
			text:   "XX...A\n.....A\n.....A\n.....B\n.....B\n.....B",
			cars:   1,
			trucks: 2,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := mustBoard(t, test.text)
			cars, trucks := countKinds(b)
			if cars != test.cars {
				t.Errorf("countKinds cars = %d, expected %d", cars, test.cars)
			}
			if trucks != test.trucks {
				t.Errorf("countKinds trucks = %d, expected %d", trucks, test.trucks)
			}
		})
	}
}

func TestBlockers(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected int
	}{
		{
			name:     "one blocker",
			text:     "..O...\nXXO...\n......\n......\n......\n......",
			expected: 1,
		},
		{
			name:     "two blockers",
			text:     "AA...O\nP..Q.O\nPXXQ.O\nP..Q..\nB...CC\nB.RR..",
			expected: 2,
		},
		{
			name:     "clear run to the exit",
			text:     ".XX...\n......",
			expected: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			b := mustBoard(t, test.text)
			got := blockers(b, b.InitialState())
			if got != test.expected {
				t.Errorf("blockers = %d, expected %d", got, test.expected)
			}
		})
	}
}

func TestAnalyzeBoard_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shuttle.txt")
	if err := os.WriteFile(path, []byte("..O...\nXXO...\n......\n......\n......\n......"), 0644); err != nil {
		t.Fatalf("Failed to write board file: %v", err)
	}

	// Test that analyzeBoard doesn't panic
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeBoard panicked: %v", r)
		}
	}()

	analyzeBoard(path)
}

func TestAnalyzeBoard_InvalidFile(t *testing.T) {
	// Test with non-existent file
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeBoard panicked with invalid file: %v", r)
		}
	}()

	analyzeBoard("/non/existent/board.txt")
}

func TestAnalyzeBoard_MalformedBoard(t *testing.T) {
	// Two separate runs of the same id do not form a vehicle
	path := filepath.Join(t.TempDir(), "broken.txt")
	if err := os.WriteFile(path, []byte("A.A\nXX.\n..."), 0644); err != nil {
		t.Fatalf("Failed to write board file: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeBoard panicked with malformed board: %v", r)
		}
	}()

	analyzeBoard(path)
}

func TestAnalyzeBoard_Unsolvable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "walled.txt")
	if err := os.WriteFile(path, []byte("XX...A\n.....A\n.....A\n.....B\n.....B\n.....B"), 0644); err != nil {
		t.Fatalf("Failed to write board file: %v", err)
	}

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("analyzeBoard panicked with unsolvable board: %v", r)
		}
	}()

	analyzeBoard(path)
}
