package solver

import (
	"errors"
	"testing"

	"github.com/gridrush/rushhour/puzzle/engine"
)

// Test layouts. blockedBoard needs the vertical blocker A moved up once,
// then four target slides: minimum five moves at cost 2+4*2=10.
// twoVehicleBoard is the same shape with the blocker further out: the
// cheapest plan lifts A one cell (cost 2) and slides the target four times
// (cost 8). starterBoard is a fuller layout with two vehicles between the
// target and the exit. walledBoard has the exit column jammed by two
// immobile trucks, so no solution exists.
const (
	blockedBoard = `......
..A...
XXA...
..B...
..BCCC
......`

	twoVehicleBoard = `......
....A.
XX..A.
......
......
......`

	starterBoard = `AA...O
P..Q.O
PXXQ.O
P..Q..
B...CC
B.RR..`

	solvedBoard = `....XX
......`

	walledBoard = `XX...A
.....A
.....A
.....B
.....B
.....B`
)

func mustParse(t *testing.T, name, text string) *engine.Board {
	t.Helper()
	b, err := engine.ParseBoard(name, text)
	if err != nil {
		t.Fatalf("Failed to parse board %s: %v", name, err)
	}
	return b
}

func mustSolver(t *testing.T, strategy Strategy) Solver {
	t.Helper()
	s, err := New(strategy)
	if err != nil {
		t.Fatalf("Failed to create %s solver: %v", strategy, err)
	}
	return s
}

// checkPath verifies the common path contract: the path starts at the
// initial state, ends at a goal state, and every consecutive pair differs by
// exactly one vehicle moved exactly one cell.
func checkPath(t *testing.T, b *engine.Board, initial *engine.State, result *Result) {
	t.Helper()
	if !result.Found {
		t.Fatal("Expected a solution")
	}
	if len(result.Path) == 0 {
		t.Fatal("Expected a non-empty path")
	}
	if !result.Path[0].Equal(initial) {
		t.Error("Path must start at the initial state")
	}
	if !result.Path[len(result.Path)-1].IsGoal(b) {
		t.Error("Path must end at a goal state")
	}
	if result.Moves != len(result.Path)-1 {
		t.Errorf("Moves %d does not match path length %d", result.Moves, len(result.Path))
	}
	for i := 1; i < len(result.Path); i++ {
		moved, ok := result.Path[i].MovedFrom(result.Path[i-1])
		if !ok {
			t.Fatalf("Path step %d does not change the state", i)
		}
		prev, _ := result.Path[i-1].Vehicle(moved.ID)
		if engine.Direction(prev, moved) == "" {
			t.Fatalf("Path step %d moved %q by more than one cell", i, moved.ID)
		}
	}
	if got := PathCost(result.Path); got != result.Cost {
		t.Errorf("Result cost %d does not match path cost %d", result.Cost, got)
	}
}

func TestNew(t *testing.T) {
	for _, strategy := range Strategies() {
		s, err := New(strategy)
		if err != nil {
			t.Errorf("New(%s) failed: %v", strategy, err)
			continue
		}
		if s.Strategy() != strategy {
			t.Errorf("Expected strategy %s, got %s", strategy, s.Strategy())
		}
	}

	if _, err := New(Strategy("dijkstra")); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}
}

func TestParseStrategy(t *testing.T) {
	cases := []struct {
		in   string
		want Strategy
	}{
		{"bfs", BFS},
		{"BFS", BFS},
		{" dfs ", DFS},
		{"ucs", UCS},
		{"astar", AStar},
		{"A*", AStar},
		{"a-star", AStar},
	}
	for _, tc := range cases {
		got, err := ParseStrategy(tc.in)
		if err != nil {
			t.Errorf("ParseStrategy(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStrategy(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}

	if _, err := ParseStrategy("greedy"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("Expected ErrUnknownStrategy, got %v", err)
	}
}

func TestSolve_BlockedBoard(t *testing.T) {
	b := mustParse(t, "blocked", blockedBoard)

	for _, strategy := range Strategies() {
		t.Run(string(strategy), func(t *testing.T) {
			s := mustSolver(t, strategy)
			result := s.Solve(b, b.InitialState())
			checkPath(t, b, b.InitialState(), result)

			stats := s.Stats()
			if stats.Expanded <= 0 || stats.Generated <= 0 {
				t.Errorf("Expected positive counters, got %+v", stats)
			}
			if stats.Generated < stats.Expanded {
				t.Errorf("Generated %d below expanded %d", stats.Generated, stats.Expanded)
			}
		})
	}

	t.Run("optimality", func(t *testing.T) {
		bfs := mustSolver(t, BFS).Solve(b, b.InitialState())
		ucs := mustSolver(t, UCS).Solve(b, b.InitialState())
		astar := mustSolver(t, AStar).Solve(b, b.InitialState())

		if bfs.Moves != 5 {
			t.Errorf("Expected BFS to need 5 moves, got %d", bfs.Moves)
		}
		if ucs.Cost != 10 || ucs.Moves != 5 {
			t.Errorf("Expected UCS cost 10 in 5 moves, got cost %d in %d", ucs.Cost, ucs.Moves)
		}
		if astar.Cost != 10 {
			t.Errorf("Expected A* cost 10, got %d", astar.Cost)
		}
	})
}

// TestSolve_TwoVehicleCost pins down the cost arithmetic: lifting the
// length-2 blocker once costs 2, each of the four target slides costs 2,
// so the optimal total is 10 across exactly 5 moves.
func TestSolve_TwoVehicleCost(t *testing.T) {
	b := mustParse(t, "two-vehicle", twoVehicleBoard)

	for _, strategy := range []Strategy{UCS, AStar} {
		t.Run(string(strategy), func(t *testing.T) {
			s := mustSolver(t, strategy)
			result := s.Solve(b, b.InitialState())
			checkPath(t, b, b.InitialState(), result)
			if result.Cost != 10 {
				t.Errorf("Expected optimal cost 10, got %d", result.Cost)
			}
			if result.Moves != 5 {
				t.Errorf("Expected 5 moves, got %d", result.Moves)
			}
		})
	}

	for _, strategy := range []Strategy{BFS, DFS} {
		t.Run(string(strategy), func(t *testing.T) {
			s := mustSolver(t, strategy)
			result := s.Solve(b, b.InitialState())
			checkPath(t, b, b.InitialState(), result)
			if result.Moves < 5 {
				t.Errorf("No path can beat 5 moves, got %d", result.Moves)
			}
		})
	}
}

func TestSolve_StarterBoard(t *testing.T) {
	b := mustParse(t, "starter", starterBoard)

	results := make(map[Strategy]*Result)
	for _, strategy := range Strategies() {
		s := mustSolver(t, strategy)
		result := s.Solve(b, b.InitialState())
		checkPath(t, b, b.InitialState(), result)
		results[strategy] = result
	}

	// BFS minimizes moves; no other strategy can return fewer.
	for _, strategy := range []Strategy{DFS, UCS, AStar} {
		if results[strategy].Moves < results[BFS].Moves {
			t.Errorf("%s returned %d moves, below the BFS minimum %d",
				strategy, results[strategy].Moves, results[BFS].Moves)
		}
	}

	// UCS and A* agree on the minimum cost; no other path can undercut it.
	if results[UCS].Cost != results[AStar].Cost {
		t.Errorf("UCS cost %d disagrees with A* cost %d", results[UCS].Cost, results[AStar].Cost)
	}
	for _, strategy := range []Strategy{BFS, DFS} {
		if results[strategy].Cost < results[UCS].Cost {
			t.Errorf("%s path cost %d undercuts the UCS minimum %d",
				strategy, results[strategy].Cost, results[UCS].Cost)
		}
	}
}

func TestSolve_AlreadySolved(t *testing.T) {
	b := mustParse(t, "solved", solvedBoard)

	for _, strategy := range Strategies() {
		t.Run(string(strategy), func(t *testing.T) {
			s := mustSolver(t, strategy)
			result := s.Solve(b, b.InitialState())
			if !result.Found {
				t.Fatal("Expected a solution")
			}
			if len(result.Path) != 1 {
				t.Errorf("Expected a single-state path, got %d states", len(result.Path))
			}
			if result.Cost != 0 || result.Moves != 0 {
				t.Errorf("Expected zero cost and moves, got cost %d moves %d", result.Cost, result.Moves)
			}
			if stats := s.Stats(); stats.Expanded != 0 || stats.Generated != 0 {
				t.Errorf("Expected zero counters for a solved root, got %+v", stats)
			}
		})
	}
}

func TestSolve_Unsolvable(t *testing.T) {
	b := mustParse(t, "walled", walledBoard)

	for _, strategy := range Strategies() {
		t.Run(string(strategy), func(t *testing.T) {
			s := mustSolver(t, strategy)
			result := s.Solve(b, b.InitialState())
			if result.Found {
				t.Fatal("Expected no solution")
			}
			if result.Path != nil {
				t.Errorf("Expected nil path, got %d states", len(result.Path))
			}

			// The target shuttles between four positions and nothing else
			// moves, so every strategy exhausts the same four states and
			// produces the same six successors.
			stats := s.Stats()
			if stats.Expanded != 4 {
				t.Errorf("Expected 4 expansions, got %d", stats.Expanded)
			}
			if stats.Generated != 6 {
				t.Errorf("Expected 6 generated states, got %d", stats.Generated)
			}
		})
	}
}

// TestSolve_Deterministic re-runs each strategy on fresh inputs and expects
// byte-identical state sequences: the tie-break makes solves reproducible,
// not merely equal in length.
func TestSolve_Deterministic(t *testing.T) {
	for _, strategy := range Strategies() {
		t.Run(string(strategy), func(t *testing.T) {
			b1 := mustParse(t, "starter", starterBoard)
			b2 := mustParse(t, "starter", starterBoard)

			r1 := mustSolver(t, strategy).Solve(b1, b1.InitialState())
			r2 := mustSolver(t, strategy).Solve(b2, b2.InitialState())

			if r1.Moves != r2.Moves || r1.Cost != r2.Cost {
				t.Fatalf("Repeated solves disagree: %d/%d vs %d/%d moves/cost",
					r1.Moves, r1.Cost, r2.Moves, r2.Cost)
			}
			for i := range r1.Path {
				if r1.Path[i].Key() != r2.Path[i].Key() {
					t.Fatalf("Paths diverge at step %d", i)
				}
			}
		})
	}
}

func TestSolver_Reuse(t *testing.T) {
	b := mustParse(t, "blocked", blockedBoard)
	s := mustSolver(t, BFS)

	first := s.Solve(b, b.InitialState())
	firstStats := s.Stats()
	second := s.Solve(b, b.InitialState())

	if first.Moves != second.Moves {
		t.Errorf("Reused solver changed its answer: %d vs %d moves", first.Moves, second.Moves)
	}
	if s.Stats() != firstStats {
		t.Errorf("Counters must reset per solve: %+v vs %+v", firstStats, s.Stats())
	}
}
