package solver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gridrush/rushhour/puzzle/engine"
)

// Strategy selects a search discipline.
type Strategy string

const (
	// BFS explores the frontier first in, first out and returns a path with
	// the fewest moves.
	BFS Strategy = "bfs"
	// DFS explores the frontier last in, first out; fast to a goal on some
	// boards, with no path quality guarantee.
	DFS Strategy = "dfs"
	// UCS expands the cheapest accumulated cost first and returns a
	// minimum-cost path, where one step costs the moved vehicle's length.
	UCS Strategy = "ucs"
	// AStar is UCS guided by the blocking-vehicles heuristic.
	AStar Strategy = "astar"
)

// ErrUnknownStrategy is returned by New and ParseStrategy for names outside
// the supported set.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategies lists every supported strategy in canonical order.
func Strategies() []Strategy {
	return []Strategy{BFS, DFS, UCS, AStar}
}

// ParseStrategy maps a user-supplied name to a Strategy. Matching is
// case-insensitive and accepts "a*" and "a-star" for AStar.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs":
		return BFS, nil
	case "dfs":
		return DFS, nil
	case "ucs":
		return UCS, nil
	case "astar", "a*", "a-star":
		return AStar, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Stats counts the work one Solve call performed. Expanded is the number of
// nodes removed from the frontier whose successors were generated; stale
// priority-queue entries skipped by the best-cost check do not count.
// Generated is the number of successor states produced during those
// expansions, counted before duplicate filtering. The root counts for
// neither.
type Stats struct {
	Expanded  int `json:"expanded"`
	Generated int `json:"generated"`
}

// Result is the outcome of one solve. Path holds the inclusive sequence of
// states from the initial state to a goal state and is nil when Found is
// false. Cost sums the moved vehicle's length over each step of the path;
// Moves counts the steps. A false Found is a normal negative result, not an
// error.
type Result struct {
	Path  []*engine.State
	Found bool
	Cost  int
	Moves int
}

// Solver runs one search strategy to completion on the calling goroutine.
// Solve blocks until a goal is found or the frontier is exhausted; there is
// no internal cancellation, so callers with a time budget run Solve on a
// goroutine of their own and abandon it. A Solver instance is not safe for
// concurrent use, but independent instances may solve concurrently, sharing
// the same read-only Board.
type Solver interface {
	// Strategy identifies the discipline the solver runs.
	Strategy() Strategy
	// Solve searches from the initial state on the given board.
	Solve(b *engine.Board, initial *engine.State) *Result
	// Stats reports the counters of the most recent Solve call.
	Stats() Stats
}

// New returns a fresh solver for the given strategy. Dispatch happens here,
// once; the returned solver performs no strategy checks per step.
func New(s Strategy) (Solver, error) {
	switch s {
	case BFS:
		return &bfsSolver{}, nil
	case DFS:
		return &dfsSolver{}, nil
	case UCS:
		return &ucsSolver{}, nil
	case AStar:
		return &astarSolver{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, string(s))
	}
}

// solved assembles a positive Result from a goal node.
func solved(goal *node) *Result {
	path := goal.path()
	return &Result{
		Path:  path,
		Found: true,
		Cost:  PathCost(path),
		Moves: len(path) - 1,
	}
}

// noSolution is the explicit negative outcome of an exhausted frontier.
func noSolution() *Result {
	return &Result{}
}

// PathCost sums the moved vehicle's length over each one-cell step of a
// path.
func PathCost(path []*engine.State) int {
	total := 0
	for i := 1; i < len(path); i++ {
		if v, ok := path[i].MovedFrom(path[i-1]); ok {
			total += v.Length
		}
	}
	return total
}

// stepCost returns the cost of the transition between two consecutive
// states: the moved vehicle's length. It panics when the states are
// identical, which successor generation never produces.
func stepCost(from, to *engine.State) int {
	v, ok := to.MovedFrom(from)
	if !ok {
		panic("successor state is identical to its parent")
	}
	return v.Length
}
