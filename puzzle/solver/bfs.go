package solver

import "github.com/gridrush/rushhour/puzzle/engine"

// bfsSolver expands states in generation order, which makes the first goal
// it reaches a fewest-moves goal. States are marked visited when they enter
// the frontier and the goal test runs on each freshly generated successor,
// so goal children return immediately without being enqueued.
type bfsSolver struct {
	stats Stats
}

func (s *bfsSolver) Strategy() Strategy { return BFS }

func (s *bfsSolver) Stats() Stats { return s.stats }

func (s *bfsSolver) Solve(b *engine.Board, initial *engine.State) *Result {
	s.stats = Stats{}

	// The loop only ever tests successors, so a root that already satisfies
	// the goal has to be answered here.
	if initial.IsGoal(b) {
		return solved(&node{state: initial})
	}

	frontier := &fifo{}
	frontier.push(&node{state: initial})
	visited := map[string]bool{initial.Key(): true}

	for !frontier.empty() {
		cur := frontier.pop()
		s.stats.Expanded++

		for _, succ := range cur.state.Successors(b) {
			s.stats.Generated++
			if visited[succ.Key()] {
				continue
			}
			child := &node{state: succ, parent: cur, cost: cur.cost + 1}
			if succ.IsGoal(b) {
				return solved(child)
			}
			visited[succ.Key()] = true
			frontier.push(child)
		}
	}

	return noSolution()
}
