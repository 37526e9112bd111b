package solver

import "github.com/gridrush/rushhour/puzzle/engine"

// dfsSolver follows the same visited-at-insertion, goal-on-generation
// discipline as BFS but pops the frontier last in, first out, diving deep
// along the most recently generated branch. Returned paths are legal but
// carry no length guarantee.
type dfsSolver struct {
	stats Stats
}

func (s *dfsSolver) Strategy() Strategy { return DFS }

func (s *dfsSolver) Stats() Stats { return s.stats }

func (s *dfsSolver) Solve(b *engine.Board, initial *engine.State) *Result {
	s.stats = Stats{}

	if initial.IsGoal(b) {
		return solved(&node{state: initial})
	}

	frontier := &lifo{}
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
