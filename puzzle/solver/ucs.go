package solver

import (
	"container/heap"

	"github.com/gridrush/rushhour/puzzle/engine"
)

// ucsSolver expands the cheapest accumulated path cost first, one step
// costing the moved vehicle's length. The goal test runs when a node leaves
// the frontier, which makes the first goal pop cost-optimal. The best map
// remembers the cheapest known cost per state; finding a cheaper route
// re-pushes the state and the superseded entry is skipped when it surfaces.
type ucsSolver struct {
	stats Stats
	seq   uint64
}

func (s *ucsSolver) Strategy() Strategy { return UCS }

func (s *ucsSolver) Stats() Stats { return s.stats }

func (s *ucsSolver) Solve(b *engine.Board, initial *engine.State) *Result {
	s.stats = Stats{}
	s.seq = 0

	frontier := &minQueue{}
	heap.Init(frontier)
	heap.Push(frontier, &node{state: initial})
	best := map[string]int{initial.Key(): 0}

	for frontier.Len() > 0 {
		cur := heap.Pop(frontier).(*node)
		if cur.state.IsGoal(b) {
			return solved(cur)
		}
		if known, ok := best[cur.state.Key()]; ok && cur.cost > known {
			continue // superseded by a cheaper push
		}
		s.stats.Expanded++

		for _, succ := range cur.state.Successors(b) {
			s.stats.Generated++
			cost := cur.cost + stepCost(cur.state, succ)
			key := succ.Key()
			if known, ok := best[key]; ok && cost >= known {
				continue
			}
			best[key] = cost
			s.seq++
			heap.Push(frontier, &node{
				state:    succ,
				parent:   cur,
				cost:     cost,
				priority: cost,
				seq:      s.seq,
			})
		}
	}

	return noSolution()
}
