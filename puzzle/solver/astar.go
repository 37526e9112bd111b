package solver

import (
	"container/heap"

	"github.com/gridrush/rushhour/puzzle/engine"
)

// astarSolver runs the uniform-cost discipline with the frontier ordered by
// accumulated cost plus the blocking-vehicles estimate of the successor.
// Tie handling and re-pushes match UCS exactly; only the priority differs.
type astarSolver struct {
	stats Stats
	seq   uint64
}

func (s *astarSolver) Strategy() Strategy { return AStar }

func (s *astarSolver) Stats() Stats { return s.stats }

func (s *astarSolver) Solve(b *engine.Board, initial *engine.State) *Result {
	s.stats = Stats{}
	s.seq = 0

	frontier := &minQueue{}
	heap.Init(frontier)
	heap.Push(frontier, &node{state: initial, priority: blockingVehicles(b, initial)})
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
				priority: cost + blockingVehicles(b, succ),
				seq:      s.seq,
			})
		}
	}

	return noSolution()
}
