// Package solver implements the four interchangeable search strategies that
// drive the Rush Hour engine: breadth-first, depth-first, uniform-cost and
// A* search.
//
// Disciplines:
//
//   - BFS and DFS mark states visited when they enter the frontier and stop
//     as soon as a goal successor is generated, so an already-solved initial
//     state is handled before the main loop.
//   - UCS and A* order the frontier by accumulated cost (plus the
//     blocking-vehicles heuristic for A*), test the goal when a node is
//     popped, and re-push a state whenever a cheaper route to it appears.
//
// One step moves one vehicle one cell and costs that vehicle's length, so
// UCS minimizes total shifted mass rather than move count. Priority ties pop
// in insertion order, which keeps repeated solves deterministic.
//
// Every solver exposes Expanded and Generated counters after Solve returns.
// An exhausted frontier yields a Result with Found=false; an unsolvable
// puzzle is a normal outcome, not an error.
//
// Usage:
//
//	s, err := solver.New(solver.AStar)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result := s.Solve(board, board.InitialState())
//	if !result.Found {
//		fmt.Println("no solution")
//		return
//	}
//	for _, state := range result.Path {
//		fmt.Println(state.Render(board))
//	}
//	fmt.Printf("cost=%d moves=%d expanded=%d\n",
//		result.Cost, result.Moves, s.Stats().Expanded)
package solver
