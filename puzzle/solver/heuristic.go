package solver

import "github.com/gridrush/rushhour/puzzle/engine"

// blockingVehicles counts the distinct vehicles occupying cells between the
// target vehicle's trailing edge and the exit on the target's row. Each such
// vehicle needs at least one move before the target can pass, which makes
// the count a cheap guide for A*. It is a loose one: blockers that must move
// several times are counted once, and the target's own remaining slides are
// not counted at all.
func blockingVehicles(b *engine.Board, s *engine.State) int {
	target, ok := s.Vehicle(b.Target)
	if !ok {
		panic("state is missing the target vehicle")
	}
	row := s.Grid(b)[target.Y]

	var seen [256]bool
	count := 0
	for x := target.Tail().X + 1; x < b.Width; x++ {
		id := row[x]
		if id == engine.Empty || seen[id] {
			continue
		}
		seen[id] = true
		count++
	}
	return count
}
