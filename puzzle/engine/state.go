package engine

import (
	"fmt"
	"strings"
)

// State is an immutable snapshot of every vehicle's placement. States are
// created from a Board or as successors of another State and are never
// mutated afterwards; a move copies the whole vehicle mapping. Two states
// are equal iff their mappings are equal, independent of map iteration
// order.
type State struct {
	vehicles map[byte]Vehicle
	key      string
}

// NewState builds a state for the given board from an explicit vehicle
// mapping. It validates what successor generation guarantees by
// construction: the mapping covers exactly the board's vehicle ids, each
// vehicle keeps its id, orientation and length, every cell is inside the
// grid, and no two vehicles overlap.
func NewState(b *Board, vehicles map[byte]Vehicle) (*State, error) {
	if len(vehicles) != len(b.order) {
		return nil, fmt.Errorf("state validation: expected %d vehicles, got %d", len(b.order), len(vehicles))
	}
	occupied := make(map[Position]byte, len(vehicles)*3)
	for _, id := range b.order {
		v, ok := vehicles[id]
		if !ok {
			return nil, fmt.Errorf("state validation: vehicle %q is missing", id)
		}
		initial := b.vehicles[id]
		if v.ID != id || v.Orientation != initial.Orientation || v.Length != initial.Length {
			return nil, fmt.Errorf("state validation: vehicle %q changed shape (%s -> %s)", id, initial, v)
		}
		for _, c := range v.Cells() {
			if c.X < 0 || c.Y < 0 || c.X >= b.Width || c.Y >= b.Height {
				return nil, fmt.Errorf("state validation: vehicle %q occupies (%d,%d) outside the %dx%d grid", id, c.X, c.Y, b.Width, b.Height)
			}
			if other, taken := occupied[c]; taken {
				return nil, fmt.Errorf("state validation: vehicles %q and %q overlap at (%d,%d)", other, id, c.X, c.Y)
			}
			occupied[c] = id
		}
	}
	copied := make(map[byte]Vehicle, len(vehicles))
	for id, v := range vehicles {
		copied[id] = v
	}
	return newState(b, copied), nil
}

// newState wraps a mapping that is already known to be legal. It takes
// ownership of the map; callers must not keep mutating references to it.
func newState(b *Board, vehicles map[byte]Vehicle) *State {
	return &State{vehicles: vehicles, key: stateKey(b, vehicles)}
}

// stateKey serializes the placements in the board's stable vehicle order,
// which makes the key independent of map iteration order. Equal states
// always produce equal keys, so the key doubles as the hash for visited sets
// and cost maps.
func stateKey(b *Board, vehicles map[byte]Vehicle) string {
	buf := make([]byte, 0, len(b.order)*5)
	for _, id := range b.order {
		v, ok := vehicles[id]
		if !ok {
			panic(fmt.Sprintf("state is missing vehicle %q known to the board", id))
		}
		orient := byte('h')
		if v.Orientation == Vertical {
			orient = 'v'
		}
		buf = append(buf, id, orient, byte(v.X), byte(v.Y), byte(v.Length))
	}
	return string(buf)
}

// Key returns the state's canonical serialization, used as the dedup key
// during search.
func (s *State) Key() string { return s.key }

// Equal reports whether both states place every vehicle identically.
func (s *State) Equal(other *State) bool {
	if other == nil || len(s.vehicles) != len(other.vehicles) {
		return false
	}
	for id, v := range s.vehicles {
		if ov, ok := other.vehicles[id]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Vehicle returns the placement of the vehicle with the given id in this
// state.
func (s *State) Vehicle(id byte) (Vehicle, bool) {
	v, ok := s.vehicles[id]
	return v, ok
}

// Grid builds the occupancy grid for the state: grid[y][x] holds the id of
// the vehicle covering that cell, or Empty. It panics on an out-of-bounds or
// overlapping vehicle, which would mean a successor was produced illegally.
func (s *State) Grid(b *Board) [][]byte {
	grid := make([][]byte, b.Height)
	for y := range grid {
		row := make([]byte, b.Width)
		for x := range row {
			row[x] = Empty
		}
		grid[y] = row
	}
	for _, id := range b.order {
		v, ok := s.vehicles[id]
		if !ok {
			panic(fmt.Sprintf("state is missing vehicle %q known to the board", id))
		}
		for _, c := range v.Cells() {
			if c.X < 0 || c.Y < 0 || c.X >= b.Width || c.Y >= b.Height {
				panic(fmt.Sprintf("vehicle %q occupies (%d,%d) outside the %dx%d grid", id, c.X, c.Y, b.Width, b.Height))
			}
			if grid[c.Y][c.X] != Empty {
				panic(fmt.Sprintf("vehicles %q and %q overlap at (%d,%d)", grid[c.Y][c.X], id, c.X, c.Y))
			}
			grid[c.Y][c.X] = id
		}
	}
	return grid
}

// Successors generates every state reachable by sliding one vehicle one
// cell. Vehicles are considered in the board's stable order; for each, the
// positive axis direction (right or down) is probed before the negative one
// (left or up). A slide of several cells shows up as a chain of one-cell
// successors during search, never as a single jump. The receiver is not
// mutated.
func (s *State) Successors(b *Board) []*State {
	grid := s.Grid(b)
	successors := make([]*State, 0, len(b.order))
	for _, id := range b.order {
		v := s.vehicles[id]
		for _, delta := range [2]int{1, -1} {
			var entered Position
			if v.Orientation == Horizontal {
				entered = Position{X: v.X - 1, Y: v.Y}
				if delta == 1 {
					entered = Position{X: v.X + v.Length, Y: v.Y}
				}
			} else {
				entered = Position{X: v.X, Y: v.Y - 1}
				if delta == 1 {
					entered = Position{X: v.X, Y: v.Y + v.Length}
				}
			}
			if entered.X < 0 || entered.Y < 0 || entered.X >= b.Width || entered.Y >= b.Height {
				continue
			}
			if grid[entered.Y][entered.X] != Empty {
				continue
			}
			next := make(map[byte]Vehicle, len(s.vehicles))
			for vid, vv := range s.vehicles {
				next[vid] = vv
			}
			next[id] = v.shifted(delta)
			successors = append(successors, newState(b, next))
		}
	}
	return successors
}

// IsGoal reports whether the target vehicle's trailing cell sits on the
// board's exit cell.
func (s *State) IsGoal(b *Board) bool {
	v, ok := s.vehicles[b.Target]
	if !ok {
		panic(fmt.Sprintf("state is missing target vehicle %q", b.Target))
	}
	tail := v.Tail()
	return tail.X == b.Goal.X && tail.Y == b.Goal.Y
}

// MovedFrom returns the vehicle whose placement differs between prev and s.
// It reports false when the states are identical and panics when more than
// one vehicle moved, since a legal transition moves exactly one.
func (s *State) MovedFrom(prev *State) (Vehicle, bool) {
	var moved Vehicle
	count := 0
	for id, v := range s.vehicles {
		if pv, ok := prev.vehicles[id]; !ok || pv != v {
			moved = v
			count++
		}
	}
	switch count {
	case 0:
		return Vehicle{}, false
	case 1:
		return moved, true
	default:
		panic(fmt.Sprintf("%d vehicles moved in a single transition", count))
	}
}

// Lines renders the state as board text rows.
func (s *State) Lines(b *Board) []string {
	grid := s.Grid(b)
	lines := make([]string, len(grid))
	for y, row := range grid {
		lines[y] = string(row)
	}
	return lines
}

// Render renders the state as board text, one row per line.
func (s *State) Render(b *Board) string {
	return strings.Join(s.Lines(b), "\n")
}
