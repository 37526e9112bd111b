package engine

import "fmt"

// Orientation is the axis a vehicle slides along.
type Orientation string

const (
	// Horizontal vehicles occupy one row and slide left or right.
	Horizontal Orientation = "h"
	// Vertical vehicles occupy one column and slide up or down.
	Vertical Orientation = "v"
)

// Empty marks an unoccupied cell, both in board text files and in the
// occupancy grids built during search.
const Empty byte = '.'

// TargetID is the reserved id of the vehicle that must reach the exit.
const TargetID byte = 'X'

// Position is a grid coordinate. X is the column, Y is the row; (0,0) is the
// top-left cell and Y grows downward.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vehicle is the placement of a single vehicle: its id, the axis it slides
// along, the anchor (its top-left-most occupied cell) and its length in
// cells. Vehicles are values with structural equality; moving one produces a
// new Vehicle, never an in-place update.
type Vehicle struct {
	ID          byte
	Orientation Orientation
	X           int
	Y           int
	Length      int
}

// Cells returns every position the vehicle occupies, anchor first.
func (v Vehicle) Cells() []Position {
	cells := make([]Position, v.Length)
	for i := 0; i < v.Length; i++ {
		if v.Orientation == Horizontal {
			cells[i] = Position{X: v.X + i, Y: v.Y}
		} else {
			cells[i] = Position{X: v.X, Y: v.Y + i}
		}
	}
	return cells
}

// Tail returns the vehicle's trailing cell, the occupied cell furthest from
// the anchor along its orientation.
func (v Vehicle) Tail() Position {
	if v.Orientation == Horizontal {
		return Position{X: v.X + v.Length - 1, Y: v.Y}
	}
	return Position{X: v.X, Y: v.Y + v.Length - 1}
}

// shifted returns a copy of the vehicle moved delta cells along its
// orientation axis.
func (v Vehicle) shifted(delta int) Vehicle {
	if v.Orientation == Horizontal {
		v.X += delta
	} else {
		v.Y += delta
	}
	return v
}

// String renders the vehicle as e.g. "A h(0,2)x2" for logs and error text.
func (v Vehicle) String() string {
	return fmt.Sprintf("%c %s(%d,%d)x%d", v.ID, v.Orientation, v.X, v.Y, v.Length)
}

// Direction names the one-cell move between two placements of the same
// vehicle: "left", "right", "up" or "down". It returns "" when the
// placements are identical or not one cell apart.
func Direction(from, to Vehicle) string {
	if from.ID != to.ID || from.Orientation != to.Orientation || from.Length != to.Length {
		return ""
	}
	switch {
	case to.X == from.X+1 && to.Y == from.Y:
		return "right"
	case to.X == from.X-1 && to.Y == from.Y:
		return "left"
	case to.Y == from.Y+1 && to.X == from.X:
		return "down"
	case to.Y == from.Y-1 && to.X == from.X:
		return "up"
	}
	return ""
}
