package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Classic puzzle grids are six by six.
const (
	DefaultWidth  = 6
	DefaultHeight = 6
)

// MalformedBoardError reports an invalid board description: broken vehicle
// geometry, an unusable character, or a missing or vertical target vehicle.
// An unsolvable puzzle is not malformed; the loader only judges shape.
type MalformedBoardError struct {
	Source string
	Reason string
}

func (e *MalformedBoardError) Error() string {
	return fmt.Sprintf("malformed board %s: %s", e.Source, e.Reason)
}

func malformedf(source, format string, args ...interface{}) error {
	return &MalformedBoardError{Source: source, Reason: fmt.Sprintf(format, args...)}
}

// Board is the static puzzle layout: grid dimensions, the initial vehicle
// placements in a stable order, and the exit cell derived from the target
// vehicle's row. Boards are immutable after construction and safe to share
// across concurrent solves.
type Board struct {
	Name   string
	Width  int
	Height int
	Target byte
	Goal   Position

	vehicles map[byte]Vehicle
	order    []byte
}

// ParseBoard parses the plain-text grid format: one line per row, Empty
// ('.') as filler, any other printable ASCII character a vehicle id whose
// cells must form one contiguous horizontal or vertical run. Lines are
// right-trimmed and padded or truncated to the board width; rows beyond the
// board height are ignored. The target vehicle must be present and
// horizontal; the exit is the rightmost column of its row.
func ParseBoard(name, text string) (*Board, error) {
	b := &Board{
		Name:     name,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Target:   TargetID,
		vehicles: make(map[byte]Vehicle),
	}

	lines := strings.Split(text, "\n")
	if len(lines) > b.Height {
		lines = lines[:b.Height]
	}

	cells := make(map[byte][]Position)
	for y, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if len(line) > b.Width {
			line = line[:b.Width]
		}
		for x := 0; x < len(line); x++ {
			ch := line[x]
			if ch == Empty {
				continue
			}
			if ch <= ' ' || ch >= 0x7f {
				return nil, malformedf(name, "invalid character %q at (%d,%d)", ch, x, y)
			}
			if len(cells[ch]) == 0 {
				b.order = append(b.order, ch)
			}
			cells[ch] = append(cells[ch], Position{X: x, Y: y})
		}
	}

	for _, id := range b.order {
		v, err := vehicleFromCells(name, id, cells[id])
		if err != nil {
			return nil, err
		}
		b.vehicles[id] = v
	}

	target, ok := b.vehicles[b.Target]
	if !ok {
		return nil, malformedf(name, "board has no target vehicle %q", TargetID)
	}
	if target.Orientation != Horizontal {
		return nil, malformedf(name, "target vehicle %q must be horizontal to reach the right edge", TargetID)
	}
	b.Goal = Position{X: b.Width - 1, Y: target.Y}

	return b, nil
}

// LoadBoardFile reads and parses a single board text file. The board name is
// the file's base name without its extension.
func LoadBoardFile(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read board file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseBoard(name, string(data))
}

// vehicleFromCells assembles one vehicle from the grid cells carrying its
// id, in discovery order, validating that they form a single contiguous
// horizontal or vertical run. A lone cell is treated as a horizontal vehicle
// of length one.
func vehicleFromCells(source string, id byte, cells []Position) (Vehicle, error) {
	first := cells[0]
	if len(cells) == 1 {
		return Vehicle{ID: id, Orientation: Horizontal, X: first.X, Y: first.Y, Length: 1}, nil
	}

	horizontal := true
	vertical := true
	for _, c := range cells[1:] {
		if c.Y != first.Y {
			horizontal = false
		}
		if c.X != first.X {
			vertical = false
		}
	}

	switch {
	case horizontal:
		// Row cells are discovered left to right, so they arrive x-sorted.
		for i, c := range cells {
			if c.X != first.X+i {
				return Vehicle{}, malformedf(source, "vehicle %q cells are not contiguous on row %d", id, first.Y)
			}
		}
		return Vehicle{ID: id, Orientation: Horizontal, X: first.X, Y: first.Y, Length: len(cells)}, nil
	case vertical:
		for i, c := range cells {
			if c.Y != first.Y+i {
				return Vehicle{}, malformedf(source, "vehicle %q cells are not contiguous on column %d", id, first.X)
			}
		}
		return Vehicle{ID: id, Orientation: Vertical, X: first.X, Y: first.Y, Length: len(cells)}, nil
	default:
		return Vehicle{}, malformedf(source, "vehicle %q cells are not collinear", id)
	}
}

// Vehicle returns the initial placement of the vehicle with the given id.
func (b *Board) Vehicle(id byte) (Vehicle, bool) {
	v, ok := b.vehicles[id]
	return v, ok
}

// Vehicles returns the initial placements in the board's stable order: the
// order each vehicle's first cell was discovered scanning the grid top to
// bottom, left to right.
func (b *Board) Vehicles() []Vehicle {
	out := make([]Vehicle, len(b.order))
	for i, id := range b.order {
		out[i] = b.vehicles[id]
	}
	return out
}

// IDs returns the vehicle ids in the board's stable order.
func (b *Board) IDs() []byte {
	return append([]byte(nil), b.order...)
}

// NumVehicles returns how many vehicles the board holds.
func (b *Board) NumVehicles() int { return len(b.order) }

// InitialState returns the board's starting configuration as a State.
func (b *Board) InitialState() *State {
	vehicles := make(map[byte]Vehicle, len(b.vehicles))
	for id, v := range b.vehicles {
		vehicles[id] = v
	}
	return newState(b, vehicles)
}
