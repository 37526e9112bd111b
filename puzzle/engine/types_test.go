package engine

import "testing"

func TestVehicle_Cells(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		v := Vehicle{ID: 'A', Orientation: Horizontal, X: 1, Y: 2, Length: 3}
		cells := v.Cells()
		want := []Position{{X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}}
		if len(cells) != len(want) {
			t.Fatalf("Expected %d cells, got %d", len(want), len(cells))
		}
		for i, c := range cells {
			if c != want[i] {
				t.Errorf("Cell %d: expected %v, got %v", i, want[i], c)
			}
		}
	})

	t.Run("vertical", func(t *testing.T) {
		v := Vehicle{ID: 'B', Orientation: Vertical, X: 4, Y: 0, Length: 2}
		cells := v.Cells()
		if len(cells) != 2 {
			t.Fatalf("Expected 2 cells, got %d", len(cells))
		}
		if cells[0] != (Position{X: 4, Y: 0}) || cells[1] != (Position{X: 4, Y: 1}) {
			t.Errorf("Unexpected cells: %v", cells)
		}
	})

	t.Run("single cell", func(t *testing.T) {
		v := Vehicle{ID: 'C', Orientation: Horizontal, X: 5, Y: 5, Length: 1}
		cells := v.Cells()
		if len(cells) != 1 || cells[0] != (Position{X: 5, Y: 5}) {
			t.Errorf("Unexpected cells: %v", cells)
		}
	})
}

func TestVehicle_Tail(t *testing.T) {
	h := Vehicle{ID: 'A', Orientation: Horizontal, X: 1, Y: 2, Length: 3}
	if tail := h.Tail(); tail != (Position{X: 3, Y: 2}) {
		t.Errorf("Expected tail (3,2), got (%d,%d)", tail.X, tail.Y)
	}

	v := Vehicle{ID: 'B', Orientation: Vertical, X: 4, Y: 1, Length: 2}
	if tail := v.Tail(); tail != (Position{X: 4, Y: 2}) {
		t.Errorf("Expected tail (4,2), got (%d,%d)", tail.X, tail.Y)
	}
}

func TestVehicle_Equality(t *testing.T) {
	a := Vehicle{ID: 'A', Orientation: Horizontal, X: 1, Y: 2, Length: 2}
	b := Vehicle{ID: 'A', Orientation: Horizontal, X: 1, Y: 2, Length: 2}
	if a != b {
		t.Error("Expected identical vehicles to be equal")
	}

	moved := a.shifted(1)
	if a == moved {
		t.Error("Expected shifted vehicle to differ from the original")
	}
	if a.X != 1 {
		t.Error("shifted must not mutate the receiver")
	}
	if moved.X != 2 || moved.Y != 2 {
		t.Errorf("Expected shifted anchor (2,2), got (%d,%d)", moved.X, moved.Y)
	}
}

func TestDirection(t *testing.T) {
	base := Vehicle{ID: 'A', Orientation: Horizontal, X: 2, Y: 2, Length: 2}

	cases := []struct {
		name string
		to   Vehicle
		want string
	}{
		{"right", base.shifted(1), "right"},
		{"left", base.shifted(-1), "left"},
		{"no move", base, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Direction(base, tc.to); got != tc.want {
				t.Errorf("Expected direction %q, got %q", tc.want, got)
			}
		})
	}

	vert := Vehicle{ID: 'B', Orientation: Vertical, X: 3, Y: 1, Length: 3}
	if got := Direction(vert, vert.shifted(1)); got != "down" {
		t.Errorf("Expected direction down, got %q", got)
	}
	if got := Direction(vert, vert.shifted(-1)); got != "up" {
		t.Errorf("Expected direction up, got %q", got)
	}

	other := Vehicle{ID: 'C', Orientation: Vertical, X: 3, Y: 2, Length: 3}
	if got := Direction(vert, other); got != "" {
		t.Errorf("Expected no direction across different vehicles, got %q", got)
	}
}

func TestVehicle_String(t *testing.T) {
	v := Vehicle{ID: 'X', Orientation: Horizontal, X: 0, Y: 2, Length: 2}
	if got := v.String(); got != "X h(0,2)x2" {
		t.Errorf("Unexpected string: %q", got)
	}
}
