package raster

import "testing"

func TestGrid_LogicalWidth(t *testing.T) {
	g := FromRows([][]bool{
		make([]bool, 5),
		make([]bool, 10),
		make([]bool, 3),
	})
	if w := g.Width(); w != 10 {
		t.Errorf("Expected logical width 10, got %d", w)
	}
	if h := g.Height(); h != 3 {
		t.Errorf("Expected height 3, got %d", h)
	}
}

func TestGrid_SparseReads(t *testing.T) {
	g := FromRows([][]bool{
		{true, false},
		nil,
		{false, false, false, true},
	})

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"Set pixel", 0, 0, true},
		{"Past short row", 3, 0, false},
		{"Nil row", 0, 1, false},
		{"Long row", 3, 2, true},
		{"Below grid", 0, 5, false},
		{"Negative", -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.At(tt.x, tt.y); got != tt.want {
				t.Errorf("At(%d,%d) = %v, expected %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestGrid_SetGrowsLazily(t *testing.T) {
	g := &Grid{}
	g.Set(4, 2, true)

	if g.Height() != 3 {
		t.Fatalf("Expected height 3, got %d", g.Height())
	}
	if len(g.Rows()[0]) != 0 || len(g.Rows()[1]) != 0 {
		t.Error("Expected untouched rows to stay unallocated")
	}
	if !g.At(4, 2) {
		t.Error("Expected pixel (4,2) on")
	}

	g.Set(9, 0, false)
	if len(g.Rows()[0]) != 0 {
		t.Error("Clearing an unallocated pixel should not allocate")
	}
}

func TestGrid_FlipVertical(t *testing.T) {
	g := NewGrid(1, 3)
	g.Set(0, 0, true)
	g.FlipVertical()
	if g.At(0, 0) || !g.At(0, 2) {
		t.Errorf("Expected pixel moved to bottom row, got\n%s", g)
	}
}

func TestGrid_String(t *testing.T) {
	g := FromRows([][]bool{{true}, {false, true}})
	want := "#.\n.#\n"
	if got := g.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
