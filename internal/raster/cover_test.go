package raster

import (
	"testing"

	"github.com/paulmach/orb"
	geos "github.com/twpayne/go-geos"
)

func maskedCount(mask []bool) int {
	n := 0
	for _, covered := range mask {
		if covered {
			n++
		}
	}
	return n
}

func covered(win Window, mask []bool, col, row int) bool {
	c := col - win.Col
	r := row - win.Row
	if c < 0 || c >= win.Cols || r < 0 || r >= win.Rows {
		return false
	}
	return mask[r*win.Cols+c]
}

func TestCover_PolygonInterior(t *testing.T) {
	gctx := geos.NewContext()
	g := northUpGrid()

	// Square spanning x in [2,5], y in [2,5]. With 1-unit cells it fully
	// covers a 3x3 block and touches the boundary cells around it.
	poly := orb.Polygon{{{2, 2}, {5, 2}, {5, 5}, {2, 5}, {2, 2}}}

	win, mask, err := Cover(gctx, g, poly)
	if err != nil {
		t.Fatalf("Cover() error = %v", err)
	}
	if win.Size() == 0 {
		t.Fatal("Cover() returned empty window")
	}

	// y in [2,5] maps to rows 5..7 (row = 10 - y - 1 for cell interiors).
	for row := 5; row <= 7; row++ {
		for col := 2; col <= 4; col++ {
			if !covered(win, mask, col, row) {
				t.Errorf("cell (%d,%d) not covered, want covered", col, row)
			}
		}
	}
}

func TestCover_BoundaryTouchIncluded(t *testing.T) {
	gctx := geos.NewContext()
	g := northUpGrid()

	// The square's right edge lies exactly on the x=5 cell boundary, so
	// cells in column 5 touch the zone and count under any-overlap.
	poly := orb.Polygon{{{2, 2}, {5, 2}, {5, 5}, {2, 5}, {2, 2}}}

	win, mask, err := Cover(gctx, g, poly)
	if err != nil {
		t.Fatalf("Cover() error = %v", err)
	}
	if !covered(win, mask, 5, 6) {
		t.Error("cell (5,6) touching the zone edge not covered, want covered")
	}
}

func TestCover_Point(t *testing.T) {
	gctx := geos.NewContext()
	g := northUpGrid()

	win, mask, err := Cover(gctx, g, orb.Point{3.5, 3.5})
	if err != nil {
		t.Fatalf("Cover() error = %v", err)
	}
	// x=3.5 is column 3; y=3.5 is row 6.
	if !covered(win, mask, 3, 6) {
		t.Error("cell (3,6) containing the point not covered")
	}
	if maskedCount(mask) != 1 {
		t.Errorf("covered cells = %d, want 1", maskedCount(mask))
	}
}

func TestCover_LineString(t *testing.T) {
	gctx := geos.NewContext()
	g := northUpGrid()

	// Horizontal line through the middle of row 6.
	line := orb.LineString{{1.5, 3.5}, {4.5, 3.5}}

	win, mask, err := Cover(gctx, g, line)
	if err != nil {
		t.Fatalf("Cover() error = %v", err)
	}
	for col := 1; col <= 4; col++ {
		if !covered(win, mask, col, 6) {
			t.Errorf("cell (%d,6) under the line not covered", col)
		}
	}
}

func TestCover_OutsideGrid(t *testing.T) {
	gctx := geos.NewContext()
	g := northUpGrid()

	poly := orb.Polygon{{{100, 100}, {105, 100}, {105, 105}, {100, 105}, {100, 100}}}

	win, mask, err := Cover(gctx, g, poly)
	if err != nil {
		t.Fatalf("Cover() error = %v", err)
	}
	if win.Size() != 0 || mask != nil {
		t.Errorf("Cover() = (%+v, %v), want empty window and nil mask", win, mask)
	}
}

func TestCover_InvalidGrid(t *testing.T) {
	gctx := geos.NewContext()
	g := Grid{Transform: [6]float64{0, 1, 0, 10, 0, -1}}

	_, _, err := Cover(gctx, g, orb.Point{1, 1})
	if err == nil {
		t.Fatal("Cover() expected error for empty grid")
	}
}

func TestCover_NilGeometry(t *testing.T) {
	gctx := geos.NewContext()

	_, _, err := Cover(gctx, northUpGrid(), nil)
	if err == nil {
		t.Fatal("Cover() expected error for nil geometry")
	}
}
