// Package raster implements the grid-side half of zonal aggregation:
// geotransform math, cell coverage for arbitrary geometries, and the
// aggregate statistics computed over covered cells.
//
// Cell inclusion follows the any-overlap (all-touched) rule: a cell is
// covered when its rectangle intersects the zone geometry, boundary touch
// included. This materially affects edge cells compared to a
// center-in-polygon rule and is relied on by the aggregation contract.
package raster

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Grid describes a raster grid in world coordinates using the GDAL
// geotransform convention:
//
//	x = T[0] + col*T[1] + row*T[2]
//	y = T[3] + col*T[4] + row*T[5]
//
// Only axis-aligned grids (T[2] == T[4] == 0) are supported.
type Grid struct {
	Transform [6]float64
	Width     int
	Height    int
}

// Window is a rectangular cell region within a grid.
type Window struct {
	Col  int
	Row  int
	Cols int
	Rows int
}

// Size returns the number of cells in the window.
func (w Window) Size() int {
	return w.Cols * w.Rows
}

// Rotated reports whether the grid carries rotation or shear terms.
func (g Grid) Rotated() bool {
	return g.Transform[2] != 0 || g.Transform[4] != 0
}

// Validate checks that the grid is usable for coverage computation.
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("raster: empty grid %dx%d", g.Width, g.Height)
	}
	if g.Transform[1] == 0 || g.Transform[5] == 0 {
		return fmt.Errorf("raster: degenerate geotransform %v", g.Transform)
	}
	if g.Rotated() {
		return fmt.Errorf("raster: rotated grids are not supported")
	}
	return nil
}

// CellBound returns the world-coordinate rectangle of one cell.
func (g Grid) CellBound(col, row int) orb.Bound {
	x0 := g.Transform[0] + float64(col)*g.Transform[1]
	y0 := g.Transform[3] + float64(row)*g.Transform[5]
	x1 := x0 + g.Transform[1]
	y1 := y0 + g.Transform[5]
	return orb.Bound{
		Min: orb.Point{math.Min(x0, x1), math.Min(y0, y1)},
		Max: orb.Point{math.Max(x0, x1), math.Max(y0, y1)},
	}
}

// CoverageWindow returns the candidate cell window for a world-coordinate
// bound, widened by one cell on every side so that boundary-touching cells
// stay candidates, then clipped to the grid. ok is false when the bound
// and the grid do not overlap at all.
func (g Grid) CoverageWindow(b orb.Bound) (win Window, ok bool) {
	c0, r0 := g.fractionalCell(b.Min[0], b.Min[1])
	c1, r1 := g.fractionalCell(b.Max[0], b.Max[1])

	colMin := int(math.Floor(math.Min(c0, c1))) - 1
	colMax := int(math.Ceil(math.Max(c0, c1))) + 1
	rowMin := int(math.Floor(math.Min(r0, r1))) - 1
	rowMax := int(math.Ceil(math.Max(r0, r1))) + 1

	if colMin < 0 {
		colMin = 0
	}
	if rowMin < 0 {
		rowMin = 0
	}
	if colMax > g.Width {
		colMax = g.Width
	}
	if rowMax > g.Height {
		rowMax = g.Height
	}
	if colMin >= colMax || rowMin >= rowMax {
		return Window{}, false
	}
	return Window{Col: colMin, Row: rowMin, Cols: colMax - colMin, Rows: rowMax - rowMin}, true
}

// fractionalCell converts world coordinates to fractional cell indices.
func (g Grid) fractionalCell(x, y float64) (col, row float64) {
	col = (x - g.Transform[0]) / g.Transform[1]
	row = (y - g.Transform[3]) / g.Transform[5]
	return col, row
}
