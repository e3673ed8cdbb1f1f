package raster

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	geos "github.com/twpayne/go-geos"
)

// Cover computes which cells of the grid a geometry touches.
//
// The returned mask is row-major over the returned window: cell
// (win.Col+c, win.Row+r) maps to mask[r*win.Cols+c]. A geometry entirely
// outside the grid yields an empty window and a nil mask.
//
// Coverage uses the any-overlap rule, evaluated as a GEOS Intersects test
// between the geometry and each candidate cell rectangle. Points and
// lines are handled by the same predicate.
func Cover(gctx *geos.Context, g Grid, geom orb.Geometry) (Window, []bool, error) {
	if err := g.Validate(); err != nil {
		return Window{}, nil, err
	}
	if geom == nil {
		return Window{}, nil, fmt.Errorf("raster: nil geometry")
	}

	win, ok := g.CoverageWindow(geom.Bound())
	if !ok {
		return Window{}, nil, nil
	}

	encoded, err := wkb.Marshal(geom)
	if err != nil {
		return Window{}, nil, fmt.Errorf("raster: encode geometry: %w", err)
	}
	zone, err := gctx.NewGeomFromWKB(encoded)
	if err != nil {
		return Window{}, nil, fmt.Errorf("raster: decode geometry: %w", err)
	}
	defer zone.Destroy()

	mask := make([]bool, win.Size())
	for r := 0; r < win.Rows; r++ {
		for c := 0; c < win.Cols; c++ {
			cell, err := gctx.NewGeomFromWKT(cellWKT(g.CellBound(win.Col+c, win.Row+r)))
			if err != nil {
				return Window{}, nil, fmt.Errorf("raster: build cell: %w", err)
			}
			mask[r*win.Cols+c] = zone.Intersects(cell)
			cell.Destroy()
		}
	}
	return win, mask, nil
}

// cellWKT renders a cell rectangle as a closed WKT polygon.
func cellWKT(b orb.Bound) string {
	return fmt.Sprintf("POLYGON((%[1]g %[2]g, %[3]g %[2]g, %[3]g %[4]g, %[1]g %[4]g, %[1]g %[2]g))",
		b.Min[0], b.Min[1], b.Max[0], b.Max[1])
}
