package gdal

import (
	"fmt"

	"github.com/lukeroth/gdal"
	"github.com/paulmach/orb"
)

// transformGeometry applies a coordinate transform to every vertex of a
// geometry, one batched OSR call per point run.
func transformGeometry(g orb.Geometry, ct gdal.CoordinateTransform) (orb.Geometry, error) {
	switch geom := g.(type) {
	case orb.Point:
		pts := transformPoints(ct, []orb.Point{geom})
		return pts[0], nil
	case orb.MultiPoint:
		return orb.MultiPoint(transformPoints(ct, geom)), nil
	case orb.LineString:
		return orb.LineString(transformPoints(ct, geom)), nil
	case orb.Ring:
		return orb.Ring(transformPoints(ct, geom)), nil
	case orb.Polygon:
		out := make(orb.Polygon, len(geom))
		for i, ring := range geom {
			out[i] = orb.Ring(transformPoints(ct, ring))
		}
		return out, nil
	case orb.MultiLineString:
		out := make(orb.MultiLineString, len(geom))
		for i, ls := range geom {
			out[i] = orb.LineString(transformPoints(ct, ls))
		}
		return out, nil
	case orb.MultiPolygon:
		out := make(orb.MultiPolygon, len(geom))
		for i, poly := range geom {
			p := make(orb.Polygon, len(poly))
			for j, ring := range poly {
				p[j] = orb.Ring(transformPoints(ct, ring))
			}
			out[i] = p
		}
		return out, nil
	case orb.Collection:
		out := make(orb.Collection, len(geom))
		for i, sub := range geom {
			t, err := transformGeometry(sub, ct)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported geometry type %T", g)
	}
}

// transformPoints transforms a point run in place through one OSR call.
func transformPoints(ct gdal.CoordinateTransform, pts []orb.Point) []orb.Point {
	if len(pts) == 0 {
		return nil
	}
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	zs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p[0], p[1]
	}
	ct.Transform(len(pts), xs, ys, zs)
	out := make([]orb.Point, len(pts))
	for i := range pts {
		out[i] = orb.Point{xs[i], ys[i]}
	}
	return out
}
