package ports

import "github.com/geotala/zonalstats/internal/domain"

// VectorReader reads zone geometries and their attributes from a vector
// source file. The returned collection preserves source order; that order
// is the positional identity of every zone for the rest of the pipeline.
type VectorReader interface {
	// ReadGeometries reads the file once and returns all zones.
	// The collection CRS is the zero value when the source declares none.
	ReadGeometries(path string) (domain.ZoneCollection, error)
}

// Reprojector transforms zone geometries into a target reference system.
// Implementations delegate datum handling to a coordinate transform
// provider; no custom datum-shift logic belongs here.
type Reprojector interface {
	// Reproject returns a collection whose geometries are expressed in
	// target. Zone order and attributes are preserved.
	Reproject(zones domain.ZoneCollection, target domain.CRS) (domain.ZoneCollection, error)
}
