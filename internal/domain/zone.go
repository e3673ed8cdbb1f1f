package domain

import (
	"strconv"

	"github.com/paulmach/orb"
)

// DefaultNodata is the raster sentinel value excluded from aggregation.
const DefaultNodata = -9999

// CRS identifies a coordinate reference system. EPSG is zero when the
// authority code could not be resolved; WKT is empty when the source
// declares no reference system at all.
type CRS struct {
	WKT  string
	EPSG int
}

// Defined reports whether the source declared any reference system.
func (c CRS) Defined() bool {
	return c.EPSG != 0 || c.WKT != ""
}

// Equal reports whether two reference systems are the same definition.
// When both sides carry an EPSG code the codes decide; otherwise the WKT
// strings must match exactly. Unknown pairs compare unequal, which forces
// a reprojection (a transform between identical definitions is the
// identity, so the conservative answer is safe).
func (c CRS) Equal(other CRS) bool {
	if c.EPSG != 0 && other.EPSG != 0 {
		return c.EPSG == other.EPSG
	}
	return c.WKT != "" && c.WKT == other.WKT
}

// String returns a short human-readable identifier for log lines.
func (c CRS) String() string {
	if c.EPSG != 0 {
		return "EPSG:" + strconv.Itoa(c.EPSG)
	}
	if c.WKT == "" {
		return "undefined"
	}
	if len(c.WKT) > 32 {
		return c.WKT[:32] + "..."
	}
	return c.WKT
}

// Zone is one vector geometry plus its original non-statistical attributes.
type Zone struct {
	Geometry   orb.Geometry
	Attributes map[string]interface{}
}

// ZoneCollection is the ordered zone sequence produced by one canonical
// read of a vector source file. The order is stable for the lifetime of
// the collection; both aggregation passes iterate it identically.
type ZoneCollection struct {
	Zones []Zone

	// CRS is the declared reference system of the geometries.
	// The zero value means the source declared none.
	CRS CRS
}

// Len returns the number of zones.
func (zc ZoneCollection) Len() int {
	return len(zc.Zones)
}

// Empty reports whether the collection has no zones.
func (zc ZoneCollection) Empty() bool {
	return len(zc.Zones) == 0
}
