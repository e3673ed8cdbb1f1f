package domain

import (
	"strings"

	"github.com/paulmach/orb"
)

// Statistic names in the order they are reported.
var StatisticNames = []string{"mean", "min", "max", "std", "count"}

// CellStats holds the aggregate of the raster cells covered by one zone
// after nodata exclusion. When Count is zero the value statistics carry no
// meaning and are reported as explicit nulls, never as zeroes.
type CellStats struct {
	Mean  float64
	Min   float64
	Max   float64
	Std   float64 // population standard deviation
	Count int
}

// Properties returns the statistics as prefixed property values
// (e.g. "ohm_mean"). With zero usable cells the count is a true zero and
// every value statistic is nil, which serializes to JSON null.
func (s CellStats) Properties(prefix string) map[string]interface{} {
	p := make(map[string]interface{}, 5)
	if s.Count == 0 {
		p[prefix+"_mean"] = nil
		p[prefix+"_min"] = nil
		p[prefix+"_max"] = nil
		p[prefix+"_std"] = nil
		p[prefix+"_count"] = 0
		return p
	}
	p[prefix+"_mean"] = s.Mean
	p[prefix+"_min"] = s.Min
	p[prefix+"_max"] = s.Max
	p[prefix+"_std"] = s.Std
	p[prefix+"_count"] = s.Count
	return p
}

// Feature is one output entry: a geometry and a flat properties map.
type Feature struct {
	Geometry   orb.Geometry
	Properties map[string]interface{}
}

// StatisticSet is an ordered per-zone statistic sequence produced by
// aggregating one raster surface against one zone collection. The entry
// order equals the zone order of the source collection.
type StatisticSet struct {
	// Prefix namespaces the statistic keys of this set (e.g. "ohm").
	Prefix string

	Features []Feature
}

// Len returns the number of entries.
func (s StatisticSet) Len() int {
	return len(s.Features)
}

// OwnsKey reports whether a property key belongs to this set's statistic
// namespace.
func (s StatisticSet) OwnsKey(key string) bool {
	return strings.HasPrefix(key, s.Prefix+"_")
}
