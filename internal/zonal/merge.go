package zonal

import (
	"fmt"

	"github.com/geotala/zonalstats/internal/domain"
)

// Merge combines two statistic sets computed from the same zone
// collection into one feature list.
//
// Merging is positional: entry i of the first set pairs with entry i of
// the second, never a spatial re-match. Per entry, the original
// attributes (keys outside both prefix namespaces) are kept exactly once
// from the first set, then the first set's prefixed statistics, then the
// second set's. Geometry comes from the first set; the two sets share it
// since they derive from the same canonical read.
//
// A length mismatch, or any entry missing geometry or properties,
// wraps domain.ErrStatMismatch and yields no output at all.
func Merge(first, second domain.StatisticSet) ([]domain.Feature, error) {
	if err := validateSet(first); err != nil {
		return nil, err
	}
	if err := validateSet(second); err != nil {
		return nil, err
	}
	if first.Len() != second.Len() {
		return nil, fmt.Errorf("%w: %s has %d entries, %s has %d",
			domain.ErrStatMismatch, first.Prefix, first.Len(), second.Prefix, second.Len())
	}

	merged := make([]domain.Feature, first.Len())
	for i := range first.Features {
		props := make(map[string]interface{})
		for k, v := range first.Features[i].Properties {
			if !first.OwnsKey(k) && !second.OwnsKey(k) {
				props[k] = v
			}
		}
		for k, v := range first.Features[i].Properties {
			if first.OwnsKey(k) {
				props[k] = v
			}
		}
		for k, v := range second.Features[i].Properties {
			if second.OwnsKey(k) {
				props[k] = v
			}
		}
		merged[i] = domain.Feature{
			Geometry:   first.Features[i].Geometry,
			Properties: props,
		}
	}
	return merged, nil
}

// validateSet rejects a whole set when any entry lacks a geometry or a
// properties map. Merging a subset is never attempted.
func validateSet(s domain.StatisticSet) error {
	if s.Len() == 0 {
		return fmt.Errorf("%w: empty %s statistic set", domain.ErrStatMismatch, s.Prefix)
	}
	for i, f := range s.Features {
		if f.Geometry == nil {
			return fmt.Errorf("%w: %s entry %d has no geometry", domain.ErrStatMismatch, s.Prefix, i)
		}
		if f.Properties == nil {
			return fmt.Errorf("%w: %s entry %d has no properties", domain.ErrStatMismatch, s.Prefix, i)
		}
	}
	return nil
}
