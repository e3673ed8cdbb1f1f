package zonal

import (
	"context"
	"fmt"

	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/ports"
)

// Aggregator computes one prefixed statistic set per raster surface.
type Aggregator struct {
	provider ports.RasterProvider
	nodata   float64
	log      ports.Logger
}

// NewAggregator creates an aggregator. nodata is the sentinel excluded
// from every aggregation.
func NewAggregator(provider ports.RasterProvider, nodata float64, logger ports.Logger) *Aggregator {
	return &Aggregator{provider: provider, nodata: nodata, log: logger}
}

// Aggregate samples the raster for every zone and returns the statistic
// set in zone order. Each entry carries the zone's untouched original
// attributes plus the prefixed statistics; a zone with no usable cells
// gets a zero count and null value statistics.
//
// An empty zone collection and raster read failures wrap
// domain.ErrAggregation.
func (a *Aggregator) Aggregate(ctx context.Context, zc domain.ZoneCollection, rasterPath, prefix string) (domain.StatisticSet, error) {
	if zc.Empty() {
		return domain.StatisticSet{}, fmt.Errorf("%w: empty zone collection", domain.ErrAggregation)
	}

	a.log.Debug("calculating zonal statistics",
		ports.String("prefix", prefix),
		ports.Int("zones", zc.Len()),
	)

	stats, err := a.provider.SampleStatistics(ctx, rasterPath, zc.Zones, a.nodata)
	if err != nil {
		return domain.StatisticSet{}, fmt.Errorf("%w: %s: %v", domain.ErrAggregation, rasterPath, err)
	}
	if len(stats) != zc.Len() {
		return domain.StatisticSet{}, fmt.Errorf("%w: provider returned %d results for %d zones",
			domain.ErrAggregation, len(stats), zc.Len())
	}

	set := domain.StatisticSet{
		Prefix:   prefix,
		Features: make([]domain.Feature, zc.Len()),
	}
	for i, zone := range zc.Zones {
		props := make(map[string]interface{}, len(zone.Attributes)+len(domain.StatisticNames))
		for k, v := range zone.Attributes {
			props[k] = v
		}
		for k, v := range stats[i].Properties(prefix) {
			props[k] = v
		}
		set.Features[i] = domain.Feature{Geometry: zone.Geometry, Properties: props}
	}
	return set, nil
}
