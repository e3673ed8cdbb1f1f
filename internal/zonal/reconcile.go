// Package zonal implements the zonal statistics pipeline: CRS
// reconciliation, per-raster aggregation, positional merging of statistic
// sets, artifact persistence and the batch orchestrator that ties the
// steps together per input file.
package zonal

import (
	"fmt"
	"path/filepath"

	"github.com/geotala/zonalstats/internal/domain"
	"github.com/geotala/zonalstats/internal/ports"
)

// Reconciler aligns a vector collection's CRS to a target raster's CRS
// before any spatial operation.
type Reconciler struct {
	raster ports.RasterProvider
	reproj ports.Reprojector
	log    ports.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(raster ports.RasterProvider, reproj ports.Reprojector, logger ports.Logger) *Reconciler {
	return &Reconciler{raster: raster, reproj: reproj, log: logger}
}

// Reconcile returns the collection expressed in the raster's CRS.
//
// An empty collection passes through unchanged. A collection without a
// declared CRS is assumed to already match the target; the assumption is
// declared on the result but no transform is applied. Failure to read the
// raster's CRS wraps domain.ErrCRSResolution and aborts only the current
// file.
func (r *Reconciler) Reconcile(zc domain.ZoneCollection, rasterPath string) (domain.ZoneCollection, error) {
	target, err := r.raster.OpenCRS(rasterPath)
	if err != nil {
		return domain.ZoneCollection{}, fmt.Errorf("%w: %s: %v", domain.ErrCRSResolution, rasterPath, err)
	}

	if zc.Empty() {
		return zc, nil
	}

	switch {
	case !zc.CRS.Defined():
		r.log.Warn("no CRS defined, assuming raster CRS",
			ports.String("crs", target.String()),
		)
		zc.CRS = target
		return zc, nil
	case zc.CRS.Equal(target):
		r.log.Debug("CRS already matches",
			ports.String("crs", target.String()),
		)
		return zc, nil
	default:
		r.log.Info("reprojecting vector data",
			ports.String("raster", filepath.Base(rasterPath)),
			ports.String("from", zc.CRS.String()),
			ports.String("to", target.String()),
		)
		out, err := r.reproj.Reproject(zc, target)
		if err != nil {
			return domain.ZoneCollection{}, fmt.Errorf("reproject to %s: %w", target.String(), err)
		}
		return out, nil
	}
}
