// Package domain contains the core domain entities and value objects for
// zonal statistics processing.
//
// This package represents the innermost layer of the application. It has no
// dependencies on infrastructure concerns (GDAL, file system, logging) and
// contains only pure data shapes and business rules.
//
// # Entities
//
//   - [Zone]: one vector geometry plus its original attributes
//   - [ZoneCollection]: an ordered zone sequence read once from a source file
//   - [CellStats]: aggregate raster cell values covered by one zone
//   - [StatisticSet]: per-zone prefixed statistics for one raster surface
//   - [Feature]: a merged output entry (geometry plus combined properties)
//   - [RunSummary]: batch tally (total, succeeded, failed)
//
// # Identity
//
// Zone identity is positional. Zones keep the ordinal index of the single
// canonical read of their source file through the whole pipeline, which is
// what allows two independently computed statistic sets to be merged by
// position instead of a spatial join.
package domain
