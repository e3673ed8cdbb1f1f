// Package ports defines the interfaces (ports) that connect the zonal
// statistics core to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the pipeline needs from external systems without
// specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [RasterProvider]: raster CRS lookup and per-zone cell aggregation
//   - [VectorReader]: reads zone geometries and attributes from a file
//   - [Reprojector]: transforms zone geometries into a target CRS
//   - [Logger]: structured logging abstraction
//
// The pipeline (internal/zonal) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with concrete
// implementations (GDAL/OGR, GeoJSON files, zerolog). This keeps the
// pipeline testable with fakes and free of cgo in its own tests.
package ports
