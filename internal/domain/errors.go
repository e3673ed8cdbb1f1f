package domain

import "errors"

// Domain errors classify failures in the zonal statistics pipeline.
// They are wrapped with context by callers and checked with errors.Is.
//
// ErrValidation is fatal and aborts the run before any file is processed.
// All other errors are local to one file: they increment the failure tally
// and the batch continues with the next file.
var (
	// ErrValidation is returned when pre-run inputs are invalid
	// (missing raster, missing or non-directory folder).
	ErrValidation = errors.New("zonalstats: invalid input")

	// ErrCRSResolution is returned when a raster's coordinate reference
	// system cannot be determined.
	ErrCRSResolution = errors.New("zonalstats: cannot resolve raster CRS")

	// ErrAggregation is returned when zonal aggregation fails: the raster
	// cannot be opened or read, or the zone collection is empty.
	ErrAggregation = errors.New("zonalstats: zonal aggregation failed")

	// ErrStatMismatch is returned when two statistic sets cannot be merged
	// because their lengths differ or an entry lacks geometry or properties.
	ErrStatMismatch = errors.New("zonalstats: statistic sets do not match")

	// ErrPersistence is returned when an output artifact cannot be written,
	// including the attempt to persist an empty feature set.
	ErrPersistence = errors.New("zonalstats: cannot persist results")

	// ErrAlreadyRunning is returned when Start() is called on a running runner.
	ErrAlreadyRunning = errors.New("zonalstats: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped runner.
	ErrNotRunning = errors.New("zonalstats: not running")
)
