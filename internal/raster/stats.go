package raster

import (
	"math"

	"github.com/geotala/zonalstats/internal/domain"
)

// MaskedValues selects the buffer values of covered cells. The buffer is
// row-major over the same window the mask was computed for.
func MaskedValues(buf []float64, mask []bool) []float64 {
	var out []float64
	for i, covered := range mask {
		if covered && i < len(buf) {
			out = append(out, buf[i])
		}
	}
	return out
}

// Summarize aggregates cell values into zonal statistics, excluding the
// nodata sentinel and NaN cells. With no usable cells it returns a
// zero-count result whose value statistics are NaN; downstream
// serialization turns those into explicit nulls.
//
// Std is the population standard deviation.
func Summarize(values []float64, nodata float64) domain.CellStats {
	var (
		sum   float64
		count int
		min   = math.Inf(1)
		max   = math.Inf(-1)
	)
	for _, v := range values {
		if math.IsNaN(v) || v == nodata {
			continue
		}
		sum += v
		count++
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if count == 0 {
		nan := math.NaN()
		return domain.CellStats{Mean: nan, Min: nan, Max: nan, Std: nan, Count: 0}
	}

	mean := sum / float64(count)
	var sq float64
	for _, v := range values {
		if math.IsNaN(v) || v == nodata {
			continue
		}
		d := v - mean
		sq += d * d
	}
	return domain.CellStats{
		Mean:  mean,
		Min:   min,
		Max:   max,
		Std:   math.Sqrt(sq / float64(count)),
		Count: count,
	}
}
