package internal

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// borrowed from hyperfine
// https://github.com/sharkdp/hyperfine/blob/master/src/outlier_detection.rs
const OUTLIER_THRESHOLD = 14.826

// fewer samples than this never count as containing outliers
const minOutlierSamples = 3

// ComputeAverageAndStandardDeviation returns the mean and the sample standard deviation of data.
func ComputeAverageAndStandardDeviation(data []float64) (float64, float64) {
	switch len(data) {
	case 0:
		return 0, 0
	case 1:
		return data[0], 0
	}
	mean, std := stat.MeanStdDev(data, nil)
	return mean, std
}

// returns a slice of absolute z-scores of each data point
func calculateModifiedZScore(data []float64) []float64 {
	median := calculateMedian(data)
	mad := calculateMAD(data, median)

	modifiedZScores := make([]float64, len(data))
	for i, value := range data {
		modifiedZScores[i] = math.Abs(0.6745 * (value - median) / mad)
	}

	return modifiedZScores
}

// calculates the median of data without reordering it
func calculateMedian(data []float64) float64 {
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// calculates the median absolute deviation of data
func calculateMAD(data []float64, median float64) float64 {
	absoluteDeviations := MapFunc(func(value float64) float64 { return math.Abs(value - median) }, data)
	return calculateMedian(absoluteDeviations)
}

// TestOutliers reports whether data contains statistical outliers.
func TestOutliers(data []float64) bool {
	if len(data) < minOutlierSamples {
		return false
	}
	zScores := calculateModifiedZScore(data)
	return len(FilterFunc(func(z float64) bool { return z > OUTLIER_THRESHOLD }, zScores)) != 0
}
