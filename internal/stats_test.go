package internal

import (
	"math"
	"testing"
)

func TestComputeAverageAndStandardDeviation(t *testing.T) {
	tests := []struct {
		name    string
		data    []float64
		wantAvg float64
		wantStd float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{4}, 4, 0},
		{"constant", []float64{3, 3, 3}, 3, 0},
		{"sample stddev", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 5, math.Sqrt(32.0 / 7)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, std := ComputeAverageAndStandardDeviation(tt.data)
			if math.Abs(avg-tt.wantAvg) > 1e-9 || math.Abs(std-tt.wantStd) > 1e-9 {
				t.Errorf("ComputeAverageAndStandardDeviation() = %v, %v, want %v, %v", avg, std, tt.wantAvg, tt.wantStd)
			}
		})
	}
}

func Test_calculateMedian(t *testing.T) {
	tests := []struct {
		data []float64
		want float64
	}{
		{[]float64{3, 1, 2}, 2},
		{[]float64{4, 1, 3, 2}, 2.5},
		{[]float64{7}, 7},
	}
	for _, tt := range tests {
		in := append([]float64(nil), tt.data...)
		if got := calculateMedian(in); got != tt.want {
			t.Errorf("calculateMedian(%v) = %v, want %v", tt.data, got, tt.want)
		}
		for i := range in {
			if in[i] != tt.data[i] {
				t.Errorf("calculateMedian reordered its input: %v", in)
				break
			}
		}
	}
}

func TestTestOutliers(t *testing.T) {
	tests := []struct {
		name string
		data []float64
		want bool
	}{
		{"too few samples", []float64{1, 1000}, false},
		{"steady", []float64{10, 10.2, 9.9, 10.1, 10}, false},
		{"identical", []float64{5, 5, 5, 5}, false},
		{"one spike", []float64{10, 10.2, 9.9, 10.1, 10, 400}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TestOutliers(tt.data); got != tt.want {
				t.Errorf("TestOutliers(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}
