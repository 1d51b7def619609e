package internal

import (
	"testing"
	"time"
)

func TestParseTimeUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"ns", time.Nanosecond, false},
		{"us", time.Microsecond, false},
		{"µs", time.Microsecond, false},
		{" MS ", time.Millisecond, false},
		{"s", time.Second, false},
		{"m", time.Minute, false},
		{"h", time.Hour, false},
		{"days", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeUnit(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeUnit(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseTimeUnit(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnitSuffix(t *testing.T) {
	tests := []struct {
		unit time.Duration
		want string
	}{
		{time.Nanosecond, "ns"},
		{time.Microsecond, "µs"},
		{time.Millisecond, "ms"},
		{time.Second, "s"},
		{time.Minute, "m"},
		{time.Hour, "h"},
	}
	for _, tt := range tests {
		if got := UnitSuffix(tt.unit); got != tt.want {
			t.Errorf("UnitSuffix(%v) = %v, want %v", tt.unit, got, tt.want)
		}
	}
}

func Test_convertToTimeUnit(t *testing.T) {
	tests := []struct {
		d    time.Duration
		unit time.Duration
		want float64
	}{
		{1500 * time.Microsecond, time.Millisecond, 1.5},
		{2 * time.Second, time.Millisecond, 2000},
		{90 * time.Second, time.Minute, 1.5},
		{250 * time.Nanosecond, time.Microsecond, 0.25},
	}
	for _, tt := range tests {
		if got := convertToTimeUnit(tt.d, tt.unit); got != tt.want {
			t.Errorf("convertToTimeUnit(%v, %v) = %v, want %v", tt.d, tt.unit, got, tt.want)
		}
	}
}
