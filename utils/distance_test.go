package utils

import (
	"math"
	"testing"
)

func TestHaversineKM(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
		tolerance              float64
	}{
		{"same point", 1.3, 103.8, 1.3, 103.8, 0, 1e-9},
		{"one degree of latitude", 0, 0, 1, 0, 111.19, 0.01},
		{"singapore city hall to bugis", 1.2931, 103.8520, 1.3006, 103.8559, 0.94, 0.02},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKM(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("HaversineKM = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPresentableDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0, "0 m"},
		{0.25, "250 m"},
		{1, "1.0 km"},
		{12.34, "12.3 km"},
	}
	for _, tt := range tests {
		if got := PresentableDistance(tt.km); got != tt.want {
			t.Errorf("PresentableDistance(%v) = %q, want %q", tt.km, got, tt.want)
		}
	}
}
