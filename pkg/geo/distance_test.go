package geo

import (
	"math"
	"testing"
)

func TestHaversineDistance_SamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{-23.5505, -46.6333},
		{90, 0},
		{51.5074, -0.1278},
	}

	for _, p := range points {
		if d := HaversineDistance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("distance from (%v,%v) to itself = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{-23.5505, -46.6333, -23.5510, -46.6330},
		{51.5074, -0.1278, 48.8566, 2.3522},
		{0, 179.9, 0, -179.9},
	}

	for _, p := range pairs {
		ab := HaversineDistance(p[0], p[1], p[2], p[3])
		ba := HaversineDistance(p[2], p[3], p[0], p[1])
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestHaversineDistance_KnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolerance              float64
	}{
		{
			// ~343 km apart
			name: "sao paulo to rio",
			lat1: -23.5505, lon1: -46.6333,
			lat2: -22.9068, lon2: -43.1729,
			wantKm:    360,
			tolerance: 10,
		},
		{
			name: "london to paris",
			lat1: 51.5074, lon1: -0.1278,
			lat2: 48.8566, lon2: 2.3522,
			wantKm:    343,
			tolerance: 5,
		},
		{
			// two points ~60m apart in sao paulo
			name: "neighbours",
			lat1: -23.5505, lon1: -46.6333,
			lat2: -23.5510, lon2: -46.6330,
			wantKm:    0.06,
			tolerance: 0.05,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if got < 0 {
				t.Fatalf("distance must be non-negative, got %v", got)
			}
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("distance = %v km, want %v +- %v", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineDistance_TriangleInequality(t *testing.T) {
	a := [2]float64{-23.5505, -46.6333}
	b := [2]float64{-22.9068, -43.1729}
	c := [2]float64{-19.9167, -43.9345}

	ab := HaversineDistance(a[0], a[1], b[0], b[1])
	bc := HaversineDistance(b[0], b[1], c[0], c[1])
	ac := HaversineDistance(a[0], a[1], c[0], c[1])

	// small epsilon for floating point slack
	if ac > ab+bc+1e-6 {
		t.Errorf("triangle inequality violated: %v > %v + %v", ac, ab, bc)
	}
}
