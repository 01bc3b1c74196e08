package trig

import (
	"math"
	"testing"
)

const tolerance = 1e-3

// TestSinTurnsAccuracy tests that the LUT matches math.Sin.
func TestSinTurnsAccuracy(t *testing.T) {
	maxError := 0.0
	for i := 0; i <= 100000; i++ {
		x := float64(i) / 100000
		fast := SinTurns(x)
		slow := SinTurnsSlow(x)
		diff := math.Abs(fast - slow)
		if diff > maxError {
			maxError = diff
		}
		if diff > tolerance {
			t.Fatalf("SinTurns(%f) = %f, want %f (error %g)", x, fast, slow, diff)
		}
	}
	t.Logf("Max SinTurns error: %g", maxError)
}

// TestCosTurnsAccuracy tests that the LUT matches math.Cos.
func TestCosTurnsAccuracy(t *testing.T) {
	maxError := 0.0
	for i := 0; i <= 100000; i++ {
		x := float64(i) / 100000
		diff := math.Abs(CosTurns(x) - CosTurnsSlow(x))
		if diff > maxError {
			maxError = diff
		}
		if diff > tolerance {
			t.Fatalf("CosTurns(%f): error %g exceeds %g", x, diff, tolerance)
		}
	}
	t.Logf("Max CosTurns error: %g", maxError)
}

// TestAtan2TurnsAccuracy sweeps directions on several circles and compares
// against math.Atan2.
func TestAtan2TurnsAccuracy(t *testing.T) {
	maxError := 0.0
	for _, radius := range []float64{0.001, 0.5, 1, 100} {
		for i := 0; i < 10000; i++ {
			angle := float64(i) / 10000
			x := radius * CosTurnsSlow(angle)
			y := radius * SinTurnsSlow(angle)
			fast := Atan2Turns(y, x)
			slow := Atan2TurnsSlow(y, x)
			diff := math.Abs(fast - slow)
			if diff > 0.5 { // wrap-around at 0/1
				diff = 1 - diff
			}
			if diff > maxError {
				maxError = diff
			}
			if diff > tolerance {
				t.Fatalf("Atan2Turns(%f, %f) = %f, want %f (error %g)", y, x, fast, slow, diff)
			}
		}
	}
	t.Logf("Max Atan2Turns error: %g", maxError)
}

// TestWrapping verifies inputs outside [0,1) wrap modulo 1.
func TestWrapping(t *testing.T) {
	tests := []struct {
		x, equivalent float64
	}{
		{1.25, 0.25},
		{-0.75, 0.25},
		{3.5, 0.5},
		{-2, 0},
	}
	for _, tt := range tests {
		if got, want := SinTurns(tt.x), SinTurns(tt.equivalent); math.Abs(got-want) > 1e-12 {
			t.Errorf("SinTurns(%f) = %f, want SinTurns(%f) = %f", tt.x, got, tt.equivalent, want)
		}
		if got, want := CosTurns(tt.x), CosTurns(tt.equivalent); math.Abs(got-want) > 1e-12 {
			t.Errorf("CosTurns(%f) = %f, want CosTurns(%f) = %f", tt.x, got, tt.equivalent, want)
		}
	}
}

// TestAtan2Edges checks axis directions and the origin.
func TestAtan2Edges(t *testing.T) {
	tests := []struct {
		name string
		y, x float64
		want float64
	}{
		{"origin", 0, 0, 0},
		{"east", 0, 1, 0},
		{"north", 1, 0, 0.25},
		{"west", 0, -1, 0.5},
		{"south", -1, 0, 0.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Atan2Turns(tt.y, tt.x)
			diff := math.Abs(got - tt.want)
			if diff > 0.5 {
				diff = 1 - diff
			}
			if diff > tolerance {
				t.Errorf("Atan2Turns(%f, %f) = %f, want %f", tt.y, tt.x, got, tt.want)
			}
		})
	}
}

// TestRoundTrip converts an angle to a vector and back.
func TestRoundTrip(t *testing.T) {
	maxError := 0.0
	for i := 0; i < 4096; i++ {
		angle := float64(i) / 4096
		x := CosTurns(angle)
		y := SinTurns(angle)
		back := Atan2Turns(y, x)
		diff := math.Abs(back - angle)
		if diff > 0.5 {
			diff = 1 - diff
		}
		if diff > maxError {
			maxError = diff
		}
		if diff > 2*tolerance {
			t.Fatalf("angle %f round-tripped to %f (error %g)", angle, back, diff)
		}
	}
	t.Logf("Max round-trip error: %g", maxError)
}

// BenchmarkSinTurns benchmarks the LUT-based sine.
func BenchmarkSinTurns(b *testing.B) {
	var result float64
	for i := 0; i < b.N; i++ {
		result = SinTurns(float64(i&0xFFFF) / 0xFFFF)
	}
	_ = result
}

// BenchmarkSinTurnsSlow benchmarks the math.Sin reference.
func BenchmarkSinTurnsSlow(b *testing.B) {
	var result float64
	for i := 0; i < b.N; i++ {
		result = SinTurnsSlow(float64(i&0xFFFF) / 0xFFFF)
	}
	_ = result
}

// BenchmarkAtan2Turns benchmarks the LUT-based atan2.
func BenchmarkAtan2Turns(b *testing.B) {
	var result float64
	for i := 0; i < b.N; i++ {
		result = Atan2Turns(float64(i&0xFF)-128, float64(i>>8&0xFF)-128)
	}
	_ = result
}

// BenchmarkAtan2TurnsSlow benchmarks the math.Atan2 reference.
func BenchmarkAtan2TurnsSlow(b *testing.B) {
	var result float64
	for i := 0; i < b.N; i++ {
		result = Atan2TurnsSlow(float64(i&0xFF)-128, float64(i>>8&0xFF)-128)
	}
	_ = result
}
