// Package trig provides fast turn-based trigonometry using lookup tables.
//
// Angles are measured in turns: 1 turn equals 2π radians, so the full
// circle maps to the [0,1) interval. Turn units match the hue channel of
// packed colors directly, avoiding a radian conversion in every color
// transform.
//
// The tables are built once at init and read-only afterwards, so they are
// safe for concurrent use. Lookups use linear interpolation and stay
// within 1e-3 of the exact transcendental functions; the Slow variants
// keep the math.Sin/math.Atan2 reference implementations for tests and
// benchmarks.
package trig

import "math"

const (
	sinTableSize  = 16384
	atanTableSize = 1024
)

// sinTable holds one full turn of sine samples plus a guard entry so the
// interpolation never indexes past the end.
var sinTable [sinTableSize + 1]float64

// atanTable holds atan(r)/2π for r in [0,1], also with a guard entry.
// Ratios above 1 are handled by octant reduction in Atan2Turns.
var atanTable [atanTableSize + 1]float64

func init() {
	for i := 0; i <= sinTableSize; i++ {
		sinTable[i] = math.Sin(2 * math.Pi * float64(i) / sinTableSize)
	}
	for i := 0; i <= atanTableSize; i++ {
		atanTable[i] = math.Atan(float64(i)/atanTableSize) / (2 * math.Pi)
	}
}

// SinTurns returns sin(2π·x). Inputs outside [0,1) are wrapped.
func SinTurns(x float64) float64 {
	x -= math.Floor(x)
	f := x * sinTableSize
	i := int(f)
	if i >= sinTableSize { // x was just below 1 and rounded up
		i = sinTableSize - 1
	}
	frac := f - float64(i)
	return sinTable[i] + (sinTable[i+1]-sinTable[i])*frac
}

// CosTurns returns cos(2π·x). Inputs outside [0,1) are wrapped.
func CosTurns(x float64) float64 {
	return SinTurns(x + 0.25)
}

// Atan2Turns returns the angle of the vector (x, y) in turns, in [0,1).
// Atan2Turns(0, 0) is defined as 0.
func Atan2Turns(y, x float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	ax, ay := math.Abs(x), math.Abs(y)

	// Reduce to the first octant so the table ratio stays in [0,1].
	var t float64
	if ax >= ay {
		t = atanLookup(ay / ax)
	} else {
		t = 0.25 - atanLookup(ax/ay)
	}

	switch {
	case x >= 0 && y >= 0:
		// first quadrant, t already correct
	case x < 0 && y >= 0:
		t = 0.5 - t
	case x < 0 && y < 0:
		t = 0.5 + t
	default: // x >= 0, y < 0
		t = 1 - t
	}
	if t >= 1 {
		t -= 1
	}
	return t
}

// atanLookup interpolates atan(r)/2π for r in [0,1].
func atanLookup(r float64) float64 {
	f := r * atanTableSize
	i := int(f)
	if i >= atanTableSize {
		i = atanTableSize - 1
	}
	frac := f - float64(i)
	return atanTable[i] + (atanTable[i+1]-atanTable[i])*frac
}

// SinTurnsSlow is the math.Sin reference implementation.
// Used for testing and verification only.
func SinTurnsSlow(x float64) float64 {
	return math.Sin(2 * math.Pi * x)
}

// CosTurnsSlow is the math.Cos reference implementation.
// Used for testing and verification only.
func CosTurnsSlow(x float64) float64 {
	return math.Cos(2 * math.Pi * x)
}

// Atan2TurnsSlow is the math.Atan2 reference implementation.
// Used for testing and verification only.
func Atan2TurnsSlow(y, x float64) float64 {
	if x == 0 && y == 0 {
		return 0
	}
	t := math.Atan2(y, x) / (2 * math.Pi)
	if t < 0 {
		t += 1
	}
	if t >= 1 {
		t -= 1
	}
	return t
}
