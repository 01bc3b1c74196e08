package chroma

import (
	"math"
	"testing"
)

func TestPackedBytesRoundTrip(t *testing.T) {
	cases := []struct {
		name             string
		ch1, ch2, ch3, a uint8
		wantA            uint8
	}{
		{"zero", 0, 0, 0, 0, 0},
		{"opaque white", 255, 255, 255, 255, 254},
		{"mixed", 10, 127, 200, 128, 128},
		{"odd alpha drops low bit", 1, 2, 3, 201, 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := packBytes(tc.ch1, tc.ch2, tc.ch3, tc.a)
			if got := c.Channel1(); got != tc.ch1 {
				t.Errorf("Channel1 = %d, want %d", got, tc.ch1)
			}
			if got := c.Channel2(); got != tc.ch2 {
				t.Errorf("Channel2 = %d, want %d", got, tc.ch2)
			}
			if got := c.Channel3(); got != tc.ch3 {
				t.Errorf("Channel3 = %d, want %d", got, tc.ch3)
			}
			if got := c.AlphaByte(); got != tc.wantA {
				t.Errorf("AlphaByte = %d, want %d", got, tc.wantA)
			}
		})
	}
}

func TestPackedAlphaLowBitAlwaysClear(t *testing.T) {
	for a := 0; a < 256; a++ {
		c := packBytes(1, 2, 3, uint8(a))
		if c.AlphaByte()&1 != 0 {
			t.Fatalf("alpha byte %d packed with low bit set", a)
		}
	}
}

func TestPackedNeverNaNOrInf(t *testing.T) {
	// The cleared alpha bit keeps the exponent field away from all-ones,
	// so no packed value can be NaN or infinite.
	for a := 0; a < 256; a++ {
		c := packBytes(255, 255, 255, uint8(a))
		f := float64(float32(c))
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Fatalf("alpha byte %d packed to non-finite float %v", a, f)
		}
	}
}

func TestPackedDecodeQuantization(t *testing.T) {
	c := packFloats(0.5, 0.25, 1.0, 1.0)
	ch1, ch2, ch3, a := c.Decode()
	step := 1.0 / 255
	if math.Abs(ch1-0.5) > step {
		t.Errorf("ch1 = %v, want 0.5 within one step", ch1)
	}
	if math.Abs(ch2-0.25) > step {
		t.Errorf("ch2 = %v, want 0.25 within one step", ch2)
	}
	if ch3 != 1.0 {
		t.Errorf("ch3 = %v, want exactly 1", ch3)
	}
	// Alpha quantizes in steps of 2/255.
	if math.Abs(a-1.0) > 2*step {
		t.Errorf("alpha = %v, want 1 within two steps", a)
	}
}

func TestTransparentIsZero(t *testing.T) {
	if Transparent.Bits() != 0 {
		t.Fatalf("Transparent bits = %#x, want 0", Transparent.Bits())
	}
	if a := Transparent.Alpha(); a != 0 {
		t.Fatalf("Transparent alpha = %v, want 0", a)
	}
}

func TestWithAlpha(t *testing.T) {
	c := packBytes(10, 20, 30, 254)
	faded := c.WithAlpha(0.5)
	if faded.Channel1() != 10 || faded.Channel2() != 20 || faded.Channel3() != 30 {
		t.Fatal("WithAlpha must not touch the color channels")
	}
	if got := faded.Alpha(); math.Abs(got-0.5) > 2.0/255 {
		t.Fatalf("Alpha after WithAlpha(0.5) = %v", got)
	}
}

func BenchmarkPackFloats(b *testing.B) {
	var sink PackedColor
	for i := 0; i < b.N; i++ {
		sink = packFloats(0.1, 0.5, 0.9, 1.0)
	}
	_ = sink
}

func BenchmarkDecode(b *testing.B) {
	c := packFloats(0.1, 0.5, 0.9, 1.0)
	var s float64
	for i := 0; i < b.N; i++ {
		c1, c2, c3, a := c.Decode()
		s += c1 + c2 + c3 + a
	}
	_ = s
}
