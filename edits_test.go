package chroma

import (
	"math"
	"testing"
)

func TestRGBAccessorsRoundTrip(t *testing.T) {
	for _, s := range allSpaces {
		c := s.FromRGBA(0.25, 0.5, 0.75, 1)
		if got := Red(s, c); math.Abs(got-0.25) > 0.06 {
			t.Errorf("%s: Red = %v, want ~0.25", s.Name(), got)
		}
		if got := Green(s, c); math.Abs(got-0.5) > 0.06 {
			t.Errorf("%s: Green = %v, want ~0.5", s.Name(), got)
		}
		if got := Blue(s, c); math.Abs(got-0.75) > 0.06 {
			t.Errorf("%s: Blue = %v, want ~0.75", s.Name(), got)
		}
	}
}

func TestIntAccessorsRange(t *testing.T) {
	c := Oklab.FromRGBA(1, 0, 0.5, 1)
	for name, v := range map[string]int{
		"red":   RedInt(Oklab, c),
		"green": GreenInt(Oklab, c),
		"blue":  BlueInt(Oklab, c),
	} {
		if v < 0 || v > 255 {
			t.Errorf("%s component %d out of range", name, v)
		}
	}
}

func TestHSLAccessors(t *testing.T) {
	// Pure green in any space reads back as HSL hue 1/3, full saturation,
	// mid lightness.
	for _, s := range allSpaces {
		c := s.FromRGBA(0, 1, 0, 1)
		if got := Hue(s, c); math.Abs(got-1.0/3) > 0.02 {
			t.Errorf("%s: Hue = %v, want ~1/3", s.Name(), got)
		}
		if got := Saturation(s, c); got < 0.9 {
			t.Errorf("%s: Saturation = %v, want ~1", s.Name(), got)
		}
		if got := Lightness(s, c); math.Abs(got-0.5) > 0.03 {
			t.Errorf("%s: Lightness = %v, want ~0.5", s.Name(), got)
		}
	}
}

func TestToRGBMatchesToRGBA(t *testing.T) {
	for _, s := range allSpaces {
		c := s.FromRGBA(0.7, 0.2, 0.4, 0.8)
		rgb := ToRGB(s, c)
		r0, g0, b0, a0 := s.ToRGBA(c)
		r1, g1, b1, a1 := RGB.ToRGBA(rgb)
		const tol = 1.0 / 255
		if math.Abs(r0-r1) > tol || math.Abs(g0-g1) > tol || math.Abs(b0-b1) > tol {
			t.Errorf("%s: ToRGB diverged: (%v,%v,%v) vs (%v,%v,%v)",
				s.Name(), r0, g0, b0, r1, g1, b1)
		}
		if math.Abs(a0-a1) > 2.0/255 {
			t.Errorf("%s: alpha diverged: %v vs %v", s.Name(), a0, a1)
		}
	}
}

func TestMixEmptyAndSingle(t *testing.T) {
	if got := Mix(Oklab); got != Transparent {
		t.Errorf("Mix() = %v, want Transparent", got)
	}
	c := Oklab.FromRGBA(0.3, 0.5, 0.8, 1)
	if got := Mix(Oklab, c); got != c {
		t.Errorf("Mix of one color = %v, want %v", got, c)
	}
}

func TestMixIsChannelMean(t *testing.T) {
	a := RGB.Encode(0, 0, 0, 1)
	b := RGB.Encode(1, 1, 1, 1)
	m := Mix(RGB, a, b)
	c1, c2, c3, _ := m.Decode()
	for _, v := range []float64{c1, c2, c3} {
		if math.Abs(v-0.5) > 1.0/255 {
			t.Errorf("mean channel = %v, want 0.5", v)
		}
	}
}

func TestInverseLightnessContrastsNearbyHues(t *testing.T) {
	s := HSLuv
	light := s.Encode(0.6, 0.8, 0.85, 1)
	c := s.Encode(0.6, 0.8, 0.8, 1)
	out := s.LightnessOf(InverseLightness(s, c, light))
	if math.Abs(out-s.LightnessOf(light)) < 0.35 {
		t.Errorf("inverse lightness %v too close to reference %v", out, s.LightnessOf(light))
	}
}

func TestInverseLightnessSkipsDistantHues(t *testing.T) {
	s := HSLuv
	c := s.Encode(0.1, 0.8, 0.8, 1)
	ref := s.Encode(0.6, 0.8, 0.8, 1)
	if got := InverseLightness(s, c, ref); got != c {
		t.Errorf("distant hues must pass through unchanged, got %v", got)
	}
}

func TestDifferentiateLightness(t *testing.T) {
	s := Oklab
	ref := s.FromRGBA(0.5, 0.5, 0.5, 1)
	close := s.WithLightness(ref, s.LightnessOf(ref)+0.05)
	out := DifferentiateLightness(s, close, ref)
	if gap := math.Abs(s.LightnessOf(out) - s.LightnessOf(ref)); gap < 0.25-1.0/255 {
		t.Errorf("lightness gap %v, want at least 0.25", gap)
	}
	far := s.WithLightness(ref, 0.9)
	if got := DifferentiateLightness(s, far, ref); got != far {
		t.Errorf("already-distinct color changed to %v", got)
	}
}

func TestOffsetLightnessPicksSideWithRoom(t *testing.T) {
	s := Oklab
	dark := s.FromRGBA(0.1, 0.1, 0.1, 1)
	up := OffsetLightness(s, dark, dark, 0.3)
	if s.LightnessOf(up) <= s.LightnessOf(dark) {
		t.Error("offset from a dark reference should move up")
	}
	bright := s.FromRGBA(0.95, 0.95, 0.95, 1)
	down := OffsetLightness(s, bright, bright, 0.3)
	if s.LightnessOf(down) >= s.LightnessOf(bright) {
		t.Error("offset from a bright reference should move down")
	}
}

func TestRandomEditDeterministic(t *testing.T) {
	c := Oklab.FromRGBA(0.4, 0.6, 0.5, 1)
	a := RandomEdit(Oklab, c, 12345, 0.1)
	b := RandomEdit(Oklab, c, 12345, 0.1)
	if a != b {
		t.Errorf("same seed produced %v and %v", a, b)
	}
	if RandomEdit(Oklab, c, 54321, 0.1) == a {
		t.Log("different seeds collided; legal but unexpected")
	}
}

func TestRandomEditStaysInSphereAndGamut(t *testing.T) {
	const variance = 0.08
	c := Oklab.FromRGBA(0.4, 0.6, 0.5, 1)
	c1, c2, c3, _ := c.Decode()
	for seed := int64(0); seed < 64; seed++ {
		out := RandomEdit(Oklab, c, seed, variance)
		if !Oklab.InGamut(out) {
			t.Fatalf("seed %d: result out of gamut", seed)
		}
		o1, o2, o3, _ := out.Decode()
		d := math.Sqrt((o1-c1)*(o1-c1) + (o2-c2)*(o2-c2) + (o3-c3)*(o3-c3))
		// Quantization adds up to half a byte step per channel.
		if d > variance+1.5/255 {
			t.Fatalf("seed %d: moved %v, variance %v", seed, d, variance)
		}
	}
}

func TestRandomEditZeroVarianceIsIdentity(t *testing.T) {
	c := HSLuv.FromRGBA(0.2, 0.3, 0.9, 1)
	if got := RandomEdit(HSLuv, c, 7, 0); got != c {
		t.Errorf("zero variance changed the color to %v", got)
	}
}

func TestApplyTweakNeutral(t *testing.T) {
	for _, s := range allSpaces {
		c := s.FromRGBA(0.3, 0.7, 0.5, 1)
		got := ApplyTweak(s, c, TweakNeutral)
		g1, g2, g3, _ := got.Decode()
		c1, c2, c3, _ := c.Decode()
		// Neutral is byte 128, a hair above an exact 0.5 factor, so allow
		// one byte of drift per channel.
		const tol = 1.5 / 255
		if math.Abs(g1-c1) > tol || math.Abs(g2-c2) > tol || math.Abs(g3-c3) > tol {
			t.Errorf("%s: neutral tweak moved %v to %v", s.Name(), c, got)
		}
	}
}

func TestApplyTweakDoublesAndZeroesChannels(t *testing.T) {
	c := RGB.Encode(0.25, 0.25, 0.25, 1)
	doubled := ApplyTweak(RGB, c, NewTweak(1, 1, 1, 0.5))
	d1, _, _, _ := doubled.Decode()
	if math.Abs(d1-0.5) > 2.0/255 {
		t.Errorf("factor-2 tweak gave %v, want ~0.5", d1)
	}
	zeroed := ApplyTweak(RGB, c, NewTweak(0, 0, 0, 0.5))
	z1, z2, z3, _ := zeroed.Decode()
	if z1 != 0 || z2 != 0 || z3 != 0 {
		t.Errorf("factor-0 tweak gave (%v, %v, %v), want black", z1, z2, z3)
	}
}

func TestApplyTweakRotatesHueChannel(t *testing.T) {
	c := HSLuv.Encode(0.25, 0.5, 0.5, 1)
	// Hue channel moves additively: +0.25 of a turn.
	out := ApplyTweak(HSLuv, c, NewTweak(0.75, 0.5, 0.5, 0.5))
	if got := HSLuv.HueOf(out); math.Abs(got-0.5) > 2.0/255 {
		t.Errorf("hue after +0.25 tweak = %v, want ~0.5", got)
	}
}

func TestApplyTweakContrastBendsAroundMidGray(t *testing.T) {
	s := Oklab
	light := s.Encode(0.7, 0.5, 0.5, 1)
	flat := ApplyTweak(s, light, NewTweak(0.5, 0.5, 0.5, 0))
	if got := s.LightnessOf(flat); math.Abs(got-0.5) > 2.0/255 {
		t.Errorf("zero contrast should collapse lightness to 0.5, got %v", got)
	}
	pushed := ApplyTweak(s, light, NewTweak(0.5, 0.5, 0.5, 1))
	if got := s.LightnessOf(pushed); got < 0.85 {
		t.Errorf("max contrast should push 0.7 toward white, got %v", got)
	}
}

func TestTweakContrastNeutral(t *testing.T) {
	if got := TweakContrast(TweakNeutral); math.Abs(got-1) > 2.0/255*2 {
		t.Errorf("neutral contrast factor = %v, want ~1", got)
	}
}

func BenchmarkApplyTweak(b *testing.B) {
	c := HSLuv.FromRGBA(0.3, 0.7, 0.5, 1)
	tw := NewTweak(0.6, 0.45, 0.55, 0.5)
	for i := 0; i < b.N; i++ {
		ApplyTweak(HSLuv, c, tw)
	}
}

func BenchmarkRandomEdit(b *testing.B) {
	c := Oklab.FromRGBA(0.4, 0.6, 0.5, 1)
	for i := 0; i < b.N; i++ {
		RandomEdit(Oklab, c, int64(i), 0.05)
	}
}
