package chroma

import (
	"math"
	"testing"

	"github.com/jkl1337/go-chromath"
	"gonum.org/v1/gonum/mat"
)

// allSpaces lists every codec once for table-driven sweeps.
var allSpaces = []Space{RGB, HSLuv, CIELab, IPT, IPTHQ, Oklab}

func TestSpacesBlackAndWhite(t *testing.T) {
	for _, s := range allSpaces {
		t.Run(s.Name(), func(t *testing.T) {
			black := s.FromRGBA(0, 0, 0, 1)
			r, g, b, _ := s.ToRGBA(black)
			if r != 0 || g != 0 || b != 0 {
				t.Errorf("black round trip = (%v, %v, %v)", r, g, b)
			}
			white := s.FromRGBA(1, 1, 1, 1)
			r, g, b, _ = s.ToRGBA(white)
			if r != 1 || g != 1 || b != 1 {
				t.Errorf("white round trip = (%v, %v, %v)", r, g, b)
			}
		})
	}
}

// Round trips lose precision to 8-bit channel quantization; the
// perceptual spaces amplify a quantization step unevenly across the
// cube, so the tolerance is per space rather than one global bound.
func TestSpacesRoundTripError(t *testing.T) {
	tolerances := map[string]float64{
		"rgb":    0.6 / 255,
		"hsluv":  0.08,
		"cielab": 0.05,
		"ipt":    0.05,
		"ipt_hq": 0.06,
		"oklab":  0.05,
	}
	for _, s := range allSpaces {
		t.Run(s.Name(), func(t *testing.T) {
			tol := tolerances[s.Name()]
			var maxErr float64
			for ri := 0; ri <= 10; ri++ {
				for gi := 0; gi <= 10; gi++ {
					for bi := 0; bi <= 10; bi++ {
						r0 := float64(ri) / 10
						g0 := float64(gi) / 10
						b0 := float64(bi) / 10
						c := s.FromRGBA(r0, g0, b0, 1)
						r1, g1, b1, _ := s.ToRGBA(c)
						err := math.Max(math.Abs(r1-r0), math.Max(math.Abs(g1-g0), math.Abs(b1-b0)))
						if err > maxErr {
							maxErr = err
						}
						if err > tol {
							t.Fatalf("round trip of (%v, %v, %v) off by %v, tolerance %v",
								r0, g0, b0, err, tol)
						}
					}
				}
			}
			t.Logf("%s max round-trip error: %.5f", s.Name(), maxErr)
		})
	}
}

func TestSpacesAlphaSurvivesRoundTrip(t *testing.T) {
	for _, s := range allSpaces {
		c := s.FromRGBA(0.3, 0.6, 0.9, 0.5)
		_, _, _, a := s.ToRGBA(c)
		if math.Abs(a-0.5) > 2.0/255 {
			t.Errorf("%s: alpha = %v, want 0.5", s.Name(), a)
		}
	}
}

func TestChromaLimitZeroAtLightnessExtremes(t *testing.T) {
	for _, s := range allSpaces {
		for _, h := range []float64{0, 0.13, 0.5, 0.99} {
			if got := s.ChromaLimit(h, 0); got != 0 {
				t.Errorf("%s: ChromaLimit(%v, 0) = %v", s.Name(), h, got)
			}
			if got := s.ChromaLimit(h, 1); got != 0 {
				t.Errorf("%s: ChromaLimit(%v, 1) = %v", s.Name(), h, got)
			}
		}
	}
}

// A packed HSLuv color at saturation 1 decodes onto the RGB cube
// surface: at least one channel sits at 0 or 1.
func TestHSLuvFullSaturationHitsCubeSurface(t *testing.T) {
	const tol = 0.02
	for hi := 0; hi < 24; hi++ {
		for li := 1; li < 10; li++ {
			h := float64(hi) / 24
			l := float64(li) / 10
			c := HSLuv.Encode(h, 1, l, 1)
			r, g, b, _ := HSLuv.ToRGBA(c)
			d := math.Inf(1)
			for _, v := range []float64{r, g, b} {
				d = math.Min(d, math.Min(v, 1-v))
			}
			if d > tol {
				t.Errorf("h=%v l=%v: rgb (%v, %v, %v) is %v inside the cube", h, l, r, g, b, d)
			}
		}
	}
}

func TestHSLuvAlwaysInGamut(t *testing.T) {
	for hi := 0; hi < 16; hi++ {
		for li := 0; li <= 8; li++ {
			c := HSLuv.Encode(float64(hi)/16, 1, float64(li)/8, 1)
			if !HSLuv.InGamut(c) {
				t.Fatalf("HSLuv %v reported out of gamut", c)
			}
			if got := HSLuv.ClampToGamut(c); got != c {
				t.Fatalf("HSLuv ClampToGamut changed %v to %v", c, got)
			}
		}
	}
}

// The cartesian spaces must agree with their own InGamut just inside and
// just outside the chroma boundary.
func TestChromaLimitConsistentWithInGamut(t *testing.T) {
	for _, s := range []Space{CIELab, IPT, IPTHQ, Oklab} {
		t.Run(s.Name(), func(t *testing.T) {
			for hi := 0; hi < 16; hi++ {
				for li := 1; li < 8; li++ {
					h := float64(hi) / 16
					l := float64(li) / 8
					limit := s.ChromaLimit(h, l)
					if limit < 0 {
						t.Fatalf("negative limit at h=%v l=%v", h, l)
					}
					// Margins absorb the byte quantization of the encoded
					// chromatic channels.
					inside := limit*0.95 - 0.01
					if inside > 0 && inside < 0.49 {
						c := s.Encode(l, 0.5+inside*math.Cos(h*2*math.Pi), 0.5+inside*math.Sin(h*2*math.Pi), 1)
						if !s.InGamut(c) {
							t.Errorf("h=%v l=%v: chroma %v inside the limit %v is out of gamut", h, l, inside, limit)
						}
					}
					outside := limit*1.05 + 0.01
					if s.Name() != "oklab" && outside < 0.49 && limit > 0.02 {
						c := s.Encode(l, 0.5+outside*math.Cos(h*2*math.Pi), 0.5+outside*math.Sin(h*2*math.Pi), 1)
						if s.InGamut(c) {
							t.Errorf("h=%v l=%v: chroma %v outside the limit %v is in gamut", h, l, outside, limit)
						}
					}
				}
			}
		})
	}
}

// Oklab's triangle approximation under-covers the true boundary, so the
// limit must always land inside the gamut but should stay close to it.
func TestOklabTriangleLimitStaysInside(t *testing.T) {
	for hi := 0; hi < 64; hi++ {
		for li := 1; li < 16; li++ {
			h := float64(hi) / 64
			l := float64(li) / 16
			// A hair inside the limit: the cusp fit and the trig tables
			// are both approximate at the 1e-3 level.
			limit := Oklab.ChromaLimit(h, l) * 0.99
			a := limit * math.Cos(h*2*math.Pi)
			b := limit * math.Sin(h*2*math.Pi)
			if !inUnitRange(oklabToLinearRGB(l, a, b)) {
				t.Errorf("h=%v l=%v: limit %v leaves the gamut", h, l, limit)
			}
		}
	}
}

// Independent cross-check of the 6-line boundary solver: walk outward
// along the hue ray in native Luv space, testing the RGB cube directly,
// and bisect the crossing.
func bruteForceHSLuvChroma(l, hue float64) float64 {
	inGamut := func(chroma float64) bool {
		u := chroma * math.Cos(hue*2*math.Pi)
		v := chroma * math.Sin(hue*2*math.Pi)
		x, y, z := luvToXYZ(l, u, v)
		return inUnitRange(xyzToLinearRGB(x, y, z))
	}
	lo, hi := 0.0, 200.0
	for inGamut(hi) {
		hi *= 2
	}
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		if inGamut(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func TestHSLuvChromaLimitMatchesBruteForce(t *testing.T) {
	var maxErr float64
	for hi := 0; hi < 48; hi++ {
		h := float64(hi) / 48
		got := HSLuv.ChromaLimit(h, 0.5) * 100
		want := bruteForceHSLuvChroma(50, h)
		err := math.Abs(got - want)
		if err > maxErr {
			maxErr = err
		}
		// The solver runs on the interpolated trig tables; the gamut eps
		// in inUnitRange adds a little more slack.
		if err > 0.5 {
			t.Errorf("hue %v: ChromaLimit %v, brute force %v", h, got, want)
		}
	}
	t.Logf("max chroma-limit error vs brute force: %.4f Luv units", maxErr)
}

// Every packed value, valid or garbage, must display inside [0,1].
func TestToRGBAAlwaysDisplayable(t *testing.T) {
	state := uint64(1)
	for _, s := range allSpaces {
		for i := 0; i < 2000; i++ {
			c := PackedColor(math.Float32frombits(uint32(splitmix64(&state)) &^ (1 << 24)))
			r, g, b, a := s.ToRGBA(c)
			for _, v := range []float64{r, g, b, a} {
				if v < 0 || v > 1 || math.IsNaN(v) {
					t.Fatalf("%s: ToRGBA(%v) = (%v, %v, %v, %v)", s.Name(), c, r, g, b, a)
				}
			}
		}
	}
}

func TestEnrichDullenExtremes(t *testing.T) {
	// Enrich to 1 reaches the chroma limit; Dullen to 1 reaches neutral.
	c := HSLuv.Encode(0.6, 0.3, 0.5, 1)
	if got := HSLuv.Enrich(c, 1).Channel2(); got != 255 {
		t.Errorf("hsluv Enrich(c, 1) saturation byte = %d, want 255", got)
	}
	if got := HSLuv.Dullen(c, 1).Channel2(); got != 0 {
		t.Errorf("hsluv Dullen(c, 1) saturation byte = %d, want 0", got)
	}
	for _, s := range []Space{CIELab, IPT, IPTHQ, Oklab} {
		in := s.FromRGBA(0.6, 0.4, 0.3, 1)
		rich := s.Enrich(in, 1)
		chroma, hue := cartesianChroma(rich)
		limit := s.ChromaLimit(hue, s.LightnessOf(rich))
		if math.Abs(chroma-limit) > 2.0/255 {
			t.Errorf("%s: Enrich(c, 1) chroma %v, limit %v", s.Name(), chroma, limit)
		}
		dull := s.Dullen(in, 1)
		if chroma, _ := cartesianChroma(dull); chroma > 1.5/255 {
			t.Errorf("%s: Dullen(c, 1) chroma %v, want ~0", s.Name(), chroma)
		}
	}
}

func TestClampToGamutPullsBackInside(t *testing.T) {
	for _, s := range []Space{CIELab, IPT, IPTHQ, Oklab} {
		// A maximally chromatic mid-lightness value is far outside every
		// gamut.
		c := s.Encode(0.5, 1, 1, 1)
		clamped := s.ClampToGamut(c)
		if !s.InGamut(clamped) {
			t.Errorf("%s: clamped color still out of gamut", s.Name())
		}
		if got := s.LightnessOf(clamped); math.Abs(got-0.5) > 1.0/255 {
			t.Errorf("%s: clamp moved lightness to %v", s.Name(), got)
		}
	}
}

func TestLightenDarkenExtremes(t *testing.T) {
	for _, s := range allSpaces {
		c := s.FromRGBA(0.8, 0.3, 0.3, 1)
		if got := s.LightnessOf(s.Lighten(c, 1)); got != 1 {
			t.Errorf("%s: Lighten(c, 1) lightness = %v", s.Name(), got)
		}
		if got := s.LightnessOf(s.Darken(c, 1)); got != 0 {
			t.Errorf("%s: Darken(c, 1) lightness = %v", s.Name(), got)
		}
		if got := s.Lighten(c, 0); got != c {
			t.Errorf("%s: Lighten(c, 0) = %v, want %v", s.Name(), got, c)
		}
		if got := s.Darken(c, 0); got != c {
			t.Errorf("%s: Darken(c, 0) = %v, want %v", s.Name(), got, c)
		}
	}
}

func TestRotateHueFullTurnIsIdentity(t *testing.T) {
	for _, s := range allSpaces {
		c := s.FromRGBA(0.2, 0.7, 0.4, 1)
		rotated := c
		for i := 0; i < 4; i++ {
			rotated = s.RotateHue(rotated, 0.25)
		}
		// Each quarter turn re-quantizes the channels and the cartesian
		// spaces also go through the trig tables, so allow a few bytes
		// of accumulated drift.
		if d := int(math.Abs(float64(rotated.Channel2()) - float64(c.Channel2()))); d > 3 {
			t.Errorf("%s: channel 2 drifted by %d after a full turn", s.Name(), d)
		}
		if d := int(math.Abs(float64(rotated.Channel3()) - float64(c.Channel3()))); d > 3 {
			t.Errorf("%s: channel 3 drifted by %d after a full turn", s.Name(), d)
		}
	}
}

func TestDullenToGrayKillsChroma(t *testing.T) {
	for _, s := range []Space{HSLuv, CIELab, IPT, IPTHQ, Oklab} {
		c := s.FromRGBA(0.9, 0.2, 0.2, 1)
		gray := s.Dullen(c, 1)
		r, g, b, _ := s.ToRGBA(gray)
		if math.Abs(r-g) > 0.02 || math.Abs(g-b) > 0.02 {
			t.Errorf("%s: Dullen(c, 1) = (%v, %v, %v), want neutral", s.Name(), r, g, b)
		}
	}
}

// The hand-written inverse matrices must actually invert their forward
// counterparts. The published constants are rounded, so the product is
// compared against identity with a loose bound.
func TestMatrixInverses(t *testing.T) {
	pairs := []struct {
		name     string
		fwd, inv [9]float64
		tol      float64
	}{
		{"rgb/xyz", rgbToXYZMatrix, xyzToRGBMatrix, 1e-5},
		{"xyz/lms", xyzToLMSMatrix, lmsToXYZMatrix, 1e-9},
		{"lms/ipt", lmsToIPTMatrix, iptToLMSMatrix, 1e-4},
		{"oklab m1", oklabM1, oklabM1Inv, 1e-4},
		{"oklab m2", oklabM2, oklabM2Inv, 1e-4},
	}
	for _, p := range pairs {
		t.Run(p.name, func(t *testing.T) {
			fwd := mat.NewDense(3, 3, p.fwd[:])
			inv := mat.NewDense(3, 3, p.inv[:])
			var prod mat.Dense
			prod.Mul(inv, fwd)
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					want := 0.0
					if i == j {
						want = 1.0
					}
					if got := prod.At(i, j); math.Abs(got-want) > p.tol {
						t.Errorf("(inv*fwd)[%d][%d] = %v, want %v within %v", i, j, got, want, p.tol)
					}
				}
			}
		})
	}
}

// Cross-check the CIELAB pipeline against an independent implementation.
var (
	chromathRGB2XYZ = chromath.NewRGBTransformer(&chromath.SpaceSRGB, nil, nil, nil, 1.0, nil)
	chromathLab2XYZ = chromath.NewLabTransformer(&chromath.IlluminantRefD65)
)

func TestCIELabMatchesChromath(t *testing.T) {
	// Both sides use D65 sRGB, but with independently rounded matrix
	// constants; agreement within a fraction of a Lab unit is expected.
	const tol = 0.5
	for ri := 0; ri <= 4; ri++ {
		for gi := 0; gi <= 4; gi++ {
			for bi := 0; bi <= 4; bi++ {
				r := float64(ri) / 4
				g := float64(gi) / 4
				b := float64(bi) / 4

				x, y, z := linearRGBToXYZ(srgbToLinear(r), srgbToLinear(g), srgbToLinear(b))
				gotL, gotA, gotB := xyzToLab(x, y, z)

				xyz := chromathRGB2XYZ.Convert(chromath.RGB{r, g, b})
				want := chromathLab2XYZ.Invert(xyz)

				if math.Abs(gotL-want.L()) > tol ||
					math.Abs(gotA-want.A()) > tol ||
					math.Abs(gotB-want.B()) > tol {
					t.Errorf("rgb(%v, %v, %v): lab (%v, %v, %v), chromath (%v, %v, %v)",
						r, g, b, gotL, gotA, gotB, want.L(), want.A(), want.B())
				}
			}
		}
	}
}

func BenchmarkToRGBA(b *testing.B) {
	for _, s := range allSpaces {
		c := s.FromRGBA(0.3, 0.6, 0.9, 1)
		b.Run(s.Name(), func(b *testing.B) {
			var sink float64
			for i := 0; i < b.N; i++ {
				r, _, _, _ := s.ToRGBA(c)
				sink += r
			}
			_ = sink
		})
	}
}

func BenchmarkChromaLimit(b *testing.B) {
	for _, s := range allSpaces {
		b.Run(s.Name(), func(b *testing.B) {
			var sink float64
			for i := 0; i < b.N; i++ {
				sink += s.ChromaLimit(0.37, 0.6)
			}
			_ = sink
		})
	}
}
