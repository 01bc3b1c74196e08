package chroma

import (
	"math"

	"github.com/gogpu/chroma/internal/trig"
)

// HSLuv packs channel 1 as hue (turns), channel 2 as saturation relative
// to the gamut boundary and channel 3 as CIELUV lightness scaled to [0,1].
//
// Because saturation is stored relative to the boundary, every encodable
// HSLuv value is displayable: InGamut is always true and ClampToGamut is
// the identity. The price is that decoding needs the boundary function,
// on the CPU and in the shader alike.
var HSLuv Space = hsluvSpace{}

type hsluvSpace struct{}

// CIELUV constants (D65 white). The 284517-family coefficients come from
// expanding the Luv-to-RGB pipeline into line equations over the chroma
// plane; the shader mirror uses the same values.
const (
	luvKappa   = 903.2962962962963  // 24389/27
	luvEpsilon = 0.0088564516790356 // 216/24389

	luvRefU = 0.19783000664283
	luvRefV = 0.46831999493879
)

func (hsluvSpace) Name() string { return "hsluv" }

func (hsluvSpace) roles() channelRoles { return channelRoles{hue: 0, sat: 1, light: 2} }

func (hsluvSpace) Encode(h, s, l, alpha float64) PackedColor {
	return packFloats(h, s, l, alpha)
}

func (hsluvSpace) EncodeClamped(h, s, l, alpha float64) PackedColor {
	return packFloats(wrapUnit(h), clamp01(s), clamp01(l), clamp01(alpha))
}

func (hsluvSpace) ToRGBA(c PackedColor) (r, g, b, a float64) {
	h, s, l, a := c.Decode()
	switch lightnessExtreme(c.Channel3()) {
	case -1:
		return 0, 0, 0, a
	case 1:
		return 1, 1, 1, a
	}
	luvL := l * 100
	chroma := maxChromaForLH(luvL, h) * s
	u := chroma * trig.CosTurns(h)
	v := chroma * trig.SinTurns(h)
	x, y, z := luvToXYZ(luvL, u, v)
	lr, lg, lb := xyzToLinearRGB(x, y, z)
	r = clamp01(linearToSRGB(clamp01(lr)))
	g = clamp01(linearToSRGB(clamp01(lg)))
	b = clamp01(linearToSRGB(clamp01(lb)))
	return r, g, b, a
}

func (sp hsluvSpace) FromRGBA(r, g, b, a float64) PackedColor {
	lr := srgbToLinear(clamp01(r))
	lg := srgbToLinear(clamp01(g))
	lb := srgbToLinear(clamp01(b))
	x, y, z := linearRGBToXYZ(lr, lg, lb)
	luvL, u, v := xyzToLuv(x, y, z)
	if luvL <= 0 {
		return sp.Encode(0, 0, 0, clamp01(a))
	}
	if luvL >= 100 {
		return sp.Encode(0, 0, 1, clamp01(a))
	}
	h := trig.Atan2Turns(v, u)
	chroma := math.Hypot(u, v)
	limit := maxChromaForLH(luvL, h)
	s := 0.0
	if limit > 1e-8 { // floor the denominator: near-neutral colors have no meaningful saturation
		s = chroma / limit
	}
	return sp.EncodeClamped(h, s, luvL/100, a)
}

// ChromaLimit reports the boundary in the packed saturation scale, where
// the native Luv chroma is divided by 100 to sit alongside the [0,1]
// lightness channel.
func (hsluvSpace) ChromaLimit(hue, lightness float64) float64 {
	if lightness <= 0 || lightness >= 1 {
		return 0
	}
	return maxChromaForLH(lightness*100, wrapUnit(hue)) / 100
}

func (hsluvSpace) InGamut(c PackedColor) bool { return true }

func (hsluvSpace) ClampToGamut(c PackedColor) PackedColor { return c }

func (hsluvSpace) HueOf(c PackedColor) float64 {
	return float64(c.Channel1()) / 255
}

func (hsluvSpace) LightnessOf(c PackedColor) float64 {
	return float64(c.Channel3()) / 255
}

func (hsluvSpace) WithLightness(c PackedColor, lightness float64) PackedColor {
	return withChannelByte(c, 2, quantize(lightness))
}

func (hsluvSpace) Lighten(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 2, byteLerp(c.Channel3(), 255, change))
}

func (hsluvSpace) Darken(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 2, byteLerp(c.Channel3(), 0, change))
}

func (hsluvSpace) Enrich(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 1, byteLerp(c.Channel2(), 255, change))
}

func (hsluvSpace) Dullen(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 1, byteLerp(c.Channel2(), 0, change))
}

func (hsluvSpace) RotateHue(c PackedColor, change float64) PackedColor {
	rotated := uint8(int(c.Channel1()) + int(math.Round(change*256)))
	return withChannelByte(c, 0, rotated)
}

// luvToXYZ converts CIELUV (L in [0,100]) to CIEXYZ. L must be positive.
func luvToXYZ(l, u, v float64) (x, y, z float64) {
	var yy float64
	if l > 8 {
		t := (l + 16) / 116
		yy = t * t * t
	} else {
		yy = l / luvKappa
	}
	varU := u/(13*l) + luvRefU
	varV := v/(13*l) + luvRefV
	if varV <= 0 {
		return 0, yy, 0
	}
	x = yy * 9 * varU / (4 * varV)
	z = yy * (12 - 3*varU - 20*varV) / (4 * varV)
	return x, yy, z
}

// xyzToLuv converts CIEXYZ to CIELUV (L in [0,100]).
func xyzToLuv(x, y, z float64) (l, u, v float64) {
	if y > luvEpsilon {
		l = 116*math.Cbrt(y) - 16
	} else {
		l = y * luvKappa
	}
	denom := x + 15*y + 3*z
	if denom == 0 || l <= 0 {
		return l, 0, 0
	}
	varU := 4 * x / denom
	varV := 9 * y / denom
	u = 13 * l * (varU - luvRefU)
	v = 13 * l * (varV - luvRefV)
	return l, u, v
}

// boundLine is one edge of the displayable gamut projected onto the
// chroma plane at a fixed lightness.
type boundLine struct {
	slope, intercept float64
}

// gamutBounds computes the six lines bounding the RGB cube at lightness
// L in (0,100): each RGB primary contributes two lines, one for the
// channel hitting 0 and one for it hitting 1.
func gamutBounds(l float64) [6]boundLine {
	var lines [6]boundLine
	sub1 := (l + 16) * (l + 16) * (l + 16) / 1560896
	sub2 := sub1
	if sub1 <= luvEpsilon {
		sub2 = l / luvKappa
	}
	for ch := 0; ch < 3; ch++ {
		m0 := xyzToRGBMatrix[ch*3]
		m1 := xyzToRGBMatrix[ch*3+1]
		m2 := xyzToRGBMatrix[ch*3+2]
		for t := 0; t < 2; t++ {
			top1 := (284517*m0 - 94839*m2) * sub2
			top2 := (838422*m2+769860*m1+731718*m0)*l*sub2 - 769860*float64(t)*l
			bottom := (632260*m2-126452*m1)*sub2 + 126452*float64(t)
			lines[ch*2+t] = boundLine{slope: top1 / bottom, intercept: top2 / bottom}
		}
	}
	return lines
}

// maxChromaForLH is the distance from the neutral axis to where the hue
// ray exits the RGB gamut, in native Luv chroma units. Hue is in turns,
// L in (0,100). Branches with no positive intersection are excluded.
func maxChromaForLH(l, hue float64) float64 {
	sin := trig.SinTurns(hue)
	cos := trig.CosTurns(hue)
	minLen := math.Inf(1)
	for _, line := range gamutBounds(l) {
		denom := sin - line.slope*cos
		if denom == 0 {
			continue
		}
		length := line.intercept / denom
		if length > 0 && length < minLen {
			minLen = length
		}
	}
	if math.IsInf(minLen, 1) {
		return 0
	}
	return minLen
}
