package chroma

import (
	"math"

	"github.com/gogpu/chroma/internal/trig"
)

// Oklab packs channel 1 as L in [0,1] and channels 2 and 3 as the signed
// a/b axes remapped to [0,1] around 0.5, where one full channel covers
// one native unit (sRGB stays within roughly ±0.28 on either axis).
var Oklab Space = oklabSpace{}

type oklabSpace struct{}

// Oklab matrices (Björn Ottosson's reference constants). M1 maps linear
// sRGB to LMS, M2 maps cube-rooted LMS to Lab; the inverse pair goes the
// other way.
var (
	oklabM1 = [9]float64{
		0.4122214708, 0.5363325363, 0.0514459929,
		0.2119034982, 0.6806995451, 0.1073969566,
		0.0883024619, 0.2817188376, 0.6299787005,
	}
	oklabM2 = [9]float64{
		0.2104542553, 0.7936177850, -0.0040720468,
		1.9779984951, -2.4285922050, 0.4505937099,
		0.0259040371, 0.7827717662, -0.8086757660,
	}
	oklabM2Inv = [9]float64{
		1.0, 0.3963377774, 0.2158037573,
		1.0, -0.1055613458, -0.0638541728,
		1.0, -0.0894841775, -1.2914855480,
	}
	oklabM1Inv = [9]float64{
		4.0767416621, -3.3077115913, 0.2309699292,
		-1.2684380046, 2.6097574011, -0.3413193965,
		-0.0041960863, -0.7034186147, 1.7076147010,
	}
)

func (oklabSpace) Name() string { return "oklab" }

func (oklabSpace) roles() channelRoles { return channelRoles{hue: -1, sat: -1, light: 0} }

func (oklabSpace) Encode(l, a, b, alpha float64) PackedColor {
	return packFloats(l, a, b, alpha)
}

func (oklabSpace) EncodeClamped(l, a, b, alpha float64) PackedColor {
	return packFloats(clamp01(l), clamp01(a), clamp01(b), clamp01(alpha))
}

func (sp oklabSpace) ToRGBA(c PackedColor) (r, g, b, a float64) {
	ch1, ch2, ch3, a := c.Decode()
	switch lightnessExtreme(c.Channel1()) {
	case -1:
		return 0, 0, 0, a
	case 1:
		return 1, 1, 1, a
	}
	lr, lg, lb := oklabToLinearRGB(ch1, ch2-0.5, ch3-0.5)
	r = clamp01(linearToSRGB(clamp01(lr)))
	g = clamp01(linearToSRGB(clamp01(lg)))
	b = clamp01(linearToSRGB(clamp01(lb)))
	return r, g, b, a
}

func (sp oklabSpace) FromRGBA(r, g, b, a float64) PackedColor {
	lr := srgbToLinear(clamp01(r))
	lg := srgbToLinear(clamp01(g))
	lb := srgbToLinear(clamp01(b))
	okL, okA, okB := linearRGBToOklab(lr, lg, lb)
	return sp.EncodeClamped(okL, okA+0.5, okB+0.5, a)
}

// ChromaLimit uses the closed-form gamut cusp: the widest chroma at this
// hue is found analytically, and the boundary at any lightness is the
// triangle through black, the cusp and white. The triangle slightly
// under-covers the true boundary near the cusp, which errs on the safe
// side for clamping.
func (oklabSpace) ChromaLimit(hue, lightness float64) float64 {
	if lightness <= 0 || lightness >= 1 {
		return 0
	}
	hue = wrapUnit(hue)
	aUnit := trig.CosTurns(hue)
	bUnit := trig.SinTurns(hue)
	cuspL, cuspC := oklabFindCusp(aUnit, bUnit)
	if lightness < cuspL {
		return cuspC * lightness / cuspL
	}
	return cuspC * (1 - lightness) / (1 - cuspL)
}

func (oklabSpace) InGamut(c PackedColor) bool {
	ch1, ch2, ch3, _ := c.Decode()
	return inUnitRange(oklabToLinearRGB(ch1, ch2-0.5, ch3-0.5))
}

func (sp oklabSpace) ClampToGamut(c PackedColor) PackedColor {
	return cartesianClampToGamut(sp, c)
}

func (sp oklabSpace) HueOf(c PackedColor) float64 {
	_, hue := cartesianChroma(c)
	return hue
}

func (oklabSpace) LightnessOf(c PackedColor) float64 {
	return float64(c.Channel1()) / 255
}

func (oklabSpace) WithLightness(c PackedColor, lightness float64) PackedColor {
	return withChannelByte(c, 0, quantize(lightness))
}

func (oklabSpace) Lighten(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 0, byteLerp(c.Channel1(), 255, change))
}

func (oklabSpace) Darken(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 0, byteLerp(c.Channel1(), 0, change))
}

func (sp oklabSpace) Enrich(c PackedColor, change float64) PackedColor {
	return cartesianEnrich(sp, c, change)
}

func (sp oklabSpace) Dullen(c PackedColor, change float64) PackedColor {
	return cartesianDullen(sp, c, change)
}

func (sp oklabSpace) RotateHue(c PackedColor, change float64) PackedColor {
	return cartesianRotateHue(sp, c, change)
}

// linearRGBToOklab converts linear sRGB to native Oklab coordinates.
func linearRGBToOklab(r, g, b float64) (okL, okA, okB float64) {
	l, m, s := mul3(oklabM1, r, g, b)
	return mul3(oklabM2, math.Cbrt(l), math.Cbrt(m), math.Cbrt(s))
}

// oklabToLinearRGB converts native Oklab coordinates to linear sRGB,
// unclamped.
func oklabToLinearRGB(okL, okA, okB float64) (r, g, b float64) {
	l, m, s := mul3(oklabM2Inv, okL, okA, okB)
	return mul3(oklabM1Inv, l*l*l, m*m*m, s*s*s)
}

// oklabMaxSaturation returns the largest S = C/L such that the color
// (1, S·a, S·b) stays inside linear sRGB, for a unit-chroma direction
// (a, b). Polynomial fit per dominant primary, sharpened with one Halley
// step against the channel that clips first.
func oklabMaxSaturation(a, b float64) float64 {
	var k0, k1, k2, k3, k4, wl, wm, ws float64
	switch {
	case -1.88170328*a-0.80936493*b > 1:
		// red channel clips first
		k0, k1, k2, k3, k4 = 1.19086277, 1.76576728, 0.59662641, 0.75515197, 0.56771245
		wl, wm, ws = oklabM1Inv[0], oklabM1Inv[1], oklabM1Inv[2]
	case 1.81444104*a-1.19445276*b > 1:
		// green channel clips first
		k0, k1, k2, k3, k4 = 0.73956515, -0.45954404, 0.08285427, 0.12541070, 0.14503204
		wl, wm, ws = oklabM1Inv[3], oklabM1Inv[4], oklabM1Inv[5]
	default:
		// blue channel clips first
		k0, k1, k2, k3, k4 = 1.35733652, -0.00915799, -1.15130210, -0.50559606, 0.00692167
		wl, wm, ws = oklabM1Inv[6], oklabM1Inv[7], oklabM1Inv[8]
	}

	sat := k0 + k1*a + k2*b + k3*a*a + k4*a*b

	kl := oklabM2Inv[1]*a + oklabM2Inv[2]*b
	km := oklabM2Inv[4]*a + oklabM2Inv[5]*b
	ks := oklabM2Inv[7]*a + oklabM2Inv[8]*b

	l_ := 1 + sat*kl
	m_ := 1 + sat*km
	s_ := 1 + sat*ks

	l, m, s := l_*l_*l_, m_*m_*m_, s_*s_*s_
	lDS := 3 * kl * l_ * l_
	mDS := 3 * km * m_ * m_
	sDS := 3 * ks * s_ * s_
	lDS2 := 6 * kl * kl * l_
	mDS2 := 6 * km * km * m_
	sDS2 := 6 * ks * ks * s_

	f := wl*l + wm*m + ws*s
	f1 := wl*lDS + wm*mDS + ws*sDS
	f2 := wl*lDS2 + wm*mDS2 + ws*sDS2

	return sat - f*f1/(f1*f1-0.5*f*f2)
}

// oklabFindCusp returns the L and C of the gamut cusp for a unit-chroma
// direction (a, b): the point of maximum chroma over all lightnesses.
func oklabFindCusp(a, b float64) (cuspL, cuspC float64) {
	sMax := oklabMaxSaturation(a, b)
	r, g, bl := oklabToLinearRGB(1, sMax*a, sMax*b)
	cuspL = math.Cbrt(1 / math.Max(r, math.Max(g, bl)))
	return cuspL, cuspL * sMax
}
