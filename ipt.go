package chroma

import (
	"math"

	"github.com/gogpu/chroma/internal/trig"
)

// IPT packs channel 1 as intensity I in [0,1] and channels 2 and 3 as the
// signed P/T axes remapped to [0,1] around 0.5, where one full channel
// covers 2 native P/T units.
//
// IPT is the fast variant: it feeds gamma-encoded sRGB straight into the
// LMS matrix, trading colorimetric accuracy for skipping the transfer
// function. IPTHQ runs the textbook pipeline through linear light.
var IPT Space = iptSpace{highQuality: false}

// IPTHQ is the high-quality IPT variant: sRGB is linearized before the
// XYZ and LMS matrices, matching Ebner and Fairchild's definition.
var IPTHQ Space = iptSpace{highQuality: true}

type iptSpace struct {
	highQuality bool
}

// IPT constants: the Hunt-Pointer-Estevez LMS matrices (D65 normalized)
// and the IPT opponent matrices, with the 0.43 channel nonlinearity.
const iptExponent = 0.43

var (
	xyzToLMSMatrix = [9]float64{
		0.4002, 0.7075, -0.0807,
		-0.2280, 1.1500, 0.0612,
		0.0, 0.0, 0.9184,
	}
	lmsToXYZMatrix = [9]float64{
		1.8502429449432056, -1.1383016378672328, 0.23843495850870136,
		0.3668307751713486, 0.6438845448402356, -0.010673443584379992,
		0.0, 0.0, 1.088850174216028,
	}
	lmsToIPTMatrix = [9]float64{
		0.4000, 0.4000, 0.2000,
		4.4550, -4.8510, 0.3960,
		0.8056, 0.3572, -1.1628,
	}
	iptToLMSMatrix = [9]float64{
		1.0, 0.0975689, 0.2052260,
		1.0, -0.1138764, 0.1332170,
		1.0, 0.0326151, -0.6768871,
	}
)

// iptAxisScale converts between native P/T units and the packed channel:
// packed = native/iptAxisScale + 0.5.
const iptAxisScale = 2.0

func (sp iptSpace) Name() string {
	if sp.highQuality {
		return "ipt_hq"
	}
	return "ipt"
}

func (iptSpace) roles() channelRoles { return channelRoles{hue: -1, sat: -1, light: 0} }

func (iptSpace) Encode(i, p, t, alpha float64) PackedColor {
	return packFloats(i, p, t, alpha)
}

func (iptSpace) EncodeClamped(i, p, t, alpha float64) PackedColor {
	return packFloats(clamp01(i), clamp01(p), clamp01(t), clamp01(alpha))
}

func (sp iptSpace) ToRGBA(c PackedColor) (r, g, b, a float64) {
	ch1, ch2, ch3, a := c.Decode()
	switch lightnessExtreme(c.Channel1()) {
	case -1:
		return 0, 0, 0, a
	case 1:
		return 1, 1, 1, a
	}
	r, g, b = sp.iptToRGB(ch1, (ch2-0.5)*iptAxisScale, (ch3-0.5)*iptAxisScale)
	return clamp01(r), clamp01(g), clamp01(b), a
}

func (sp iptSpace) FromRGBA(r, g, b, a float64) PackedColor {
	i, p, t := sp.rgbToIPT(clamp01(r), clamp01(g), clamp01(b))
	return sp.EncodeClamped(i, p/iptAxisScale+0.5, t/iptAxisScale+0.5, a)
}

// rgbToIPT converts sRGB in [0,1] to native IPT coordinates.
func (sp iptSpace) rgbToIPT(r, g, b float64) (i, p, t float64) {
	if sp.highQuality {
		r, g, b = srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)
	}
	x, y, z := linearRGBToXYZ(r, g, b)
	l, m, s := mul3(xyzToLMSMatrix, x, y, z)
	l, m, s = iptForward(l), iptForward(m), iptForward(s)
	return mul3(lmsToIPTMatrix, l, m, s)
}

// iptToRGB converts native IPT coordinates to sRGB, unclamped.
func (sp iptSpace) iptToRGB(i, p, t float64) (r, g, b float64) {
	l, m, s := mul3(iptToLMSMatrix, i, p, t)
	l, m, s = iptInverse(l), iptInverse(m), iptInverse(s)
	x, y, z := mul3(lmsToXYZMatrix, l, m, s)
	r, g, b = xyzToLinearRGB(x, y, z)
	if sp.highQuality {
		r, g, b = linearToSRGB(clamp01(r)), linearToSRGB(clamp01(g)), linearToSRGB(clamp01(b))
	}
	return r, g, b
}

// iptForward applies the IPT channel nonlinearity, preserving sign.
func iptForward(v float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), iptExponent), v)
}

// iptInverse undoes iptForward.
func iptInverse(v float64) float64 {
	return math.Copysign(math.Pow(math.Abs(v), 1/iptExponent), v)
}

// ChromaLimit bisects along the hue ray in the P/T plane, in packed
// chroma units (one unit is iptAxisScale native units).
func (sp iptSpace) ChromaLimit(hue, lightness float64) float64 {
	if lightness <= 0 || lightness >= 1 {
		return 0
	}
	hue = wrapUnit(hue)
	cos := trig.CosTurns(hue)
	sin := trig.SinTurns(hue)
	inGamut := func(chroma float64) bool {
		native := chroma * iptAxisScale
		return sp.nativeInGamut(lightness, native*cos, native*sin)
	}
	return bisectChroma(inGamut, 0.5)
}

func (sp iptSpace) InGamut(c PackedColor) bool {
	ch1, ch2, ch3, _ := c.Decode()
	return sp.nativeInGamut(ch1, (ch2-0.5)*iptAxisScale, (ch3-0.5)*iptAxisScale)
}

// nativeInGamut tests native IPT coordinates against the RGB cube without
// the clamping that iptToRGB applies for display.
func (sp iptSpace) nativeInGamut(i, p, t float64) bool {
	l, m, s := mul3(iptToLMSMatrix, i, p, t)
	l, m, s = iptInverse(l), iptInverse(m), iptInverse(s)
	x, y, z := mul3(lmsToXYZMatrix, l, m, s)
	// Both variants bound the same linear cube; the transfer function is
	// monotonic and maps [0,1] onto [0,1], so it cannot change membership.
	return inUnitRange(xyzToLinearRGB(x, y, z))
}

func (sp iptSpace) ClampToGamut(c PackedColor) PackedColor {
	return cartesianClampToGamut(sp, c)
}

func (sp iptSpace) HueOf(c PackedColor) float64 {
	_, hue := cartesianChroma(c)
	return hue
}

func (iptSpace) LightnessOf(c PackedColor) float64 {
	return float64(c.Channel1()) / 255
}

func (iptSpace) WithLightness(c PackedColor, lightness float64) PackedColor {
	return withChannelByte(c, 0, quantize(lightness))
}

func (iptSpace) Lighten(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 0, byteLerp(c.Channel1(), 255, change))
}

func (iptSpace) Darken(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 0, byteLerp(c.Channel1(), 0, change))
}

func (sp iptSpace) Enrich(c PackedColor, change float64) PackedColor {
	return cartesianEnrich(sp, c, change)
}

func (sp iptSpace) Dullen(c PackedColor, change float64) PackedColor {
	return cartesianDullen(sp, c, change)
}

func (sp iptSpace) RotateHue(c PackedColor, change float64) PackedColor {
	return cartesianRotateHue(sp, c, change)
}
