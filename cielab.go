package chroma

import (
	"math"

	"github.com/gogpu/chroma/internal/trig"
)

// CIELab packs channel 1 as L* scaled to [0,1], and channels 2 and 3 as
// the signed a*/b* axes remapped to [0,1] around a 0.5 center, where one
// full channel covers 255 native a*/b* units.
var CIELab Space = cielabSpace{}

type cielabSpace struct{}

// CIELAB constants (D65 white).
const (
	labKappa   = 903.2962962962963  // 24389/27
	labEpsilon = 0.0088564516790356 // 216/24389

	labWhiteX = 0.95047
	labWhiteZ = 1.08883

	// labAxisScale converts between native a*/b* units and the packed
	// [0,1] channel: packed = native/labAxisScale + 0.5.
	labAxisScale = 255.0
)

func (cielabSpace) Name() string { return "cielab" }

func (cielabSpace) roles() channelRoles { return channelRoles{hue: -1, sat: -1, light: 0} }

func (cielabSpace) Encode(l, a, b, alpha float64) PackedColor {
	return packFloats(l, a, b, alpha)
}

func (cielabSpace) EncodeClamped(l, a, b, alpha float64) PackedColor {
	return packFloats(clamp01(l), clamp01(a), clamp01(b), clamp01(alpha))
}

func (sp cielabSpace) ToRGBA(c PackedColor) (r, g, b, a float64) {
	ch1, ch2, ch3, a := c.Decode()
	switch lightnessExtreme(c.Channel1()) {
	case -1:
		return 0, 0, 0, a
	case 1:
		return 1, 1, 1, a
	}
	x, y, z := labToXYZ(ch1*100, (ch2-0.5)*labAxisScale, (ch3-0.5)*labAxisScale)
	lr, lg, lb := xyzToLinearRGB(x, y, z)
	r = clamp01(linearToSRGB(clamp01(lr)))
	g = clamp01(linearToSRGB(clamp01(lg)))
	b = clamp01(linearToSRGB(clamp01(lb)))
	return r, g, b, a
}

func (sp cielabSpace) FromRGBA(r, g, b, a float64) PackedColor {
	lr := srgbToLinear(clamp01(r))
	lg := srgbToLinear(clamp01(g))
	lb := srgbToLinear(clamp01(b))
	x, y, z := linearRGBToXYZ(lr, lg, lb)
	labL, labA, labB := xyzToLab(x, y, z)
	return sp.EncodeClamped(labL/100, labA/labAxisScale+0.5, labB/labAxisScale+0.5, a)
}

// ChromaLimit searches the RGB cube boundary by bisection: CIELAB has no
// cheap closed form over the sRGB gamut, but the in-gamut test is a pure
// matrix pipeline, so ~30 halvings pin the boundary well below a
// quantization step. The result is in packed chroma units (one unit is
// labAxisScale native C*ab units).
func (sp cielabSpace) ChromaLimit(hue, lightness float64) float64 {
	if lightness <= 0 || lightness >= 1 {
		return 0
	}
	hue = wrapUnit(hue)
	cos := trig.CosTurns(hue)
	sin := trig.SinTurns(hue)
	inGamut := func(chroma float64) bool {
		labC := chroma * labAxisScale
		x, y, z := labToXYZ(lightness*100, labC*cos, labC*sin)
		return inUnitRange(xyzToLinearRGB(x, y, z))
	}
	return bisectChroma(inGamut, 0.75)
}

func (sp cielabSpace) InGamut(c PackedColor) bool {
	ch1, ch2, ch3, _ := c.Decode()
	x, y, z := labToXYZ(ch1*100, (ch2-0.5)*labAxisScale, (ch3-0.5)*labAxisScale)
	return inUnitRange(xyzToLinearRGB(x, y, z))
}

func (sp cielabSpace) ClampToGamut(c PackedColor) PackedColor {
	return cartesianClampToGamut(sp, c)
}

func (sp cielabSpace) HueOf(c PackedColor) float64 {
	_, hue := cartesianChroma(c)
	return hue
}

func (cielabSpace) LightnessOf(c PackedColor) float64 {
	return float64(c.Channel1()) / 255
}

func (cielabSpace) WithLightness(c PackedColor, lightness float64) PackedColor {
	return withChannelByte(c, 0, quantize(lightness))
}

func (cielabSpace) Lighten(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 0, byteLerp(c.Channel1(), 255, change))
}

func (cielabSpace) Darken(c PackedColor, change float64) PackedColor {
	return withChannelByte(c, 0, byteLerp(c.Channel1(), 0, change))
}

func (sp cielabSpace) Enrich(c PackedColor, change float64) PackedColor {
	return cartesianEnrich(sp, c, change)
}

func (sp cielabSpace) Dullen(c PackedColor, change float64) PackedColor {
	return cartesianDullen(sp, c, change)
}

func (sp cielabSpace) RotateHue(c PackedColor, change float64) PackedColor {
	return cartesianRotateHue(sp, c, change)
}

// labToXYZ converts CIELAB (L* in [0,100]) to CIEXYZ under D65.
func labToXYZ(l, a, b float64) (x, y, z float64) {
	f1 := (l + 16) / 116
	f0 := a/500 + f1
	f2 := f1 - b/200

	f03 := f0 * f0 * f0
	if f03 > labEpsilon {
		x = f03
	} else {
		x = (116*f0 - 16) / labKappa
	}
	if l > labKappa*labEpsilon {
		y = f1 * f1 * f1
	} else {
		y = l / labKappa
	}
	f23 := f2 * f2 * f2
	if f23 > labEpsilon {
		z = f23
	} else {
		z = (116*f2 - 16) / labKappa
	}
	return x * labWhiteX, y, z * labWhiteZ
}

// xyzToLab converts CIEXYZ (D65) to CIELAB with L* in [0,100].
func xyzToLab(x, y, z float64) (l, a, b float64) {
	f := func(t float64) float64 {
		if t > labEpsilon {
			return math.Cbrt(t)
		}
		return (labKappa*t + 16) / 116
	}
	fx := f(x / labWhiteX)
	fy := f(y)
	fz := f(z / labWhiteZ)
	return 116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)
}

// bisectChroma finds the largest chroma (in [0, hi]) for which inGamut
// holds, assuming the gamut is star-shaped around the neutral axis.
func bisectChroma(inGamut func(float64) bool, hi float64) float64 {
	if inGamut(hi) {
		return hi
	}
	lo := 0.0
	for i := 0; i < 30; i++ {
		mid := (lo + hi) / 2
		if inGamut(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
