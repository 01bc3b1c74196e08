package chroma

import (
	"math"

	"github.com/gogpu/chroma/internal/trig"
)

// Space is a color-space codec. Each implementation converts between
// device sRGB and its own native coordinates, packs those coordinates
// into a PackedColor and knows the gamut boundary of displayable RGB in
// its own terms.
//
// All operations are pure functions over immutable packed values; a Space
// carries no state and is safe for concurrent use.
type Space interface {
	// Name returns the lower-case space identifier ("hsluv", "oklab", ...).
	Name() string

	// Encode packs native channel values without validation. Inputs must
	// already be in [0,1]; it is the fast path for values that are
	// known-good. Use EncodeClamped at API boundaries.
	Encode(ch1, ch2, ch3, alpha float64) PackedColor

	// EncodeClamped wraps hue channels modulo 1, clamps every other
	// channel to [0,1] and packs. It never fails.
	EncodeClamped(ch1, ch2, ch3, alpha float64) PackedColor

	// ToRGBA runs the full inverse pipeline: unpack, convert the native
	// coordinates to linear RGB, apply the sRGB transfer function and
	// clamp. Lightness within half a quantization step of 0 or 1 short-
	// circuits to pure black or white, which keeps the chroma math away
	// from its singularities at the lightness extremes. Results are
	// always in [0,1].
	ToRGBA(c PackedColor) (r, g, b, a float64)

	// FromRGBA runs the forward pipeline from sRGB in [0,1] to a packed
	// native color. Out-of-range inputs are clamped.
	FromRGBA(r, g, b, a float64) PackedColor

	// ChromaLimit returns the maximum chroma (in this space's normalized
	// chroma units) that stays inside displayable RGB at the given hue
	// and lightness, both in [0,1]. It is 0 at lightness 0 and 1, finite
	// and non-negative everywhere.
	ChromaLimit(hue, lightness float64) float64

	// InGamut reports whether the packed color converts to RGB within
	// [0,1] without clamping.
	InGamut(c PackedColor) bool

	// ClampToGamut reduces the color's chroma to the gamut boundary if it
	// exceeds it, leaving hue, lightness and alpha unchanged.
	ClampToGamut(c PackedColor) PackedColor

	// HueOf returns the native hue of the packed color in turns [0,1).
	HueOf(c PackedColor) float64

	// LightnessOf returns the native lightness channel in [0,1].
	LightnessOf(c PackedColor) float64

	// WithLightness replaces the native lightness channel, leaving the
	// chromatic channels and alpha untouched.
	WithLightness(c PackedColor, lightness float64) PackedColor

	// Lighten moves lightness a fraction of the way toward white.
	// change=0 is a no-op, change=1 reaches the extreme exactly.
	Lighten(c PackedColor, change float64) PackedColor

	// Darken moves lightness a fraction of the way toward black.
	Darken(c PackedColor, change float64) PackedColor

	// Enrich moves chroma a fraction of the way toward the gamut
	// boundary at the color's hue and lightness.
	Enrich(c PackedColor, change float64) PackedColor

	// Dullen moves chroma a fraction of the way toward gray.
	Dullen(c PackedColor, change float64) PackedColor

	// RotateHue advances the hue by change turns, wrapping.
	RotateHue(c PackedColor, change float64) PackedColor

	// roles reports which packed channel plays which perceptual role.
	// The Space set is closed: implementations live in this package so
	// the packed channel layouts and shader mirrors stay in lockstep.
	roles() channelRoles
}

// channelRoles maps packed channel indices (0-2) to perceptual roles.
// An index of -1 means the space has no such channel: cartesian spaces
// have no hue or saturation channel, RGB has none of the three.
type channelRoles struct {
	hue, sat, light int
}

// sRGB transfer function constants. The shader sources are generated from
// these same values; see shader.go.
const (
	srgbGammaThreshold  = 0.04045
	srgbLinearThreshold = 0.0031308
	srgbLinearSlope     = 12.92
	srgbGammaOffset     = 0.055
	srgbGamma           = 2.4
)

// srgbToLinear converts an sRGB component in [0,1] to linear light.
func srgbToLinear(s float64) float64 {
	if s <= srgbGammaThreshold {
		return s / srgbLinearSlope
	}
	return math.Pow((s+srgbGammaOffset)/(1+srgbGammaOffset), srgbGamma)
}

// linearToSRGB converts a linear component in [0,1] to sRGB.
func linearToSRGB(l float64) float64 {
	if l <= srgbLinearThreshold {
		return l * srgbLinearSlope
	}
	return (1+srgbGammaOffset)*math.Pow(l, 1/srgbGamma) - srgbGammaOffset
}

// Linear sRGB (D65) to CIEXYZ and back.
var (
	rgbToXYZMatrix = [9]float64{
		0.4124564, 0.3575761, 0.1804375,
		0.2126729, 0.7151522, 0.0721750,
		0.0193339, 0.1191920, 0.9503041,
	}
	xyzToRGBMatrix = [9]float64{
		3.2404542, -1.5371385, -0.4985314,
		-0.9692660, 1.8760108, 0.0415560,
		0.0556434, -0.2040259, 1.0572252,
	}
)

// mul3 applies a row-major 3x3 matrix to a column vector.
func mul3(m [9]float64, v0, v1, v2 float64) (float64, float64, float64) {
	return m[0]*v0 + m[1]*v1 + m[2]*v2,
		m[3]*v0 + m[4]*v1 + m[5]*v2,
		m[6]*v0 + m[7]*v1 + m[8]*v2
}

// linearRGBToXYZ converts linear sRGB to CIEXYZ (D65 white).
func linearRGBToXYZ(r, g, b float64) (x, y, z float64) {
	return mul3(rgbToXYZMatrix, r, g, b)
}

// xyzToLinearRGB converts CIEXYZ (D65 white) to linear sRGB.
func xyzToLinearRGB(x, y, z float64) (r, g, b float64) {
	return mul3(xyzToRGBMatrix, x, y, z)
}

// rgbToHSL computes hue (turns), saturation and lightness in the classic
// max/min-channel HSL sense from sRGB components in [0,1].
func rgbToHSL(r, g, b float64) (h, s, l float64) {
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l = (maxC + minC) / 2
	d := maxC - minC
	if d == 0 {
		return 0, 0, l
	}
	if div := math.Min(l, 1-l); div != 0 {
		s = (maxC - l) / div
	}
	switch maxC {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, l
}

// hslToRGB is the inverse of rgbToHSL. Hue is in turns and wraps.
func hslToRGB(h, s, l float64) (r, g, b float64) {
	h = wrapUnit(h)
	f := func(n float64) float64 {
		k := math.Mod(n+h*12, 12)
		a := s * math.Min(l, 1-l)
		return l - a*math.Max(-1, math.Min(math.Min(k-3, 9-k), 1))
	}
	return f(0), f(8), f(4)
}

// inUnitRange reports whether a linear RGB triple lies inside the
// displayable cube, with a small tolerance for quantization noise.
func inUnitRange(r, g, b float64) bool {
	const eps = 1e-4
	return r >= -eps && r <= 1+eps &&
		g >= -eps && g <= 1+eps &&
		b >= -eps && b <= 1+eps
}

// lightnessExtreme classifies a lightness byte as pure black (-1), pure
// white (+1) or neither (0). The extremes bypass the general inverse
// transform, avoiding division by zero in the chroma and gamut math.
func lightnessExtreme(lightByte uint8) int {
	switch lightByte {
	case 0:
		return -1
	case 255:
		return 1
	}
	return 0
}

// cartesian space helpers. CIELab, IPT, IPT_HQ and Oklab all pack their
// two signed chromatic axes remapped to [0,1] around a 0.5 center; the
// edit operations below are shared between them.

// cartesianChroma returns the normalized chroma and hue (turns) of a
// packed cartesian-space color.
func cartesianChroma(c PackedColor) (chroma, hue float64) {
	_, ch2, ch3, _ := c.Decode()
	a := ch2 - 0.5
	b := ch3 - 0.5
	chroma = math.Hypot(a, b)
	hue = trig.Atan2Turns(b, a)
	return
}

// cartesianWithChroma re-encodes a cartesian-space color at a new chroma,
// preserving hue, lightness and alpha.
func cartesianWithChroma(s Space, c PackedColor, chroma, hue float64) PackedColor {
	ch1, _, _, alpha := c.Decode()
	a := chroma * trig.CosTurns(hue)
	b := chroma * trig.SinTurns(hue)
	return s.Encode(ch1, clamp01(a+0.5), clamp01(b+0.5), alpha)
}

// cartesianEnrich moves chroma toward the gamut boundary.
func cartesianEnrich(s Space, c PackedColor, change float64) PackedColor {
	chroma, hue := cartesianChroma(c)
	limit := s.ChromaLimit(hue, s.LightnessOf(c))
	if limit <= chroma {
		return c
	}
	return cartesianWithChroma(s, c, lerpToward(chroma, limit, change), hue)
}

// cartesianDullen moves chroma toward the neutral axis.
func cartesianDullen(s Space, c PackedColor, change float64) PackedColor {
	chroma, hue := cartesianChroma(c)
	return cartesianWithChroma(s, c, lerpToward(chroma, 0, change), hue)
}

// cartesianRotateHue rotates the chromatic axes around the neutral center.
func cartesianRotateHue(s Space, c PackedColor, change float64) PackedColor {
	chroma, hue := cartesianChroma(c)
	return cartesianWithChroma(s, c, chroma, wrapUnit(hue+change))
}

// cartesianClampToGamut pulls chroma back to the boundary when it
// overshoots. Hue, lightness and alpha are preserved.
func cartesianClampToGamut(s Space, c PackedColor) PackedColor {
	if s.InGamut(c) {
		return c
	}
	chroma, hue := cartesianChroma(c)
	limit := s.ChromaLimit(hue, s.LightnessOf(c))
	if chroma <= limit {
		return c
	}
	// Land one byte step inside the boundary so re-quantizing the
	// chromatic channels cannot round the result back out.
	limit = math.Max(limit-1.0/255, 0)
	return cartesianWithChroma(s, c, limit, hue)
}

// byteLerp interpolates a channel in its 8-bit domain, matching the shader
// arithmetic exactly: change=0 keeps the byte, change=1 reaches target.
func byteLerp(b uint8, target uint8, change float64) uint8 {
	v := float64(b) + (float64(target)-float64(b))*change
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// withChannelByte replaces one of the three channel bytes.
func withChannelByte(c PackedColor, index int, b uint8) PackedColor {
	shift := uint(index * 8)
	bits := c.Bits()&^(0xFF<<shift) | uint32(b)<<shift
	return PackedColor(math.Float32frombits(bits))
}

// channelByte extracts one of the three channel bytes.
func channelByte(c PackedColor, index int) uint8 {
	return uint8(c.Bits() >> uint(index*8))
}
