package chroma

import "math"

// Red returns the sRGB red component in [0,1] after the full inverse
// pipeline of the given space.
func Red(s Space, c PackedColor) float64 {
	r, _, _, _ := s.ToRGBA(c)
	return r
}

// Green returns the sRGB green component in [0,1].
func Green(s Space, c PackedColor) float64 {
	_, g, _, _ := s.ToRGBA(c)
	return g
}

// Blue returns the sRGB blue component in [0,1].
func Blue(s Space, c PackedColor) float64 {
	_, _, b, _ := s.ToRGBA(c)
	return b
}

// RedInt returns the sRGB red component quantized to [0,255].
func RedInt(s Space, c PackedColor) int {
	return int(quantize(Red(s, c)))
}

// GreenInt returns the sRGB green component quantized to [0,255].
func GreenInt(s Space, c PackedColor) int {
	return int(quantize(Green(s, c)))
}

// BlueInt returns the sRGB blue component quantized to [0,255].
func BlueInt(s Space, c PackedColor) int {
	return int(quantize(Blue(s, c)))
}

// Hue returns the HSL-sense hue in turns, computed from the color's
// displayable RGB rendition. For the native hue channel use Space.HueOf.
func Hue(s Space, c PackedColor) float64 {
	r, g, b, _ := s.ToRGBA(c)
	h, _, _ := rgbToHSL(r, g, b)
	return h
}

// Saturation returns the HSL-sense saturation in [0,1] of the displayable
// RGB rendition.
func Saturation(s Space, c PackedColor) float64 {
	r, g, b, _ := s.ToRGBA(c)
	_, sat, _ := rgbToHSL(r, g, b)
	return sat
}

// Lightness returns the HSL-sense lightness in [0,1] of the displayable
// RGB rendition. For the native lightness channel use Space.LightnessOf.
func Lightness(s Space, c PackedColor) float64 {
	r, g, b, _ := s.ToRGBA(c)
	_, _, l := rgbToHSL(r, g, b)
	return l
}

// ToRGB re-encodes any space's packed color as a packed RGB-space color,
// the form consumed by plain (non-converting) shaders.
func ToRGB(s Space, c PackedColor) PackedColor {
	r, g, b, a := s.ToRGBA(c)
	return RGB.Encode(r, g, b, a)
}

// Mix returns the arithmetic mean of the given colors in the packed
// channel domain, alpha included. With no colors it returns Transparent.
// Transparent contributions pull the average toward zero; the
// description parser feeds unrecognized tokens through here.
func Mix(s Space, colors ...PackedColor) PackedColor {
	if len(colors) == 0 {
		return Transparent
	}
	var c1, c2, c3, ca float64
	for _, c := range colors {
		d1, d2, d3, da := c.Decode()
		c1 += d1
		c2 += d2
		c3 += d3
		ca += da
	}
	n := float64(len(colors))
	return s.Encode(c1/n, c2/n, c3/n, ca/n)
}

// hueByteDistance is the circular distance between two hues in 256ths of
// a turn.
func hueByteDistance(a, b float64) int {
	d := int(math.Abs(math.Round(a*256) - math.Round(b*256)))
	if d > 128 {
		d = 256 - d
	}
	return d
}

// InverseLightness returns c with its lightness moved to contrast against
// ref: roughly the inverse of ref's lightness, pushed further out when the
// inverse alone would land too close. When the two hues already differ by
// more than 90 of 256 hue units the color is returned unchanged, since
// distant hues contrast on their own.
func InverseLightness(s Space, c, ref PackedColor) PackedColor {
	if hueByteDistance(s.HueOf(c), s.HueOf(ref)) > 90 {
		return c
	}
	refL := s.LightnessOf(ref)
	inv := 1 - refL
	if math.Abs(inv-refL) < 0.4 {
		if refL < 0.5 {
			inv = refL + 0.4
		} else {
			inv = refL - 0.4
		}
	}
	return s.WithLightness(c, clamp01(inv))
}

// DifferentiateLightness nudges c's lightness until it sits at least a
// quarter of the lightness range away from ref's, moving toward whichever
// extreme has room. Colors already distinct enough are unchanged.
func DifferentiateLightness(s Space, c, ref PackedColor) PackedColor {
	const minGap = 0.25
	l := s.LightnessOf(c)
	refL := s.LightnessOf(ref)
	if math.Abs(l-refL) >= minGap {
		return c
	}
	if refL < 0.5 {
		return s.WithLightness(c, clamp01(refL+minGap))
	}
	return s.WithLightness(c, clamp01(refL-minGap))
}

// OffsetLightness returns c with lightness placed a fixed offset away
// from ref's lightness, on the side with room. Unlike InverseLightness it
// applies regardless of hue distance.
func OffsetLightness(s Space, c, ref PackedColor, offset float64) PackedColor {
	refL := s.LightnessOf(ref)
	if refL+offset <= 1 {
		return s.WithLightness(c, clamp01(refL+offset))
	}
	return s.WithLightness(c, clamp01(refL-offset))
}

// splitmix64 advances a splitmix64 generator state and returns the next
// output. Deterministic across platforms.
func splitmix64(state *uint64) uint64 {
	*state += 0x9E3779B97F4A7C15
	z := *state
	z = (z ^ z>>30) * 0xBF58476D1CE4E5B9
	z = (z ^ z>>27) * 0x94D049BB133111EB
	return z ^ z>>31
}

// randomEditAttempts bounds the rejection sampling in RandomEdit.
const randomEditAttempts = 50

// RandomEdit perturbs the three color channels within a sphere of the
// given radius in normalized channel space, deterministically from seed.
// Candidates outside the sphere or outside the displayable gamut are
// rejected; after 50 failed attempts the input is returned unchanged,
// which is a defined, reproducible outcome rather than an error.
func RandomEdit(s Space, c PackedColor, seed int64, variance float64) PackedColor {
	if variance <= 0 {
		return c
	}
	ch1, ch2, ch3, alpha := c.Decode()
	state := uint64(seed)
	for i := 0; i < randomEditAttempts; i++ {
		d1 := (unitFloat(splitmix64(&state))*2 - 1) * variance
		d2 := (unitFloat(splitmix64(&state))*2 - 1) * variance
		d3 := (unitFloat(splitmix64(&state))*2 - 1) * variance
		if d1*d1+d2*d2+d3*d3 > variance*variance {
			continue
		}
		candidate := s.EncodeClamped(ch1+d1, ch2+d2, ch3+d3, alpha)
		if s.InGamut(candidate) {
			return candidate
		}
	}
	return c
}

// unitFloat maps a uint64 to [0,1) using its top 53 bits.
func unitFloat(v uint64) float64 {
	return float64(v>>11) / (1 << 53)
}
