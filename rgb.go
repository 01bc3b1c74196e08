package chroma

// RGB is the identity color space: channel 1 is the sRGB red byte,
// channel 2 green, channel 3 blue. It exists so packed colors authored
// directly in device RGB flow through the same pipeline as the
// perceptual spaces.
var RGB Space = rgbSpace{}

type rgbSpace struct{}

func (rgbSpace) Name() string { return "rgb" }

func (rgbSpace) roles() channelRoles { return channelRoles{hue: -1, sat: -1, light: -1} }

func (rgbSpace) Encode(r, g, b, alpha float64) PackedColor {
	return packFloats(r, g, b, alpha)
}

func (rgbSpace) EncodeClamped(r, g, b, alpha float64) PackedColor {
	return packFloats(clamp01(r), clamp01(g), clamp01(b), clamp01(alpha))
}

func (rgbSpace) ToRGBA(c PackedColor) (r, g, b, a float64) {
	return c.Decode()
}

func (rgbSpace) FromRGBA(r, g, b, a float64) PackedColor {
	return packFloats(clamp01(r), clamp01(g), clamp01(b), clamp01(a))
}

// ChromaLimit for RGB is defined in the HSL sense: any saturation up to 1
// is displayable except at the lightness extremes, where only the neutral
// color exists.
func (rgbSpace) ChromaLimit(hue, lightness float64) float64 {
	if lightness <= 0 || lightness >= 1 {
		return 0
	}
	return 1
}

func (rgbSpace) InGamut(c PackedColor) bool { return true }

func (rgbSpace) ClampToGamut(c PackedColor) PackedColor { return c }

func (s rgbSpace) HueOf(c PackedColor) float64 {
	r, g, b, _ := c.Decode()
	h, _, _ := rgbToHSL(r, g, b)
	return h
}

func (s rgbSpace) LightnessOf(c PackedColor) float64 {
	r, g, b, _ := c.Decode()
	_, _, l := rgbToHSL(r, g, b)
	return l
}

func (s rgbSpace) WithLightness(c PackedColor, lightness float64) PackedColor {
	r, g, b, a := c.Decode()
	h, sat, _ := rgbToHSL(r, g, b)
	r, g, b = hslToRGB(h, sat, clamp01(lightness))
	return s.EncodeClamped(r, g, b, a)
}

// Lighten moves every channel toward white in the byte domain, which is
// what the shader's lerp does with the packed bytes.
func (rgbSpace) Lighten(c PackedColor, change float64) PackedColor {
	c = withChannelByte(c, 0, byteLerp(channelByte(c, 0), 255, change))
	c = withChannelByte(c, 1, byteLerp(channelByte(c, 1), 255, change))
	return withChannelByte(c, 2, byteLerp(channelByte(c, 2), 255, change))
}

func (rgbSpace) Darken(c PackedColor, change float64) PackedColor {
	c = withChannelByte(c, 0, byteLerp(channelByte(c, 0), 0, change))
	c = withChannelByte(c, 1, byteLerp(channelByte(c, 1), 0, change))
	return withChannelByte(c, 2, byteLerp(channelByte(c, 2), 0, change))
}

func (s rgbSpace) Enrich(c PackedColor, change float64) PackedColor {
	r, g, b, a := c.Decode()
	h, sat, l := rgbToHSL(r, g, b)
	r, g, b = hslToRGB(h, lerpToward(sat, 1, change), l)
	return s.EncodeClamped(r, g, b, a)
}

func (s rgbSpace) Dullen(c PackedColor, change float64) PackedColor {
	r, g, b, a := c.Decode()
	h, sat, l := rgbToHSL(r, g, b)
	r, g, b = hslToRGB(h, lerpToward(sat, 0, change), l)
	return s.EncodeClamped(r, g, b, a)
}

func (s rgbSpace) RotateHue(c PackedColor, change float64) PackedColor {
	r, g, b, a := c.Decode()
	h, sat, l := rgbToHSL(r, g, b)
	r, g, b = hslToRGB(wrapUnit(h+change), sat, l)
	return s.EncodeClamped(r, g, b, a)
}
