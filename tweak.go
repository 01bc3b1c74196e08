package chroma

// A tweak is a second packed float attached per vertex next to the color.
// Its three channels adjust the color channels multiplicatively around a
// 0.5 neutral (0.5 means x1, 1.0 means x2, 0 means x0); a space's hue
// channel is instead rotated additively, 0.5 meaning no rotation. The
// tweak's alpha byte is a contrast factor applied to the lightness
// channel around mid-gray, again with 0.5 neutral.
//
// The shader composites the tweak per pixel; ApplyTweak is the software
// mirror of that compositing, kept in lockstep with the generated shader
// sources.

// TweakNeutral is the tweak that leaves a color unchanged.
var TweakNeutral = NewTweak(0.5, 0.5, 0.5, 0.5)

// NewTweak packs three channel factors and a contrast factor, all in
// [0,1] with 0.5 neutral. Inputs are clamped.
func NewTweak(t1, t2, t3, contrast float64) PackedColor {
	return packFloats(clamp01(t1), clamp01(t2), clamp01(t3), clamp01(contrast))
}

// ApplyTweak composites a tweak onto a color the way the generated
// fragment shaders do, returning the adjusted packed color in the same
// space.
func ApplyTweak(s Space, c, tweak PackedColor) PackedColor {
	ch := [3]float64{}
	ch[0], ch[1], ch[2], _ = c.Decode()
	alpha := c.Alpha()
	t1, t2, t3, contrast := tweak.Decode()
	t := [3]float64{t1, t2, t3}

	roles := s.roles()
	plainRGB := roles.hue == -1 && roles.sat == -1 && roles.light == -1
	for i := 0; i < 3; i++ {
		switch {
		case i == roles.hue:
			ch[i] = wrapUnit(ch[i] + t[i] - 0.5)
		case i == roles.light || i == roles.sat || plainRGB:
			// Zero-floored channels are plain multiplicative factors.
			ch[i] = clamp01(ch[i] * t[i] * 2)
		default:
			// Signed chromatic axes scale around their 0.5 center.
			ch[i] = clamp01(0.5 + (ch[i]-0.5)*t[i]*2)
		}
	}

	// Contrast bends the lightness channel around mid-gray.
	li := roles.light
	contrastAt := func(v float64) float64 {
		return clamp01((v-0.5)*contrast*2 + 0.5)
	}
	if li >= 0 {
		ch[li] = contrastAt(ch[li])
	} else {
		for i := 0; i < 3; i++ {
			ch[i] = contrastAt(ch[i])
		}
	}

	return s.EncodeClamped(ch[0], ch[1], ch[2], alpha)
}

// TweakContrast returns the tweak's contrast byte as a factor where 1 is
// neutral (byte 128 maps to just over 1; byte 127 is unreachable because
// the packed low bit is cleared).
func TweakContrast(tweak PackedColor) float64 {
	return float64(tweak.AlphaByte()) / 255 * 2
}
