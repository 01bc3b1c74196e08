package chroma

import (
	"fmt"
	"math"
)

// PackedColor is a color serialized into the bit pattern of a 32-bit float.
//
// Bit layout: channel 1 in bits 0-7, channel 2 in bits 8-15, channel 3 in
// bits 16-23 and alpha in bits 24-31. The low bit of the alpha byte is
// always forced to zero, which guarantees the exponent field can never be
// all ones, so the value is never NaN or Inf when a GPU reinterprets the
// bits as a float vertex attribute. Alpha therefore has 7 effective bits
// (steps of 2/255).
//
// The meaning of channels 1-3 is fixed per color space: see the Space
// implementations (RGB, HSLuv, CIELab, IPT, IPTHQ, Oklab).
type PackedColor float32

// Transparent is the all-zero sentinel color. Every Space treats it as
// fully transparent black, and the description parser returns it when a
// description contains no recognizable color.
const Transparent PackedColor = 0

// packBytes assembles a PackedColor from raw channel bytes. The alpha low
// bit is cleared here and nowhere else.
func packBytes(ch1, ch2, ch3, alpha uint8) PackedColor {
	bits := uint32(ch1) | uint32(ch2)<<8 | uint32(ch3)<<16 | uint32(alpha&0xFE)<<24
	return PackedColor(math.Float32frombits(bits))
}

// packFloats quantizes four [0,1] channel values to bytes and packs them.
// Inputs must already be in range; use a Space's EncodeClamped for
// untrusted values.
func packFloats(ch1, ch2, ch3, alpha float64) PackedColor {
	return packBytes(quantize(ch1), quantize(ch2), quantize(ch3), quantize(alpha))
}

// quantize maps a [0,1] float to a byte with rounding.
func quantize(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Bits returns the raw bit pattern of the packed color.
func (c PackedColor) Bits() uint32 {
	return math.Float32bits(float32(c))
}

// Channel1 returns the raw byte of the first packed channel.
func (c PackedColor) Channel1() uint8 { return uint8(c.Bits()) }

// Channel2 returns the raw byte of the second packed channel.
func (c PackedColor) Channel2() uint8 { return uint8(c.Bits() >> 8) }

// Channel3 returns the raw byte of the third packed channel.
func (c PackedColor) Channel3() uint8 { return uint8(c.Bits() >> 16) }

// AlphaByte returns the raw alpha byte. Its low bit is always zero.
func (c PackedColor) AlphaByte() uint8 { return uint8(c.Bits() >> 24) }

// Decode extracts the four normalized channel values in [0,1].
// It is the exact inverse of packing up to 8-bit quantization
// (7-bit for alpha) and always succeeds.
func (c PackedColor) Decode() (ch1, ch2, ch3, alpha float64) {
	bits := c.Bits()
	ch1 = float64(bits&0xFF) / 255
	ch2 = float64(bits>>8&0xFF) / 255
	ch3 = float64(bits>>16&0xFF) / 255
	alpha = float64(bits>>24&0xFE) / 255
	return
}

// Alpha returns the normalized alpha value in [0,1].
func (c PackedColor) Alpha() float64 {
	return float64(c.AlphaByte()) / 255
}

// AlphaInt returns alpha as an integer in [0,255]. The value is always even
// because the packed low bit is cleared.
func (c PackedColor) AlphaInt() int {
	return int(c.AlphaByte())
}

// WithAlpha returns the color with its alpha replaced, channels untouched.
func (c PackedColor) WithAlpha(alpha float64) PackedColor {
	bits := c.Bits()&0x00FFFFFF | uint32(quantize(alpha)&0xFE)<<24
	return PackedColor(math.Float32frombits(bits))
}

// Blot moves alpha a fraction of the way toward fully opaque.
// change=0 is a no-op and change=1 reaches alpha 1 exactly.
func (c PackedColor) Blot(change float64) PackedColor {
	return c.WithAlpha(lerpToward(c.Alpha(), 1, change))
}

// Fade moves alpha a fraction of the way toward fully transparent.
// change=0 is a no-op and change=1 reaches alpha 0 exactly.
func (c PackedColor) Fade(change float64) PackedColor {
	return c.WithAlpha(lerpToward(c.Alpha(), 0, change))
}

// String formats the color as its four raw bytes, space-agnostic.
func (c PackedColor) String() string {
	return fmt.Sprintf("packed(%d, %d, %d, a=%d)", c.Channel1(), c.Channel2(), c.Channel3(), c.AlphaByte())
}

// lerpToward moves v linearly toward target: change=0 keeps v, change=1
// lands on target exactly.
func lerpToward(v, target, change float64) float64 {
	return v + (target-v)*change
}

// clamp01 restricts a value to the [0,1] range.
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// wrapUnit wraps a value into [0,1), used for hue channels.
func wrapUnit(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 { // Floor of a value just under an integer can round back up.
		v = 0
	}
	return v
}
