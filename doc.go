// Package chroma provides perceptually-uniform color spaces and palette
// management for 2D rendering pipelines in the GoGPU ecosystem.
//
// # Overview
//
// Instead of working in raw RGB, applications pick colors in a perceptual
// color space (HSLuv, CIELAB, IPT, Oklab) and store each color as a single
// packed 32-bit float that travels with a vertex. A shader decodes the
// packed float and performs the inverse color-space transform to RGB per
// pixel; this package defines both the CPU-side reference conversion and
// the shader sources, generated from the same constant tables so the two
// can never drift apart.
//
// # Quick Start
//
//	import "github.com/gogpu/chroma"
//
//	// Encode an HSLuv color into a packed float.
//	c := chroma.HSLuv.EncodeClamped(0.03, 0.8, 0.55, 1)
//
//	// Or describe it in plain language.
//	p := chroma.DefaultPalette(chroma.HSLuv)
//	c = p.ParseDescription("darker rich red")
//
//	// Convert back to displayable sRGB.
//	r, g, b, a := chroma.HSLuv.ToRGBA(c)
//
// # Packed format
//
// A PackedColor stores channel 1 in bits 0-7, channel 2 in bits 8-15,
// channel 3 in bits 16-23 and alpha in the top byte with its low bit
// forced to zero, so the bit pattern is never NaN or Inf when a GPU
// reinterprets it as a float. The meaning of the three channels is fixed
// per color space and documented on each Space implementation.
//
// # Architecture
//
// The library is organized into:
//   - Public API: PackedColor, Space implementations, Palette, shader sources
//   - Internal: trig (turn-based lookup-table trigonometry)
//   - Tools: cmd/chromatool (describe, match, swatch, extract)
package chroma
