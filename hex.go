package chroma

import "fmt"

// Hex parses a hex color string into a packed color of the given space.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", each with an
// optional leading '#'. Malformed input yields opaque black; like the
// description parser, parsing is total.
func Hex(s Space, hex string) PackedColor {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return s.FromRGBA(0, 0, 0, 1)
	}

	return s.FromRGBA(float64(r)/255, float64(g)/255, float64(b)/255, float64(a)/255)
}

// parseHex is a helper for hex parsing.
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// HexString formats the color's displayable RGB rendition as "#rrggbb",
// with an alpha suffix when the color is not fully opaque. Alpha carries
// 7 bits in the packed form, so 254 is full opacity.
func HexString(s Space, c PackedColor) string {
	r, g, b, _ := s.ToRGBA(c)
	if c.AlphaByte() >= 254 {
		return fmt.Sprintf("#%02x%02x%02x", quantize(r), quantize(g), quantize(b))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", quantize(r), quantize(g), quantize(b), c.AlphaByte())
}
