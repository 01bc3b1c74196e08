package chroma

import (
	"sort"
	"sync"
)

// namedRGBA is one row of the base color vocabulary, authored in sRGB
// bytes so every Space derives its own packed table from the same data.
type namedRGBA struct {
	name       string
	r, g, b, a uint8
}

// baseColors is the canonical color vocabulary. Names are single
// lower-case words so the description tokenizer can match them, and none
// of them begin with an adjective prefix (dark/light/rich/dull).
// The table is ordered alphabetically for readability only; the palette
// computes its own orderings.
var baseColors = []namedRGBA{
	{"amber", 255, 191, 0, 255},
	{"apricot", 255, 173, 96, 255},
	{"azure", 0, 127, 255, 255},
	{"black", 0, 0, 0, 255},
	{"blue", 0, 0, 255, 255},
	{"brick", 203, 65, 84, 255},
	{"bronze", 205, 127, 50, 255},
	{"brown", 139, 84, 47, 255},
	{"chartreuse", 127, 255, 0, 255},
	{"chocolate", 123, 63, 0, 255},
	{"coral", 255, 127, 80, 255},
	{"crimson", 220, 20, 60, 255},
	{"cyan", 0, 255, 255, 255},
	{"ember", 242, 104, 34, 255},
	{"emerald", 80, 200, 120, 255},
	{"forest", 34, 139, 34, 255},
	{"gold", 255, 215, 0, 255},
	{"graphite", 58, 58, 58, 255},
	{"gray", 127, 127, 127, 255},
	{"green", 0, 255, 0, 255},
	{"indigo", 75, 0, 130, 255},
	{"jade", 0, 168, 107, 255},
	{"lavender", 181, 126, 220, 255},
	{"magenta", 255, 0, 255, 255},
	{"maroon", 128, 0, 0, 255},
	{"mauve", 224, 176, 255, 255},
	{"mint", 152, 255, 152, 255},
	{"navy", 0, 0, 128, 255},
	{"olive", 128, 128, 0, 255},
	{"orange", 255, 128, 0, 255},
	{"peach", 255, 203, 164, 255},
	{"pewter", 145, 145, 145, 255},
	{"pink", 255, 105, 180, 255},
	{"plum", 142, 69, 133, 255},
	{"purple", 128, 0, 128, 255},
	{"red", 255, 0, 0, 255},
	{"rose", 255, 0, 127, 255},
	{"salmon", 250, 128, 114, 255},
	{"sapphire", 15, 82, 186, 255},
	{"scarlet", 255, 36, 0, 255},
	{"silver", 192, 192, 192, 255},
	{"sky", 135, 206, 235, 255},
	{"tan", 210, 180, 140, 255},
	{"teal", 0, 128, 128, 255},
	{"turquoise", 64, 224, 208, 255},
	{"violet", 143, 0, 255, 255},
	{"white", 255, 255, 255, 255},
	{"yellow", 255, 255, 0, 255},
}

// colorAliases maps alternate spellings onto canonical names. Aliases
// resolve to the identical packed value and are excluded from the
// orderings.
var colorAliases = map[string]string{
	"grey":    "gray",
	"aqua":    "cyan",
	"fuchsia": "magenta",
}

// Palette is an immutable table of named colors packed in one Space,
// with precomputed orderings and the description parser built on top.
// Build one with NewPalette or share the process-wide DefaultPalette.
type Palette struct {
	space  Space
	byName map[string]PackedColor

	// Canonical names only (no aliases, no transparent sentinel).
	alphabetical []string
	byHue        []string
	byLightness  []string
}

// NewPalette builds an independent palette for the given space from the
// base color vocabulary. The result is read-only and safe to share.
func NewPalette(s Space) *Palette {
	p := &Palette{
		space:  s,
		byName: make(map[string]PackedColor, len(baseColors)+len(colorAliases)+1),
	}
	p.byName["transparent"] = Transparent
	for _, e := range baseColors {
		packed := s.FromRGBA(float64(e.r)/255, float64(e.g)/255, float64(e.b)/255, float64(e.a)/255)
		p.byName[e.name] = packed
		p.alphabetical = append(p.alphabetical, e.name)
	}
	for alias, canonical := range colorAliases {
		p.byName[alias] = p.byName[canonical]
	}
	sort.Strings(p.alphabetical)
	p.byHue = p.sortedByHue()
	p.byLightness = p.sortedByLightness()
	return p
}

// defaultPalettes caches one palette per space name; palettes are
// immutable after construction so the cache needs no further locking.
var defaultPalettes sync.Map

// DefaultPalette returns the shared palette for a space, building it on
// first use.
func DefaultPalette(s Space) *Palette {
	if v, ok := defaultPalettes.Load(s.Name()); ok {
		return v.(*Palette)
	}
	p := NewPalette(s)
	actual, _ := defaultPalettes.LoadOrStore(s.Name(), p)
	return actual.(*Palette)
}

// Space returns the color space the palette's values are packed in.
func (p *Palette) Space() Space { return p.space }

// Lookup returns the packed value for a canonical name or alias.
func (p *Palette) Lookup(name string) (PackedColor, bool) {
	c, ok := p.byName[name]
	return c, ok
}

// Names returns the canonical names in alphabetical order.
func (p *Palette) Names() []string {
	return append([]string(nil), p.alphabetical...)
}

// NamesByHue returns canonical names with grayscale entries first (sorted
// by lightness) and chromatic entries after, sorted by hue bucket then
// lightness.
func (p *Palette) NamesByHue() []string {
	return append([]string(nil), p.byHue...)
}

// NamesByLightness returns canonical names sorted from darkest to
// lightest.
func (p *Palette) NamesByLightness() []string {
	return append([]string(nil), p.byLightness...)
}

// grayscaleSaturation is the HSL saturation below which an entry sorts
// with the grays.
const grayscaleSaturation = 0.04

func (p *Palette) sortedByHue() []string {
	type key struct {
		name      string
		grayscale bool
		hueBucket int
		lightness float64
	}
	keys := make([]key, 0, len(p.alphabetical))
	for _, name := range p.alphabetical {
		c := p.byName[name]
		r, g, b, _ := p.space.ToRGBA(c)
		h, s, l := rgbToHSL(r, g, b)
		keys = append(keys, key{
			name:      name,
			grayscale: s < grayscaleSaturation,
			hueBucket: int(h * 32),
			lightness: l,
		})
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.grayscale != b.grayscale {
			return a.grayscale
		}
		if a.grayscale {
			return a.lightness < b.lightness
		}
		if a.hueBucket != b.hueBucket {
			return a.hueBucket < b.hueBucket
		}
		return a.lightness < b.lightness
	})
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.name
	}
	return names
}

func (p *Palette) sortedByLightness() []string {
	type key struct {
		name      string
		lightness float64
	}
	keys := make([]key, 0, len(p.alphabetical))
	for _, name := range p.alphabetical {
		c := p.byName[name]
		r, g, b, _ := p.space.ToRGBA(c)
		_, _, l := rgbToHSL(r, g, b)
		keys = append(keys, key{name, l})
	}
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].lightness != keys[j].lightness {
			return keys[i].lightness < keys[j].lightness
		}
		return keys[i].name < keys[j].name
	})
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.name
	}
	return names
}
