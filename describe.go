package chroma

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// adjectiveStrengths are the four tier magnitudes shared by every
// adjective family. Tier 0 is the bare word, tier 3 the "-most" form.
var adjectiveStrengths = [4]float64{0.10, 0.15, 0.30, 0.45}

// adjectiveFamily classifies tokens that start with a known prefix.
// The tier is selected purely by token length, so natural comparative
// forms land on the right strength ("darker" and "darken" are both six
// letters, tier 1). A matching prefix with an unlisted length is an
// unrecognized adjective.
type adjectiveFamily struct {
	prefix string
	// tierLengths[i] is the token length selecting tier i.
	tierLengths [4]int
	// sign is +1 or -1, lightness selects the lightness axis (else
	// saturation).
	sign      float64
	lightness bool
}

var adjectiveFamilies = []adjectiveFamily{
	{prefix: "dark", tierLengths: [4]int{4, 6, 7, 8}, sign: -1, lightness: true},
	{prefix: "light", tierLengths: [4]int{5, 7, 8, 9}, sign: +1, lightness: true},
	{prefix: "dull", tierLengths: [4]int{4, 6, 7, 8}, sign: -1, lightness: false},
	{prefix: "rich", tierLengths: [4]int{4, 6, 7, 8}, sign: +1, lightness: false},
}

// lightnessTierWords and saturationTierWords spell each signed tier for
// BestMatch, index 0 being tier -4 and index 8 tier +4.
var (
	lightnessTierWords = [9]string{
		"darkmost", "darkest", "darker", "dark", "",
		"light", "lighter", "lightest", "lightmost",
	}
	saturationTierWords = [9]string{
		"dullmost", "dullest", "duller", "dull", "",
		"rich", "richer", "richest", "richmost",
	}
)

// signedTierDelta maps a signed tier index in [-4,4] to its delta.
func signedTierDelta(tier int) float64 {
	if tier == 0 {
		return 0
	}
	mag := adjectiveStrengths[abs(tier)-1]
	if tier < 0 {
		return -mag
	}
	return mag
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// tokenLowerer folds description tokens to lower case. Tokens are
// letters-only so the generic Unicode casing is stable here.
var tokenLowerer = cases.Lower(language.Und)

// tokenizeDescription splits text on non-letter runes and lower-cases
// each token.
func tokenizeDescription(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for i, f := range fields {
		fields[i] = tokenLowerer.String(f)
	}
	return fields
}

// classifyAdjective matches a token against the adjective families.
// It returns the family and tier (0-3) when the token is a recognized
// adjective, family with tier -1 when the prefix matches but the length
// selects no tier, and ok=false when no prefix matches.
func classifyAdjective(token string) (fam adjectiveFamily, tier int, ok bool) {
	for _, f := range adjectiveFamilies {
		if !strings.HasPrefix(token, f.prefix) {
			continue
		}
		for t, n := range f.tierLengths {
			if len(token) == n {
				return f, t, true
			}
		}
		return f, -1, true
	}
	return adjectiveFamily{}, 0, false
}

// ParseDescription turns free-form text like "darker dull red" into one
// packed color of the palette's space. Tokens are letters-only runs,
// case-insensitive and order-independent: palette names are collected
// and mixed, adjective deltas accumulate additively and are applied to
// the mix afterward, then the result is clamped to the gamut.
//
// The parser never fails. Unknown names and malformed adjectives
// contribute Transparent to the mix, darkening and fading it, and a
// description with no color tokens at all is Transparent outright.
func (p *Palette) ParseDescription(text string) PackedColor {
	var (
		colors     []PackedColor
		lightDelta float64
		satDelta   float64
	)
	for _, token := range tokenizeDescription(text) {
		// Palette names win over adjective classification so a name
		// sharing an adjective prefix stays reachable.
		if c, ok := p.byName[token]; ok {
			colors = append(colors, c)
			continue
		}
		fam, tier, isAdj := classifyAdjective(token)
		if !isAdj || tier < 0 {
			colors = append(colors, Transparent)
			continue
		}
		delta := fam.sign * adjectiveStrengths[tier]
		if fam.lightness {
			lightDelta += delta
		} else {
			satDelta += delta
		}
	}
	if len(colors) == 0 {
		return Transparent
	}
	return p.applyDeltas(Mix(p.space, colors...), lightDelta, satDelta)
}

// applyDeltas applies accumulated lightness and saturation deltas to a
// mixed color and clamps the result to the gamut.
func (p *Palette) applyDeltas(c PackedColor, lightDelta, satDelta float64) PackedColor {
	switch {
	case lightDelta > 0:
		c = p.space.Lighten(c, math.Min(lightDelta, 1))
	case lightDelta < 0:
		c = p.space.Darken(c, math.Min(-lightDelta, 1))
	}
	switch {
	case satDelta > 0:
		c = p.space.Enrich(c, math.Min(satDelta, 1))
	case satDelta < 0:
		c = p.space.Dullen(c, math.Min(-satDelta, 1))
	}
	return p.space.ClampToGamut(c)
}

// channelDistance is the squared Euclidean distance between two packed
// colors over their three decoded channels. Alpha is ignored.
func channelDistance(a, b PackedColor) float64 {
	a1, a2, a3, _ := a.Decode()
	b1, b2, b3, _ := b.Decode()
	d1 := a1 - b1
	d2 := a2 - b2
	d3 := a3 - b3
	return d1*d1 + d2*d2 + d3*d3
}

// BestMatch searches for the description string whose parse lands
// closest to target, trying combinations (with repetition) of up to
// mixCount palette names crossed with every signed lightness and
// saturation tier.
//
// The search is brute force over the whole vocabulary and costs
// O(len(names)^mixCount * 81) parses. It is an offline tool for
// authoring palette text, never a per-frame operation.
func (p *Palette) BestMatch(target PackedColor, mixCount int) string {
	if mixCount < 1 {
		mixCount = 1
	}
	names := p.byHue

	best := math.Inf(1)
	var bestDesc string
	var colors []PackedColor

	tryTiers := func(names []string) {
		mixed := Mix(p.space, colors...)
		for lt := -4; lt <= 4; lt++ {
			for st := -4; st <= 4; st++ {
				c := p.applyDeltas(mixed, signedTierDelta(lt), signedTierDelta(st))
				d := channelDistance(c, target)
				if d < best {
					best = d
					bestDesc = describeWords(lt, st, names)
				}
			}
		}
	}

	var recurse func(start, depth int, picked []string)
	recurse = func(start, depth int, picked []string) {
		if depth > 0 {
			tryTiers(picked)
		}
		if depth == mixCount {
			return
		}
		for i := start; i < len(names); i++ {
			colors = append(colors, p.byName[names[i]])
			recurse(i, depth+1, append(picked, names[i]))
			colors = colors[:len(colors)-1]
		}
	}
	recurse(0, 0, make([]string, 0, mixCount))
	return bestDesc
}

// describeWords assembles the description string for signed tier
// indices and a list of names.
func describeWords(lightTier, satTier int, names []string) string {
	words := make([]string, 0, len(names)+2)
	if w := lightnessTierWords[lightTier+4]; w != "" {
		words = append(words, w)
	}
	if w := saturationTierWords[satTier+4]; w != "" {
		words = append(words, w)
	}
	words = append(words, names...)
	return strings.Join(words, " ")
}
