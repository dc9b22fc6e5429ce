package ui

import (
	"strings"

	"github.com/kyokomi/emoji/v2"
	"github.com/ygelfand/kogrid/internal/config"
	"github.com/ygelfand/kogrid/internal/grid"
)

type glyphSet struct {
	asc, desc, prev, next string
}

var glyphs = map[config.IconType]glyphSet{
	config.IconTypeASCII: {asc: "^", desc: "v", prev: "<", next: ">"},
	config.IconTypeEmoji: {
		asc:  emojiGlyph(":arrow_up_small:"),
		desc: emojiGlyph(":arrow_down_small:"),
		prev: emojiGlyph(":arrow_backward:"),
		next: emojiGlyph(":arrow_forward:"),
	},
	// nf-fa-sort_up, nf-fa-sort_down, nf-fa-chevron_left, nf-fa-chevron_right
	config.IconTypeNerdFonts: {asc: "", desc: "", prev: "", next: ""},
}

func emojiGlyph(code string) string {
	return strings.TrimSpace(emoji.Sprint(code))
}

func glyphsFor(t config.IconType) glyphSet {
	if g, ok := glyphs[t]; ok {
		return g
	}
	return glyphs[config.IconTypeASCII]
}

// SortGlyph is the indicator shown next to a header sorted in order o.
func SortGlyph(t config.IconType, o grid.SortOrder) string {
	g := glyphsFor(t)
	if o == grid.Descending {
		return g.desc
	}
	return g.asc
}

// PagerArrows returns the previous and next page glyphs.
func PagerArrows(t config.IconType) (string, string) {
	g := glyphsFor(t)
	return g.prev, g.next
}
