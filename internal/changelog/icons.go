package changelog

import "github.com/fatih/color"

// DefaultGlyph is drawn when neither the entry's icon nor its type is known.
const DefaultGlyph = "•"

// TypeStyle defines the color and fallback glyph for an entry type.
type TypeStyle struct {
	Color *color.Color
	Glyph string
}

// typeStyles maps entry types to their terminal styling.
var typeStyles = map[EntryType]TypeStyle{
	TypeFeature:     {Color: color.New(color.FgGreen), Glyph: "✦"},
	TypeImprovement: {Color: color.New(color.FgBlue), Glyph: "↑"},
	TypeFix:         {Color: color.New(color.FgYellow), Glyph: "⚡"},
}

var fallbackStyle = TypeStyle{Color: color.New(color.Reset), Glyph: DefaultGlyph}

// iconGlyphs is the renderer table for the icon tags content authors use.
var iconGlyphs = map[string]string{
	"award":    "★",
	"chart":    "▤",
	"download": "⇩",
	"filter":   "⧩",
	"key":      "⚿",
	"shield":   "⛨",
	"sparkles": "✨",
	"bell":     "🔔",
	"bug":      "✗",
	"settings": "⚙",
}

// StyleFor returns the styling for an entry type, or a neutral style for
// unknown types.
func StyleFor(t EntryType) TypeStyle {
	if s, ok := typeStyles[t]; ok {
		return s
	}
	return fallbackStyle
}

// GlyphFor resolves the glyph for an entry. The icon tag is looked up first;
// an empty or unknown tag falls back to the glyph of the entry's type.
func GlyphFor(e Entry) string {
	if g, ok := iconGlyphs[e.Icon]; ok {
		return g
	}
	return StyleFor(e.Type).Glyph
}

// HasIcon reports whether the icon tag has a dedicated glyph.
func HasIcon(tag string) bool {
	_, ok := iconGlyphs[tag]
	return ok
}
