package theme

import (
	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
)

var paletteTokens = []string{
	"primary", "ink", "bg", "surface", "muted", "accent", "primarySoft", "accentSoft",
}

// PaletteTokens lists the derived token names in a stable order.
func PaletteTokens() []string {
	out := make([]string, len(paletteTokens))
	copy(out, paletteTokens)
	return out
}

// Enhance derives the full palette from the brand colors and caches it, the
// spacing tokens and the per-token accessible text map onto the document's
// theme. Runs once per accepted document; render-time color resolution is a
// plain map lookup afterwards.
func Enhance(e *spec.EmailSpec, colors brand.Palette) {
	p := DeriveTheme(colors)
	e.Theme.Palette = &p

	if e.Theme.Rhythm == nil {
		e.Theme.Rhythm = &spec.Rhythm{SectionPadding: 32, BlockGap: 16}
	}
	if e.Theme.Components == nil {
		e.Theme.Components = &spec.Components{
			CardRadius:  8,
			DividerTone: "muted",
		}
	}

	accessible := make(map[string]string, len(paletteTokens))
	for _, token := range paletteTokens {
		hex, _ := p.Token(token)
		accessible[token] = AccessibleTextFor(hex, p)
	}
	e.Theme.Accessible = accessible
}
