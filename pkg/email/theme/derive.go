package theme

import (
	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
)

const (
	aaTextContrast   = 4.5
	aaButtonContrast = 3.0

	// Hue distance below this means the accent shift landed too close to the
	// brand colors to read as a distinct tone.
	minHueDistance = 25.0
)

// DeriveTheme computes the eight-token palette from the three brand colors.
// Pure function of its input; re-running it yields byte-identical output.
// Every token is normalized to lowercase "#rrggbb" regardless of input
// casing, so consumers must compare hex values case-insensitively.
func DeriveTheme(colors brand.Palette) spec.Palette {
	bg := normalizeHex(colors.Background)
	ink := normalizeHex(colors.Text)
	primary := normalizeHex(colors.Primary)

	// Email pages default to light backgrounds. Dark brand themes belong on
	// the web, not in an inbox.
	if Luminance(bg) <= 0.5 {
		bg = "#ffffff"
	}
	for i := 0; i < 4 && ContrastRatio(ink, bg) < aaTextContrast; i++ {
		ink = Darken(ink, 0.5)
	}

	var surface string
	if Luminance(bg) > 0.5 {
		surface = Darken(bg, 0.05)
	} else {
		surface = Lighten(bg, 0.10)
	}

	muted := Blend(bg, ink, 0.15)

	accent := HueShift(primary, 30)
	if hueDistance(accent, bg) < minHueDistance && hueDistance(accent, ink) < minHueDistance {
		accent = HueShift(primary, 60)
	}

	primarySoft := softVariant(primary, bg, ink)
	accentSoft := softVariant(accent, bg, ink)

	return spec.Palette{
		Primary:     primary,
		Ink:         ink,
		Bg:          bg,
		Surface:     surface,
		Muted:       muted,
		Accent:      accent,
		PrimarySoft: primarySoft,
		AccentSoft:  accentSoft,
	}
}

// softVariant blends a color 85% toward the background, then nudges it
// further toward the background until ink stays readable on top of it.
func softVariant(c, bg, ink string) string {
	soft := Blend(c, bg, 0.85)
	for i := 0; i < 4 && ContrastRatio(soft, ink) < aaTextContrast; i++ {
		soft = Blend(soft, bg, 0.5)
	}
	return soft
}

func normalizeHex(hex string) string {
	return ParseHex(hex).Hex()
}

func hueDistance(c1, c2 string) float64 {
	h1, _, _ := rgbToHSL(ParseHex(c1))
	h2, _, _ := rgbToHSL(ParseHex(c2))
	d := h1 - h2
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// AccessibleTextFor returns a text color with AA contrast (>= 4.5:1) against
// the given background. It prefers palette ink, then palette bg, then pure
// black or white picked by the background's luminance.
func AccessibleTextFor(background string, p spec.Palette) string {
	if ContrastRatio(background, p.Ink) >= aaTextContrast {
		return p.Ink
	}
	if ContrastRatio(background, p.Bg) >= aaTextContrast {
		return p.Bg
	}
	if Luminance(background) > 0.5 {
		return "#000000"
	}
	return "#ffffff"
}

// ButtonColors is a fill/text pair chosen for a specific section background.
type ButtonColors struct {
	Fill string
	Text string
}

// AccessibleButtonFor picks a button fill with >= 3:1 contrast against the
// section background and a text color with >= 4.5:1 contrast against that
// fill. The fill starts from the brand primary and is darkened or lightened
// only as far as needed.
func AccessibleButtonFor(p spec.Palette, sectionBackground string) ButtonColors {
	fill := p.Primary
	if ContrastRatio(fill, sectionBackground) < aaButtonContrast {
		step := Darken
		if Luminance(sectionBackground) <= 0.5 {
			step = Lighten
		}
		for i := 0; i < 8 && ContrastRatio(fill, sectionBackground) < aaButtonContrast; i++ {
			fill = step(fill, 0.15)
		}
	}

	text := "#ffffff"
	if ContrastRatio(fill, text) < aaTextContrast {
		text = "#000000"
	}
	if ContrastRatio(fill, text) < aaTextContrast {
		text = AccessibleTextFor(fill, p)
	}
	return ButtonColors{Fill: fill, Text: text}
}
