package theme_test

import (
	"testing"

	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/email/theme"
)

// --- color algebra tests ---

func TestBlendEndpoints(t *testing.T) {
	if got := theme.Blend("#000000", "#ffffff", 0); got != "#000000" {
		t.Fatalf("blend at 0 should return the first color, got %s", got)
	}
	if got := theme.Blend("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Fatalf("blend at 1 should return the second color, got %s", got)
	}
	if got := theme.Blend("#000000", "#ffffff", 0.5); got != "#808080" {
		t.Fatalf("midpoint blend of black and white should be #808080, got %s", got)
	}
}

func TestLuminanceExtremes(t *testing.T) {
	if l := theme.Luminance("#000000"); l != 0 {
		t.Fatalf("black luminance should be 0, got %f", l)
	}
	if l := theme.Luminance("#ffffff"); l < 0.99 {
		t.Fatalf("white luminance should be ~1, got %f", l)
	}
}

func TestContrastRatioBlackWhite(t *testing.T) {
	ratio := theme.ContrastRatio("#000000", "#ffffff")
	if ratio < 20.9 || ratio > 21.1 {
		t.Fatalf("black/white contrast should be 21, got %f", ratio)
	}
	if theme.ContrastRatio("#ffffff", "#000000") != ratio {
		t.Fatal("contrast ratio must be symmetric")
	}
}

func TestHueShiftFullCircle(t *testing.T) {
	if got := theme.HueShift("#ff0000", 360); got != "#ff0000" {
		t.Fatalf("360 degree shift should be identity, got %s", got)
	}
	if got := theme.HueShift("#ff0000", 120); got != "#00ff00" {
		t.Fatalf("red shifted 120 degrees should be green, got %s", got)
	}
}

// --- palette derivation tests ---

func testBrandColors() brand.Palette {
	return brand.Palette{Primary: "#3b5bdb", Background: "#ffffff", Text: "#212529"}
}

func TestDeriveThemeTokensAllAccessible(t *testing.T) {
	p := theme.DeriveTheme(testBrandColors())

	for _, token := range theme.PaletteTokens() {
		bg, ok := p.Token(token)
		if !ok {
			t.Fatalf("token %s missing from palette", token)
		}
		text := theme.AccessibleTextFor(bg, p)
		if ratio := theme.ContrastRatio(bg, text); ratio < 4.5 {
			t.Fatalf("token %s: text %s on %s has contrast %.2f, want >= 4.5", token, text, bg, ratio)
		}
	}
}

func TestDeriveThemeIdempotent(t *testing.T) {
	colors := testBrandColors()
	first := theme.DeriveTheme(colors)
	second := theme.DeriveTheme(colors)
	if first != second {
		t.Fatalf("derivation must be deterministic: %+v vs %+v", first, second)
	}
}

func TestDeriveThemeDarkBackgroundForcedLight(t *testing.T) {
	dark := brand.Palette{Primary: "#3b5bdb", Background: "#1a1a2e", Text: "#eeeeee"}
	p := theme.DeriveTheme(dark)
	if p.Bg != "#ffffff" {
		t.Fatalf("dark brand background must be forced to white, got %s", p.Bg)
	}
	if ratio := theme.ContrastRatio(p.Bg, p.Ink); ratio < 4.5 {
		t.Fatalf("ink must stay readable on the corrected background, got %.2f", ratio)
	}
}

func TestDeriveThemeLightBackgroundKept(t *testing.T) {
	// Luminance ~0.9, comfortably above the threshold.
	light := brand.Palette{Primary: "#3b5bdb", Background: "#f4f4f4", Text: "#212529"}
	p := theme.DeriveTheme(light)
	if p.Bg != "#f4f4f4" {
		t.Fatalf("light background must be left unchanged, got %s", p.Bg)
	}
}

func TestDeriveThemeNormalizesCasing(t *testing.T) {
	lower := theme.DeriveTheme(testBrandColors())
	upper := theme.DeriveTheme(brand.Palette{
		Primary: "#3B5BDB", Background: "#FFFFFF", Text: "#212529",
	})
	if lower != upper {
		t.Fatalf("input casing must not change the palette: %+v vs %+v", lower, upper)
	}
	if upper.Bg != "#ffffff" {
		t.Fatalf("tokens are emitted as lowercase hex, got %s", upper.Bg)
	}
}

func TestAccessibleButtonContrast(t *testing.T) {
	p := theme.DeriveTheme(testBrandColors())
	for _, token := range theme.PaletteTokens() {
		bg, _ := p.Token(token)
		bc := theme.AccessibleButtonFor(p, bg)
		if ratio := theme.ContrastRatio(bc.Fill, bg); ratio < 3.0 {
			t.Fatalf("button fill %s on %s has contrast %.2f, want >= 3.0", bc.Fill, bg, ratio)
		}
		if ratio := theme.ContrastRatio(bc.Fill, bc.Text); ratio < 4.5 {
			t.Fatalf("button text %s on fill %s has contrast %.2f, want >= 4.5", bc.Text, bc.Fill, ratio)
		}
	}
}

// --- enhancement tests ---

func TestEnhanceCachesDerivedValues(t *testing.T) {
	doc := &spec.EmailSpec{}
	theme.Enhance(doc, testBrandColors())

	if doc.Theme.Palette == nil {
		t.Fatal("enhance must attach the derived palette")
	}
	if doc.Theme.Rhythm == nil || doc.Theme.Components == nil {
		t.Fatal("enhance must fill rhythm and component defaults")
	}
	if len(doc.Theme.Accessible) != len(theme.PaletteTokens()) {
		t.Fatalf("accessible map should cover every token, got %d entries", len(doc.Theme.Accessible))
	}
	for token, text := range doc.Theme.Accessible {
		bg, _ := doc.Theme.Palette.Token(token)
		if ratio := theme.ContrastRatio(bg, text); ratio < 4.5 {
			t.Fatalf("cached text for %s fails contrast: %.2f", token, ratio)
		}
	}
}
