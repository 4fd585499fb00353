package spec

// ThemeColors is the five-color base palette every document carries.
type ThemeColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

// ThemeFonts is the heading/body font pair with fallbacks baked in.
type ThemeFonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Button carries the shared button styling tokens.
type Button struct {
	Radius int    `json:"radius"`          // px, clamped by the renderer
	Style  string `json:"style,omitempty"` // "solid" or "outline"
}

// Palette is the derived eight-token palette. When present, sections address
// colors by token name instead of raw hex.
type Palette struct {
	Primary     string `json:"primary"`
	Ink         string `json:"ink"`
	Bg          string `json:"bg"`
	Surface     string `json:"surface"`
	Muted       string `json:"muted"`
	Accent      string `json:"accent"`
	PrimarySoft string `json:"primarySoft"`
	AccentSoft  string `json:"accentSoft"`
}

// Token returns the hex value for a palette token name, if known.
func (p Palette) Token(name string) (string, bool) {
	switch name {
	case "primary":
		return p.Primary, true
	case "ink":
		return p.Ink, true
	case "bg":
		return p.Bg, true
	case "surface":
		return p.Surface, true
	case "muted":
		return p.Muted, true
	case "accent":
		return p.Accent, true
	case "primarySoft":
		return p.PrimarySoft, true
	case "accentSoft":
		return p.AccentSoft, true
	}
	return "", false
}

// Rhythm carries vertical spacing tokens in px.
type Rhythm struct {
	SectionPadding int `json:"sectionPadding,omitempty"`
	BlockGap       int `json:"blockGap,omitempty"`
}

// Components carries per-component styling knobs.
type Components struct {
	CardRadius  int    `json:"cardRadius,omitempty"`
	CardShadow  bool   `json:"cardShadow,omitempty"`
	DividerTone string `json:"dividerTone,omitempty"` // palette token
}

// Theme is the document-wide visual contract.
type Theme struct {
	ContainerWidth int         `json:"containerWidth"`
	Colors         ThemeColors `json:"colors"`
	Fonts          ThemeFonts  `json:"fonts"`
	Button         Button      `json:"button"`

	// Derived fields, filled in by theme derivation. A hand-written document
	// may omit them and the renderer falls back to the base colors.
	Palette    *Palette          `json:"palette,omitempty"`
	Rhythm     *Rhythm           `json:"rhythm,omitempty"`
	Components *Components       `json:"components,omitempty"`
	Accessible map[string]string `json:"accessible,omitempty"` // background token -> text hex
}
