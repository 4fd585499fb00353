package spec

// SectionType is the closed vocabulary of section semantics.
type SectionType string

const (
	SectionHeader      SectionType = "header"
	SectionHero        SectionType = "hero"
	SectionFeature     SectionType = "feature"
	SectionProductGrid SectionType = "productGrid"
	SectionStory       SectionType = "story"
	SectionFAQ         SectionType = "faq"
	SectionSocialProof SectionType = "socialProof"
	SectionTestimonial SectionType = "testimonial"
	SectionCTA         SectionType = "cta"
	SectionFooter      SectionType = "footer"
)

var sectionTypes = map[SectionType]bool{
	SectionHeader: true, SectionHero: true, SectionFeature: true,
	SectionProductGrid: true, SectionStory: true, SectionFAQ: true,
	SectionSocialProof: true, SectionTestimonial: true, SectionCTA: true,
	SectionFooter: true,
}

// Valid reports whether t is part of the closed vocabulary
func (t SectionType) Valid() bool {
	return sectionTypes[t]
}

// IsHeaderClass reports whether t may open the document. Header-class sections
// also get hero typography from the renderer.
func (t SectionType) IsHeaderClass() bool {
	return t == SectionHeader || t == SectionHero
}

// LayoutType discriminates how a section arranges its blocks.
type LayoutType string

const (
	LayoutSingle    LayoutType = "single"
	LayoutTwoColumn LayoutType = "twoColumn"
	LayoutGrid      LayoutType = "grid"
)

// Column is one explicit column of a twoColumn layout.
type Column struct {
	Width  int     `json:"width"` // percent of the container
	Blocks []Block `json:"blocks"`
}

// Layout describes multi-column arrangement. twoColumn carries two explicit
// column specs; grid distributes the section's flat block list across
// columnCount columns.
type Layout struct {
	Type        LayoutType `json:"type"`
	Columns     []Column   `json:"columns,omitempty"`
	ColumnCount int        `json:"columnCount,omitempty"`
	Gap         int        `json:"gap,omitempty"` // px between columns
}

// SectionStyle is the optional per-section styling override.
type SectionStyle struct {
	Background string `json:"background,omitempty"` // palette token
	Text       string `json:"text,omitempty"`       // palette token
	Padding    int    `json:"padding,omitempty"`    // px
	Divider    bool   `json:"divider,omitempty"`
	Container  bool   `json:"container,omitempty"` // constrain to container width
}

// Section is an ordered, styled container of blocks.
type Section struct {
	ID     string        `json:"id"`
	Type   SectionType   `json:"type"`
	Style  *SectionStyle `json:"style,omitempty"`
	Layout *Layout       `json:"layout,omitempty"`
	Blocks []Block       `json:"blocks"`
}

// AllBlocks returns every block in the section, including blocks nested in
// explicit layout columns. Rules that search for a block kind must use this
// so nested containers are never skipped.
func (s Section) AllBlocks() []Block {
	out := make([]Block, 0, len(s.Blocks))
	out = append(out, s.Blocks...)
	if s.Layout != nil {
		for _, col := range s.Layout.Columns {
			out = append(out, col.Blocks...)
		}
	}
	return out
}

// BackgroundToken returns the section's explicit background token, or "".
func (s Section) BackgroundToken() string {
	if s.Style == nil {
		return ""
	}
	return s.Style.Background
}
