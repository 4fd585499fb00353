package spec_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
)

func validTheme() spec.Theme {
	return spec.Theme{
		ContainerWidth: 600,
		Colors: spec.ThemeColors{
			Primary:    "#3b5bdb",
			Secondary:  "#748ffc",
			Background: "#ffffff",
			Text:       "#212529",
			Accent:     "#f59f00",
		},
		Fonts:  spec.ThemeFonts{Heading: "Georgia, serif", Body: "Arial, sans-serif"},
		Button: spec.Button{Radius: 6, Style: "solid"},
	}
}

func validDocument() *spec.EmailSpec {
	return &spec.EmailSpec{
		Meta: spec.Meta{
			Subject:   "Spring sale starts now",
			Preheader: "Up to 40% off our best sellers this week only",
		},
		Theme: validTheme(),
		Sections: []spec.Section{
			{
				ID:   "header",
				Type: spec.SectionHeader,
				Blocks: []spec.Block{
					{Type: spec.BlockLogo, Src: "https://cdn.example.com/logo.png", Alt: "Acme"},
				},
			},
			{
				ID:   "hero",
				Type: spec.SectionHero,
				Blocks: []spec.Block{
					{Type: spec.BlockHeading, Text: "Spring sale", Level: 1},
					{Type: spec.BlockParagraph, Text: "Everything you love, for less."},
					{Type: spec.BlockButton, Label: "Shop now", Href: "https://example.com/sale"},
				},
			},
			{
				ID:   "footer",
				Type: spec.SectionFooter,
				Blocks: []spec.Block{
					{Type: spec.BlockSmallPrint, Text: "You can " + spec.UnsubscribeToken + " at any time."},
				},
			},
		},
	}
}

// --- schema validation tests ---

func TestValidDocumentPasses(t *testing.T) {
	issues := spec.ValidateSchema(validDocument())
	if spec.HasErrors(issues) {
		t.Fatalf("valid document should produce no errors, got %+v", spec.Errors(issues))
	}
}

func TestSubjectLengthBounds(t *testing.T) {
	doc := validDocument()
	doc.Meta.Subject = "Hey"
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeOutOfRange, "meta.subject")

	doc.Meta.Subject = strings.Repeat("x", 151)
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeOutOfRange, "meta.subject")
}

func TestContainerWidthBounds(t *testing.T) {
	doc := validDocument()
	doc.Theme.ContainerWidth = 479
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeOutOfRange, "theme.containerWidth")
}

func TestInvalidHexColor(t *testing.T) {
	doc := validDocument()
	doc.Theme.Colors.Primary = "blue"
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeInvalidColor, "theme.colors.primary")

	doc.Theme.Colors.Primary = "#fff"
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeInvalidColor, "theme.colors.primary")
}

func TestSectionCountBounds(t *testing.T) {
	doc := validDocument()
	doc.Sections = doc.Sections[:2]
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeOutOfRange, "sections")
}

func TestUnknownSectionType(t *testing.T) {
	doc := validDocument()
	doc.Sections[1].Type = "sidebar"
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeInvalidEnum, "sections[1].type")
}

func TestHeadingLevelRange(t *testing.T) {
	doc := validDocument()
	doc.Sections[1].Blocks[0].Level = 4
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeOutOfRange, "sections[1].blocks[0].level")
}

func TestButtonNeedsLabel(t *testing.T) {
	doc := validDocument()
	doc.Sections[1].Blocks[2].Label = ""
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeRequired, "sections[1].blocks[2].label")
}

func TestTwoColumnNeedsBothColumns(t *testing.T) {
	doc := validDocument()
	doc.Sections[1].Layout = &spec.Layout{
		Type:    spec.LayoutTwoColumn,
		Columns: []spec.Column{{Width: 50}},
	}
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeInvalidLayout, "sections[1].layout.columns")
}

func TestGridColumnCountRange(t *testing.T) {
	doc := validDocument()
	doc.Sections[1].Layout = &spec.Layout{Type: spec.LayoutGrid, ColumnCount: 5}
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeInvalidLayout, "sections[1].layout.columnCount")
}

func TestNestedColumnBlocksChecked(t *testing.T) {
	doc := validDocument()
	doc.Sections[1].Layout = &spec.Layout{
		Type: spec.LayoutTwoColumn,
		Columns: []spec.Column{
			{Width: 50, Blocks: []spec.Block{{Type: spec.BlockHeading, Level: 2}}}, // missing text
			{Width: 50, Blocks: []spec.Block{{Type: spec.BlockParagraph, Text: "ok"}}},
		},
	}
	assertIssue(t, spec.ValidateSchema(doc), spec.CodeRequired, "sections[1].layout.columns[0].blocks[0].text")
}

// --- decode tests ---

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := spec.Decode([]byte("not json at all")); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	doc := validDocument()
	raw, err := doc.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := spec.Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Meta.Subject != doc.Meta.Subject {
		t.Fatalf("subject lost in round trip: %q", decoded.Meta.Subject)
	}
	if len(decoded.Sections) != len(doc.Sections) {
		t.Fatalf("sections lost in round trip: %d", len(decoded.Sections))
	}
}

func assertIssue(t *testing.T, issues []spec.Issue, code, path string) {
	t.Helper()
	for _, is := range issues {
		if is.Code == code && is.Path == path {
			return
		}
	}
	t.Fatalf("expected issue %s at %s, got %+v", code, path, issues)
}
