package render_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/markup"
	"github.com/Abraxas-365/mailcraft/pkg/email/render"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/email/theme"
)

func renderableDocument() *spec.EmailSpec {
	doc := &spec.EmailSpec{
		Meta: spec.Meta{Subject: "Fresh drops", Preheader: "New arrivals you will like"},
		Theme: spec.Theme{
			ContainerWidth: 600,
			Colors: spec.ThemeColors{
				Primary: "#3b5bdb", Secondary: "#748ffc", Background: "#ffffff",
				Text: "#212529", Accent: "#f59f00",
			},
			Fonts:  spec.ThemeFonts{Heading: "Georgia, serif", Body: "Arial, sans-serif"},
			Button: spec.Button{Radius: 6},
		},
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
					{Type: spec.BlockHeading, Text: "Fresh drops", Level: 1},
					{Type: spec.BlockButton, Label: "Shop", Href: "https://example.com/shop"},
				},
			},
			{
				ID:   "footer",
				Type: spec.SectionFooter,
				Blocks: []spec.Block{
					{Type: spec.BlockSmallPrint, Text: spec.UnsubscribeToken},
				},
			},
		},
		Catalog: []spec.CatalogItem{
			{ID: "sku-1", Title: "Canvas Tote", Price: "$29", Image: "https://cdn.example.com/tote.png", URL: "https://example.com/tote"},
		},
	}
	theme.Enhance(doc, brand.Palette{Primary: "#3b5bdb", Background: "#ffffff", Text: "#212529"})
	return doc
}

// --- markup tests ---

func TestRenderDeterministic(t *testing.T) {
	doc := renderableDocument()
	first, _ := render.Render(doc)
	second, _ := render.Render(doc)
	if first != second {
		t.Fatal("rendering the same document twice must produce identical markup")
	}
}

func TestRenderEscapesText(t *testing.T) {
	doc := renderableDocument()
	doc.Sections[1].Blocks[0].Text = `<script>alert("x")</script>`
	out, _ := render.Render(doc)
	if strings.Contains(out, "<script>") {
		t.Fatal("text content must be escaped in markup")
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatal("expected escaped script tag in markup")
	}
}

func TestContainerWidthClamped(t *testing.T) {
	doc := renderableDocument()
	doc.Theme.ContainerWidth = 9000
	out, _ := render.Render(doc)
	if !strings.Contains(out, `width="720"`) {
		t.Fatalf("container width must clamp to 720, got: %s", out[:120])
	}
}

func TestHeaderClassHeadingLarger(t *testing.T) {
	doc := renderableDocument()
	heroMarkup, _ := render.Render(doc)

	doc.Sections[1].Type = spec.SectionFeature
	doc.Sections[0].Type = spec.SectionHero // keep a valid opener
	bodyMarkup, _ := render.Render(doc)

	if !strings.Contains(heroMarkup, `size="40"`) {
		t.Fatal("level-1 heading in a hero section should render at hero scale")
	}
	if strings.Contains(bodyMarkup, `size="40"`) {
		t.Fatal("level-1 heading in a body section should not render at hero scale")
	}
}

// --- degradation tests ---

func TestMissingProductRendersPlaceholder(t *testing.T) {
	doc := renderableDocument()
	doc.Sections[1].Blocks = append(doc.Sections[1].Blocks,
		spec.Block{Type: spec.BlockProductCard, ProductRef: "sku-ghost"})

	out, warnings := render.Render(doc)
	if !strings.Contains(out, "<placeholder") {
		t.Fatal("unresolved product must degrade to a placeholder")
	}
	assertWarningCode(t, warnings, render.CodeProductNotFound)
}

func TestResolvedProductRendersCard(t *testing.T) {
	doc := renderableDocument()
	doc.Sections[1].Blocks = append(doc.Sections[1].Blocks,
		spec.Block{Type: spec.BlockProductCard, ProductRef: "sku-1"})

	out, warnings := render.Render(doc)
	if !strings.Contains(out, `title="Canvas Tote"`) {
		t.Fatal("resolved product must render a card with its title")
	}
	assertNoWarningCode(t, warnings, render.CodeProductNotFound)
}

func TestInvalidButtonHrefDegradesToText(t *testing.T) {
	doc := renderableDocument()
	doc.Sections[1].Blocks[1].Href = ""

	out, warnings := render.Render(doc)
	if strings.Contains(out, "<button") {
		t.Fatal("button without a usable href must not render as a button")
	}
	assertWarningCode(t, warnings, render.CodeInvalidButtonHref)
}

func TestJavascriptHrefRejected(t *testing.T) {
	doc := renderableDocument()
	doc.Sections[1].Blocks[1].Href = "javascript:alert(1)"
	_, warnings := render.Render(doc)
	assertWarningCode(t, warnings, render.CodeInvalidButtonHref)
}

func TestTwoColumnWithoutSpecsSplitsEvenly(t *testing.T) {
	doc := renderableDocument()
	doc.Sections[1].Layout = &spec.Layout{Type: spec.LayoutTwoColumn}

	out, warnings := render.Render(doc)
	if strings.Count(out, "<column ") != 2 {
		t.Fatalf("degraded twoColumn must still emit two columns:\n%s", out)
	}
	assertWarningCode(t, warnings, render.CodeLayoutDegraded)
}

func TestGridWithoutGapWarns(t *testing.T) {
	doc := renderableDocument()
	doc.Sections[1].Layout = &spec.Layout{Type: spec.LayoutGrid, ColumnCount: 2}
	_, warnings := render.Render(doc)
	assertWarningCode(t, warnings, render.CodeGridNoGap)
}

// --- compile tests ---

func TestRenderHTMLProducesDocument(t *testing.T) {
	doc := renderableDocument()
	res, err := render.RenderHTML(doc, markup.NewHTMLCompiler())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if !strings.HasPrefix(res.HTML, "<!DOCTYPE html>") {
		t.Fatal("compiled output must be a full HTML document")
	}
	if !strings.Contains(res.HTML, "Fresh drops") {
		t.Fatal("heading copy missing from compiled HTML")
	}
	if !strings.Contains(res.HTML, "https://example.com/shop") {
		t.Fatal("button href missing from compiled HTML")
	}
}

func assertWarningCode(t *testing.T, warnings []spec.Issue, code string) {
	t.Helper()
	for _, w := range warnings {
		if w.Code == code {
			return
		}
	}
	t.Fatalf("expected warning %s, got %+v", code, warnings)
}

func assertNoWarningCode(t *testing.T, warnings []spec.Issue, code string) {
	t.Helper()
	for _, w := range warnings {
		if w.Code == code {
			t.Fatalf("unexpected warning %s", code)
		}
	}
}
