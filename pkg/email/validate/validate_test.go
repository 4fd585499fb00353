package validate_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/email/validate"
)

func testDocument() *spec.EmailSpec {
	return &spec.EmailSpec{
		Meta: spec.Meta{Subject: "Big news inside", Preheader: "Something worth opening for"},
		Sections: []spec.Section{
			{
				ID:   "header",
				Type: spec.SectionHeader,
				Blocks: []spec.Block{
					{Type: spec.BlockLogo, Src: "https://cdn.example.com/logo.png"},
				},
			},
			{
				ID:   "hero",
				Type: spec.SectionHero,
				Blocks: []spec.Block{
					{Type: spec.BlockHeading, Text: "Hello", Level: 1},
					{Type: spec.BlockButton, Label: "Shop now", Href: "https://example.com"},
				},
			},
			{
				ID:   "story",
				Type: spec.SectionStory,
				Blocks: []spec.Block{
					{Type: spec.BlockHeading, Text: "Our story", Level: 2},
					{Type: spec.BlockParagraph, Text: "It began in a garage."},
				},
			},
			{
				ID:   "footer",
				Type: spec.SectionFooter,
				Blocks: []spec.Block{
					{Type: spec.BlockSmallPrint, Text: "Tired of us? " + spec.UnsubscribeToken},
				},
			},
		},
	}
}

// --- shape and ordering rules ---

func TestCleanDocumentHasNoErrors(t *testing.T) {
	issues := validate.Validate(testDocument(), validate.Context{})
	if spec.HasErrors(issues) {
		t.Fatalf("expected no errors, got %+v", spec.Errors(issues))
	}
}

func TestFirstSectionMustBeHeaderClass(t *testing.T) {
	doc := testDocument()
	doc.Sections[0].Type = spec.SectionFeature
	assertError(t, doc, validate.CodeHeaderFirst)
}

func TestHeroMayOpenTheDocument(t *testing.T) {
	doc := testDocument()
	doc.Sections[0].Type = spec.SectionHero
	issues := validate.Validate(doc, validate.Context{})
	for _, is := range issues {
		if is.Code == validate.CodeHeaderFirst {
			t.Fatal("hero must count as a header-class opener")
		}
	}
}

func TestLastSectionMustBeFooter(t *testing.T) {
	doc := testDocument()
	doc.Sections[len(doc.Sections)-1].Type = spec.SectionCTA
	assertError(t, doc, validate.CodeFooterLast)
}

func TestFooterNeedsUnsubscribeToken(t *testing.T) {
	doc := testDocument()
	doc.Sections[3].Blocks[0].Text = "No way out"
	assertError(t, doc, validate.CodeMissingUnsub)
}

func TestUnsubscribeTokenInLinkCounts(t *testing.T) {
	doc := testDocument()
	doc.Sections[3].Blocks = []spec.Block{
		{Type: spec.BlockNavLinks, Links: []spec.Link{{Label: "Unsubscribe", Href: spec.UnsubscribeToken}}},
	}
	issues := validate.Validate(doc, validate.Context{})
	for _, is := range issues {
		if is.Code == validate.CodeMissingUnsub {
			t.Fatal("token inside a link href must satisfy the rule")
		}
	}
}

func TestCTARequiredOutsideFooter(t *testing.T) {
	doc := testDocument()
	doc.Sections[1].Blocks = doc.Sections[1].Blocks[:1] // drop the button
	assertError(t, doc, validate.CodeMissingCTA)
}

func TestCTAFoundInsideLayoutColumn(t *testing.T) {
	doc := testDocument()
	doc.Sections[1].Blocks = []spec.Block{{Type: spec.BlockHeading, Text: "Hello", Level: 1}}
	doc.Sections[1].Layout = &spec.Layout{
		Type: spec.LayoutTwoColumn,
		Columns: []spec.Column{
			{Width: 50, Blocks: []spec.Block{{Type: spec.BlockParagraph, Text: "left"}}},
			{Width: 50, Blocks: []spec.Block{{Type: spec.BlockButton, Label: "Go", Href: "https://example.com"}}},
		},
	}
	issues := validate.Validate(doc, validate.Context{})
	for _, is := range issues {
		if is.Code == validate.CodeMissingCTA {
			t.Fatal("CTA search must descend into layout columns")
		}
	}
}

func TestDuplicateSectionIDs(t *testing.T) {
	doc := testDocument()
	doc.Sections[2].ID = "hero"
	assertError(t, doc, validate.CodeDuplicateID)
}

func TestProductRefMustResolve(t *testing.T) {
	doc := testDocument()
	doc.Sections[1].Blocks = append(doc.Sections[1].Blocks,
		spec.Block{Type: spec.BlockProductCard, ProductRef: "sku-missing"})
	assertError(t, doc, validate.CodeProductRef)

	doc.Catalog = []spec.CatalogItem{{ID: "sku-missing", Title: "Widget"}}
	issues := validate.Validate(doc, validate.Context{})
	for _, is := range issues {
		if is.Code == validate.CodeProductRef {
			t.Fatal("resolved reference must not be reported")
		}
	}
}

func TestTwoColumnMustDeclareColumns(t *testing.T) {
	doc := testDocument()
	doc.Sections[1].Layout = &spec.Layout{Type: spec.LayoutTwoColumn}
	assertError(t, doc, validate.CodeIncompleteColumns)
}

func TestLogoNeedsSrc(t *testing.T) {
	doc := testDocument()
	doc.Sections[0].Blocks[0].Src = ""
	assertError(t, doc, validate.CodeLogoMissingSrc)
}

// --- content-quality warnings ---

func TestTooManySectionsWarns(t *testing.T) {
	doc := testDocument()
	footer := doc.Sections[3]
	doc.Sections = doc.Sections[:3]
	for i := 0; i < 5; i++ {
		sec := testDocument().Sections[2]
		sec.ID = "story-" + strings.Repeat("x", i+1)
		doc.Sections = append(doc.Sections, sec)
	}
	doc.Sections = append(doc.Sections, footer)

	assertWarning(t, doc, validate.CodeTooManySections)
}

func TestCTADilutionWarns(t *testing.T) {
	doc := testDocument()
	for i := 0; i < 5; i++ {
		doc.Sections[2].Blocks = append(doc.Sections[2].Blocks,
			spec.Block{Type: spec.BlockButton, Label: "Buy", Href: "https://example.com"})
	}
	assertWarning(t, doc, validate.CodeCTADilution)
}

func TestDenseCopyWarns(t *testing.T) {
	doc := testDocument()
	doc.Sections[2].Blocks[1].Text = strings.Repeat("words and more words. ", 100)
	assertWarning(t, doc, validate.CodeDenseCopy)
}

func TestFAQShapeWarns(t *testing.T) {
	doc := testDocument()
	doc.Sections[2] = spec.Section{
		ID:   "faq",
		Type: spec.SectionFAQ,
		Blocks: []spec.Block{
			{Type: spec.BlockHeading, Text: "Is it free?", Level: 3},
			{Type: spec.BlockParagraph, Text: "Yes."},
		},
	}
	assertWarning(t, doc, validate.CodeFAQShape)
}

func TestSocialProofWithoutLogoWarns(t *testing.T) {
	doc := testDocument()
	doc.Sections[2] = spec.Section{
		ID:   "proof",
		Type: spec.SectionSocialProof,
		Blocks: []spec.Block{
			{Type: spec.BlockParagraph, Text: "Trusted by thousands"},
		},
	}
	assertWarning(t, doc, validate.CodeSocialNoLogo)
}

func TestStoryWithoutBodyWarns(t *testing.T) {
	doc := testDocument()
	doc.Sections[2].Blocks = doc.Sections[2].Blocks[:1]
	assertWarning(t, doc, validate.CodeStoryIncomplete)
}

func TestBackgroundMonotonyWarns(t *testing.T) {
	doc := testDocument()
	for i := 0; i < 3; i++ {
		doc.Sections[i].Style = &spec.SectionStyle{Background: "surface"}
	}
	assertWarning(t, doc, validate.CodeBackgroundRut)
}

func TestThemeDriftWarns(t *testing.T) {
	doc := testDocument()
	doc.Theme.Colors.Primary = "#ffffff"
	doc.Theme.Colors.Text = "#111111"
	b := brand.BrandContext{
		Name:   "Acme",
		Colors: brand.Palette{Primary: "#111111", Background: "#ffffff", Text: "#111111"},
	}
	issues := validate.Validate(doc, validate.Context{Brand: &b})
	found := false
	for _, is := range issues {
		if is.Code == validate.CodeThemeDrift {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a theme drift warning for a primary far from the brand color")
	}
}

func assertError(t *testing.T, doc *spec.EmailSpec, code string) {
	t.Helper()
	for _, is := range validate.Validate(doc, validate.Context{}) {
		if is.Code == code && is.Severity == spec.SeverityError {
			return
		}
	}
	t.Fatalf("expected error %s", code)
}

func assertWarning(t *testing.T, doc *spec.EmailSpec, code string) {
	t.Helper()
	for _, is := range validate.Validate(doc, validate.Context{}) {
		if is.Code == code && is.Severity == spec.SeverityWarning {
			return
		}
	}
	t.Fatalf("expected warning %s", code)
}
