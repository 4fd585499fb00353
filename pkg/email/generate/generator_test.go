package generate_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Abraxas-365/mailcraft/pkg/ai/llm"
	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/generate"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/errx"
	"github.com/Abraxas-365/mailcraft/pkg/logx"
)

// scriptedProvider replays canned responses and records each call's options.
type scriptedProvider struct {
	responses []string
	errs      []error
	calls     int
	temps     []float32
}

func (p *scriptedProvider) Chat(_ context.Context, _ []llm.Message, options ...llm.Option) (llm.Response, error) {
	opts := llm.DefaultOptions()
	for _, o := range options {
		o(opts)
	}
	p.temps = append(p.temps, opts.Temperature)

	i := p.calls
	p.calls++
	if i < len(p.errs) && p.errs[i] != nil {
		return llm.Response{}, p.errs[i]
	}
	if i >= len(p.responses) {
		return llm.Response{}, nil
	}
	return llm.Response{Message: llm.NewAssistantMessage(p.responses[i])}, nil
}

func testInput() (brand.BrandContext, brand.CampaignIntent, brand.Plan) {
	b := brand.BrandContext{
		Name: "Acme",
		Colors: brand.Palette{
			Primary: "#3b5bdb", Background: "#ffffff", Text: "#212529",
		},
		Fonts: brand.Fonts{Heading: "Georgia, serif", Body: "Arial, sans-serif"},
	}
	intent := brand.CampaignIntent{Type: "product_launch", Tone: "warm"}
	plan := brand.Plan{SectionPurposes: []string{"open strong", "show the product", "close"}}
	return b, intent, plan
}

func validSpecJSON(t *testing.T) string {
	t.Helper()
	doc := spec.EmailSpec{
		Meta: spec.Meta{Subject: "Meet the new arrival", Preheader: "A launch worth your inbox"},
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
			{ID: "header", Type: spec.SectionHeader, Blocks: []spec.Block{
				{Type: spec.BlockHeading, Text: "Acme", Level: 2},
			}},
			{ID: "hero", Type: spec.SectionHero, Blocks: []spec.Block{
				{Type: spec.BlockHeading, Text: "It is here", Level: 1},
				{Type: spec.BlockButton, Label: "See it", Href: "https://example.com"},
			}},
			{ID: "footer", Type: spec.SectionFooter, Blocks: []spec.Block{
				{Type: spec.BlockSmallPrint, Text: spec.UnsubscribeToken},
			}},
		},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return string(raw)
}

// invalidSpecJSON is schema-valid JSON with a broken structure: no footer.
func invalidSpecJSON(t *testing.T) string {
	t.Helper()
	var doc spec.EmailSpec
	if err := json.Unmarshal([]byte(validSpecJSON(t)), &doc); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}
	doc.Sections[2].Type = spec.SectionCTA
	raw, _ := json.Marshal(doc)
	return string(raw)
}

// --- orchestration scenarios ---

func TestAcceptsOnFirstAttempt(t *testing.T) {
	p := &scriptedProvider{responses: []string{validSpecJSON(t)}}
	g := generate.New(p)

	b, intent, plan := testInput()
	result, err := g.Generate(context.Background(), b, intent, plan)
	if err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
	if result.Attempts != 1 || p.calls != 1 {
		t.Fatalf("expected a single call, got attempts=%d calls=%d", result.Attempts, p.calls)
	}
	if p.temps[0] != 0.7 {
		t.Fatalf("first attempt temperature should be 0.7, got %f", p.temps[0])
	}
}

func TestRepairsAfterInvalidAttempt(t *testing.T) {
	p := &scriptedProvider{responses: []string{invalidSpecJSON(t), validSpecJSON(t)}}
	g := generate.New(p)

	b, intent, plan := testInput()
	result, err := g.Generate(context.Background(), b, intent, plan)
	if err != nil {
		t.Fatalf("expected acceptance on attempt 2, got %v", err)
	}
	if result.Attempts != 2 || p.calls != 2 {
		t.Fatalf("expected exactly 2 calls, got attempts=%d calls=%d", result.Attempts, p.calls)
	}
	if p.temps[1] != 0.5 {
		t.Fatalf("second attempt temperature should be 0.5, got %f", p.temps[1])
	}
}

func TestRepeatedErrorsFailFast(t *testing.T) {
	bad := invalidSpecJSON(t)
	p := &scriptedProvider{responses: []string{bad, bad, validSpecJSON(t)}}
	g := generate.New(p)

	b, intent, plan := testInput()
	_, err := g.Generate(context.Background(), b, intent, plan)
	if err == nil {
		t.Fatal("expected failure on a repeated error signature")
	}
	if p.calls != 2 {
		t.Fatalf("repeated signature must stop after 2 calls, got %d", p.calls)
	}
	assertCode(t, err, "LLM_OUTPUT_INVALID")
}

func TestSameStructuralMistakeAtDifferentPathsFailsFast(t *testing.T) {
	// An unresolved product reference moves between sections but the
	// structural mistake is the same, so the run must stop after 2 calls.
	withGhostCard := func(sectionIdx int) string {
		var doc spec.EmailSpec
		if err := json.Unmarshal([]byte(validSpecJSON(t)), &doc); err != nil {
			t.Fatalf("unmarshal fixture: %v", err)
		}
		doc.Sections[sectionIdx].Blocks = append(doc.Sections[sectionIdx].Blocks,
			spec.Block{Type: spec.BlockProductCard, ProductRef: "sku-ghost"})
		raw, _ := json.Marshal(doc)
		return string(raw)
	}

	p := &scriptedProvider{responses: []string{withGhostCard(1), withGhostCard(0), validSpecJSON(t)}}
	g := generate.New(p)

	b, intent, plan := testInput()
	_, err := g.Generate(context.Background(), b, intent, plan)
	if err == nil {
		t.Fatal("expected failure on a repeated structural code")
	}
	if p.calls != 2 {
		t.Fatalf("repeated structural code must stop after 2 calls, got %d", p.calls)
	}
	assertCode(t, err, "LLM_OUTPUT_INVALID")
}

func TestSchemaFindingsKeepTheirPath(t *testing.T) {
	// The same shape code at two different fields is two different mistakes
	// and must not trip the short-circuit.
	withBadLevel := func(sectionIdx int) string {
		var doc spec.EmailSpec
		if err := json.Unmarshal([]byte(validSpecJSON(t)), &doc); err != nil {
			t.Fatalf("unmarshal fixture: %v", err)
		}
		doc.Sections[sectionIdx].Blocks[0].Level = 4
		raw, _ := json.Marshal(doc)
		return string(raw)
	}

	p := &scriptedProvider{responses: []string{withBadLevel(1), withBadLevel(0), validSpecJSON(t)}}
	g := generate.New(p)

	b, intent, plan := testInput()
	result, err := g.Generate(context.Background(), b, intent, plan)
	if err != nil {
		t.Fatalf("expected acceptance on attempt 3, got %v", err)
	}
	if result.Attempts != 3 || p.calls != 3 {
		t.Fatalf("expected 3 calls, got attempts=%d calls=%d", result.Attempts, p.calls)
	}
}

func TestParseFailureFeedsRepair(t *testing.T) {
	p := &scriptedProvider{responses: []string{"absolutely not json", validSpecJSON(t)}}
	g := generate.New(p)

	b, intent, plan := testInput()
	result, err := g.Generate(context.Background(), b, intent, plan)
	if err != nil {
		t.Fatalf("parse failure should be repairable, got %v", err)
	}
	if result.Attempts != 2 {
		t.Fatalf("expected acceptance on attempt 2, got %d", result.Attempts)
	}
}

func TestExhaustionClassifiedAsOutputInvalid(t *testing.T) {
	// Three different structural failures so the signature never repeats.
	var docs []string
	base := validSpecJSON(t)
	for _, id := range []string{"a", "b", "c"} {
		var doc spec.EmailSpec
		if err := json.Unmarshal([]byte(base), &doc); err != nil {
			t.Fatalf("unmarshal fixture: %v", err)
		}
		doc.Sections[2].Type = spec.SectionCTA
		doc.Sections[2].ID = id
		switch id {
		case "b":
			doc.Sections[1].Blocks = doc.Sections[1].Blocks[:1]
		case "c":
			doc.Sections[0].ID = "hero"
		}
		raw, _ := json.Marshal(doc)
		docs = append(docs, string(raw))
	}

	p := &scriptedProvider{responses: docs}
	g := generate.New(p)

	b, intent, plan := testInput()
	_, err := g.Generate(context.Background(), b, intent, plan)
	if err == nil {
		t.Fatal("expected failure after exhausting the attempt budget")
	}
	if p.calls != 3 {
		t.Fatalf("expected all 3 attempts to be spent, got %d", p.calls)
	}
	if p.temps[2] != 0.3 {
		t.Fatalf("third attempt temperature should be 0.3, got %f", p.temps[2])
	}
	assertCode(t, err, "LLM_OUTPUT_INVALID")
}

func TestTimeoutClassified(t *testing.T) {
	p := &scriptedProvider{errs: []error{context.DeadlineExceeded}}
	g := generate.New(p, generate.WithTimeout(10*time.Millisecond))

	b, intent, plan := testInput()
	_, err := g.Generate(context.Background(), b, intent, plan)
	assertCode(t, err, "LLM_TIMEOUT")
}

func TestNilProviderClassified(t *testing.T) {
	g := generate.New(nil)
	b, intent, plan := testInput()
	_, err := g.Generate(context.Background(), b, intent, plan)
	assertCode(t, err, "LLM_CONFIG_MISSING")
}

func TestInvalidInputNeverCallsModel(t *testing.T) {
	p := &scriptedProvider{responses: []string{validSpecJSON(t)}}
	g := generate.New(p)

	b, intent, plan := testInput()
	b.Colors.Primary = "not-a-color"
	_, err := g.Generate(context.Background(), b, intent, plan)
	assertCode(t, err, "INVALID_INPUT")
	if p.calls != 0 {
		t.Fatalf("invalid input must fail before any model call, got %d calls", p.calls)
	}
}

// recordingTracer captures the event stream for assertions.
type recordingTracer struct {
	events []string
	fields []logx.Fields
}

func (r *recordingTracer) Event(name string, fields logx.Fields) {
	r.events = append(r.events, name)
	r.fields = append(r.fields, fields)
}

func TestTracerSeesRepairCycle(t *testing.T) {
	p := &scriptedProvider{responses: []string{invalidSpecJSON(t), validSpecJSON(t)}}
	tr := &recordingTracer{}
	g := generate.New(p, generate.WithTracer(tr))

	b, intent, plan := testInput()
	if _, err := g.Generate(context.Background(), b, intent, plan); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}

	want := []string{
		generate.EventRunStarted,
		generate.EventCallingModel,
		generate.EventValidating,
		generate.EventRejected,
		generate.EventCallingModel,
		generate.EventValidating,
		generate.EventAccepted,
	}
	if len(tr.events) != len(want) {
		t.Fatalf("expected %d events, got %v", len(want), tr.events)
	}
	for i, name := range want {
		if tr.events[i] != name {
			t.Fatalf("event %d: expected %s, got %s", i, name, tr.events[i])
		}
	}
	for _, f := range tr.fields {
		if f["run_id"] == "" || f["run_id"] == nil {
			t.Fatal("every event must carry the run id")
		}
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	var e *errx.Error
	if !errx.As(err, &e) {
		t.Fatalf("expected an errx.Error, got %T: %v", err, err)
	}
	if e.Code != code {
		t.Fatalf("expected code %s, got %s", code, e.Code)
	}
}
