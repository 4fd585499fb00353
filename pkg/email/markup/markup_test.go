package markup_test

import (
	"strings"
	"testing"

	"github.com/Abraxas-365/mailcraft/pkg/email/markup"
)

// --- node serialization tests ---

func TestSerializeSelfClosing(t *testing.T) {
	n := markup.NewElement("divider").SetAttr("color", "#e0e0e0")
	if got := n.String(); got != `<divider color="#e0e0e0"/>` {
		t.Fatalf("unexpected serialization: %s", got)
	}
}

func TestSerializeNested(t *testing.T) {
	n := markup.NewElement("section").
		SetAttr("id", "hero").
		Append(markup.NewElement("text").AppendText("hello"))
	want := `<section id="hero"><text>hello</text></section>`
	if got := n.String(); got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestSerializeEscapesTextAndAttrs(t *testing.T) {
	n := markup.NewElement("text").
		SetAttr("title", `a"b<c`).
		AppendText(`1 < 2 & 3 > 2`)
	out := n.String()
	if strings.Contains(out, `a"b<c`) {
		t.Fatal("attribute value must be escaped")
	}
	if !strings.Contains(out, "1 &lt; 2 &amp; 3 &gt; 2") {
		t.Fatalf("text content must be escaped, got %s", out)
	}
}

func TestSetAttrPreservesOrder(t *testing.T) {
	n := markup.NewElement("button").
		SetAttr("href", "https://example.com").
		SetAttr("bgcolor", "#000000").
		SetAttr("href", "https://example.com/updated")
	out := n.String()
	if !strings.HasPrefix(out, `<button href="https://example.com/updated" bgcolor=`) {
		t.Fatalf("replacing an attribute must keep its original position: %s", out)
	}
}

// --- compiler tests ---

func compileEmail(t *testing.T, children ...*markup.Node) (string, int) {
	t.Helper()
	root := markup.NewElement("email").
		SetAttr("width", "600").
		SetAttr("bgcolor", "#ffffff")
	root.Append(children...)

	html, warnings, err := markup.NewHTMLCompiler().Compile(root)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return html, len(warnings)
}

func TestCompileRejectsNonEmailRoot(t *testing.T) {
	if _, _, err := markup.NewHTMLCompiler().Compile(markup.NewElement("section")); err == nil {
		t.Fatal("expected an error for a non-email root")
	}
}

func TestCompileUnknownTagWarns(t *testing.T) {
	section := markup.NewElement("section").Append(markup.NewElement("blink").AppendText("hi"))
	_, warned := compileEmail(t, section)
	if warned != 1 {
		t.Fatalf("expected exactly one warning for an unknown tag, got %d", warned)
	}
}

func TestCompileSanitizesInlineMarkup(t *testing.T) {
	section := markup.NewElement("section").
		Append(markup.NewElement("text").AppendText(`click <script>alert(1)</script> here`))
	html, _ := compileEmail(t, section)
	if strings.Contains(html, "<script>") {
		t.Fatal("script tags must never survive compilation")
	}
}

func TestCompileRendersInlineMarkdown(t *testing.T) {
	section := markup.NewElement("section").
		Append(markup.NewElement("text").AppendText("this is **bold** copy"))
	html, _ := compileEmail(t, section)
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("inline markdown emphasis should compile to strong: %s", html)
	}
}

func TestCompileOutlineButton(t *testing.T) {
	section := markup.NewElement("section").Append(
		markup.NewElement("button").
			SetAttr("href", "https://example.com").
			SetAttr("bgcolor", "#3b5bdb").
			SetAttr("variant", "outline").
			AppendText("More"),
	)
	html, _ := compileEmail(t, section)
	if !strings.Contains(html, "border:2px solid #3b5bdb") {
		t.Fatalf("outline buttons render a border instead of a fill: %s", html)
	}
}

func TestCompilePreheaderHidden(t *testing.T) {
	pre := markup.NewElement("preheader").AppendText("sneak peek")
	section := markup.NewElement("section").Append(markup.NewElement("text").AppendText("body"))
	html, _ := compileEmail(t, pre, section)
	if !strings.Contains(html, "display:none") || !strings.Contains(html, "sneak peek") {
		t.Fatal("preheader must be present but visually hidden")
	}
}
