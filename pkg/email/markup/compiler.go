package markup

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
)

// Compiler warning codes.
const (
	CodeUnknownTag = "UNKNOWN_MARKUP_TAG"
)

// Compiler turns a markup tree into final HTML. Implementations may report
// non-fatal findings which the caller surfaces alongside renderer warnings.
type Compiler interface {
	Compile(root *Node) (html string, warnings []spec.Issue, err error)
}

// HTMLCompiler is the default compiler. It emits table-based HTML that the
// major email clients agree on and sanitizes any rich copy before inlining.
type HTMLCompiler struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewHTMLCompiler builds the default compiler with a sanitation policy that
// permits inline emphasis and http(s) links, nothing else.
func NewHTMLCompiler() *HTMLCompiler {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("strong", "em", "b", "i", "br")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowURLSchemes("http", "https")
	return &HTMLCompiler{
		md:     goldmark.New(),
		policy: policy,
	}
}

// Compile walks the tree rooted at an email element and produces the full
// HTML document.
func (c *HTMLCompiler) Compile(root *Node) (string, []spec.Issue, error) {
	if root == nil || root.Tag != "email" {
		return "", nil, fmt.Errorf("markup root must be an email element")
	}

	var warnings []spec.Issue
	var body strings.Builder
	width := attrOr(root, "width", "600")
	pageBg := attrOr(root, "bgcolor", "#ffffff")
	bodyFont := attrOr(root, "font-body", "Arial, sans-serif")

	for _, child := range root.Children {
		if child.Tag == "preheader" {
			body.WriteString(`<div style="display:none;max-height:0;overflow:hidden;mso-hide:all;">`)
			body.WriteString(EscapeText(textContent(child)))
			body.WriteString(`</div>`)
			continue
		}
		if child.Tag != "section" {
			warnings = append(warnings, c.warnUnknown(child.Tag, "email"))
			continue
		}
		c.compileSection(&body, child, &warnings)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString(`<html><head><meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1"></head>`)
	sb.WriteString(fmt.Sprintf(`<body style="margin:0;padding:0;background-color:%s;font-family:%s;">`, pageBg, bodyFont))
	sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0"><tr><td align="center">`)
	sb.WriteString(fmt.Sprintf(`<table role="presentation" width="%s" cellpadding="0" cellspacing="0" border="0" style="max-width:%spx;width:100%%;">`, width, width))
	sb.WriteString(body.String())
	sb.WriteString(`</table></td></tr></table></body></html>`)
	return sb.String(), warnings, nil
}

func (c *HTMLCompiler) compileSection(sb *strings.Builder, sec *Node, warnings *[]spec.Issue) {
	bg := attrOr(sec, "bgcolor", "")
	color := attrOr(sec, "color", "")
	padding := attrOr(sec, "padding", "32")

	style := fmt.Sprintf("padding:%spx 24px;", padding)
	if bg != "" {
		style += "background-color:" + bg + ";"
	}
	if color != "" {
		style += "color:" + color + ";"
	}

	sb.WriteString(`<tr><td style="` + style + `">`)
	for _, child := range sec.Children {
		c.compileBlock(sb, child, warnings)
	}
	sb.WriteString(`</td></tr>`)

	if sec.Attr("divider") == "true" {
		tone := attrOr(sec, "divider-color", "#e0e0e0")
		sb.WriteString(fmt.Sprintf(`<tr><td style="padding:0 24px;"><hr style="border:none;border-top:1px solid %s;margin:0;"></td></tr>`, tone))
	}
}

func (c *HTMLCompiler) compileBlock(sb *strings.Builder, n *Node, warnings *[]spec.Issue) {
	switch n.Tag {
	case "columns":
		gap := attrOr(n, "gap", "0")
		sb.WriteString(`<table role="presentation" width="100%" cellpadding="0" cellspacing="0" border="0"><tr>`)
		for i, col := range n.Children {
			if col.Tag != "column" {
				*warnings = append(*warnings, c.warnUnknown(col.Tag, "columns"))
				continue
			}
			pad := ""
			if i > 0 && gap != "0" {
				pad = "padding-left:" + gap + "px;"
			}
			sb.WriteString(fmt.Sprintf(`<td width="%s%%" valign="top" style="%s">`, attrOr(col, "width", "50"), pad))
			for _, child := range col.Children {
				c.compileBlock(sb, child, warnings)
			}
			sb.WriteString(`</td>`)
		}
		sb.WriteString(`</tr></table>`)

	case "logo":
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" height="40" style="display:block;border:0;">`,
			EscapeAttr(n.Attr("src")), EscapeAttr(n.Attr("alt"))))

	case "heading":
		size := attrOr(n, "size", "24")
		weight := attrOr(n, "weight", "700")
		font := attrOr(n, "font", "")
		style := fmt.Sprintf("margin:0 0 12px;font-size:%spx;font-weight:%s;line-height:1.3;", size, weight)
		if font != "" {
			style = "font-family:" + font + ";" + style
		}
		level := attrOr(n, "level", "2")
		sb.WriteString(fmt.Sprintf(`<h%s style="%s">%s</h%s>`, level, style, EscapeText(textContent(n)), level))

	case "text":
		sb.WriteString(`<p style="margin:0 0 16px;font-size:16px;line-height:1.6;">`)
		sb.WriteString(c.inlineCopy(textContent(n)))
		sb.WriteString(`</p>`)

	case "smallprint":
		sb.WriteString(`<p style="margin:0 0 8px;font-size:12px;line-height:1.5;">`)
		sb.WriteString(c.inlineCopy(textContent(n)))
		sb.WriteString(`</p>`)

	case "image":
		sb.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" width="100%%" style="display:block;border:0;max-width:100%%;">`,
			EscapeAttr(n.Attr("src")), EscapeAttr(n.Attr("alt"))))

	case "button":
		fill := attrOr(n, "bgcolor", "#000000")
		color := attrOr(n, "color", "#ffffff")
		radius := attrOr(n, "radius", "4")
		style := fmt.Sprintf("display:inline-block;padding:12px 28px;background-color:%s;color:%s;border-radius:%spx;text-decoration:none;font-weight:600;", fill, color, radius)
		if n.Attr("variant") == "outline" {
			style = fmt.Sprintf("display:inline-block;padding:12px 28px;background-color:transparent;color:%s;border:2px solid %s;border-radius:%spx;text-decoration:none;font-weight:600;", fill, fill, radius)
		}
		sb.WriteString(fmt.Sprintf(`<div style="margin:8px 0 16px;"><a href="%s" style="%s">%s</a></div>`,
			EscapeAttr(n.Attr("href")), style, EscapeText(textContent(n))))

	case "card":
		c.compileCard(sb, n)

	case "placeholder":
		color := attrOr(n, "color", "#999999")
		sb.WriteString(fmt.Sprintf(`<div style="padding:24px;background-color:#f5f5f5;color:%s;text-align:center;font-size:14px;">%s</div>`,
			color, EscapeText(textContent(n))))

	case "badge":
		bg := attrOr(n, "bgcolor", "#eeeeee")
		color := attrOr(n, "color", "#000000")
		sb.WriteString(fmt.Sprintf(`<span style="display:inline-block;padding:4px 12px;background-color:%s;color:%s;border-radius:12px;font-size:12px;font-weight:700;text-transform:uppercase;">%s</span>`,
			bg, color, EscapeText(textContent(n))))

	case "bullets":
		sb.WriteString(`<ul style="margin:0 0 16px;padding-left:20px;font-size:16px;line-height:1.6;">`)
		for _, item := range n.Children {
			sb.WriteString(`<li>` + c.inlineCopy(textContent(item)) + `</li>`)
		}
		sb.WriteString(`</ul>`)

	case "priceline":
		sb.WriteString(`<p style="margin:0 0 12px;font-size:20px;font-weight:700;">`)
		sb.WriteString(EscapeText(n.Attr("price")))
		if orig := n.Attr("original"); orig != "" {
			sb.WriteString(fmt.Sprintf(` <span style="font-size:14px;font-weight:400;text-decoration:line-through;color:#999999;">%s</span>`, EscapeText(orig)))
		}
		sb.WriteString(`</p>`)

	case "rating":
		sb.WriteString(fmt.Sprintf(`<p style="margin:0 0 12px;font-size:14px;">%s</p>`, EscapeText(textContent(n))))

	case "navlinks", "socialicons":
		sb.WriteString(`<p style="margin:0 0 12px;font-size:14px;text-align:center;">`)
		for i, link := range n.Children {
			if i > 0 {
				sb.WriteString(` &nbsp;|&nbsp; `)
			}
			sb.WriteString(fmt.Sprintf(`<a href="%s" style="color:inherit;">%s</a>`,
				EscapeAttr(link.Attr("href")), EscapeText(textContent(link))))
		}
		sb.WriteString(`</p>`)

	case "divider":
		color := attrOr(n, "color", "#e0e0e0")
		sb.WriteString(fmt.Sprintf(`<hr style="border:none;border-top:1px solid %s;margin:16px 0;">`, color))

	case "spacer":
		sb.WriteString(fmt.Sprintf(`<div style="height:%spx;line-height:%spx;">&nbsp;</div>`,
			attrOr(n, "size", "16"), attrOr(n, "size", "16")))

	default:
		*warnings = append(*warnings, c.warnUnknown(n.Tag, "section"))
	}
}

func (c *HTMLCompiler) compileCard(sb *strings.Builder, n *Node) {
	radius := attrOr(n, "radius", "8")
	bg := attrOr(n, "bgcolor", "#ffffff")
	sb.WriteString(fmt.Sprintf(`<table role="presentation" width="100%%" cellpadding="0" cellspacing="0" border="0" style="margin:0 0 16px;background-color:%s;border-radius:%spx;overflow:hidden;">`, bg, radius))
	if img := n.Attr("image"); img != "" {
		sb.WriteString(fmt.Sprintf(`<tr><td><img src="%s" alt="%s" width="100%%" style="display:block;border:0;"></td></tr>`,
			EscapeAttr(img), EscapeAttr(n.Attr("title"))))
	}
	sb.WriteString(`<tr><td style="padding:16px;">`)
	title := EscapeText(n.Attr("title"))
	if href := n.Attr("href"); href != "" {
		sb.WriteString(fmt.Sprintf(`<a href="%s" style="font-size:16px;font-weight:700;color:inherit;text-decoration:none;">%s</a>`,
			EscapeAttr(href), title))
	} else {
		sb.WriteString(fmt.Sprintf(`<span style="font-size:16px;font-weight:700;">%s</span>`, title))
	}
	if price := n.Attr("price"); price != "" {
		sb.WriteString(fmt.Sprintf(`<p style="margin:8px 0 0;font-size:15px;">%s</p>`, EscapeText(price)))
	}
	sb.WriteString(`</td></tr></table>`)
}

// inlineCopy renders inline markdown in copy text and sanitizes the result.
func (c *HTMLCompiler) inlineCopy(text string) string {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(text), &buf); err != nil {
		return EscapeText(text)
	}
	out := strings.TrimSpace(buf.String())
	out = strings.TrimPrefix(out, "<p>")
	out = strings.TrimSuffix(out, "</p>")
	return c.policy.Sanitize(out)
}

func (c *HTMLCompiler) warnUnknown(tag, parent string) spec.Issue {
	return spec.NewWarning(CodeUnknownTag,
		fmt.Sprintf("skipped unknown markup tag %q under %s", tag, parent), "")
}

func attrOr(n *Node, key, fallback string) string {
	if v := n.Attr(key); v != "" {
		return v
	}
	return fallback
}

func textContent(n *Node) string {
	var sb strings.Builder
	for _, c := range n.Children {
		if c.Tag == "" {
			sb.WriteString(c.Text)
		} else {
			sb.WriteString(textContent(c))
		}
	}
	return sb.String()
}
