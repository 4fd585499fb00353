// Package render turns an accepted document into the intermediate markup
// tree and, through a compiler, final HTML. Rendering is pure and
// deterministic; anything questionable degrades with a warning instead of
// failing the whole email.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Abraxas-365/mailcraft/pkg/email/markup"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/email/theme"
)

// Renderer warning codes.
const (
	CodeProductNotFound   = "PRODUCT_NOT_FOUND"
	CodeInvalidButtonHref = "INVALID_BUTTON_HREF"
	CodeInvalidLinkHref   = "INVALID_LINK_HREF"
	CodeLayoutDegraded    = "LAYOUT_DEGRADED"
	CodeGridNoGap         = "GRID_NO_GAP"
	CodeUnknownToken      = "UNKNOWN_PALETTE_TOKEN"
)

// Result is one full render: the serialized markup tree, the compiled HTML
// and the two warning streams kept separate, renderer findings first.
type Result struct {
	Markup           string
	HTML             string
	Warnings         []spec.Issue
	CompilerWarnings []spec.Issue
}

// Render produces the markup tree and renderer warnings without compiling.
func Render(e *spec.EmailSpec) (string, []spec.Issue) {
	r := &renderer{doc: e}
	root := r.email()
	return root.String(), r.warnings
}

// RenderHTML renders and compiles in one call. Compiler findings stay in
// their own stream so callers can attribute them.
func RenderHTML(e *spec.EmailSpec, c markup.Compiler) (Result, error) {
	r := &renderer{doc: e}
	root := r.email()
	html, compilerWarnings, err := c.Compile(root)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Markup:           root.String(),
		HTML:             html,
		Warnings:         r.warnings,
		CompilerWarnings: compilerWarnings,
	}, nil
}

type renderer struct {
	doc      *spec.EmailSpec
	warnings []spec.Issue
}

func (r *renderer) warn(code, message, path string) {
	r.warnings = append(r.warnings, spec.NewWarning(code, message, path))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (r *renderer) email() *markup.Node {
	t := r.doc.Theme
	width := clamp(t.ContainerWidth, spec.MinContainerWidth, spec.MaxContainerWidth)
	pageBg := r.pageBackground()

	root := markup.NewElement("email").
		SetAttr("width", strconv.Itoa(width)).
		SetAttr("bgcolor", pageBg).
		SetAttr("font-heading", t.Fonts.Heading).
		SetAttr("font-body", t.Fonts.Body)

	if r.doc.Meta.Preheader != "" {
		root.Append(markup.NewElement("preheader").AppendText(r.doc.Meta.Preheader))
	}
	for i, sec := range r.doc.Sections {
		root.Append(r.section(sec, i))
	}
	return root
}

func (r *renderer) pageBackground() string {
	if p := r.doc.Theme.Palette; p != nil {
		return p.Bg
	}
	if spec.IsHexColor(r.doc.Theme.Colors.Background) {
		return r.doc.Theme.Colors.Background
	}
	return "#ffffff"
}

func (r *renderer) section(sec spec.Section, idx int) *markup.Node {
	path := fmt.Sprintf("sections[%d]", idx)
	bg, text := r.sectionColors(sec, path)

	node := markup.NewElement("section").
		SetAttr("id", sec.ID).
		SetAttr("bgcolor", bg).
		SetAttr("color", text)
	if rh := r.doc.Theme.Rhythm; rh != nil && rh.SectionPadding > 0 {
		node.SetAttr("padding", strconv.Itoa(rh.SectionPadding))
	}
	if sec.Style != nil {
		if sec.Style.Padding > 0 {
			node.SetAttr("padding", strconv.Itoa(sec.Style.Padding))
		}
		if sec.Style.Divider {
			node.SetAttr("divider", "true")
			node.SetAttr("divider-color", r.dividerTone())
		}
	}

	headerClass := sec.Type.IsHeaderClass()
	switch {
	case sec.Layout == nil || sec.Layout.Type == spec.LayoutSingle || sec.Layout.Type == "":
		r.appendBlocks(node, sec.Blocks, bg, headerClass, path)
	case sec.Layout.Type == spec.LayoutTwoColumn:
		node.Append(r.twoColumn(sec, bg, headerClass, path))
	case sec.Layout.Type == spec.LayoutGrid:
		node.Append(r.grid(sec, bg, headerClass, path))
	default:
		r.appendBlocks(node, sec.Blocks, bg, headerClass, path)
	}
	return node
}

// sectionColors resolves the section background token and a text color that
// holds AA contrast on it. The precomputed accessible map is trusted but
// double-checked; a stale entry triggers on-the-fly re-derivation.
func (r *renderer) sectionColors(sec spec.Section, path string) (bg, text string) {
	t := r.doc.Theme
	bg = r.pageBackground()
	token := sec.BackgroundToken()

	if token != "" {
		if t.Palette != nil {
			if hex, ok := t.Palette.Token(token); ok {
				bg = hex
			} else {
				r.warn(CodeUnknownToken,
					fmt.Sprintf("background token %q is not in the palette", token), path)
			}
		} else if spec.IsHexColor(token) {
			bg = token
		}
	}

	if t.Palette != nil {
		if pre, ok := t.Accessible[token]; ok && token != "" {
			if theme.ContrastRatio(bg, pre) >= 4.5 {
				return bg, pre
			}
		}
		return bg, theme.AccessibleTextFor(bg, *t.Palette)
	}

	text = t.Colors.Text
	if !spec.IsHexColor(text) || theme.ContrastRatio(bg, text) < 4.5 {
		if theme.Luminance(bg) > 0.5 {
			text = "#000000"
		} else {
			text = "#ffffff"
		}
	}
	return bg, text
}

func (r *renderer) dividerTone() string {
	t := r.doc.Theme
	if t.Components != nil && t.Palette != nil {
		if hex, ok := t.Palette.Token(t.Components.DividerTone); ok {
			return hex
		}
	}
	if t.Palette != nil {
		return t.Palette.Muted
	}
	return "#e0e0e0"
}

func (r *renderer) twoColumn(sec spec.Section, bg string, headerClass bool, path string) *markup.Node {
	cols := markup.NewElement("columns")
	if sec.Layout.Gap > 0 {
		cols.SetAttr("gap", strconv.Itoa(sec.Layout.Gap))
	}

	if len(sec.Layout.Columns) == 2 {
		for _, col := range sec.Layout.Columns {
			w := col.Width
			if w <= 0 || w > 100 {
				w = 50
			}
			cn := markup.NewElement("column").SetAttr("width", strconv.Itoa(w))
			r.appendBlocks(cn, col.Blocks, bg, headerClass, path)
			cols.Append(cn)
		}
		return cols
	}

	// Missing column specs: split the flat list roughly in half instead of
	// refusing to render.
	r.warn(CodeLayoutDegraded,
		"twoColumn layout without two column specs, splitting blocks evenly", path)
	half := (len(sec.Blocks) + 1) / 2
	left := markup.NewElement("column").SetAttr("width", "50")
	right := markup.NewElement("column").SetAttr("width", "50")
	r.appendBlocks(left, sec.Blocks[:half], bg, headerClass, path)
	r.appendBlocks(right, sec.Blocks[half:], bg, headerClass, path)
	return cols.Append(left, right)
}

func (r *renderer) grid(sec spec.Section, bg string, headerClass bool, path string) *markup.Node {
	n := sec.Layout.ColumnCount
	if n != 2 && n != 3 {
		n = 2
	}
	cols := markup.NewElement("columns")
	if sec.Layout.Gap > 0 {
		cols.SetAttr("gap", strconv.Itoa(sec.Layout.Gap))
	} else {
		r.warn(CodeGridNoGap, "grid layout without a gap renders cramped", path)
	}

	width := 100 / n
	buckets := make([][]spec.Block, n)
	for i, b := range sec.Blocks {
		buckets[i%n] = append(buckets[i%n], b)
	}
	for _, bucket := range buckets {
		cn := markup.NewElement("column").SetAttr("width", strconv.Itoa(width))
		r.appendBlocks(cn, bucket, bg, headerClass, path)
		cols.Append(cn)
	}
	return cols
}

func (r *renderer) appendBlocks(parent *markup.Node, blocks []spec.Block, bg string, headerClass bool, path string) {
	for _, b := range blocks {
		if node := r.block(b, bg, headerClass, path); node != nil {
			parent.Append(node)
		}
	}
}

func (r *renderer) block(b spec.Block, bg string, headerClass bool, path string) *markup.Node {
	switch b.Type {
	case spec.BlockLogo:
		return markup.NewElement("logo").SetAttr("src", b.Src).SetAttr("alt", b.Alt)

	case spec.BlockHeading:
		size, weight := headingScale(b.Level, headerClass)
		return markup.NewElement("heading").
			SetAttr("level", strconv.Itoa(clamp(b.Level, 1, 3))).
			SetAttr("size", strconv.Itoa(size)).
			SetAttr("weight", strconv.Itoa(weight)).
			SetAttr("font", r.doc.Theme.Fonts.Heading).
			AppendText(b.Text)

	case spec.BlockParagraph:
		return markup.NewElement("text").AppendText(b.Text)

	case spec.BlockSmallPrint:
		return markup.NewElement("smallprint").AppendText(b.Text)

	case spec.BlockImage:
		return markup.NewElement("image").SetAttr("src", b.Src).SetAttr("alt", b.Alt)

	case spec.BlockButton:
		return r.button(b, bg, path)

	case spec.BlockProductCard:
		return r.productCard(b, path)

	case spec.BlockDivider:
		return markup.NewElement("divider").SetAttr("color", r.dividerTone())

	case spec.BlockSpacer:
		size := b.Size
		if size <= 0 {
			size = 16
		}
		return markup.NewElement("spacer").SetAttr("size", strconv.Itoa(clamp(size, 1, 120)))

	case spec.BlockBadge:
		return r.badge(b)

	case spec.BlockBullets:
		node := markup.NewElement("bullets")
		for _, item := range b.Items {
			node.Append(markup.NewElement("item").AppendText(item))
		}
		return node

	case spec.BlockPriceLine:
		node := markup.NewElement("priceline").SetAttr("price", b.Price)
		if b.OriginalPrice != "" {
			node.SetAttr("original", b.OriginalPrice)
		}
		return node

	case spec.BlockRating:
		return r.rating(b)

	case spec.BlockNavLinks:
		return r.linkRow("navlinks", b, path)

	case spec.BlockSocialIcons:
		return r.linkRow("socialicons", b, path)
	}
	return nil
}

// headingScale maps (level, header-class) to font size and weight. Header
// and hero sections double as hero typography and run larger at every level.
func headingScale(level int, headerClass bool) (size, weight int) {
	level = clamp(level, 1, 3)
	if headerClass {
		sizes := map[int]int{1: 40, 2: 32, 3: 26}
		return sizes[level], 800
	}
	sizes := map[int]int{1: 28, 2: 24, 3: 20}
	return sizes[level], 700
}

func (r *renderer) button(b spec.Block, bg, path string) *markup.Node {
	if !validHTTPURL(b.Href) {
		r.warn(CodeInvalidButtonHref,
			fmt.Sprintf("button %q has no usable href, rendering as plain text", b.Label), path)
		return markup.NewElement("text").AppendText(b.Label)
	}

	fill, text, radius := r.buttonColors(bg)
	node := markup.NewElement("button").
		SetAttr("href", b.Href).
		SetAttr("bgcolor", fill).
		SetAttr("color", text).
		SetAttr("radius", strconv.Itoa(radius)).
		AppendText(b.Label)
	if b.Style == "secondary" || r.doc.Theme.Button.Style == "outline" {
		node.SetAttr("variant", "outline")
	}
	return node
}

func (r *renderer) buttonColors(sectionBg string) (fill, text string, radius int) {
	t := r.doc.Theme
	radius = clamp(t.Button.Radius, 0, 24)
	if t.Palette != nil {
		bc := theme.AccessibleButtonFor(*t.Palette, sectionBg)
		return bc.Fill, bc.Text, radius
	}
	fill = t.Colors.Primary
	if !spec.IsHexColor(fill) {
		fill = "#000000"
	}
	text = "#ffffff"
	if theme.ContrastRatio(fill, text) < 4.5 {
		text = "#000000"
	}
	return fill, text, radius
}

func (r *renderer) productCard(b spec.Block, path string) *markup.Node {
	item, ok := r.doc.CatalogItem(b.ProductRef)
	if !ok {
		r.warn(CodeProductNotFound,
			fmt.Sprintf("productRef %q is not in the catalog, rendering a placeholder", b.ProductRef), path)
		muted := "#999999"
		if p := r.doc.Theme.Palette; p != nil {
			muted = p.Muted
		}
		return markup.NewElement("placeholder").
			SetAttr("color", muted).
			AppendText("This product is currently unavailable")
	}

	node := markup.NewElement("card").SetAttr("title", item.Title)
	if t := r.doc.Theme; t.Components != nil {
		node.SetAttr("radius", strconv.Itoa(clamp(t.Components.CardRadius, 0, 24)))
	}
	if p := r.doc.Theme.Palette; p != nil {
		node.SetAttr("bgcolor", p.Surface)
	}
	if item.Image != "" {
		node.SetAttr("image", item.Image)
	}
	if item.Price != "" {
		node.SetAttr("price", item.Price)
	}
	if validHTTPURL(item.URL) {
		node.SetAttr("href", item.URL)
	}
	return node
}

func (r *renderer) badge(b spec.Block) *markup.Node {
	node := markup.NewElement("badge").AppendText(b.Text)
	if p := r.doc.Theme.Palette; p != nil {
		node.SetAttr("bgcolor", p.AccentSoft)
		node.SetAttr("color", theme.AccessibleTextFor(p.AccentSoft, *p))
	}
	return node
}

func (r *renderer) rating(b spec.Block) *markup.Node {
	value := b.Value
	if value < 0 {
		value = 0
	}
	if value > 5 {
		value = 5
	}
	stars := strings.Repeat("★", int(value+0.5)) + strings.Repeat("☆", 5-int(value+0.5))
	label := stars
	if b.Count > 0 {
		label = fmt.Sprintf("%s %.1f (%d reviews)", stars, value, b.Count)
	}
	return markup.NewElement("rating").
		SetAttr("value", strconv.FormatFloat(value, 'f', 1, 64)).
		AppendText(label)
}

func (r *renderer) linkRow(tag string, b spec.Block, path string) *markup.Node {
	node := markup.NewElement(tag)
	for _, l := range b.Links {
		href := l.Href
		if !validHTTPURL(href) && !strings.Contains(href, spec.UnsubscribeToken) {
			r.warn(CodeInvalidLinkHref,
				fmt.Sprintf("link %q has no usable href", l.Label), path)
			continue
		}
		node.Append(markup.NewElement("link").SetAttr("href", href).AppendText(l.Label))
	}
	return node
}

func validHTTPURL(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
