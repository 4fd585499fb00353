package spec

import (
	"fmt"
	"regexp"
)

// Schema issue codes. Shape and range findings only; cross-section structure
// is the validator's concern.
const (
	CodeRequired      = "REQUIRED"
	CodeOutOfRange    = "OUT_OF_RANGE"
	CodeInvalidEnum   = "INVALID_ENUM"
	CodeInvalidColor  = "INVALID_COLOR"
	CodeInvalidLayout = "INVALID_LAYOUT"
)

const (
	MinSubjectLen   = 5
	MaxSubjectLen   = 150
	MinPreheaderLen = 10
	MaxPreheaderLen = 200

	MinContainerWidth = 480
	MaxContainerWidth = 720

	MinSections = 3
	MaxSections = 10
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHexColor reports whether s is a 6-digit hex color with leading '#'.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// ValidateSchema runs the self-contained shape and range checks. All findings
// are collected into one pass so a repair prompt sees every problem at once.
func ValidateSchema(e *EmailSpec) []Issue {
	var issues []Issue

	issues = append(issues, checkMeta(e.Meta)...)
	issues = append(issues, checkTheme(e.Theme)...)

	if n := len(e.Sections); n < MinSections || n > MaxSections {
		issues = append(issues, NewError(CodeOutOfRange,
			fmt.Sprintf("document has %d sections, expected %d to %d", n, MinSections, MaxSections),
			"sections"))
	}
	for i, sec := range e.Sections {
		issues = append(issues, checkSection(sec, fmt.Sprintf("sections[%d]", i))...)
	}

	for i, item := range e.Catalog {
		if item.ID == "" {
			issues = append(issues, NewError(CodeRequired, "catalog item is missing an id",
				fmt.Sprintf("catalog[%d].id", i)))
		}
		if item.Title == "" {
			issues = append(issues, NewError(CodeRequired, "catalog item is missing a title",
				fmt.Sprintf("catalog[%d].title", i)))
		}
	}

	return issues
}

func checkMeta(m Meta) []Issue {
	var issues []Issue
	if n := len([]rune(m.Subject)); n < MinSubjectLen || n > MaxSubjectLen {
		issues = append(issues, NewError(CodeOutOfRange,
			fmt.Sprintf("subject is %d chars, expected %d to %d", n, MinSubjectLen, MaxSubjectLen),
			"meta.subject"))
	}
	if n := len([]rune(m.Preheader)); n < MinPreheaderLen || n > MaxPreheaderLen {
		issues = append(issues, NewError(CodeOutOfRange,
			fmt.Sprintf("preheader is %d chars, expected %d to %d", n, MinPreheaderLen, MaxPreheaderLen),
			"meta.preheader"))
	}
	return issues
}

func checkTheme(t Theme) []Issue {
	var issues []Issue
	if t.ContainerWidth < MinContainerWidth || t.ContainerWidth > MaxContainerWidth {
		issues = append(issues, NewError(CodeOutOfRange,
			fmt.Sprintf("container width %dpx is outside %d to %d", t.ContainerWidth, MinContainerWidth, MaxContainerWidth),
			"theme.containerWidth"))
	}

	colors := []struct {
		name  string
		value string
	}{
		{"primary", t.Colors.Primary},
		{"secondary", t.Colors.Secondary},
		{"background", t.Colors.Background},
		{"text", t.Colors.Text},
		{"accent", t.Colors.Accent},
	}
	for _, c := range colors {
		if !IsHexColor(c.value) {
			issues = append(issues, NewError(CodeInvalidColor,
				fmt.Sprintf("%q is not a 6-digit hex color", c.value),
				"theme.colors."+c.name))
		}
	}

	if t.Fonts.Heading == "" {
		issues = append(issues, NewError(CodeRequired, "heading font is required", "theme.fonts.heading"))
	}
	if t.Fonts.Body == "" {
		issues = append(issues, NewError(CodeRequired, "body font is required", "theme.fonts.body"))
	}
	if t.Button.Style != "" && t.Button.Style != "solid" && t.Button.Style != "outline" {
		issues = append(issues, NewError(CodeInvalidEnum,
			fmt.Sprintf("button style %q is not solid or outline", t.Button.Style),
			"theme.button.style"))
	}
	return issues
}

func checkSection(s Section, path string) []Issue {
	var issues []Issue
	if s.ID == "" {
		issues = append(issues, NewError(CodeRequired, "section is missing an id", path+".id"))
	}
	if !s.Type.Valid() {
		issues = append(issues, NewError(CodeInvalidEnum,
			fmt.Sprintf("section type %q is not in the vocabulary", s.Type),
			path+".type"))
	}
	if s.Layout != nil {
		issues = append(issues, checkLayout(*s.Layout, path+".layout")...)
	}
	for i, b := range s.Blocks {
		issues = append(issues, checkBlock(b, fmt.Sprintf("%s.blocks[%d]", path, i))...)
	}
	if s.Layout != nil {
		for ci, col := range s.Layout.Columns {
			for bi, b := range col.Blocks {
				issues = append(issues, checkBlock(b,
					fmt.Sprintf("%s.layout.columns[%d].blocks[%d]", path, ci, bi))...)
			}
		}
	}
	return issues
}

func checkLayout(l Layout, path string) []Issue {
	var issues []Issue
	switch l.Type {
	case LayoutSingle:
		// flat block list, nothing extra to claim
	case LayoutTwoColumn:
		if len(l.Columns) != 2 {
			issues = append(issues, NewError(CodeInvalidLayout,
				fmt.Sprintf("twoColumn layout carries %d column specs, expected 2", len(l.Columns)),
				path+".columns"))
		}
	case LayoutGrid:
		if l.ColumnCount < 2 || l.ColumnCount > 3 {
			issues = append(issues, NewError(CodeInvalidLayout,
				fmt.Sprintf("grid layout column count %d is outside 2 to 3", l.ColumnCount),
				path+".columnCount"))
		}
	default:
		issues = append(issues, NewError(CodeInvalidEnum,
			fmt.Sprintf("layout type %q is not single, twoColumn or grid", l.Type),
			path+".type"))
	}
	return issues
}

func checkBlock(b Block, path string) []Issue {
	var issues []Issue
	if !b.Type.Valid() {
		issues = append(issues, NewError(CodeInvalidEnum,
			fmt.Sprintf("block type %q is not in the vocabulary", b.Type),
			path+".type"))
		return issues
	}

	require := func(ok bool, field, msg string) {
		if !ok {
			issues = append(issues, NewError(CodeRequired, msg, path+"."+field))
		}
	}

	switch b.Type {
	case BlockHeading:
		require(b.Text != "", "text", "heading needs text")
		if b.Level < 1 || b.Level > 3 {
			issues = append(issues, NewError(CodeOutOfRange,
				fmt.Sprintf("heading level %d is outside 1 to 3", b.Level),
				path+".level"))
		}
	case BlockParagraph, BlockSmallPrint, BlockBadge:
		require(b.Text != "", "text", string(b.Type)+" needs text")
	case BlockLogo, BlockImage:
		require(b.Src != "", "src", string(b.Type)+" needs a src URL")
	case BlockButton:
		require(b.Label != "", "label", "button needs a label")
		if b.Style != "" && b.Style != "primary" && b.Style != "secondary" {
			issues = append(issues, NewError(CodeInvalidEnum,
				fmt.Sprintf("button style %q is not primary or secondary", b.Style),
				path+".style"))
		}
	case BlockProductCard:
		require(b.ProductRef != "", "productRef", "productCard needs a productRef")
	case BlockBullets:
		require(len(b.Items) > 0, "items", "bullets need at least one item")
	case BlockPriceLine:
		require(b.Price != "", "price", "priceLine needs a price")
	case BlockRating:
		if b.Value < 0 || b.Value > 5 {
			issues = append(issues, NewError(CodeOutOfRange,
				fmt.Sprintf("rating value %.1f is outside 0 to 5", b.Value),
				path+".value"))
		}
	case BlockNavLinks, BlockSocialIcons:
		require(len(b.Links) > 0, "links", string(b.Type)+" needs at least one link")
	case BlockSpacer:
		if b.Size < 0 {
			issues = append(issues, NewError(CodeOutOfRange, "spacer size must not be negative", path+".size"))
		}
	case BlockDivider:
		// no payload
	}
	return issues
}
