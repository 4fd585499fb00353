// Package validate holds the structural validator. It consumes a decoded
// document plus optional brand context and returns every applicable finding
// in one pass, so a single validation round can drive a complete repair.
package validate

import (
	"fmt"
	"strings"

	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/email/theme"
)

// Structural issue codes.
const (
	CodeHeaderFirst       = "HEADER_FIRST"
	CodeFooterLast        = "FOOTER_LAST"
	CodeMissingUnsub      = "MISSING_UNSUBSCRIBE"
	CodeMissingCTA        = "MISSING_CTA"
	CodeDuplicateID       = "DUPLICATE_SECTION_ID"
	CodeProductRef        = "PRODUCT_REF_UNRESOLVED"
	CodeIncompleteColumns = "INCOMPLETE_COLUMNS"
	CodeLogoMissingSrc    = "LOGO_MISSING_SRC"

	CodeTooManySections = "TOO_MANY_SECTIONS"
	CodeTooFewSections  = "TOO_FEW_SECTIONS"
	CodeCTADilution     = "CTA_DILUTION"
	CodeDenseCopy       = "DENSE_COPY"
	CodeFAQShape        = "FAQ_SHAPE"
	CodeSocialNoLogo    = "SOCIAL_PROOF_NO_LOGO"
	CodeStoryIncomplete = "STORY_INCOMPLETE"
	CodeBackgroundRut   = "BACKGROUND_MONOTONY"
	CodeThemeDrift      = "THEME_DRIFT"
)

const (
	softSectionCap = 8
	softSectionMin = 4
	maxCTAButtons  = 4
	maxCopyRunes   = 1600
	minFAQPairs    = 3
	maxFAQPairs    = 6
	monotonyRun    = 3
	driftContrast  = 2.0
)

// Context is the optional caller-supplied context for content rules. A nil
// field simply disables the rules that need it.
type Context struct {
	Brand  *brand.BrandContext
	Intent *brand.CampaignIntent
	Plan   *brand.Plan
}

type rule func(e *spec.EmailSpec, ctx Context) []spec.Issue

var rules = []rule{
	checkOrdering,
	checkUnsubscribe,
	checkCTAPresence,
	checkSectionIDs,
	checkProductRefs,
	checkColumns,
	checkLogos,
	checkSectionCount,
	checkCTACount,
	checkCopyDensity,
	checkSectionShapes,
	checkBackgroundMonotony,
	checkThemeDrift,
}

// Validate runs every structural rule against the document. Rules never
// short-circuit each other; the result carries all findings, errors and
// warnings alike.
func Validate(e *spec.EmailSpec, ctx Context) []spec.Issue {
	var issues []spec.Issue
	for _, r := range rules {
		issues = append(issues, r(e, ctx)...)
	}
	return issues
}

func checkOrdering(e *spec.EmailSpec, _ Context) []spec.Issue {
	var issues []spec.Issue
	if len(e.Sections) == 0 {
		return issues
	}
	first := e.Sections[0]
	if !first.Type.IsHeaderClass() {
		issues = append(issues, spec.NewError(CodeHeaderFirst,
			fmt.Sprintf("first section is %q, expected header or hero", first.Type),
			"sections[0].type"))
	}
	last := e.Sections[len(e.Sections)-1]
	if last.Type != spec.SectionFooter {
		issues = append(issues, spec.NewError(CodeFooterLast,
			fmt.Sprintf("last section is %q, expected footer", last.Type),
			fmt.Sprintf("sections[%d].type", len(e.Sections)-1)))
	}
	return issues
}

func checkUnsubscribe(e *spec.EmailSpec, _ Context) []spec.Issue {
	footer, ok := e.Footer()
	if !ok {
		return nil
	}
	for _, b := range footer.AllBlocks() {
		if strings.Contains(b.Text, spec.UnsubscribeToken) {
			return nil
		}
		for _, l := range b.Links {
			if strings.Contains(l.Label, spec.UnsubscribeToken) ||
				strings.Contains(l.Href, spec.UnsubscribeToken) {
				return nil
			}
		}
	}
	return []spec.Issue{spec.NewError(CodeMissingUnsub,
		"footer does not contain the "+spec.UnsubscribeToken+" token",
		fmt.Sprintf("sections[%d]", len(e.Sections)-1))}
}

func checkCTAPresence(e *spec.EmailSpec, _ Context) []spec.Issue {
	for _, sec := range e.Sections {
		if sec.Type == spec.SectionFooter {
			continue
		}
		for _, b := range sec.AllBlocks() {
			if b.Type == spec.BlockButton {
				return nil
			}
		}
	}
	return []spec.Issue{spec.NewError(CodeMissingCTA,
		"no call-to-action button found outside the footer", "sections")}
}

func checkSectionIDs(e *spec.EmailSpec, _ Context) []spec.Issue {
	var issues []spec.Issue
	seen := make(map[string]int, len(e.Sections))
	for i, sec := range e.Sections {
		if sec.ID == "" {
			continue
		}
		if prev, dup := seen[sec.ID]; dup {
			issues = append(issues, spec.NewError(CodeDuplicateID,
				fmt.Sprintf("section id %q already used by sections[%d]", sec.ID, prev),
				fmt.Sprintf("sections[%d].id", i)))
			continue
		}
		seen[sec.ID] = i
	}
	return issues
}

func checkProductRefs(e *spec.EmailSpec, _ Context) []spec.Issue {
	var issues []spec.Issue
	for i, sec := range e.Sections {
		for _, b := range sec.AllBlocks() {
			if b.Type != spec.BlockProductCard {
				continue
			}
			if _, ok := e.CatalogItem(b.ProductRef); !ok {
				issues = append(issues, spec.NewError(CodeProductRef,
					fmt.Sprintf("productRef %q does not resolve against the catalog", b.ProductRef),
					fmt.Sprintf("sections[%d]", i)))
			}
		}
	}
	return issues
}

func checkColumns(e *spec.EmailSpec, _ Context) []spec.Issue {
	var issues []spec.Issue
	for i, sec := range e.Sections {
		if sec.Layout == nil {
			continue
		}
		path := fmt.Sprintf("sections[%d].layout", i)
		switch sec.Layout.Type {
		case spec.LayoutTwoColumn:
			if len(sec.Layout.Columns) != 2 {
				issues = append(issues, spec.NewError(CodeIncompleteColumns,
					"twoColumn layout must declare both columns", path))
				continue
			}
			for ci, col := range sec.Layout.Columns {
				if len(col.Blocks) == 0 {
					issues = append(issues, spec.NewError(CodeIncompleteColumns,
						"column declares no blocks",
						fmt.Sprintf("%s.columns[%d]", path, ci)))
				}
			}
		case spec.LayoutGrid:
			if len(sec.AllBlocks()) == 0 {
				issues = append(issues, spec.NewError(CodeIncompleteColumns,
					"grid layout has no blocks to distribute", path))
			}
		}
	}
	return issues
}

func checkLogos(e *spec.EmailSpec, _ Context) []spec.Issue {
	var issues []spec.Issue
	for i, sec := range e.Sections {
		for _, b := range sec.AllBlocks() {
			if b.Type == spec.BlockLogo && b.Src == "" {
				issues = append(issues, spec.NewError(CodeLogoMissingSrc,
					"logo block has an empty src",
					fmt.Sprintf("sections[%d]", i)))
			}
		}
	}
	return issues
}

func checkSectionCount(e *spec.EmailSpec, _ Context) []spec.Issue {
	n := len(e.Sections)
	switch {
	case n > softSectionCap:
		return []spec.Issue{spec.NewWarning(CodeTooManySections,
			fmt.Sprintf("%d sections is past the soft cap of %d, readers rarely scroll that far", n, softSectionCap),
			"sections")}
	case n > 0 && n < softSectionMin:
		return []spec.Issue{spec.NewWarning(CodeTooFewSections,
			fmt.Sprintf("%d sections makes for a thin email", n), "sections")}
	}
	return nil
}

func checkCTACount(e *spec.EmailSpec, _ Context) []spec.Issue {
	count := 0
	for _, sec := range e.Sections {
		for _, b := range sec.AllBlocks() {
			if b.Type == spec.BlockButton {
				count++
			}
		}
	}
	if count > maxCTAButtons {
		return []spec.Issue{spec.NewWarning(CodeCTADilution,
			fmt.Sprintf("%d buttons dilute the campaign intent", count), "sections")}
	}
	return nil
}

func checkCopyDensity(e *spec.EmailSpec, _ Context) []spec.Issue {
	total := 0
	for _, sec := range e.Sections {
		for _, b := range sec.AllBlocks() {
			if b.Type == spec.BlockParagraph {
				total += len([]rune(b.Text))
			}
		}
	}
	if total > maxCopyRunes {
		return []spec.Issue{spec.NewWarning(CodeDenseCopy,
			fmt.Sprintf("%d characters of paragraph copy is heavy for an email", total),
			"sections")}
	}
	return nil
}

func checkSectionShapes(e *spec.EmailSpec, _ Context) []spec.Issue {
	var issues []spec.Issue
	for i, sec := range e.Sections {
		path := fmt.Sprintf("sections[%d]", i)
		blocks := sec.AllBlocks()
		switch sec.Type {
		case spec.SectionFAQ:
			pairs := countFAQPairs(blocks)
			if pairs < minFAQPairs || pairs > maxFAQPairs {
				issues = append(issues, spec.NewWarning(CodeFAQShape,
					fmt.Sprintf("faq section carries %d question/answer pairs, expected %d to %d",
						pairs, minFAQPairs, maxFAQPairs), path))
			}
		case spec.SectionSocialProof:
			if !hasBlock(blocks, spec.BlockLogo) && !hasBlock(blocks, spec.BlockImage) {
				issues = append(issues, spec.NewWarning(CodeSocialNoLogo,
					"social proof section carries no logo or image block", path))
			}
		case spec.SectionStory:
			if !hasBlock(blocks, spec.BlockHeading) || !hasBlock(blocks, spec.BlockParagraph) {
				issues = append(issues, spec.NewWarning(CodeStoryIncomplete,
					"story section needs both a heading and body copy", path))
			}
		}
	}
	return issues
}

// countFAQPairs counts heading blocks followed by at least one paragraph
// before the next heading.
func countFAQPairs(blocks []spec.Block) int {
	pairs := 0
	awaitingAnswer := false
	for _, b := range blocks {
		switch b.Type {
		case spec.BlockHeading:
			awaitingAnswer = true
		case spec.BlockParagraph:
			if awaitingAnswer {
				pairs++
				awaitingAnswer = false
			}
		}
	}
	return pairs
}

func hasBlock(blocks []spec.Block, t spec.BlockType) bool {
	for _, b := range blocks {
		if b.Type == t {
			return true
		}
	}
	return false
}

func checkBackgroundMonotony(e *spec.EmailSpec, _ Context) []spec.Issue {
	run := 0
	prev := ""
	for i, sec := range e.Sections {
		token := sec.BackgroundToken()
		if token != "" && token == prev {
			run++
		} else {
			run = 1
		}
		prev = token
		if token != "" && run == monotonyRun {
			return []spec.Issue{spec.NewWarning(CodeBackgroundRut,
				fmt.Sprintf("%d consecutive sections share the %q background token", monotonyRun, token),
				fmt.Sprintf("sections[%d]", i))}
		}
	}
	return nil
}

func checkThemeDrift(e *spec.EmailSpec, ctx Context) []spec.Issue {
	if ctx.Brand == nil {
		return nil
	}
	var issues []spec.Issue
	pairs := []struct {
		name   string
		brand  string
		themed string
	}{
		{"primary", ctx.Brand.Colors.Primary, e.Theme.Colors.Primary},
		{"text", ctx.Brand.Colors.Text, e.Theme.Colors.Text},
	}
	for _, p := range pairs {
		if !spec.IsHexColor(p.brand) || !spec.IsHexColor(p.themed) {
			continue
		}
		if theme.ContrastRatio(p.brand, p.themed) > driftContrast {
			issues = append(issues, spec.NewWarning(CodeThemeDrift,
				fmt.Sprintf("theme %s color %s drifts from the brand's %s", p.name, p.themed, p.brand),
				"theme.colors."+p.name))
		}
	}
	return issues
}
