package generate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
)

const systemPrompt = `You are an expert email designer producing marketing emails as structured JSON.

Respond with a single JSON object and nothing else. The object has this shape:

{
  "meta": { "subject": "...", "preheader": "..." },
  "theme": {
    "containerWidth": 600,
    "colors": { "primary": "#RRGGBB", "secondary": "#RRGGBB", "background": "#RRGGBB", "text": "#RRGGBB", "accent": "#RRGGBB" },
    "fonts": { "heading": "...", "body": "..." },
    "button": { "radius": 6, "style": "solid" }
  },
  "sections": [ { "id": "...", "type": "...", "blocks": [ ... ] } ],
  "catalog": [ { "id": "...", "title": "...", "price": "...", "image": "...", "url": "..." } ]
}

Rules:
- subject 5-150 chars, preheader 10-200 chars, containerWidth 480-720.
- 3 to 10 sections. Section types: header, hero, feature, productGrid, story, faq, socialProof, testimonial, cta, footer.
- The first section must be a header or hero. The last section must be a footer.
- Block types: logo, heading, paragraph, image, button, productCard, divider, spacer, smallPrint, badge, bullets, priceLine, rating, navLinks, socialIcons.
- Headings carry "text" and "level" (1-3). Buttons carry "label" and an http(s) "href". productCard carries "productRef" resolving to a catalog id.
- Include at least one button outside the footer.
- The footer must include the literal token {{unsubscribe}} in its text or links.
- A section may carry "layout": {"type":"single"} or {"type":"twoColumn","columns":[{"width":50,"blocks":[...]},{"width":50,"blocks":[...]}]} or {"type":"grid","columnCount":2}.
- Every section id must be unique. All colors are 6-digit hex.`

func userPrompt(b brand.BrandContext, intent brand.CampaignIntent, plan brand.Plan) string {
	var sb strings.Builder
	sb.WriteString("Design a marketing email for the following brand and campaign.\n\n")

	sb.WriteString(fmt.Sprintf("Brand: %s\n", b.Name))
	if b.SiteURL != "" {
		sb.WriteString(fmt.Sprintf("Site: %s\n", b.SiteURL))
	}
	if b.LogoURL != "" {
		sb.WriteString(fmt.Sprintf("Logo: %s\n", b.LogoURL))
	}
	sb.WriteString(fmt.Sprintf("Brand colors: primary %s, background %s, text %s\n",
		b.Colors.Primary, b.Colors.Background, b.Colors.Text))
	sb.WriteString(fmt.Sprintf("Fonts: heading %q, body %q\n", b.Fonts.Heading, b.Fonts.Body))
	if b.Voice != "" {
		sb.WriteString(fmt.Sprintf("Voice: %s\n", b.Voice))
	}
	for _, k := range sortedKeys(b.Trust) {
		sb.WriteString(fmt.Sprintf("Trust signal (%s): %s\n", k, b.Trust[k]))
	}

	sb.WriteString(fmt.Sprintf("\nCampaign type: %s\n", intent.Type))
	if intent.Tone != "" {
		sb.WriteString(fmt.Sprintf("Tone: %s\n", intent.Tone))
	}
	if intent.Urgency != "" {
		sb.WriteString(fmt.Sprintf("Urgency: %s\n", intent.Urgency))
	}
	if intent.Offer != "" {
		sb.WriteString(fmt.Sprintf("Offer: %s\n", intent.Offer))
	}
	if intent.CTAText != "" {
		sb.WriteString(fmt.Sprintf("Preferred CTA text: %s\n", intent.CTAText))
	}
	if intent.Audience != "" {
		sb.WriteString(fmt.Sprintf("Audience: %s\n", intent.Audience))
	}

	if len(plan.SubjectCandidates) > 0 {
		sb.WriteString("\nSubject line candidates:\n")
		for _, s := range plan.SubjectCandidates {
			sb.WriteString("- " + s + "\n")
		}
	}
	sb.WriteString("\nSection plan, in order:\n")
	for i, purpose := range plan.SectionPurposes {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, purpose))
	}

	products := selectedProducts(b, plan)
	if len(products) > 0 {
		sb.WriteString("\nFeature these products (copy them into the catalog and reference them with productCard blocks):\n")
		raw, _ := json.MarshalIndent(products, "", "  ")
		sb.Write(raw)
		sb.WriteString("\n")
	}
	return sb.String()
}

func repairPrompt(previousRaw string, issues []spec.Issue) string {
	var sb strings.Builder
	sb.WriteString("Your previous email JSON failed validation. Fix every problem listed below and respond with the corrected JSON object only.\n\n")
	sb.WriteString("Problems:\n")
	for _, is := range issues {
		if is.Path != "" {
			sb.WriteString(fmt.Sprintf("- [%s] %s (at %s)\n", is.Code, is.Message, is.Path))
		} else {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", is.Code, is.Message))
		}
	}
	sb.WriteString("\nPrevious output:\n")
	sb.WriteString(previousRaw)
	return sb.String()
}

func selectedProducts(b brand.BrandContext, plan brand.Plan) []brand.Product {
	var out []brand.Product
	for _, id := range plan.ProductIDs {
		if p, ok := b.Product(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// sortedKeys keeps trust-map iteration stable so prompts are deterministic
// across runs.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
