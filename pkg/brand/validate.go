package brand

import (
	"net/http"
	"regexp"

	"github.com/Abraxas-365/mailcraft/pkg/errx"
)

var brandErrors = errx.NewRegistry("")

// ErrInvalidInput is raised when caller-supplied context fails shape checks.
// It never reaches the generation loop.
var ErrInvalidInput = brandErrors.Register(
	"INVALID_INPUT",
	errx.TypeValidation,
	http.StatusBadRequest,
	"Brand, intent or plan input failed shape checks",
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsHexColor reports whether s is a 6-digit hex color with leading '#'.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// ValidateInput shape-checks the caller-supplied context before any model call.
func ValidateInput(b BrandContext, intent CampaignIntent, plan Plan) error {
	if b.Name == "" {
		return brandErrors.New(ErrInvalidInput).WithDetail("field", "brand.name")
	}
	if !IsHexColor(b.Colors.Primary) {
		return brandErrors.New(ErrInvalidInput).
			WithDetail("field", "brand.colors.primary").
			WithDetail("value", b.Colors.Primary)
	}
	if !IsHexColor(b.Colors.Background) {
		return brandErrors.New(ErrInvalidInput).
			WithDetail("field", "brand.colors.background").
			WithDetail("value", b.Colors.Background)
	}
	if !IsHexColor(b.Colors.Text) {
		return brandErrors.New(ErrInvalidInput).
			WithDetail("field", "brand.colors.text").
			WithDetail("value", b.Colors.Text)
	}

	seen := make(map[string]bool, len(b.Products))
	for i, p := range b.Products {
		if p.ID == "" {
			return brandErrors.New(ErrInvalidInput).
				WithDetail("field", "brand.products").
				WithDetail("index", i)
		}
		if seen[p.ID] {
			return brandErrors.New(ErrInvalidInput).
				WithDetail("field", "brand.products").
				WithDetail("duplicate_id", p.ID)
		}
		seen[p.ID] = true
	}

	if intent.Type == "" {
		return brandErrors.New(ErrInvalidInput).WithDetail("field", "intent.type")
	}

	if len(plan.SectionPurposes) == 0 {
		return brandErrors.New(ErrInvalidInput).WithDetail("field", "plan.section_purposes")
	}
	for _, id := range plan.ProductIDs {
		if !seen[id] {
			return brandErrors.New(ErrInvalidInput).
				WithDetail("field", "plan.product_ids").
				WithDetail("unknown_id", id)
		}
	}

	return nil
}
