package brand

// Palette is the three-color brand palette supplied by ingestion.
type Palette struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

// Fonts is the brand font pair.
type Fonts struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Product is one catalog entry owned by the brand.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	URL      string `json:"url,omitempty"`
}

// BrandContext is the read-only brand profile the pipeline works from. It is
// constructed once upstream and passed by value.
type BrandContext struct {
	Name     string            `json:"name"`
	SiteURL  string            `json:"site_url,omitempty"`
	LogoURL  string            `json:"logo_url,omitempty"`
	Colors   Palette           `json:"colors"`
	Fonts    Fonts             `json:"fonts"`
	Voice    string            `json:"voice,omitempty"`
	Trust    map[string]string `json:"trust,omitempty"`
	Products []Product         `json:"products,omitempty"`
}

// Product returns the catalog entry with the given id, if any.
func (b BrandContext) Product(id string) (Product, bool) {
	for _, p := range b.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// CampaignIntent is the structured campaign request parsed upstream.
type CampaignIntent struct {
	Type     string `json:"type"`
	Tone     string `json:"tone,omitempty"`
	Urgency  string `json:"urgency,omitempty"`
	CTAText  string `json:"cta_text,omitempty"`
	Offer    string `json:"offer,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// Plan is the upstream content plan: subject candidates, ordered section
// purposes and the products selected for this campaign.
type Plan struct {
	SubjectCandidates []string `json:"subject_candidates,omitempty"`
	SectionPurposes   []string `json:"section_purposes"`
	ProductIDs        []string `json:"product_ids,omitempty"`
}
