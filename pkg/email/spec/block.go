package spec

// BlockType is the closed vocabulary of atomic content units. Adding a value
// here requires a renderer case and a schema rule; there is no generic block.
type BlockType string

const (
	BlockLogo        BlockType = "logo"
	BlockHeading     BlockType = "heading"
	BlockParagraph   BlockType = "paragraph"
	BlockImage       BlockType = "image"
	BlockButton      BlockType = "button"
	BlockProductCard BlockType = "productCard"
	BlockDivider     BlockType = "divider"
	BlockSpacer      BlockType = "spacer"
	BlockSmallPrint  BlockType = "smallPrint"
	BlockBadge       BlockType = "badge"
	BlockBullets     BlockType = "bullets"
	BlockPriceLine   BlockType = "priceLine"
	BlockRating      BlockType = "rating"
	BlockNavLinks    BlockType = "navLinks"
	BlockSocialIcons BlockType = "socialIcons"
)

var blockTypes = map[BlockType]bool{
	BlockLogo: true, BlockHeading: true, BlockParagraph: true, BlockImage: true,
	BlockButton: true, BlockProductCard: true, BlockDivider: true, BlockSpacer: true,
	BlockSmallPrint: true, BlockBadge: true, BlockBullets: true, BlockPriceLine: true,
	BlockRating: true, BlockNavLinks: true, BlockSocialIcons: true,
}

// Valid reports whether t is part of the closed vocabulary
func (t BlockType) Valid() bool {
	return blockTypes[t]
}

// Link is a labeled URL used by navLinks and socialIcons blocks.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// Block is one atomic content unit. Type discriminates which of the optional
// fields are meaningful; per-variant required fields are enforced by
// ValidateSchema, not by the decoder.
type Block struct {
	Type BlockType `json:"type"`

	// heading, paragraph, badge, smallPrint
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"` // heading only, 1..3

	// logo, image
	Src string `json:"src,omitempty"`
	Alt string `json:"alt,omitempty"`

	// button
	Label string `json:"label,omitempty"`
	Href  string `json:"href,omitempty"`
	Style string `json:"style,omitempty"` // "primary" (default) or "secondary"

	// productCard
	ProductRef string `json:"productRef,omitempty"`

	// bullets
	Items []string `json:"items,omitempty"`

	// priceLine
	Price         string `json:"price,omitempty"`
	OriginalPrice string `json:"originalPrice,omitempty"`

	// rating
	Value float64 `json:"value,omitempty"`
	Count int     `json:"count,omitempty"`

	// navLinks, socialIcons
	Links []Link `json:"links,omitempty"`

	// spacer (px), divider ignores it
	Size int `json:"size,omitempty"`
}
