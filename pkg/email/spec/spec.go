// Package spec defines the canonical email document model shared by the
// generator, the validators and the renderer. The document is pure data;
// every stage that consumes it is deterministic.
package spec

import (
	"encoding/json"
	"net/http"

	"github.com/Abraxas-365/mailcraft/pkg/errx"
)

// UnsubscribeToken must appear verbatim somewhere in the footer section's
// text content. Delivery replaces it with the recipient-specific link.
const UnsubscribeToken = "{{unsubscribe}}"

// Meta carries the envelope-level copy.
type Meta struct {
	Subject   string `json:"subject"`
	Preheader string `json:"preheader"`
}

// CatalogItem is a product snapshot embedded in the document so rendering
// never needs the brand context again.
type CatalogItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Price string `json:"price,omitempty"`
	Image string `json:"image,omitempty"`
	URL   string `json:"url,omitempty"`
}

// EmailSpec is the complete renderable email document.
type EmailSpec struct {
	Meta     Meta          `json:"meta"`
	Theme    Theme         `json:"theme"`
	Sections []Section     `json:"sections"`
	Catalog  []CatalogItem `json:"catalog,omitempty"`
}

// CatalogItem returns the embedded catalog entry with the given id, if any.
func (e *EmailSpec) CatalogItem(id string) (CatalogItem, bool) {
	for _, item := range e.Catalog {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// Footer returns the last section when it is a footer, which the structural
// validator guarantees for accepted documents.
func (e *EmailSpec) Footer() (Section, bool) {
	if len(e.Sections) == 0 {
		return Section{}, false
	}
	last := e.Sections[len(e.Sections)-1]
	if last.Type != SectionFooter {
		return Section{}, false
	}
	return last, true
}

var specErrors = errx.NewRegistry("")

// ErrSpecDecode is raised when raw bytes are not a JSON document at all.
var ErrSpecDecode = specErrors.Register(
	"SPEC_DECODE",
	errx.TypeValidation,
	http.StatusUnprocessableEntity,
	"Document is not valid JSON",
)

// Decode parses raw JSON into a document. Unknown keys are ignored; shape
// problems are the schema validator's job, not the decoder's.
func Decode(raw []byte) (*EmailSpec, error) {
	var e EmailSpec
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, specErrors.NewWithCause(ErrSpecDecode, err)
	}
	return &e, nil
}

// Encode serializes the document back to JSON.
func (e *EmailSpec) Encode() ([]byte, error) {
	return json.Marshal(e)
}
