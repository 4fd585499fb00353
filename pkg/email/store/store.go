// Package store persists accepted email documents and caches in-progress
// drafts. Implementations live in storepg and storeredis.
package store

import (
	"context"
	"net/http"
	"time"

	"github.com/Abraxas-365/mailcraft/pkg/brand"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/errx"
)

var storeErrors = errx.NewRegistry("STORE")

var (
	ErrNotFound = storeErrors.Register(
		"NOT_FOUND", errx.TypeNotFound, http.StatusNotFound,
		"Email document not found",
	)
	ErrDraftNotFound = storeErrors.Register(
		"DRAFT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound,
		"Draft not found or expired",
	)
)

// NotFound raises the standard not-found error with the document id attached.
func NotFound(id string) error {
	return storeErrors.New(ErrNotFound).WithDetail("id", id)
}

// DraftNotFound raises the draft-specific not-found error.
func DraftNotFound(id string) error {
	return storeErrors.New(ErrDraftNotFound).WithDetail("id", id)
}

// Record is one accepted, persisted email document.
type Record struct {
	ID        string          `json:"id"`
	RunID     string          `json:"run_id"`
	BrandName string          `json:"brand_name"`
	Subject   string          `json:"subject"`
	Spec      *spec.EmailSpec `json:"spec"`
	Warnings  []spec.Issue    `json:"warnings,omitempty"`
	Attempts  int             `json:"attempts"`
	CreatedAt time.Time       `json:"created_at"`
}

// Repository persists accepted documents.
type Repository interface {
	Save(ctx context.Context, rec Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	ListByBrand(ctx context.Context, brandName string, limit int) ([]*Record, error)
	Delete(ctx context.Context, id string) error
}

// Draft is the wizard's in-progress input, cached between steps so the
// client never has to resend the full brand context.
type Draft struct {
	ID        string               `json:"id"`
	Brand     brand.BrandContext   `json:"brand"`
	Intent    brand.CampaignIntent `json:"intent"`
	Plan      brand.Plan           `json:"plan"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// DraftCache holds drafts with a TTL.
type DraftCache interface {
	Put(ctx context.Context, draft Draft, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Draft, error)
	Drop(ctx context.Context, id string) error
}
