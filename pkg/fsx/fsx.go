// Package fsx exports rendered email artifacts so external tooling (the web
// UI, campaign exporters) can pick them up. Backends live in fsxlocal and
// fsxs3.
package fsx

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/mailcraft/pkg/email/render"
	"github.com/Abraxas-365/mailcraft/pkg/email/spec"
	"github.com/Abraxas-365/mailcraft/pkg/errx"
)

var fsxErrors = errx.NewRegistry("EXPORT")

var (
	ErrWriteFailed = fsxErrors.Register(
		"WRITE_FAILED", errx.TypeInternal, http.StatusInternalServerError,
		"Failed to write artifact",
	)
	ErrNotFound = fsxErrors.Register(
		"NOT_FOUND", errx.TypeNotFound, http.StatusNotFound,
		"Artifact not found",
	)
)

// WriteFailed wraps a backend write error with the artifact path attached.
func WriteFailed(cause error, path string) error {
	return fsxErrors.NewWithCause(ErrWriteFailed, cause).WithDetail("path", path)
}

// NotFound raises the standard missing-artifact error.
func NotFound(path string) error {
	return fsxErrors.New(ErrNotFound).WithDetail("path", path)
}

// Artifact is one exportable file.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Exporter stores a rendered email's artifacts under its document id and
// returns one location (path or URL) per artifact, in input order.
type Exporter interface {
	Export(ctx context.Context, emailID string, artifacts []Artifact) ([]string, error)
	Fetch(ctx context.Context, emailID, name string) ([]byte, error)
}

// Bundle packages a document and its render result into the standard export
// set: the JSON document, the markup tree and the compiled HTML.
func Bundle(doc *spec.EmailSpec, res render.Result) ([]Artifact, error) {
	raw, err := doc.Encode()
	if err != nil {
		return nil, errx.Wrap(err, "failed to encode email document", errx.TypeInternal)
	}
	return []Artifact{
		{Name: "email.json", ContentType: "application/json", Data: raw},
		{Name: "email.mail", ContentType: "text/plain; charset=utf-8", Data: []byte(res.Markup)},
		{Name: "email.html", ContentType: "text/html; charset=utf-8", Data: []byte(res.HTML)},
	}, nil
}
