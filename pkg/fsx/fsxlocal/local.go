// Package fsxlocal exports artifacts to local disk, for development and
// single-node deployments.
package fsxlocal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Abraxas-365/mailcraft/pkg/fsx"
)

// LocalExporter implements fsx.Exporter on the local filesystem.
type LocalExporter struct {
	basePath string
}

// NewLocalExporter creates an exporter rooted at basePath, creating the
// directory when missing.
func NewLocalExporter(basePath string) (*LocalExporter, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve export directory: %w", err)
	}
	return &LocalExporter{basePath: abs}, nil
}

func (e *LocalExporter) Export(_ context.Context, emailID string, artifacts []fsx.Artifact) ([]string, error) {
	dir := filepath.Join(e.basePath, emailID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fsx.WriteFailed(err, dir)
	}

	paths := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		path := filepath.Join(dir, filepath.Base(a.Name))
		if err := os.WriteFile(path, a.Data, 0o644); err != nil {
			return nil, fsx.WriteFailed(err, path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func (e *LocalExporter) Fetch(_ context.Context, emailID, name string) ([]byte, error) {
	path := filepath.Join(e.basePath, emailID, filepath.Base(name))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fsx.NotFound(path)
		}
		return nil, fsx.WriteFailed(err, path)
	}
	return data, nil
}
