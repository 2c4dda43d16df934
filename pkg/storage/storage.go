// Package storage persists the renamed copies of matched PDFs. Packaging of
// the output directory (ZIP or otherwise) is a downstream concern.
package storage

import (
	"context"
	"io"
)

// Storage writes renamed invoice copies.
type Storage interface {
	// Save stores the content under the given filename and returns the name
	// actually used, which may differ when the name was already taken.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}
