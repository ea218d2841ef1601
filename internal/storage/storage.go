// Package storage provides the object store for compiled book artifacts.
// Names are deterministic ({book_id}.txt / .docx / .pdf); uploads overwrite.
package storage

import (
	"context"
	"errors"
)

// ErrEmptyName is returned for uploads with no object name.
var ErrEmptyName = errors.New("storage: empty object name")

// Store accepts named byte blobs and hands back retrievable URLs.
type Store interface {
	// Upload writes data under name, replacing any existing object.
	Upload(ctx context.Context, name string, data []byte, contentType string) error

	// PublicURL returns the retrievable URL for a previously uploaded name.
	PublicURL(name string) string
}
