// Package filestore stores uploaded files and hands out public URLs for them.
package filestore

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store saves files under generated keys.
type Store interface {
	// Save writes the content of r and returns the key it was stored under.
	Save(ctx context.Context, name string, r io.Reader) (string, error)
	// PublicURL returns the URL the stored key can be fetched from.
	PublicURL(key string) string
}

// ObjectKey returns a unique key for an upload, keeping the base name of the
// original file for readability.
func ObjectKey(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "upload"
	}
	base = strings.Join(strings.Fields(base), "_")
	return uuid.NewString() + "_" + base
}
