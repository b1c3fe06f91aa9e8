package filestore

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/budget-tracker/internal/logging"
	"fjacquet/budget-tracker/internal/models"
)

// LocalStore keeps files in a directory served under baseURL.
type LocalStore struct {
	dir     string
	baseURL string
	logger  logging.Logger
}

// NewLocalStore creates a LocalStore rooted at dir.
func NewLocalStore(dir, baseURL string, logger logging.Logger) *LocalStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.WithField(logging.FieldComponent, "LocalStore"),
	}
}

// Save copies r into a new file in the store directory.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, models.PermissionDirectory); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	key := ObjectKey(name)
	path := filepath.Join(s.dir, key)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, models.PermissionReportFile) // #nosec G304 -- generated key inside the upload directory
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	s.logger.Debug("Stored upload", logging.F(logging.FieldFile, path))
	return key, nil
}

// PublicURL joins the base URL and the escaped key.
func (s *LocalStore) PublicURL(key string) string {
	return s.baseURL + "/" + url.PathEscape(key)
}

// Path returns the file system location of key.
func (s *LocalStore) Path(key string) string {
	return filepath.Join(s.dir, key)
}
