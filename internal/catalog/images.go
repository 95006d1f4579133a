package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var whitespace = regexp.MustCompile(`\s+`)

// ImageStore keeps uploaded product pictures in one flat directory.
type ImageStore struct {
	dir   string
	nowFn func() time.Time
	idFn  func() string
}

// NewImageStore creates dir if needed.
func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir %s: %w", dir, err)
	}
	return &ImageStore{
		dir:   dir,
		nowFn: time.Now,
		idFn: func() string {
			return uuid.NewString()[:8]
		},
	}, nil
}

// Dir returns the directory served under /uploads.
func (s *ImageStore) Dir() string {
	return s.dir
}

// NewName returns a collision-free filename for an upload called original:
// {unix millis}-{8 hex chars}-{original with whitespace runs replaced by _}.
// The name is NFC-normalized so decomposed accents from some browsers map to the same URL.
func (s *ImageStore) NewName(original string) string {
	base := whitespace.ReplaceAllString(norm.NFC.String(filepath.Base(original)), "_")
	return strconv.FormatInt(s.nowFn().UnixMilli(), 10) + "-" + s.idFn() + "-" + base
}

// Path returns where the image called name lives on disk.
func (s *ImageStore) Path(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// Remove deletes a stored image. Removing an image that is not there is not an error.
func (s *ImageStore) Remove(name string) error {
	if name == "" {
		return nil
	}
	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove image %s: %w", name, err)
	}
	return nil
}
