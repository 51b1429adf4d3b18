package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore writes uploaded listing images under a configured directory.
// Files are referenced by bare filename only; writes are not transactional
// with the database, so a failure after save can leave an orphaned file.
type ImageStore struct {
	dir string
}

// NewImageStore ensures the upload directory exists and returns a store for
// it.
func NewImageStore(dir string) (*ImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *ImageStore) Dir() string {
	return s.dir
}

// SaveAll persists the uploaded files in order and returns their stored
// filenames in the same order. On error, files already written stay on disk.
func (s *ImageStore) SaveAll(files []*multipart.FileHeader) ([]string, error) {
	names := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open upload %q: %w", fh.Filename, err)
		}
		name, err := s.Save(fh.Filename, src)
		src.Close()
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

// Save writes a single upload and returns the stored filename. The original
// name is kept after sanitization; when a file with that name already exists
// the new one gets a short random prefix instead of clobbering it.
func (s *ImageStore) Save(filename string, src io.Reader) (string, error) {
	clean, err := SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	stored := clean
	dst, err := os.OpenFile(filepath.Join(s.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if os.IsExist(err) {
		stored = uuid.New().String()[:8] + "_" + clean
		dst, err = os.OpenFile(filepath.Join(s.dir, stored), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	}
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write image file: %w", err)
	}
	return stored, nil
}

// Remove deletes a stored image. A missing file is not an error.
func (s *ImageStore) Remove(name string) error {
	clean, err := SanitizeFilename(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.dir, clean))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SanitizeFilename strips any path components from an upload name and
// rejects names that would escape the upload directory.
func SanitizeFilename(name string) (string, error) {
	// Uploads from Windows clients can carry backslash-separated paths.
	name = strings.ReplaceAll(name, "\\", "/")
	base := filepath.Base(name)
	if base == "" || base == "." || base == ".." || base == "/" {
		return "", fmt.Errorf("invalid filename %q", name)
	}
	return base, nil
}
