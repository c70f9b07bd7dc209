// Package fs keeps component photos on the local disk.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RamonCharlles/Gestao-componentes/internal/attachment"
	"github.com/RamonCharlles/Gestao-componentes/internal/model"
)

type store struct {
	root string
	now  func() time.Time
}

// NewStore creates the root directory when it does not exist yet.
func NewStore(root string) (*store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create attachment dir %s: %w", root, err)
	}
	return &store{root: root, now: time.Now}, nil
}

// Store streams content to {root}/{timestamp}_{name}_{uuid}{ext} through a
// temp file and returns the final path.
func (s *store) Store(ctx context.Context, content io.Reader, suggestedName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fullPath := filepath.Join(s.root, attachment.StorageName(suggestedName, s.now()))

	f, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := f.Name()

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write attachment: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("fsync attachment: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close attachment: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename attachment: %w", err)
	}

	return fullPath, nil
}

func (s *store) Exists(_ context.Context, path string) (bool, error) {
	full, err := s.resolve(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(full)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (s *store) Open(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrAttachmentNotFound, path)
		}
		return nil, fmt.Errorf("open attachment %s: %w", path, err)
	}
	return f, nil
}

// Delete is a no-op for files that are already gone.
func (s *store) Delete(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete attachment %s: %w", path, err)
	}
	return nil
}

// resolve accepts both paths returned by Store and bare names, and refuses
// anything outside the root.
func (s *store) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if !strings.HasPrefix(clean, filepath.Clean(s.root)+string(filepath.Separator)) {
		clean = filepath.Join(s.root, clean)
	}

	rel, err := filepath.Rel(s.root, clean)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s", model.ErrAttachmentNotFound, path)
	}
	return clean, nil
}
