package csvfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/RamonCharlles/Gestao-componentes/internal/model"
	"github.com/RamonCharlles/Gestao-componentes/platform/logger"
)

type store struct {
	path string
}

// NewStore returns a record store backed by the CSV file at path.
func NewStore(path string) *store {
	return &store{path: path}
}

func (s *store) Path() string { return s.path }

// Load reads every record. A missing file is created with the header only.
// Rows without an ID get one and the file is rewritten at once, so the
// same IDs come back on every later load.
func (s *store) Load(ctx context.Context) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreRead, err)
	}

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Info(ctx, "record store not found, initializing", logger.String("path", s.path))
		if err := s.Save(ctx, nil); err != nil {
			return nil, err
		}
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrStoreRead, err)
	}

	records, minted, err := decode(bufio.NewReader(f))
	f.Close()
	if err != nil {
		return nil, err
	}

	if minted > 0 {
		logger.Info(ctx, "assigned ids to legacy rows",
			logger.String("path", s.path),
			logger.Int("rows", minted),
		)
		if err := s.Save(ctx, records); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// Save replaces the file atomically: temp file, fsync, rename.
func (s *store) Save(ctx context.Context, records []model.Record) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	buf := bufio.NewWriter(tmp)
	if err := Encode(buf, records); err != nil {
		return fail(err)
	}
	if err := buf.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", model.ErrStoreWrite, err)
	}

	return nil
}
