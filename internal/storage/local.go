package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalStore keeps files in a directory on disk.
type LocalStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates the upload directory if needed and returns a store rooted at it.
func NewLocalStore(dir string, logger zerolog.Logger) (*LocalStore, error) {
	logger = logger.With().Str("component", "local-store").Logger()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error().Err(err).Str("dir", dir).Msg("failed to create upload directory")
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	logger.Info().Str("dir", dir).Msg("local store initialised")

	return &LocalStore{dir: dir, logger: logger}, nil
}

// Save writes r to the named file. A partially written file is removed.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) error {
	if err := ValidName(name); err != nil {
		return err
	}

	p := filepath.Join(s.dir, name)
	file, err := os.Create(p)
	if err != nil {
		s.logger.Error().Err(err).Str("file", p).Msg("failed to create file")
		return fmt.Errorf("failed to create file %s: %w", name, err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		_ = os.Remove(p)
		s.logger.Error().Err(err).Str("file", p).Msg("failed to write file")
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(p)
		return fmt.Errorf("failed to close file %s: %w", name, err)
	}

	s.logger.Debug().Str("file", p).Msg("file saved")

	return nil
}

// Open opens the named file for reading.
func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if ValidName(name) != nil {
		return nil, ErrNotFound
	}

	file, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file %s: %w", name, err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to stat file %s: %w", name, err)
	}
	if info.IsDir() {
		file.Close()
		return nil, ErrNotFound
	}

	return file, nil
}

// Delete removes the named file. It returns ErrNotFound if the file does not exist.
func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if ValidName(name) != nil {
		return ErrNotFound
	}

	p := filepath.Join(s.dir, name)
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		s.logger.Error().Err(err).Str("file", p).Msg("failed to delete file")
		return fmt.Errorf("failed to delete file %s: %w", name, err)
	}

	s.logger.Debug().Str("file", p).Msg("file deleted")

	return nil
}
