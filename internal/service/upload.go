package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"urban-luxury/internal/storage"

	"github.com/rs/zerolog"
)

// saveUpload stores file under a fresh timestamped name and returns that name.
func saveUpload(ctx context.Context, store storage.Store, now time.Time, file *Upload) (string, error) {
	name := storage.NewFileName(now, file.Filename)
	if err := store.Save(ctx, name, file.Body); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return name, nil
}

// removeUpload deletes a stored file, logging instead of failing. Missing files are ignored.
func removeUpload(ctx context.Context, store storage.Store, name string, logger zerolog.Logger) {
	if name == "" {
		return
	}
	if err := store.Delete(ctx, name); err != nil && !errors.Is(err, storage.ErrNotFound) {
		logger.Warn().Err(err).Str("file", name).Msg("failed to remove stored file")
	}
}
