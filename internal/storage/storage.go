// Package storage keeps uploaded brand logos and product images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// URLPrefix is the path under which stored files are served.
const URLPrefix = "/uploads/"

var (
	// ErrNotFound is returned when a named file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrInvalidName is returned for names that are empty or contain path elements.
	ErrInvalidName = errors.New("invalid file name")
)

// Store saves, opens and removes uploaded files by name.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// NewFileName returns the stored name for an uploaded file: the upload time in
// Unix milliseconds, a dash, and the base name of the original file.
func NewFileName(now time.Time, original string) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == ".." {
		base = "upload"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), base)
}

// PublicURL returns the absolute URL at which the named file is served.
func PublicURL(origin, name string) string {
	return strings.TrimRight(origin, "/") + URLPrefix + url.PathEscape(name)
}

// NameFromURL extracts the stored file name from a URL built by PublicURL.
// It returns "" when the URL does not point into the upload area.
func NameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasPrefix(u.Path, URLPrefix) {
		return ""
	}
	name := strings.TrimPrefix(u.Path, URLPrefix)
	if ValidName(name) != nil {
		return ""
	}
	return name
}

// ValidName checks that name refers to a single file inside the store.
func ValidName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ContentType guesses the MIME type of a stored file from its extension.
func ContentType(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
