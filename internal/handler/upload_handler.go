package handler

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"urban-luxury/internal/model"
	"urban-luxury/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// UploadHandler serves stored images.
type UploadHandler struct {
	store  storage.Store
	logger zerolog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(store storage.Store, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger.With().Str("handler", "upload").Logger(),
	}
}

// Serve handles GET /uploads/{name} requests.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	name, err := uploadName(r)
	if err != nil {
		writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "file not found", h.logger)
		return
	}

	body, err := h.store.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, model.ErrCodeNotFound, "file not found", h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", storage.ContentType(name))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		h.logger.Warn().Err(err).Str("file", name).Msg("failed to stream file")
	}
}

// uploadName returns the decoded file name from the route. chi matches on the
// raw path when the request carries one, leaving the parameter escaped.
func uploadName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			return "", err
		}
		name = unescaped
	}
	return name, storage.ValidName(name)
}
