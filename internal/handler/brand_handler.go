package handler

import (
	"net/http"

	"urban-luxury/internal/model"
	"urban-luxury/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// BrandResponse is returned when a brand is created.
type BrandResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Brand   *model.Brand `json:"brand"`
}

// BrandHandler handles brand-related HTTP requests.
type BrandHandler struct {
	service service.BrandService
	logger  zerolog.Logger
}

// NewBrandHandler creates a new brand handler.
func NewBrandHandler(service service.BrandService, logger zerolog.Logger) *BrandHandler {
	return &BrandHandler{
		service: service,
		logger:  logger.With().Str("handler", "brand").Logger(),
	}
}

// List handles GET /api/brands requests.
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, brands)
}

// Create handles POST /api/brands requests. The logo arrives in the "logo" file
// field and the brand fields as a JSON string in "brandData".
func (h *BrandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.BrandInput
	form, err := parseMultipartUpload(r, "logo", "brandData", &input)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	defer form.Close()

	brand, err := h.service.Create(r.Context(), input, form.upload)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, BrandResponse{
		Success: true,
		Message: "Brand added successfully",
		Brand:   brand,
	})
}

// Delete handles DELETE /api/brands/{id} requests.
func (h *BrandHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Brand deleted successfully",
	})
}
