package handler

import (
	"net/http"

	"urban-luxury/internal/model"
	"urban-luxury/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductResponse is returned when a product is created.
type ProductResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Product *model.Product `json:"product"`
}

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// ListByBrand handles GET /api/products/brand/{brandId} requests.
func (h *ProductHandler) ListByBrand(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListByBrand(r.Context(), chi.URLParam(r, "brandId"))
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Counts handles GET /api/products/counts requests.
func (h *ProductHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.CountsByBrand(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, counts)
}

// Create handles POST /api/products requests. The image arrives in the "image"
// file field and the product fields as a JSON string in "productData".
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	form, err := parseMultipartUpload(r, "image", "productData", &input)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}
	defer form.Close()

	product, err := h.service.Create(r.Context(), input, form.upload)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ProductResponse{
		Success: true,
		Message: "Product added successfully",
		Product: product,
	})
}

// Delete handles DELETE /api/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Success: true,
		Message: "Product deleted successfully",
	})
}
