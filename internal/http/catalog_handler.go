package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanzeelaayaz69/kashcart/internal/catalog"
)

type CatalogHandler struct {
	catalog *catalog.Store
}

func NewCatalogHandler(c *catalog.Store) *CatalogHandler {
	return &CatalogHandler{catalog: c}
}

// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Categories())
}

// GET /api/v1/marts?q=
func (h *CatalogHandler) ListMarts(w http.ResponseWriter, r *http.Request) {
	if q := r.URL.Query().Get("q"); q != "" {
		respondJSON(w, http.StatusOK, h.catalog.FilterMarts(q))
		return
	}
	respondJSON(w, http.StatusOK, h.catalog.Marts())
}

// GET /api/v1/marts/{mart_id}
func (h *CatalogHandler) GetMart(w http.ResponseWriter, r *http.Request) {
	mart, ok := h.catalog.Mart(chi.URLParam(r, "mart_id"))
	if !ok {
		respondError(w, http.StatusNotFound, "mart_not_found", "mart not found")
		return
	}
	respondJSON(w, http.StatusOK, mart)
}

// GET /api/v1/marts/{mart_id}/products?category=
func (h *CatalogHandler) ListMartProducts(w http.ResponseWriter, r *http.Request) {
	martID := chi.URLParam(r, "mart_id")
	if _, ok := h.catalog.Mart(martID); !ok {
		respondError(w, http.StatusNotFound, "mart_not_found", "mart not found")
		return
	}
	respondJSON(w, http.StatusOK, h.catalog.ProductsByMart(martID, r.URL.Query().Get("category")))
}

// GET /api/v1/categories/{category_id}/products
func (h *CatalogHandler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.ProductsByCategory(chi.URLParam(r, "category_id")))
}

// GET /api/v1/products/search?q=
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog.Search(r.URL.Query().Get("q")))
}
