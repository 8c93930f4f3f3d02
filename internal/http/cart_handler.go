package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanzeelaayaz69/kashcart/internal/cart"
	"github.com/tanzeelaayaz69/kashcart/internal/checkout"
	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

type CartHandler struct {
	sessions *cart.Sessions
	checkout *checkout.Service
}

func NewCartHandler(sessions *cart.Sessions, checkout *checkout.Service) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		checkout: checkout,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Recurring bool   `json:"recurring"`
	Frequency string `json:"frequency"`
}

type UpdateQuantityRequestDTO struct {
	Delta int `json:"delta"`
}

type SetRecurringRequestDTO struct {
	Recurring bool   `json:"recurring"`
	Frequency string `json:"frequency"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	engine := h.sessions.Get(getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, engine.Snapshot())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invalidBody(w, err)
		return
	}
	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	freq, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	engine := h.sessions.Get(getSessionID(r.Context()))
	if err := engine.AddItem(req.ProductID, req.Recurring, freq); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, engine.Snapshot())
}

// PATCH /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invalidBody(w, err)
		return
	}

	engine := h.sessions.Get(getSessionID(r.Context()))
	engine.UpdateQuantity(chi.URLParam(r, "product_id"), req.Delta)

	respondJSON(w, http.StatusOK, engine.Snapshot())
}

// PUT /api/v1/cart/items/{product_id}/recurring
func (h *CartHandler) SetRecurring(w http.ResponseWriter, r *http.Request) {
	var req SetRecurringRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invalidBody(w, err)
		return
	}
	freq, err := domain.ParseFrequency(req.Frequency)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	engine := h.sessions.Get(getSessionID(r.Context()))
	if err := engine.SetRecurring(chi.URLParam(r, "product_id"), req.Recurring, freq); err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, engine.Snapshot())
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	engine := h.sessions.Get(getSessionID(r.Context()))
	engine.RemoveItem(chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, engine.Snapshot())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	engine := h.sessions.Get(getSessionID(r.Context()))
	engine.Clear()
	respondJSON(w, http.StatusOK, engine.Snapshot())
}

// GET /api/v1/cart/quote
func (h *CartHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	engine := h.sessions.Get(getSessionID(r.Context()))
	respondJSON(w, http.StatusOK, h.checkout.Quote(engine))
}
