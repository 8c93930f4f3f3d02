package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/tanzeelaayaz69/kashcart/internal/cart"
	"github.com/tanzeelaayaz69/kashcart/internal/checkout"
	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

type CheckoutHandler struct {
	sessions *cart.Sessions
	checkout *checkout.Service
	timeout  time.Duration
}

func NewCheckoutHandler(sessions *cart.Sessions, checkout *checkout.Service, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		sessions: sessions,
		checkout: checkout,
		timeout:  timeout,
	}
}

type CheckoutRequestDTO struct {
	PaymentMethod string `json:"payment_method"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invalidBody(w, err)
		return
	}

	sessionID := getSessionID(r.Context())
	placed, err := h.checkout.Checkout(ctx, sessionID, h.sessions.Get(sessionID), domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, placed)
}
