package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/tanzeelaayaz69/kashcart/internal/account"
	"github.com/tanzeelaayaz69/kashcart/internal/cart"
	"github.com/tanzeelaayaz69/kashcart/internal/checkout"
	"github.com/tanzeelaayaz69/kashcart/internal/domain"
	"github.com/tanzeelaayaz69/kashcart/internal/storage"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondErrorDetails(w, status, code, message, "")
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// invalidBody reports a request body that failed to decode.
func invalidBody(w http.ResponseWriter, err error) {
	respondErrorDetails(w, http.StatusBadRequest, "invalid_request", "invalid JSON body", err.Error())
}

var serviceErrors = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrInvalidFrequency, http.StatusBadRequest, "invalid_frequency"},
	{cart.ErrUnknownProduct, http.StatusNotFound, "product_not_found"},
	{account.ErrInvalidPhone, http.StatusBadRequest, "invalid_phone"},
	{account.ErrInvalidAddressType, http.StatusBadRequest, "invalid_address_type"},
	{account.ErrEmptyAddress, http.StatusBadRequest, "empty_address"},
	{account.ErrNotLoggedIn, http.StatusUnauthorized, "not_logged_in"},
	{checkout.ErrInvalidPaymentMethod, http.StatusBadRequest, "invalid_payment_method"},
	{checkout.ErrEmptyCart, http.StatusUnprocessableEntity, "empty_cart"},
	{checkout.ErrPaymentDeclined, http.StatusPaymentRequired, "payment_declined"},
	{storage.ErrUnavailable, http.StatusServiceUnavailable, "storage_unavailable"},
	{context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
}

// handleServiceError maps domain errors to HTTP statuses. Error carries the
// sentinel's message; Details carries the full chain when it adds context.
func handleServiceError(w http.ResponseWriter, err error) {
	for _, m := range serviceErrors {
		if !errors.Is(err, m.target) {
			continue
		}
		var details string
		if msg := err.Error(); msg != m.target.Error() {
			details = msg
		}
		respondErrorDetails(w, m.status, m.code, m.target.Error(), details)
		return
	}

	// any other backend failure is a storage outage as far as clients care
	log.Error().Err(err).Msg("request failed")
	respondError(w, http.StatusServiceUnavailable, "service_unavailable", "service temporarily unavailable")
}
