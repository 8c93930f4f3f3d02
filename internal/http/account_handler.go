package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tanzeelaayaz69/kashcart/internal/account"
	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

type AccountHandler struct {
	accounts *account.Service
	timeout  time.Duration
}

func NewAccountHandler(accounts *account.Service, timeout time.Duration) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		timeout:  timeout,
	}
}

type LoginRequestDTO struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
}

type AddAddressRequestDTO struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// POST /api/v1/auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invalidBody(w, err)
		return
	}

	user, err := h.accounts.Login(ctx, getSessionID(r.Context()), req.Phone, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GET /api/v1/auth/check?phone=
func (h *AccountHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	exists := h.accounts.CheckUser(ctx, getSessionID(r.Context()), r.URL.Query().Get("phone"))
	respondJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// POST /api/v1/auth/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.accounts.Logout(ctx, getSessionID(r.Context())); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /api/v1/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, ok := h.accounts.CurrentUser(ctx, getSessionID(r.Context()))
	if !ok {
		respondError(w, http.StatusNotFound, "user_not_found", "no user is logged in")
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// POST /api/v1/me/addresses
func (h *AccountHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddAddressRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		invalidBody(w, err)
		return
	}

	user, err := h.accounts.AddAddress(ctx, getSessionID(r.Context()), domain.AddressType(req.Type), req.Value)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// DELETE /api/v1/me/addresses/{address_id}
func (h *AccountHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	user, err := h.accounts.RemoveAddress(ctx, getSessionID(r.Context()), chi.URLParam(r, "address_id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
