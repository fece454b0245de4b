package handlers

import (
	"errors"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
)

// Checkout handles POST /api/cart/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.CheckoutRequest

	if err := decodeJSON(r, &req); err != nil {
		h.log.Error("failed to decode checkout request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.store.Checkout(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			WriteError(w, http.StatusBadRequest, "Cart must contain at least one item", h.log)
		case errors.Is(err, service.ErrInvalidPromo):
			WriteError(w, http.StatusBadRequest, "Promo code is not valid", h.log)
		default:
			h.log.Error("failed to check out", "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusOK, order, h.log)
}
