package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
)

// CartHandler handles cart and checkout requests
type CartHandler struct {
	store *service.Storefront
	log   *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store *service.Storefront, log *slog.Logger) *CartHandler {
	return &CartHandler{
		store: store,
		log:   log,
	}
}

type addItemRequest struct {
	ProductID string `json:"productId"`
}

type changeQuantityRequest struct {
	Delta int `json:"delta"`
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Cart(), h.log)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warn("failed to decode cart request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if req.ProductID == "" {
		WriteError(w, http.StatusBadRequest, "productId is required", h.log)
		return
	}

	line, err := h.store.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found", h.log)
			return
		}
		h.log.Error("failed to add to cart", "productId", req.ProductID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, line, h.log)
}

// ChangeQuantity handles PATCH /api/cart/items/{productId}
func (h *CartHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	var req changeQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.log.Warn("failed to decode quantity request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	line, err := h.store.ChangeQuantity(r.Context(), productID, req.Delta)
	if err != nil {
		if errors.Is(err, service.ErrLineNotFound) {
			WriteError(w, http.StatusNotFound, "Product is not in the cart", h.log)
			return
		}
		h.log.Error("failed to change quantity", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, line, h.log)
}

// RemoveItem handles DELETE /api/cart/items/{productId}
// Removing a product that is not in the cart still succeeds
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	h.store.RemoveFromCart(r.Context(), chi.URLParam(r, "productId"))
	WriteJSON(w, http.StatusOK, h.store.Cart(), h.log)
}
