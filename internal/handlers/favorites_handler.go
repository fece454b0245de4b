package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
)

// FavoritesHandler handles the visitor's starred products
type FavoritesHandler struct {
	store  *service.Storefront
	logger *slog.Logger
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(store *service.Storefront, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{store: store, logger: logger}
}

// ToggleResponse reports membership after a toggle
type ToggleResponse struct {
	ProductID string `json:"productId"`
	Favorite  bool   `json:"favorite"`
}

// List handles GET /api/favorites
func (h *FavoritesHandler) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.FavoriteProducts(), h.logger)
}

// Toggle handles POST /api/favorites/{productId}
func (h *FavoritesHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	favorite := h.store.ToggleFavorite(r.Context(), productID)
	WriteJSON(w, http.StatusOK, ToggleResponse{ProductID: productID, Favorite: favorite}, h.logger)
}
