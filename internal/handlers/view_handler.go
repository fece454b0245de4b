package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/view"
)

// ViewHandler exposes the current screen and navigation
type ViewHandler struct {
	store  *service.Storefront
	logger *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(store *service.Storefront, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{store: store, logger: logger}
}

type navigateRequest struct {
	View string `json:"view"`
}

// Get handles GET /api/view
func (h *ViewHandler) Get(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.View(), h.logger)
}

// Navigate handles PUT /api/view
// Details can only be opened through Select since it needs a product
func (h *ViewHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	name, err := view.Parse(req.View)
	if err != nil || name == view.Details {
		WriteError(w, http.StatusBadRequest, "Unknown view", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, h.store.Navigate(r.Context(), name), h.logger)
}

// Select handles POST /api/view/select/{productId}
func (h *ViewHandler) Select(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	state, err := h.store.Select(r.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}
		h.logger.Error("failed to select product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, state, h.logger)
}

// Back handles POST /api/view/back
func (h *ViewHandler) Back(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.Back(r.Context()), h.logger)
}
