package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// promoValidator is the interface for promo code validation
type promoValidator interface {
	IsValid(ctx context.Context, code string) bool
	GetStats() map[string]interface{}
}

// PromoHandler handles HTTP requests for promo code validation
type PromoHandler struct {
	validator promoValidator
	logger    *slog.Logger
}

// NewPromoHandler creates a new PromoHandler
func NewPromoHandler(validator promoValidator, logger *slog.Logger) *PromoHandler {
	return &PromoHandler{
		validator: validator,
		logger:    logger,
	}
}

// ValidatePromo handles GET /api/promo/{code}
func (h *PromoHandler) ValidatePromo(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if h.validator.IsValid(r.Context(), code) {
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"valid": true,
			"code":  code,
		}, h.logger)
		return
	}

	WriteJSON(w, http.StatusNotFound, map[string]interface{}{
		"valid":   false,
		"code":    code,
		"message": "Promo code not found or invalid",
	}, h.logger)
}

// GetStats handles GET /api/promo/stats (for debugging/monitoring)
func (h *PromoHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.validator.GetStats(), h.logger)
}
