package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
)

// AIHandler serves the photo listing flow and the assistant chat
type AIHandler struct {
	store  *service.Storefront
	logger *slog.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(store *service.Storefront, logger *slog.Logger) *AIHandler {
	return &AIHandler{store: store, logger: logger}
}

type chatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the assistant's reply. A failed reply is dropped:
// OK is false, nothing else is set and the user message stays in history.
type ChatResponse struct {
	Reply string `json:"reply,omitempty"`
	OK    bool   `json:"ok"`
}

// Sell handles POST /api/sell
// Identifies the uploaded photo and lists the product at a fixed price
func (h *AIHandler) Sell(w http.ResponseWriter, r *http.Request) {
	image, mime, err := readImage(w, r)
	if err != nil {
		h.logger.Warn("invalid sell upload", "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	product, err := h.store.SellWithPhoto(r.Context(), image, mime)
	if err != nil {
		if errors.Is(err, service.ErrIdentifyFailed) {
			WriteError(w, http.StatusUnprocessableEntity, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to list product from photo", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, product, h.logger)
}

// History handles GET /api/assistant/history
func (h *AIHandler) History(w http.ResponseWriter, r *http.Request) {
	history := h.store.ChatHistory()
	if history == nil {
		history = []models.ChatMessage{}
	}
	WriteJSON(w, http.StatusOK, history, h.logger)
}

// Chat handles POST /api/assistant/chat
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	reply, ok, err := h.store.Chat(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, service.ErrEmptyMessage) {
			WriteError(w, http.StatusBadRequest, "Message is empty", h.logger)
			return
		}
		h.logger.Error("chat failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, ChatResponse{Reply: reply, OK: ok}, h.logger)
}
