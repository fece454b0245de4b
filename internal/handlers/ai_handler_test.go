package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/ai"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/pkg/logger"
)

func aiRouter(h *AIHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/api/sell", h.Sell)
	r.Get("/api/assistant/history", h.History)
	r.Post("/api/assistant/chat", h.Chat)
	return r
}

func TestAIHandler_Sell(t *testing.T) {
	tests := []struct {
		name           string
		gateway        ai.Gateway
		image          []byte
		expectedStatus int
	}{
		{
			name:           "identified",
			gateway:        stubGateway{draft: &models.ProductDraft{Name: "Papaya"}},
			image:          []byte("jpeg"),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "ai disabled",
			gateway:        ai.Disabled{},
			image:          []byte("jpeg"),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "no image",
			gateway:        stubGateway{draft: &models.ProductDraft{Name: "Papaya"}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, tt.gateway)
			r := aiRouter(NewAIHandler(store, logger.New("error")))

			body, contentType := multipartImage(t, tt.image, nil)
			req := httptest.NewRequest(http.MethodPost, "/api/sell", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus != http.StatusCreated {
				if len(store.Products()) != 3 {
					t.Errorf("failed sell must not list anything")
				}
				return
			}

			var product models.Product
			if err := json.NewDecoder(w.Body).Decode(&product); err != nil {
				t.Fatalf("failed to decode product: %v", err)
			}
			if product.Name != "Papaya" || product.SellerName != "Me" || product.PriceOrZero() != 180 {
				t.Errorf("unexpected listing %+v", product)
			}
			if !strings.HasPrefix(product.Image, "data:image/png;base64,") {
				t.Errorf("unexpected image %q", product.Image)
			}
		})
	}
}

func TestAIHandler_Chat(t *testing.T) {
	store := newTestStore(t, stubGateway{reply: "Mangoes are in season."})
	r := aiRouter(NewAIHandler(store, logger.New("error")))

	w := doJSON(t, r, http.MethodPost, "/api/assistant/chat", chatRequest{Message: "What is in season?"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode chat response: %v", err)
	}
	if !resp.OK || resp.Reply != "Mangoes are in season." {
		t.Errorf("unexpected chat response %+v", resp)
	}

	w = doJSON(t, r, http.MethodPost, "/api/assistant/chat", chatRequest{Message: "  "})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for empty message, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/assistant/history", nil)
	var history []models.ChatMessage
	if err := json.NewDecoder(w.Body).Decode(&history); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(history) != 2 || history[0].Role != models.RoleUser || history[1].Role != models.RoleModel {
		t.Errorf("unexpected history %+v", history)
	}
}

func TestAIHandler_ChatGatewayFailure(t *testing.T) {
	store := newTestStore(t, stubGateway{err: errors.New("boom")})
	r := aiRouter(NewAIHandler(store, logger.New("error")))

	w := doJSON(t, r, http.MethodPost, "/api/assistant/chat", chatRequest{Message: "hello"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode chat response: %v", err)
	}
	if resp.OK || resp.Reply != "" {
		t.Errorf("expected a dropped reply, got %+v", resp)
	}
	if got := len(store.ChatHistory()); got != 1 {
		t.Errorf("expected the user message to stay in history, got %d messages", got)
	}
}
