package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/pkg/logger"
)

func TestPromoHandler_ValidatePromo(t *testing.T) {
	handler := NewPromoHandler(validPromo("HAPPYHRS"), logger.New("error"))

	r := chi.NewRouter()
	r.Get("/api/promo/stats", handler.GetStats)
	r.Get("/api/promo/{code}", handler.ValidatePromo)

	tests := []struct {
		name           string
		code           string
		expectedStatus int
		expectedValid  bool
	}{
		{"valid code", "HAPPYHRS", http.StatusOK, true},
		{"invalid code", "NOPE1234", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/promo/"+tt.code, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}

			var response map[string]interface{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response["valid"] != tt.expectedValid {
				t.Errorf("expected valid=%v, got %v", tt.expectedValid, response["valid"])
			}
			if response["code"] != tt.code {
				t.Errorf("expected code %s, got %v", tt.code, response["code"])
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/api/promo/stats", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected stats status 200, got %d", w.Code)
	}
}

func TestHealthHandler(t *testing.T) {
	handler := NewHealthHandler(HealthInfo{StoreBackend: "memory", AIEnabled: true}, logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp.Status != "healthy" || resp.StoreBackend != "memory" || !resp.AIEnabled {
		t.Errorf("unexpected health response %+v", resp)
	}
}
