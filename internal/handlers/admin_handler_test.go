package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/admin"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/pkg/logger"
)

type stubGateway struct {
	draft *models.ProductDraft
	reply string
	err   error
}

func (s stubGateway) Identify(context.Context, []byte, string) (*models.ProductDraft, error) {
	return s.draft, s.err
}

func (s stubGateway) Converse(context.Context, []models.ChatMessage, string) (string, error) {
	return s.reply, s.err
}

// multipartImage builds a multipart body with an "image" part and extra fields
func multipartImage(t *testing.T, image []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field: %v", err)
		}
	}
	if image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="image"; filename="fruit.png"`)
		header.Set("Content-Type", "image/png")
		part, err := mw.CreatePart(header)
		if err != nil {
			t.Fatalf("failed to create part: %v", err)
		}
		_, _ = part.Write(image)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func adminRouter(store *service.Storefront) http.Handler {
	h := NewAdminHandler(store, logger.New("error"))
	r := chi.NewRouter()
	r.Route("/api/admin", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/status", h.Status)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(store))
			r.Post("/products", h.AddProduct)
			r.Delete("/products/{productId}", h.RemoveProduct)
			r.Post("/identify", h.Identify)
		})
	})
	return r
}

func decodeStatus(t *testing.T, w *httptest.ResponseRecorder) admin.Status {
	t.Helper()
	var status admin.Status
	if err := json.NewDecoder(w.Body).Decode(&status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	return status
}

func TestAdminHandler_LoginLogout(t *testing.T) {
	store := newTestStore(t, nil)
	r := adminRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/admin/login", loginRequest{Password: "wrong"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if status := decodeStatus(t, w); status.Authenticated || !status.PasswordError {
		t.Errorf("unexpected status after wrong password: %+v", status)
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/login", loginRequest{Password: "owner123"})
	if status := decodeStatus(t, w); !status.Authenticated || status.PasswordError {
		t.Errorf("unexpected status after login: %+v", status)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/status", nil)
	if status := decodeStatus(t, w); !status.Authenticated {
		t.Errorf("expected status to report logged in")
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/logout", nil)
	if status := decodeStatus(t, w); status.Authenticated {
		t.Errorf("expected logged out after logout")
	}
}

func TestAdminHandler_RequiresLogin(t *testing.T) {
	store := newTestStore(t, nil)
	r := adminRouter(store)

	w := doJSON(t, r, http.MethodPost, "/api/admin/products", models.ProductForm{Name: "Kiwi", Price: "10", Image: "x"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodDelete, "/api/admin/products/1?confirm=true", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", w.Code)
	}
	if len(store.Products()) != 3 {
		t.Errorf("catalog must be untouched")
	}
}

func TestAdminHandler_AddProduct(t *testing.T) {
	store := newTestStore(t, nil)
	r := adminRouter(store)
	store.Login(context.Background(), "owner123")

	tests := []struct {
		name           string
		form           models.ProductForm
		expectedStatus int
	}{
		{"valid", models.ProductForm{Name: "Kiwi", Price: "99.90", Image: "data:image/png;base64,AA=="}, http.StatusCreated},
		{"missing image", models.ProductForm{Name: "Kiwi", Price: "99.90"}, http.StatusBadRequest},
		{"bad price", models.ProductForm{Name: "Kiwi", Price: "lots", Image: "x"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/admin/products", tt.form)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}

	products := store.Products()
	if len(products) != 4 || products[0].Name != "Kiwi" {
		t.Errorf("expected Kiwi at the front of 4 products, got %d products", len(products))
	}
}

func TestAdminHandler_RemoveProduct(t *testing.T) {
	store := newTestStore(t, nil)
	r := adminRouter(store)
	store.Login(context.Background(), "owner123")

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"not confirmed", "/api/admin/products/1", http.StatusPreconditionRequired},
		{"declined", "/api/admin/products/1?confirm=false", http.StatusPreconditionRequired},
		{"confirmed", "/api/admin/products/1?confirm=true", http.StatusNoContent},
		{"already gone", "/api/admin/products/1?confirm=true", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodDelete, tt.path, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}

	if len(store.Products()) != 2 {
		t.Errorf("expected 2 products left, got %d", len(store.Products()))
	}
}

func TestAdminHandler_Identify(t *testing.T) {
	nutrients := models.Nutrients{Calories: 61}
	store := newTestStore(t, stubGateway{draft: &models.ProductDraft{
		Name:        "Kiwi",
		Description: "Fuzzy and green",
		Nutrients:   &nutrients,
	}})
	r := adminRouter(store)
	store.Login(context.Background(), "owner123")

	body, contentType := multipartImage(t, []byte("png-bytes"), map[string]string{"price": "10"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/identify", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", w.Code, w.Body.String())
	}

	var result service.AutofillResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if !result.Identified || result.Form.Name != "Kiwi" || result.Form.Price != "120.00" {
		t.Errorf("unexpected autofill result %+v", result)
	}
	if result.Form.Image != "data:image/png;base64,cG5nLWJ5dGVz" {
		t.Errorf("unexpected image %q", result.Form.Image)
	}
}

func TestAdminHandler_IdentifyWithoutImage(t *testing.T) {
	store := newTestStore(t, nil)
	r := adminRouter(store)
	store.Login(context.Background(), "owner123")

	body, contentType := multipartImage(t, nil, map[string]string{"name": "Kiwi"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/identify", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestAdminHandler_IdentifyFailureKeepsPostedFields(t *testing.T) {
	store := newTestStore(t, stubGateway{err: errors.New("quota exceeded")})
	r := adminRouter(store)
	store.Login(context.Background(), "owner123")

	body, contentType := multipartImage(t, []byte("png-bytes"), map[string]string{
		"name":        "Pear",
		"price":       "42",
		"description": "Juicy",
		"nutrients":   `{"calories":57,"sugar":9.8,"fiber":3.1,"vitaminC":4.3,"potassium":116,"protein":0.4,"carbs":15}`,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/identify", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", w.Code, w.Body.String())
	}

	var result service.AutofillResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if result.Identified {
		t.Errorf("expected unidentified result")
	}
	want := models.Nutrients{Calories: 57, Sugar: 9.8, Fiber: 3.1, VitaminC: 4.3, Potassium: 116, Protein: 0.4, Carbs: 15}
	if result.Form.Nutrients != want {
		t.Errorf("nutrients = %+v, want %+v", result.Form.Nutrients, want)
	}
	if result.Form.Name != "Pear" || result.Form.Price != "42" || result.Form.Description != "Juicy" {
		t.Errorf("expected posted fields to be kept, got %+v", result.Form)
	}
}

func TestAdminHandler_IdentifyRejectsBadNutrients(t *testing.T) {
	store := newTestStore(t, nil)
	r := adminRouter(store)
	store.Login(context.Background(), "owner123")

	body, contentType := multipartImage(t, []byte("png-bytes"), map[string]string{"nutrients": "{not json"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/identify", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
