package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/ai"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
)

// AdminHandler serves the owner panel: login and inventory management
type AdminHandler struct {
	store  *service.Storefront
	logger *slog.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(store *service.Storefront, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{store: store, logger: logger}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
// A wrong password is not an error response; the status carries the indicator
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	h.store.Login(r.Context(), req.Password)
	WriteJSON(w, http.StatusOK, h.store.AdminStatus(), h.logger)
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.store.Logout(r.Context())
	WriteJSON(w, http.StatusOK, h.store.AdminStatus(), h.logger)
}

// Status handles GET /api/admin/status
func (h *AdminHandler) Status(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.store.AdminStatus(), h.logger)
}

// AddProduct handles POST /api/admin/products
func (h *AdminHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var form models.ProductForm
	if err := decodeJSON(r, &form); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.store.AddProduct(r.Context(), form)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
			return
		}
		h.logger.Error("failed to add product", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, product, h.logger)
}

// RemoveProduct handles DELETE /api/admin/products/{productId}?confirm=true
// Without confirm=true nothing is removed
func (h *AdminHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")

	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if !confirmed {
		WriteError(w, http.StatusPreconditionRequired, "Removal must be confirmed with confirm=true", h.logger)
		return
	}

	if err := h.store.RemoveProduct(r.Context(), productID); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}
		h.logger.Error("failed to remove product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("product removed", "productId", productID)
	w.WriteHeader(http.StatusNoContent)
}

// Identify handles POST /api/admin/identify
// Takes a multipart "image" plus the current name, price, description and
// nutrients (JSON) fields and returns the form with AI suggestions applied.
// Fields the AI does not fill keep the posted values. A response overtaken
// by a newer request is answered with 409.
func (h *AdminHandler) Identify(w http.ResponseWriter, r *http.Request) {
	image, mime, err := readImage(w, r)
	if err != nil {
		h.logger.Warn("invalid identify upload", "error", err)
		WriteError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	form := models.ProductForm{
		Name:        r.FormValue("name"),
		Price:       r.FormValue("price"),
		Description: r.FormValue("description"),
	}
	if raw := r.FormValue("nutrients"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form.Nutrients); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid nutrients", h.logger)
			return
		}
	}

	result, err := h.store.Autofill(r.Context(), form, image, mime)
	if err != nil {
		if errors.Is(err, ai.ErrStaleResponse) {
			WriteError(w, http.StatusConflict, "Superseded by a newer request", h.logger)
			return
		}
		h.logger.Error("failed to autofill product form", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, result, h.logger)
}
