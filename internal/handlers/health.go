package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthInfo describes how the server was wired at startup
type HealthInfo struct {
	StoreBackend string `json:"storeBackend"`
	AIEnabled    bool   `json:"aiEnabled"`
	PromoEnabled bool   `json:"promoEnabled"`
}

// HealthHandler provides health check endpoint
type HealthHandler struct {
	info   HealthInfo
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(info HealthInfo, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		info:   info,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	HealthInfo
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:     "healthy",
		Timestamp:  time.Now().UTC(),
		Version:    Version,
		HealthInfo: h.info,
	}, h.logger)
}
