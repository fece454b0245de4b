package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/admin"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/ai"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/config"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/kvstore"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/persistence"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/promo"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithOptions(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	slog.SetDefault(log)

	log.Info("starting fruit market server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"store_backend", cfg.Store.Backend,
	)

	ctx := context.Background()

	// Open the key-value store the shop state is mirrored into
	store, err := kvstore.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		log.Error("failed to open store", "backend", cfg.Store.Backend, "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("failed to close store", "error", err)
		}
	}()

	// AI gateway; without a key every AI call fails fast
	var gateway ai.Gateway = ai.Disabled{}
	if cfg.AI.Enabled() {
		gemini, err := ai.NewGemini(ctx, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
		if err != nil {
			log.Error("failed to create ai client, continuing without ai", "error", err)
		} else {
			gateway = ai.WithMetrics(gemini)
			log.Info("ai gateway enabled", "model", cfg.AI.Model)
		}
	} else {
		log.Warn("no GEMINI_API_KEY configured, ai features are disabled")
	}

	// Promo code lists are optional
	promoValidator := promo.NewValidator()
	if len(cfg.Promo.Sources) > 0 {
		log.Info("loading promo code lists...", "sources", len(cfg.Promo.Sources))
		if err := promoValidator.Load(ctx, cfg.Promo.Sources); err != nil {
			log.Error("failed to load promo code lists", "error", err)
			os.Exit(1)
		}
		stats := promoValidator.GetStats()
		log.Info("promo code lists loaded",
			"total_files", stats["total_files"],
			"total_codes", stats["total_codes"],
		)
	}

	storefront := service.NewStorefront(ctx, service.Deps{
		Sync:    persistence.NewSynchronizer(store, log),
		Gate:    admin.NewGate(cfg.Admin.Password, cfg.Admin.ErrorDisplay),
		Gateway: gateway,
		Promo:   promoValidator,
		Logger:  log,
	})

	stop := make(chan struct{})
	aiLimiter := middleware.NewRateLimiter(cfg.AI.RateLimit, cfg.AI.RateBurst, log)
	aiLimiter.StartCleanup(10*time.Minute, stop)

	r := newRouter(routerDeps{
		store:     storefront,
		promo:     promoValidator,
		aiLimiter: aiLimiter,
		health: handlers.HealthInfo{
			StoreBackend: cfg.Store.Backend,
			AIEnabled:    cfg.AI.Enabled(),
			PromoEnabled: promoValidator.Enabled(),
		},
		// AI calls carry their own deadline; leave room for upload and reply
		requestTimeout: cfg.AI.Timeout + 15*time.Second,
		log:            log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("server failed", "error", err)
	}

	log.Info("shutting down server...")
	close(stop)

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return
	}

	log.Info("server stopped gracefully")
}
