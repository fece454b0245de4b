package main

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/handlers"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/metrics"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/middleware"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/promo"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/service"
)

// routerDeps are the pieces newRouter mounts
type routerDeps struct {
	store          *service.Storefront
	promo          *promo.Validator
	aiLimiter      *middleware.RateLimiter
	health         handlers.HealthInfo
	requestTimeout time.Duration
	log            *slog.Logger
}

func newRouter(d routerDeps) chi.Router {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(d.health, d.log)
	productHandler := handlers.NewProductHandler(d.store, d.log)
	cartHandler := handlers.NewCartHandler(d.store, d.log)
	favoritesHandler := handlers.NewFavoritesHandler(d.store, d.log)
	viewHandler := handlers.NewViewHandler(d.store, d.log)
	aiHandler := handlers.NewAIHandler(d.store, d.log)
	adminHandler := handlers.NewAdminHandler(d.store, d.log)
	promoHandler := handlers.NewPromoHandler(d.promo, d.log)

	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(d.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(d.requestTimeout))
	r.Use(metrics.InstrumentHandler)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler.ServeHTTP)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		// Catalog
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/market", productHandler.ListMarket)

		// Cart
		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Patch("/cart/items/{productId}", cartHandler.ChangeQuantity)
		r.Delete("/cart/items/{productId}", cartHandler.RemoveItem)
		r.Post("/cart/checkout", cartHandler.Checkout)

		// Favorites
		r.Get("/favorites", favoritesHandler.List)
		r.Post("/favorites/{productId}", favoritesHandler.Toggle)

		// Screen state
		r.Get("/view", viewHandler.Get)
		r.Put("/view", viewHandler.Navigate)
		r.Post("/view/select/{productId}", viewHandler.Select)
		r.Post("/view/back", viewHandler.Back)

		// AI-backed endpoints are rate limited per client
		r.Group(func(r chi.Router) {
			r.Use(d.aiLimiter.Handler)
			r.Post("/sell", aiHandler.Sell)
			r.Post("/assistant/chat", aiHandler.Chat)
		})
		r.Get("/assistant/history", aiHandler.History)

		// Promo codes
		r.Get("/promo/stats", promoHandler.GetStats)
		r.Get("/promo/{code}", promoHandler.ValidatePromo)

		// Owner panel
		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)
			r.Post("/logout", adminHandler.Logout)
			r.Get("/status", adminHandler.Status)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin(d.store))
				r.Post("/products", adminHandler.AddProduct)
				r.Delete("/products/{productId}", adminHandler.RemoveProduct)
				r.With(d.aiLimiter.Handler).Post("/identify", adminHandler.Identify)
			})
		})
	})

	return r
}
