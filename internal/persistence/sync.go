// Package persistence mirrors the storefront state into a key-value store,
// one JSON-encoded entry per collection, written through on every change.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/catalog"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/kvstore"
	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

// Store keys
const (
	KeyFavorites = "favorites-list"
	KeyCart      = "cart-contents"
	KeyCatalog   = "catalog-inventory"
	KeyAuth      = "admin-auth-flag"
)

// Snapshot is the full persisted state
type Snapshot struct {
	Catalog       []models.Product
	Cart          []models.CartLine
	Favorites     []string
	Authenticated bool
}

// Synchronizer reads and writes snapshots through a kvstore.Store
type Synchronizer struct {
	store  kvstore.Store
	logger *slog.Logger
}

// NewSynchronizer creates a new synchronizer
func NewSynchronizer(store kvstore.Store, logger *slog.Logger) *Synchronizer {
	return &Synchronizer{
		store:  store,
		logger: logger,
	}
}

// Load reads every key once. Absent, unreadable or malformed entries fall
// back to defaults: seeded catalog, empty cart and favorites, logged out.
func (s *Synchronizer) Load(ctx context.Context) Snapshot {
	snap := Snapshot{
		Catalog:   catalog.Defaults(),
		Cart:      []models.CartLine{},
		Favorites: []string{},
	}

	var products []models.Product
	if s.decode(ctx, KeyCatalog, &products) && products != nil {
		snap.Catalog = products
	}

	var lines []models.CartLine
	if s.decode(ctx, KeyCart, &lines) && lines != nil {
		snap.Cart = lines
	}

	var favs []string
	if s.decode(ctx, KeyFavorites, &favs) && favs != nil {
		snap.Favorites = favs
	}

	if raw, ok := s.read(ctx, KeyAuth); ok {
		authenticated, err := strconv.ParseBool(raw)
		if err != nil {
			s.logger.Warn("ignoring malformed stored value", "key", KeyAuth, "error", err)
		}
		snap.Authenticated = err == nil && authenticated
	}

	return snap
}

// SaveCatalog writes the full catalog
func (s *Synchronizer) SaveCatalog(ctx context.Context, products []models.Product) error {
	if products == nil {
		products = []models.Product{}
	}
	return s.encode(ctx, KeyCatalog, products)
}

// SaveCart writes every cart line
func (s *Synchronizer) SaveCart(ctx context.Context, lines []models.CartLine) error {
	if lines == nil {
		lines = []models.CartLine{}
	}
	return s.encode(ctx, KeyCart, lines)
}

// SaveFavorites writes the favorite ids
func (s *Synchronizer) SaveFavorites(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return s.encode(ctx, KeyFavorites, ids)
}

// SaveAuth writes the "true"/"false" literal
func (s *Synchronizer) SaveAuth(ctx context.Context, authenticated bool) error {
	if err := s.store.Set(ctx, KeyAuth, strconv.FormatBool(authenticated)); err != nil {
		return fmt.Errorf("persist %s: %w", KeyAuth, err)
	}
	return nil
}

func (s *Synchronizer) encode(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func (s *Synchronizer) decode(ctx context.Context, key string, v any) bool {
	raw, ok := s.read(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		s.logger.Warn("ignoring malformed stored value", "key", key, "error", err)
		return false
	}
	return true
}

func (s *Synchronizer) read(ctx context.Context, key string) (string, bool) {
	raw, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read stored value", "key", key, "error", err)
		return "", false
	}
	return raw, ok
}
