package service

import (
	"context"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

// Cart returns lines, item count and total
func (s *Storefront) Cart() models.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Summary()
}

// AddToCart adds one unit of a catalog product, snapshotting its name, price and image
func (s *Storefront) AddToCart(ctx context.Context, productID string) (models.CartLine, error) {
	var line models.CartLine
	err := s.mutate(ctx, func() ([]string, error) {
		p, err := s.catalog.Get(productID)
		if err != nil {
			return nil, err
		}
		line = s.cart.Add(p)
		return []string{CollectionCart}, nil
	})
	return line, err
}

// ChangeQuantity applies delta to a line; the quantity never drops below 1
func (s *Storefront) ChangeQuantity(ctx context.Context, productID string, delta int) (models.CartLine, error) {
	var line models.CartLine
	err := s.mutate(ctx, func() ([]string, error) {
		var ok bool
		line, ok = s.cart.ChangeQuantity(productID, delta)
		if !ok {
			return nil, ErrLineNotFound
		}
		return []string{CollectionCart}, nil
	})
	return line, err
}

// RemoveFromCart deletes a line; removing an absent line is a no-op
func (s *Storefront) RemoveFromCart(ctx context.Context, productID string) {
	_ = s.mutate(ctx, func() ([]string, error) {
		if !s.cart.Remove(productID) {
			return nil, nil
		}
		return []string{CollectionCart}, nil
	})
}
