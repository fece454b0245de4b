package service

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

var (
	ErrEmptyCart    = errors.New("cart must contain at least one item")
	ErrInvalidPromo = errors.New("promo code is not valid")
)

// Checkout turns the cart into an order and empties the cart
// A promo code is optional; when given it must validate
func (s *Storefront) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.Order, error) {
	// Validate promo before taking the state lock; lookups may be slow
	if req.PromoCode != "" {
		if s.promo == nil || !s.promo.IsValid(ctx, req.PromoCode) {
			return nil, ErrInvalidPromo
		}
	}

	var order *models.Order
	err := s.mutate(ctx, func() ([]string, error) {
		if len(s.cart.Lines()) == 0 {
			return nil, ErrEmptyCart
		}

		order = &models.Order{
			ID:        s.newID(),
			Lines:     s.cart.Lines(),
			Total:     s.cart.Total(),
			PromoCode: req.PromoCode,
			CreatedAt: s.now().UTC(),
		}
		s.cart.Clear()
		return []string{CollectionCart}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created", "order_id", order.ID, "lines", len(order.Lines), "total", order.Total)
	return order, nil
}
