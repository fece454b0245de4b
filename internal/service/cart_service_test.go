package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/kvstore"
)

func TestStorefront_AddToCart(t *testing.T) {
	ctx := context.Background()
	s := newTestStorefront(t, kvstore.NewMemory(), nil)

	tests := []struct {
		name      string
		productID string
		wantQty   int
		wantErr   error
	}{
		{name: "first add", productID: "1", wantQty: 1},
		{name: "second add increments", productID: "1", wantQty: 2},
		{name: "other product", productID: "3", wantQty: 1},
		{name: "unknown product", productID: "999", wantErr: ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := s.AddToCart(ctx, tt.productID)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddToCart() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddToCart() unexpected error = %v", err)
			}
			if line.Quantity != tt.wantQty {
				t.Errorf("AddToCart() quantity = %d, want %d", line.Quantity, tt.wantQty)
			}
		})
	}

	summary := s.Cart()
	if len(summary.Lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(summary.Lines))
	}
	if summary.Count != 3 {
		t.Errorf("expected count 3, got %d", summary.Count)
	}
	if summary.Total != 450 {
		t.Errorf("expected total 450, got %v", summary.Total)
	}
}

func TestStorefront_ChangeQuantity(t *testing.T) {
	ctx := context.Background()
	s := newTestStorefront(t, kvstore.NewMemory(), nil)
	if _, err := s.AddToCart(ctx, "1"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	tests := []struct {
		name    string
		id      string
		delta   int
		wantQty int
		wantErr error
	}{
		{name: "increment", id: "1", delta: 1, wantQty: 2},
		{name: "decrement", id: "1", delta: -1, wantQty: 1},
		{name: "floors at one", id: "1", delta: -5, wantQty: 1},
		{name: "missing line", id: "2", delta: 1, wantErr: ErrLineNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := s.ChangeQuantity(ctx, tt.id, tt.delta)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ChangeQuantity() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ChangeQuantity() unexpected error = %v", err)
			}
			if line.Quantity != tt.wantQty {
				t.Errorf("ChangeQuantity() quantity = %d, want %d", line.Quantity, tt.wantQty)
			}
		})
	}
}

func TestStorefront_RemoveFromCart(t *testing.T) {
	ctx := context.Background()
	s := newTestStorefront(t, kvstore.NewMemory(), nil)
	if _, err := s.AddToCart(ctx, "1"); err != nil {
		t.Fatalf("AddToCart() error = %v", err)
	}

	s.RemoveFromCart(ctx, "missing")
	if s.Cart().Count != 1 {
		t.Errorf("removing an absent line should not change the cart")
	}

	s.RemoveFromCart(ctx, "1")
	if s.Cart().Count != 0 {
		t.Errorf("expected empty cart")
	}
}
