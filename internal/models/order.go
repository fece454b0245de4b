package models

import "time"

// CartLine is a single product entry in the cart
// Name, price and image are snapshots taken when the product was first added
type CartLine struct {
	ProductID string  `json:"fruitId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// LineTotal returns price multiplied by quantity
func (l CartLine) LineTotal() float64 {
	return l.Price * float64(l.Quantity)
}

// CartSummary is the cart view returned to clients
type CartSummary struct {
	Lines []CartLine `json:"lines"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}

// CheckoutRequest represents an incoming checkout request
type CheckoutRequest struct {
	PromoCode string `json:"promoCode,omitempty"`
}

// Order represents a confirmed order created from the cart
type Order struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	Total     float64    `json:"total"`
	PromoCode string     `json:"promoCode,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
