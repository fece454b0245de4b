// Package view tracks which screen is active and which product is selected.
package view

import (
	"errors"
	"fmt"
)

// Name identifies a screen
type Name string

const (
	Home      Name = "home"
	Details   Name = "details"
	Identify  Name = "identify"
	Assistant Name = "assistant"
	Favorites Name = "favorites"
	Market    Name = "market"
	Admin     Name = "admin"
)

var ErrUnknownView = errors.New("unknown view")

// Parse validates a view name
func Parse(s string) (Name, error) {
	switch n := Name(s); n {
	case Home, Details, Identify, Assistant, Favorites, Market, Admin:
		return n, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// State is the current screen plus the product shown on the details screen
type State struct {
	Current  Name   `json:"view"`
	Selected string `json:"selectedProductId,omitempty"`
	// selectedForSale decides where Back lands
	selectedForSale bool
}

// NewState starts on the home screen
func NewState() State {
	return State{Current: Home}
}

// Navigate switches screens and keeps the selection
func (s *State) Navigate(to Name) {
	s.Current = to
}

// Select opens the details screen for a product
func (s *State) Select(productID string, forSale bool) {
	s.Current = Details
	s.Selected = productID
	s.selectedForSale = forSale
}

// Back leaves the details screen: to the market for products on sale, home otherwise
func (s *State) Back() {
	if s.Current != Details {
		return
	}
	if s.selectedForSale {
		s.Current = Market
	} else {
		s.Current = Home
	}
}

// Forget clears the selection when productID is the selected product.
// A details screen without a product falls back to home.
func (s *State) Forget(productID string) {
	if s.Selected != productID {
		return
	}
	s.Selected = ""
	s.selectedForSale = false
	if s.Current == Details {
		s.Current = Home
	}
}
