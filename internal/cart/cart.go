// Package cart holds the visitor's basket: an ordered list of line items with
// at most one line per product and a quantity that never drops below one.
package cart

import (
	"slices"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

// Cart is not safe for concurrent use; the storefront controller serializes access
type Cart struct {
	lines []models.CartLine
}

// New creates a cart from previously persisted lines
// Lines violating the invariants (quantity < 1, repeated product) are repaired
func New(lines []models.CartLine) *Cart {
	c := &Cart{}
	for _, line := range lines {
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		if i := c.index(line.ProductID); i >= 0 {
			c.lines[i].Quantity += line.Quantity
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// Add increments the line for product, creating it with quantity 1 if needed
func (c *Cart) Add(product models.Product) models.CartLine {
	if i := c.index(product.ID); i >= 0 {
		c.lines[i].Quantity++
		return c.lines[i]
	}

	line := models.CartLine{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.PriceOrZero(),
		Quantity:  1,
		Image:     product.Image,
	}
	c.lines = append(c.lines, line)
	return line
}

// ChangeQuantity applies delta with a floor of 1; it never removes the line
// Returns false when no line exists for productID
func (c *Cart) ChangeQuantity(productID string, delta int) (models.CartLine, bool) {
	i := c.index(productID)
	if i < 0 {
		return models.CartLine{}, false
	}
	c.lines[i].Quantity = max(1, c.lines[i].Quantity+delta)
	return c.lines[i], true
}

// Remove deletes the line for productID; absent lines are a no-op
func (c *Cart) Remove(productID string) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.lines = nil
}

// Total is the sum of price times quantity across all lines
func (c *Cart) Total() float64 {
	total := 0.0
	for _, line := range c.lines {
		total += line.LineTotal()
	}
	return total
}

// Count is the sum of quantities
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Lines returns a copy of the lines in insertion order
func (c *Cart) Lines() []models.CartLine {
	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID
func (c *Cart) Line(productID string) (models.CartLine, bool) {
	i := c.index(productID)
	if i < 0 {
		return models.CartLine{}, false
	}
	return c.lines[i], true
}

// Summary bundles lines, count and total
func (c *Cart) Summary() models.CartSummary {
	return models.CartSummary{
		Lines: c.Lines(),
		Count: c.Count(),
		Total: c.Total(),
	}
}

func (c *Cart) index(productID string) int {
	return slices.IndexFunc(c.lines, func(l models.CartLine) bool {
		return l.ProductID == productID
	})
}
