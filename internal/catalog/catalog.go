// Package catalog holds the ordered product inventory, newest first.
package catalog

import (
	"errors"
	"iter"
	"slices"

	"github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("product id already exists")
	ErrMissingID        = errors.New("product id is required")
)

// Catalog is not safe for concurrent use; the storefront controller serializes access
type Catalog struct {
	products []models.Product
}

// New creates a catalog holding products in the given order
func New(products []models.Product) *Catalog {
	c := &Catalog{products: make([]models.Product, len(products))}
	copy(c.products, products)
	return c
}

// Seeded creates a catalog populated with the default inventory
func Seeded() *Catalog {
	return New(Defaults())
}

// InsertFront prepends product
// Ids must be unique; a repeated id is rejected with ErrDuplicateProduct
func (c *Catalog) InsertFront(product models.Product) error {
	if product.ID == "" {
		return ErrMissingID
	}
	if c.index(product.ID) >= 0 {
		return ErrDuplicateProduct
	}
	c.products = slices.Insert(c.products, 0, product)
	return nil
}

// Remove deletes every entry with productID and reports whether any existed
func (c *Catalog) Remove(productID string) bool {
	before := len(c.products)
	c.products = slices.DeleteFunc(c.products, func(p models.Product) bool {
		return p.ID == productID
	})
	return len(c.products) != before
}

// Get returns the product with productID
func (c *Catalog) Get(productID string) (models.Product, error) {
	i := c.index(productID)
	if i < 0 {
		return models.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// All returns a copy of every product, newest first
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// ForSale yields products listed for sale. The sequence reads the catalog
// each time it is ranged over, so it reflects later mutations.
func (c *Catalog) ForSale() iter.Seq[models.Product] {
	return c.Filter(func(p models.Product) bool { return p.IsForSale })
}

// Filter yields products matching keep
func (c *Catalog) Filter(keep func(models.Product) bool) iter.Seq[models.Product] {
	return func(yield func(models.Product) bool) {
		for _, p := range c.products {
			if !keep(p) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

func (c *Catalog) index(productID string) int {
	return slices.IndexFunc(c.products, func(p models.Product) bool {
		return p.ID == productID
	})
}
