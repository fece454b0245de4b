package models

// Nutrients holds the per-100g nutrition facts of a product
type Nutrients struct {
	Calories  float64 `json:"calories"`
	Sugar     float64 `json:"sugar"`
	Fiber     float64 `json:"fiber"`
	VitaminC  float64 `json:"vitaminC"`
	Potassium float64 `json:"potassium"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
}

// Product represents a piece of produce in the catalog
// Price is per kg; a nil price is treated as zero when added to the cart
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ScientificName string    `json:"scientificName"`
	Description    string    `json:"description"`
	Origin         string    `json:"origin"`
	Season         string    `json:"season"`
	Benefits       []string  `json:"benefits"`
	Nutrients      Nutrients `json:"nutrients"`
	Color          string    `json:"color"`
	Image          string    `json:"image"`
	Price          *float64  `json:"price,omitempty"`
	IsForSale      bool      `json:"isForSale,omitempty"`
	SellerName     string    `json:"sellerName,omitempty"`
}

// PriceOrZero returns the product price, or 0 when none is set
func (p Product) PriceOrZero() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// PricePtr is a small helper for building products with a price
func PricePtr(v float64) *float64 {
	return &v
}

// ProductDraft is the best-effort product description returned by the AI gateway
// Every field is optional; callers apply their own defaults
type ProductDraft struct {
	Name           string     `json:"name,omitempty"`
	ScientificName string     `json:"scientificName,omitempty"`
	Description    string     `json:"description,omitempty"`
	Origin         string     `json:"origin,omitempty"`
	Season         string     `json:"season,omitempty"`
	Benefits       []string   `json:"benefits,omitempty"`
	Nutrients      *Nutrients `json:"nutrients,omitempty"`
}

// ProductForm mirrors the owner's "add product" form
type ProductForm struct {
	Name        string    `json:"name"`
	Price       string    `json:"price"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Nutrients   Nutrients `json:"nutrients"`
}
