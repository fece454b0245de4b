package catalog

import "github.com/Lixing-Zhang/kart-challenge/fruit-market/internal/models"

const (
	seedPrice  = 150.00
	seedSeller = "Original Farm"
)

// FallbackNutrients is used when an identified product comes back without nutrients
var FallbackNutrients = models.Nutrients{
	Calories:  52,
	Sugar:     10,
	Fiber:     2.4,
	VitaminC:  14,
	Potassium: 107,
	Protein:   0.3,
	Carbs:     14,
}

// Defaults returns the first-run inventory
func Defaults() []models.Product {
	return []models.Product{
		{
			ID:             "1",
			Name:           "Apple",
			ScientificName: "Malus domestica",
			Description:    "A sweet, pomaceous fruit from the apple tree. High in fiber and Vitamin C.",
			Origin:         "Central Asia",
			Season:         "Autumn",
			Benefits:       []string{"Supports heart health", "Good for weight loss", "High in antioxidants"},
			Nutrients:      FallbackNutrients,
			Color:          "bg-red-500",
			Image:          "https://images.unsplash.com/photo-1560806887-1e4cd0b6cbd6?auto=format&fit=crop&w=800&q=80",
			Price:          models.PricePtr(seedPrice),
			IsForSale:      true,
			SellerName:     seedSeller,
		},
		{
			ID:             "2",
			Name:           "Mango",
			ScientificName: "Mangifera indica",
			Description:    `Known as the "king of fruits," mangoes are juicy and tropical with a distinct sweetness.`,
			Origin:         "South Asia",
			Season:         "Summer",
			Benefits:       []string{"Boosts immunity", "Improves digestion", "Supports eye health"},
			Nutrients: models.Nutrients{
				Calories:  60,
				Sugar:     14,
				Fiber:     1.6,
				VitaminC:  60,
				Potassium: 168,
				Protein:   0.8,
				Carbs:     15,
			},
			Color:      "bg-orange-400",
			Image:      "https://images.unsplash.com/photo-1553279768-865429fa0078?auto=format&fit=crop&w=800&q=80",
			Price:      models.PricePtr(seedPrice),
			IsForSale:  true,
			SellerName: seedSeller,
		},
		{
			ID:             "3",
			Name:           "Avocado",
			ScientificName: "Persea americana",
			Description:    "A creamy, high-fat fruit often treated as a vegetable. Packed with healthy monounsaturated fats.",
			Origin:         "Mexico/Central America",
			Season:         "Year-round",
			Benefits:       []string{"Heart healthy fats", "High in potassium", "Great for skin"},
			Nutrients: models.Nutrients{
				Calories:  160,
				Sugar:     0.7,
				Fiber:     7,
				VitaminC:  17,
				Potassium: 485,
				Protein:   2,
				Carbs:     8.5,
			},
			Color:      "bg-green-600",
			Image:      "https://images.unsplash.com/photo-1523049673857-eb18f1d7b578?auto=format&fit=crop&w=800&q=80",
			Price:      models.PricePtr(seedPrice),
			IsForSale:  true,
			SellerName: seedSeller,
		},
	}
}
