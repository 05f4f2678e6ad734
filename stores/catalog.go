package stores

import (
	"time"

	"github.com/Kariqs/farmlink-api/models"
)

// DefaultCatalog is the starter set of listings used when the catalog is empty.
func DefaultCatalog(now time.Time) []models.Product {
	day := 24 * time.Hour
	return []models.Product{
		{
			ID:          "1",
			Name:        "Fresh Tomatoes",
			Description: "Juicy, ripe tomatoes grown organically.",
			Price:       2.50,
			Currency:    DefaultCurrency,
			Unit:        "kg",
			Quantity:    50,
			Category:    "Vegetables",
			Location:    "Green Valley Farms, CA",
			FarmerID:    "farmer1",
			FarmerName:  "John Doe",
			ImageURL:    "https://placehold.co/600x400.png",
			DateAdded:   now.Add(-5 * day),
		},
		{
			ID:          "2",
			Name:        "Crisp Apples",
			Description: "Sweet and crunchy apples, perfect for snacking.",
			Price:       3.00,
			Currency:    DefaultCurrency,
			Unit:        "kg",
			Quantity:    100,
			Category:    "Fruits",
			Location:    "Sunny Orchards, WA",
			FarmerID:    "farmer2",
			FarmerName:  "Jane Smith",
			ImageURL:    "https://placehold.co/600x400.png",
			DateAdded:   now.Add(-4 * day),
		},
		{
			ID:          "3",
			Name:        "Organic Spinach",
			Description: "Freshly picked organic spinach leaves.",
			Price:       4.00,
			Currency:    DefaultCurrency,
			Unit:        "bunch",
			Quantity:    30,
			Category:    "Vegetables",
			Location:    "Green Valley Farms, CA",
			FarmerID:    "farmer1",
			FarmerName:  "John Doe",
			ImageURL:    "https://placehold.co/600x400.png",
			DateAdded:   now.Add(-3 * day),
		},
		{
			ID:          "4",
			Name:        "Brown Rice",
			Description: "Whole grain brown rice, rich in fiber.",
			Price:       1.50,
			Currency:    DefaultCurrency,
			Unit:        "kg",
			Quantity:    200,
			Category:    "Grains",
			Location:    "Heartland Fields, KS",
			FarmerID:    "farmer3",
			FarmerName:  "Robert Brown",
			ImageURL:    "https://placehold.co/600x400.png",
			DateAdded:   now.Add(-2 * day),
		},
		{
			ID:          "5",
			Name:        "Free-range Eggs",
			Description: "A dozen eggs from pasture-raised hens.",
			Price:       5.00,
			Currency:    DefaultCurrency,
			Unit:        "dozen",
			Quantity:    40,
			Category:    "Dairy & Eggs",
			Location:    "Sunny Orchards, WA",
			FarmerID:    "farmer2",
			FarmerName:  "Jane Smith",
			ImageURL:    "https://placehold.co/600x400.png",
			DateAdded:   now.Add(-1 * day),
		},
		{
			ID:          "6",
			Name:        "Raw Honey",
			Description: "Unfiltered wildflower honey.",
			Price:       8.00,
			Currency:    DefaultCurrency,
			Unit:        "jar",
			Quantity:    25,
			Category:    "Pantry",
			Location:    "Heartland Fields, KS",
			FarmerID:    "farmer3",
			FarmerName:  "Robert Brown",
			ImageURL:    "https://placehold.co/600x400.png",
			DateAdded:   now,
		},
	}
}
