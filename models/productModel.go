package models

import "time"

type Product struct {
	ID            string    `json:"id" gorm:"primaryKey;size:36"`
	Name          string    `json:"name" binding:"required"`
	Description   string    `json:"description"`
	Price         float64   `json:"price" binding:"required,gt=0"`
	Currency      string    `json:"currency"`
	Unit          string    `json:"unit" binding:"required"`
	Quantity      int       `json:"quantity" binding:"gte=0"`
	Category      string    `json:"category" binding:"required"`
	Location      string    `json:"location" binding:"required"`
	FarmerID      string    `json:"farmerId" gorm:"index;size:64"`
	FarmerName    string    `json:"farmerName"`
	ImageURL      string    `json:"imageUrl"`
	DateAdded     time.Time `json:"dateAdded"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int       `json:"totalRatings"`
	UpdatedAt     time.Time `json:"-"`
}
