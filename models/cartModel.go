package models

import "time"

type CartItem struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       string `gorm:"uniqueIndex:idx_cart_user_product;size:64"`
	ProductID    string `gorm:"uniqueIndex:idx_cart_user_product;size:36"`
	CartQuantity int
	Product      *Product `gorm:"foreignKey:ProductID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CartLine is the product as the customer sees it in their cart.
type CartLine struct {
	Product
	CartQuantity int `json:"cartQuantity"`
}

type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartLine `json:"items"`
	Total  float64    `json:"total"`
}
