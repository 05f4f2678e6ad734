package models

import "time"

type Rating struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	ProductID string    `json:"productId" gorm:"uniqueIndex:idx_rating_purchase;size:36"`
	UserID    string    `json:"userId" gorm:"uniqueIndex:idx_rating_purchase;size:64"`
	OrderID   string    `json:"orderId" gorm:"uniqueIndex:idx_rating_purchase;size:36"`
	Rating    int       `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
