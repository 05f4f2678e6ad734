package models

import (
	"time"

	"gorm.io/datatypes"
)

type SaleNotificationItem struct {
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
}

type SaleNotification struct {
	ID           string                                    `json:"id" gorm:"primaryKey;size:36"`
	FarmerID     string                                    `json:"farmerId" gorm:"index;size:64"`
	OrderID      string                                    `json:"orderId" gorm:"index;size:36"`
	CustomerName string                                    `json:"customerName"`
	Items        datatypes.JSONSlice[SaleNotificationItem] `json:"items"`
	TotalAmount  float64                                   `json:"totalAmount"`
	Date         time.Time                                 `json:"date" gorm:"index"`
	Read         bool                                      `json:"read"`
}
