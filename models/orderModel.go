package models

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              string      `json:"id" gorm:"primaryKey;size:36"`
	UserID          string      `json:"userId" gorm:"index;size:64"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status" gorm:"size:16"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time   `json:"createdAt" gorm:"index"`
	UpdatedAt       time.Time   `json:"-"`
}

// OrderItem is a copy of the product taken at purchase time.
type OrderItem struct {
	ID              uint      `json:"-" gorm:"primaryKey"`
	OrderID         string    `json:"-" gorm:"index;size:36"`
	ProductID       string    `json:"productId" gorm:"index;size:36"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Currency        string    `json:"currency"`
	Unit            string    `json:"unit"`
	Category        string    `json:"category"`
	Location        string    `json:"location"`
	FarmerID        string    `json:"farmerId" gorm:"index;size:64"`
	FarmerName      string    `json:"farmerName"`
	ImageURL        string    `json:"imageUrl"`
	DateAdded       time.Time `json:"dateAdded"`
	OrderedQuantity int       `json:"orderedQuantity"`
	PricePerUnit    float64   `json:"pricePerUnit"`
}
