package stores

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db, now: clock}
}

type CheckoutResult struct {
	Order         models.Order              `json:"order"`
	Notifications []models.SaleNotification `json:"notifications"`
}

// farmerSale accumulates one farmer's share of an order.
type farmerSale struct {
	farmerID string
	items    []models.SaleNotificationItem
	total    decimal.Decimal
}

type farmerSales struct {
	index map[string]int
	sales []*farmerSale
}

func (f *farmerSales) add(product models.Product, quantity int, amount decimal.Decimal) {
	if f.index == nil {
		f.index = make(map[string]int)
	}
	i, ok := f.index[product.FarmerID]
	if !ok {
		i = len(f.sales)
		f.index[product.FarmerID] = i
		f.sales = append(f.sales, &farmerSale{farmerID: product.FarmerID, total: decimal.Zero})
	}
	sale := f.sales[i]
	sale.items = append(sale.items, models.SaleNotificationItem{
		ProductName:  product.Name,
		Quantity:     quantity,
		PricePerUnit: product.Price,
	})
	sale.total = sale.total.Add(amount)
}

func (f *farmerSales) notifications(orderID, customerName string, date time.Time) []models.SaleNotification {
	out := make([]models.SaleNotification, 0, len(f.sales))
	for _, sale := range f.sales {
		out = append(out, models.SaleNotification{
			ID:           uuid.NewString(),
			FarmerID:     sale.farmerID,
			OrderID:      orderID,
			CustomerName: customerName,
			Items:        sale.items,
			TotalAmount:  money(sale.total),
			Date:         date,
		})
	}
	return out
}

func snapshotItem(product models.Product, quantity int) models.OrderItem {
	return models.OrderItem{
		ProductID:       product.ID,
		Name:            product.Name,
		Description:     product.Description,
		Currency:        product.Currency,
		Unit:            product.Unit,
		Category:        product.Category,
		Location:        product.Location,
		FarmerID:        product.FarmerID,
		FarmerName:      product.FarmerName,
		ImageURL:        product.ImageURL,
		DateAdded:       product.DateAdded,
		OrderedQuantity: quantity,
		PricePerUnit:    product.Price,
	}
}

// Checkout turns the actor's cart into an order. Stock for every line is
// reserved, one sale notification is written per farmer, the order is stored
// and the cart is emptied, all in one transaction: if any line cannot be
// reserved nothing is written.
func (s *OrderStore) Checkout(ctx context.Context, actor Actor, shippingAddress string) (CheckoutResult, error) {
	if actor.ID == "" {
		return CheckoutResult{}, ErrUnauthenticated
	}
	customerName := actor.Name
	if customerName == "" {
		customerName = DefaultCustomerName
	}

	var result CheckoutResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []models.CartItem
		if err := tx.Where("user_id = ?", actor.ID).Order("created_at, id").Find(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		now := s.now()
		order := models.Order{
			ID:              uuid.NewString(),
			UserID:          actor.ID,
			Status:          models.OrderDelivered,
			ShippingAddress: shippingAddress,
			CreatedAt:       now,
		}
		subtotal := decimal.Zero
		var sales farmerSales

		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
				}
				return err
			}
			if err := adjustQuantity(tx, product.ID, -line.CartQuantity); err != nil {
				if errors.Is(err, ErrNegativeStock) {
					return &StockError{
						ProductID:   product.ID,
						ProductName: product.Name,
						Requested:   line.CartQuantity,
						Available:   product.Quantity,
					}
				}
				return err
			}

			amount := lineTotal(product.Price, line.CartQuantity)
			subtotal = subtotal.Add(amount)
			order.Items = append(order.Items, snapshotItem(product, line.CartQuantity))
			sales.add(product, line.CartQuantity, amount)
		}

		notifications := sales.notifications(order.ID, customerName, now)
		if err := tx.Create(&notifications).Error; err != nil {
			return err
		}

		order.TotalAmount = withTax(subtotal)
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := clearCart(tx, actor.ID); err != nil {
			return err
		}

		result = CheckoutResult{Order: order, Notifications: notifications}
		return nil
	})
	if err != nil {
		return CheckoutResult{}, err
	}
	return result, nil
}

// ListOrders returns the user's orders, newest first.
func (s *OrderStore) ListOrders(ctx context.Context, userID string, page Page) ([]models.Order, int64, error) {
	page = page.Normalize()

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.offset()).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, count, nil
}

func (s *OrderStore) GetOrder(ctx context.Context, userID, orderID string) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	return order, err
}

// UpdateOrderStatus is open to any farmer selling at least one line of the order.
func (s *OrderStore) UpdateOrderStatus(ctx context.Context, actor Actor, orderID string, status models.OrderStatus) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, ErrInvalidStatus
	}
	if !actor.IsFarmer() {
		return models.Order{}, ErrForbidden
	}

	var order models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		owns := false
		for _, item := range order.Items {
			if item.FarmerID == actor.ID {
				owns = true
				break
			}
		}
		if !owns {
			return fmt.Errorf("%w: order has none of your products", ErrForbidden)
		}

		order.Status = status
		return tx.Model(&order).Update("status", status).Error
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}
