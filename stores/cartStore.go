package stores

import (
	"context"
	"errors"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartStore struct {
	db *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{db: db}
}

// AddToCart puts qty units of a product in the user's cart, merging with an
// existing line. A merged line is capped at the current stock, in which case
// capped is true.
func (s *CartStore) AddToCart(ctx context.Context, userID, productID string, qty int) (line models.CartLine, capped bool, err error) {
	if userID == "" {
		return models.CartLine{}, false, ErrUnauthenticated
	}
	if qty <= 0 {
		return models.CartLine{}, false, ErrInvalidQuantity
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}
		if qty > product.Quantity {
			return &StockError{ProductID: product.ID, ProductName: product.Name, Requested: qty, Available: product.Quantity}
		}

		var item models.CartItem
		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{UserID: userID, ProductID: productID, CartQuantity: qty}
			if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			item.CartQuantity += qty
			if item.CartQuantity > product.Quantity {
				item.CartQuantity = product.Quantity
				capped = true
			}
			if err := tx.Model(&item).Update("cart_quantity", item.CartQuantity).Error; err != nil {
				return err
			}
		}

		line = models.CartLine{Product: product, CartQuantity: item.CartQuantity}
		return nil
	})
	return line, capped, err
}

// UpdateCartItemQuantity sets a line to qty, clamped to [1, stock]. A qty of
// zero or less removes the line. It returns the quantity now in the cart.
func (s *CartStore) UpdateCartItemQuantity(ctx context.Context, userID, productID string, qty int) (quantity int, clamped bool, err error) {
	if userID == "" {
		return 0, false, ErrUnauthenticated
	}
	if qty <= 0 {
		return 0, false, s.RemoveFromCart(ctx, userID, productID)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		err := tx.Preload("Product").Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartItemNotFound
		}
		if err != nil {
			return err
		}
		if item.Product == nil {
			return ErrProductNotFound
		}

		stock := item.Product.Quantity
		if stock < 1 {
			clamped = true
			return tx.Delete(&item).Error
		}
		quantity = qty
		if quantity > stock {
			quantity = stock
			clamped = true
		}
		return tx.Model(&item).Update("cart_quantity", quantity).Error
	})
	if err != nil {
		return 0, false, err
	}
	return quantity, clamped, nil
}

func (s *CartStore) RemoveFromCart(ctx context.Context, userID, productID string) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// GetCart returns the user's lines in the order they were added.
func (s *CartStore) GetCart(ctx context.Context, userID string) (models.Cart, error) {
	if userID == "" {
		return models.Cart{}, ErrUnauthenticated
	}

	var items []models.CartItem
	err := s.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&items).Error
	if err != nil {
		return models.Cart{}, err
	}

	cart := models.Cart{UserID: userID, Items: make([]models.CartLine, 0, len(items))}
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		cart.Items = append(cart.Items, models.CartLine{Product: *item.Product, CartQuantity: item.CartQuantity})
	}
	cart.Total = cartTotal(cart.Items)
	return cart, nil
}

func (s *CartStore) GetCartTotal(ctx context.Context, userID string) (float64, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return 0, err
	}
	return cart.Total, nil
}

func (s *CartStore) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	return clearCart(s.db.WithContext(ctx), userID)
}

func clearCart(tx *gorm.DB, userID string) error {
	return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func cartTotal(lines []models.CartLine) float64 {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(lineTotal(line.Price, line.CartQuantity))
	}
	return money(total)
}
