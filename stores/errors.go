package stores

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrUnauthenticated      = errors.New("please login")
	ErrForbidden            = errors.New("not allowed")
	ErrProductNotFound      = errors.New("product not found")
	ErrNegativeStock        = errors.New("cannot reduce quantity below zero")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidQuantity      = errors.New("quantity must be greater than zero")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrOrderNotDelivered    = errors.New("only delivered orders can be rated")
	ErrProductNotInOrder    = errors.New("product is not part of this order")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrUserExists           = errors.New("user with this email already exists")
	ErrUserNotFound         = errors.New("user not found")
)

// StockError reports a line that asks for more units than the product has.
type StockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, only %d unit(s) available", e.ProductName, e.Requested, e.Available)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
