package stores

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRatingStore(db *gorm.DB) *RatingStore {
	return &RatingStore{db: db, now: clock}
}

type RatingInput struct {
	ProductID string `json:"productId" binding:"required"`
	OrderID   string `json:"orderId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Review    string `json:"review"`
}

// SubmitRating records the actor's rating of a product bought in a delivered
// order. A second rating for the same purchase replaces the first. The
// product's averageRating and totalRatings are recomputed in the same
// transaction and the updated product is returned.
func (s *RatingStore) SubmitRating(ctx context.Context, actor Actor, input RatingInput) (models.Product, error) {
	if actor.ID == "" {
		return models.Product{}, ErrUnauthenticated
	}
	if input.Rating < 1 || input.Rating > 5 {
		return models.Product{}, ErrInvalidRating
	}

	var product models.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("id = ? AND user_id = ?", input.OrderID, actor.ID).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.OrderDelivered {
			return ErrOrderNotDelivered
		}

		var lines int64
		err = tx.Model(&models.OrderItem{}).
			Where("order_id = ? AND product_id = ?", order.ID, input.ProductID).
			Count(&lines).Error
		if err != nil {
			return err
		}
		if lines == 0 {
			return ErrProductNotInOrder
		}

		rating := models.Rating{
			ProductID: input.ProductID,
			UserID:    actor.ID,
			OrderID:   order.ID,
			Rating:    input.Rating,
			Review:    strings.TrimSpace(input.Review),
			CreatedAt: s.now(),
		}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}, {Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "created_at"}),
		}).Create(&rating).Error
		if err != nil {
			return err
		}

		product, err = refreshAggregates(tx, input.ProductID)
		return err
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func refreshAggregates(tx *gorm.DB, productID string) (models.Product, error) {
	var scores []int
	if err := tx.Model(&models.Rating{}).Where("product_id = ?", productID).Pluck("rating", &scores).Error; err != nil {
		return models.Product{}, err
	}

	var product models.Product
	if err := tx.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}

	product.AverageRating = averageRating(scores)
	product.TotalRatings = len(scores)
	err := tx.Model(&product).Updates(map[string]any{
		"average_rating": product.AverageRating,
		"total_ratings":  product.TotalRatings,
	}).Error
	return product, err
}

// averageRating is the mean rounded to one decimal place.
func averageRating(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := decimal.Zero
	for _, score := range scores {
		sum = sum.Add(decimal.NewFromInt(int64(score)))
	}
	return sum.DivRound(decimal.NewFromInt(int64(len(scores))), 8).Round(1).InexactFloat64()
}

// ListForProduct returns a product's ratings, newest first.
func (s *RatingStore) ListForProduct(ctx context.Context, productID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&ratings).Error
	return ratings, err
}

// ListForOrder returns the ratings the user left on one order.
func (s *RatingStore) ListForOrder(ctx context.Context, userID, orderID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := s.db.WithContext(ctx).Where("user_id = ? AND order_id = ?", userID, orderID).Find(&ratings).Error
	return ratings, err
}
