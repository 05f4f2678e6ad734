package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db, now: clock}
}

type ProductFilter struct {
	Search   string
	Category string
	FarmerID string
	Page
}

func validateProduct(p models.Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return validationError("name is required")
	case p.Price <= 0:
		return validationError("price must be greater than zero")
	case strings.TrimSpace(p.Unit) == "":
		return validationError("unit is required")
	case p.Quantity < 0:
		return validationError("quantity cannot be negative")
	case strings.TrimSpace(p.Category) == "":
		return validationError("category is required")
	case strings.TrimSpace(p.Location) == "":
		return validationError("location is required")
	}
	return nil
}

// AddProduct lists a new product owned by the calling farmer.
func (s *ProductStore) AddProduct(ctx context.Context, actor Actor, input models.Product) (models.Product, error) {
	if !actor.IsFarmer() {
		return models.Product{}, fmt.Errorf("%w: only farmers can add products", ErrForbidden)
	}
	if err := validateProduct(input); err != nil {
		return models.Product{}, err
	}

	product := input
	product.ID = uuid.NewString()
	product.FarmerID = actor.ID
	product.FarmerName = actor.Name
	if product.FarmerName == "" {
		product.FarmerName = DefaultFarmerName
	}
	if product.Currency == "" {
		product.Currency = DefaultCurrency
	}
	if product.ImageURL == "" {
		product.ImageURL = PlaceholderImageURL
	}
	product.DateAdded = s.now()
	product.AverageRating = 0
	product.TotalRatings = 0

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdateProduct overwrites the editable fields of a product the actor owns.
// Identity, ownership, dateAdded and the rating aggregates are kept.
func (s *ProductStore) UpdateProduct(ctx context.Context, actor Actor, id string, input models.Product) (models.Product, error) {
	existing, err := s.GetProductByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if !actor.IsFarmer() || existing.FarmerID != actor.ID {
		return models.Product{}, fmt.Errorf("%w: you can only edit your own products", ErrForbidden)
	}
	if err := validateProduct(input); err != nil {
		return models.Product{}, err
	}

	updated := input
	updated.ID = existing.ID
	updated.FarmerID = existing.FarmerID
	updated.FarmerName = existing.FarmerName
	updated.DateAdded = existing.DateAdded
	updated.AverageRating = existing.AverageRating
	updated.TotalRatings = existing.TotalRatings
	if updated.Currency == "" {
		updated.Currency = existing.Currency
	}
	if updated.ImageURL == "" {
		updated.ImageURL = existing.ImageURL
	}

	if err := s.db.WithContext(ctx).Save(&updated).Error; err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// UpdateProductQuantity applies delta to the stock of a product. The stock
// never drops below zero; on failure nothing is written.
func (s *ProductStore) UpdateProductQuantity(ctx context.Context, id string, delta int) (models.Product, error) {
	if err := adjustQuantity(s.db.WithContext(ctx), id, delta); err != nil {
		return models.Product{}, err
	}
	return s.GetProductByID(ctx, id)
}

// RestockProduct is UpdateProductQuantity limited to the owning farmer.
func (s *ProductStore) RestockProduct(ctx context.Context, actor Actor, id string, delta int) (models.Product, error) {
	existing, err := s.GetProductByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if !actor.IsFarmer() || existing.FarmerID != actor.ID {
		return models.Product{}, fmt.Errorf("%w: you can only change stock of your own products", ErrForbidden)
	}
	return s.UpdateProductQuantity(ctx, id, delta)
}

func adjustQuantity(tx *gorm.DB, id string, delta int) error {
	result := tx.Model(&models.Product{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := tx.Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProductNotFound
	}
	return ErrNegativeStock
}

func (s *ProductStore) GetProductByID(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	return product, err
}

// ListProducts returns one page of the catalog, newest first, and the total
// number of matching products.
func (s *ProductStore) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, int64, error) {
	page := filter.Page.Normalize()

	query := s.db.WithContext(ctx).Model(&models.Product{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.FarmerID != "" {
		query = query.Where("farmer_id = ?", filter.FarmerID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := query.Order("date_added DESC").Limit(page.Limit).Offset(page.offset()).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (s *ProductStore) SetImageURL(ctx context.Context, actor Actor, id, url string) (models.Product, error) {
	existing, err := s.GetProductByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if !actor.IsFarmer() || existing.FarmerID != actor.ID {
		return models.Product{}, fmt.Errorf("%w: you can only change images of your own products", ErrForbidden)
	}
	if err := s.db.WithContext(ctx).Model(&existing).Update("image_url", url).Error; err != nil {
		return models.Product{}, err
	}
	existing.ImageURL = url
	return existing, nil
}

// SeedDefaults fills an empty catalog with the starter products and reports
// how many were inserted.
func (s *ProductStore) SeedDefaults(ctx context.Context) (int, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	catalog := DefaultCatalog(s.now())
	if err := s.db.WithContext(ctx).Create(&catalog).Error; err != nil {
		return 0, err
	}
	return len(catalog), nil
}
