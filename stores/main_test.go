package stores

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Kariqs/farmlink-api/initializers"
	"github.com/Kariqs/farmlink-api/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// setupTestDB opens a private in-memory sqlite database with every table migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := initializers.ConnectToDB(initializers.Config{
		DBDriver: "sqlite",
		DBURL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	})
	require.NoError(t, err)
	require.NoError(t, initializers.SyncDatabase(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type storeSuite struct {
	suite.Suite
	ctx context.Context
	db  *gorm.DB
	now time.Time

	products      *ProductStore
	carts         *CartStore
	orders        *OrderStore
	notifications *NotificationStore
	ratings       *RatingStore
	users         *UserStore
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = setupTestDB(s.T())
	s.now = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	s.products = NewProductStore(s.db)
	s.products.now = s.clock
	s.carts = NewCartStore(s.db)
	s.orders = NewOrderStore(s.db)
	s.orders.now = s.clock
	s.notifications = NewNotificationStore(s.db)
	s.ratings = NewRatingStore(s.db)
	s.ratings.now = s.clock
	s.users = NewUserStore(s.db)
}

func (s *storeSuite) clock() time.Time {
	return s.now
}

func (s *storeSuite) tick() {
	s.now = s.now.Add(time.Minute)
}

func (s *storeSuite) seedProduct(id, farmerID string, price float64, quantity int) models.Product {
	product := models.Product{
		ID:         id,
		Name:       "Product " + id,
		Price:      price,
		Currency:   DefaultCurrency,
		Unit:       "kg",
		Quantity:   quantity,
		Category:   "Vegetables",
		Location:   "Nakuru",
		FarmerID:   farmerID,
		FarmerName: "Farmer " + farmerID,
		DateAdded:  s.now,
	}
	s.Require().NoError(s.db.Create(&product).Error)
	return product
}

func (s *storeSuite) stockOf(id string) int {
	product, err := s.products.GetProductByID(s.ctx, id)
	s.Require().NoError(err)
	return product.Quantity
}

func (s *storeSuite) customer(id string) Actor {
	return Actor{ID: id, Name: "Customer " + id, Role: models.RoleCustomer}
}

func (s *storeSuite) farmer(id string) Actor {
	return Actor{ID: id, Name: "Farmer " + id, Role: models.RoleFarmer}
}

// placeOrder fills the customer's cart with one unit of each product and checks out.
func (s *storeSuite) placeOrder(customerID string, productIDs ...string) models.Order {
	for _, id := range productIDs {
		_, _, err := s.carts.AddToCart(s.ctx, customerID, id, 1)
		s.Require().NoError(err)
	}
	result, err := s.orders.Checkout(s.ctx, s.customer(customerID), "")
	s.Require().NoError(err)
	s.tick()
	return result.Order
}
