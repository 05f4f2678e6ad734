package stores

import (
	"testing"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type RatingStoreSuite struct {
	storeSuite
}

func TestRatingStore(t *testing.T) {
	suite.Run(t, new(RatingStoreSuite))
}

func (s *RatingStoreSuite) SetupTest() {
	s.storeSuite.SetupTest()
	s.seedProduct("x", "farmerA", 2.50, 20)
	s.seedProduct("y", "farmerB", 3.00, 20)
}

func (s *RatingStoreSuite) rate(customerID, orderID, productID string, score int) (models.Product, error) {
	return s.ratings.SubmitRating(s.ctx, s.customer(customerID), RatingInput{
		ProductID: productID,
		OrderID:   orderID,
		Rating:    score,
	})
}

func (s *RatingStoreSuite) TestSubmitRatingUpdatesAggregates() {
	o1 := s.placeOrder("c1", "x")
	o2 := s.placeOrder("c2", "x")
	o3 := s.placeOrder("c3", "x")

	product, err := s.rate("c1", o1.ID, "x", 4)
	s.Require().NoError(err)
	s.Equal(4.0, product.AverageRating)
	s.Equal(1, product.TotalRatings)

	product, err = s.rate("c2", o2.ID, "x", 5)
	s.Require().NoError(err)
	s.Equal(4.5, product.AverageRating)
	s.Equal(2, product.TotalRatings)

	product, err = s.rate("c3", o3.ID, "x", 4)
	s.Require().NoError(err)
	s.Equal(4.3, product.AverageRating)
	s.Equal(3, product.TotalRatings)

	stored, err := s.products.GetProductByID(s.ctx, "x")
	s.Require().NoError(err)
	s.Equal(4.3, stored.AverageRating)
	s.Equal(3, stored.TotalRatings)
}

func (s *RatingStoreSuite) TestSubmitRatingReplacesEarlierRating() {
	order := s.placeOrder("c1", "x")

	_, err := s.ratings.SubmitRating(s.ctx, s.customer("c1"), RatingInput{ProductID: "x", OrderID: order.ID, Rating: 2, Review: "soft"})
	s.Require().NoError(err)
	s.tick()
	product, err := s.ratings.SubmitRating(s.ctx, s.customer("c1"), RatingInput{ProductID: "x", OrderID: order.ID, Rating: 5, Review: "  great after all "})
	s.Require().NoError(err)

	s.Equal(5.0, product.AverageRating)
	s.Equal(1, product.TotalRatings)

	ratings, err := s.ratings.ListForOrder(s.ctx, "c1", order.ID)
	s.Require().NoError(err)
	s.Require().Len(ratings, 1)
	s.Equal(5, ratings[0].Rating)
	s.Equal("great after all", ratings[0].Review)
	s.True(ratings[0].CreatedAt.Equal(s.now))
}

func (s *RatingStoreSuite) TestSameProductInSeparateOrdersCountsTwice() {
	o1 := s.placeOrder("c1", "x")
	o2 := s.placeOrder("c1", "x")

	_, err := s.rate("c1", o1.ID, "x", 3)
	s.Require().NoError(err)
	product, err := s.rate("c1", o2.ID, "x", 4)
	s.Require().NoError(err)
	s.Equal(3.5, product.AverageRating)
	s.Equal(2, product.TotalRatings)

	ratings, err := s.ratings.ListForProduct(s.ctx, "x")
	s.Require().NoError(err)
	s.Len(ratings, 2)
}

func (s *RatingStoreSuite) TestSubmitRatingRejections() {
	order := s.placeOrder("c1", "x")

	_, err := s.ratings.SubmitRating(s.ctx, Actor{}, RatingInput{ProductID: "x", OrderID: order.ID, Rating: 4})
	s.ErrorIs(err, ErrUnauthenticated)

	for _, score := range []int{0, 6, -1} {
		_, err = s.rate("c1", order.ID, "x", score)
		s.ErrorIs(err, ErrInvalidRating, "score %d", score)
	}

	_, err = s.rate("c2", order.ID, "x", 4)
	s.ErrorIs(err, ErrOrderNotFound, "someone else's order")

	_, err = s.rate("c1", "missing", "x", 4)
	s.ErrorIs(err, ErrOrderNotFound)

	_, err = s.rate("c1", order.ID, "y", 4)
	s.ErrorIs(err, ErrProductNotInOrder)

	_, err = s.orders.UpdateOrderStatus(s.ctx, s.farmer("farmerA"), order.ID, models.OrderShipped)
	s.Require().NoError(err)
	_, err = s.rate("c1", order.ID, "x", 4)
	s.ErrorIs(err, ErrOrderNotDelivered)

	stored, err := s.products.GetProductByID(s.ctx, "x")
	s.Require().NoError(err)
	s.Zero(stored.TotalRatings)
	s.Zero(stored.AverageRating)
}

func TestAverageRating(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"no ratings", nil, 0},
		{"single", []int{3}, 3},
		{"half", []int{4, 5}, 4.5},
		{"rounds down", []int{4, 4, 5}, 4.3},
		{"rounds up", []int{5, 5, 4}, 4.7},
		{"all ones", []int{1, 1, 1, 1}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, averageRating(tt.scores))
		})
	}
}
