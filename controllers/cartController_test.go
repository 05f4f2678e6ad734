package controllers_test

import (
	"net/http"
	"testing"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartEndpoints(t *testing.T) {
	h := newHarness(t)
	_, farmer := h.account(models.RoleFarmer, "Farmer A")
	_, customer := h.account(models.RoleCustomer, "Mary Customer")
	product := h.createProduct(farmer, "Onions", 0.90, 4)

	w := h.do(http.MethodPost, "/cart", customer, gin.H{"productId": product.ID, "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPost, "/cart", customer, gin.H{"productId": product.ID, "quantity": 5})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(http.MethodPost, "/cart", customer, gin.H{"productId": "missing", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/cart", customer, gin.H{"productId": product.ID, "quantity": 3}).Code)
	w = h.do(http.MethodPost, "/cart", customer, gin.H{"productId": product.ID, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	var added struct {
		Item   models.CartLine `json:"item"`
		Capped bool            `json:"capped"`
	}
	decode(t, w, &added)
	assert.True(t, added.Capped)
	assert.Equal(t, 4, added.Item.CartQuantity)

	path := "/cart/" + product.ID
	w = h.do(http.MethodPatch, path, customer, gin.H{"quantity": 10})
	require.Equal(t, http.StatusOK, w.Code)
	var updated struct {
		Quantity int  `json:"quantity"`
		Clamped  bool `json:"clamped"`
	}
	decode(t, w, &updated)
	assert.Equal(t, 4, updated.Quantity)
	assert.True(t, updated.Clamped)

	w = h.do(http.MethodPatch, path, customer, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPatch, path, customer, gin.H{"quantity": 0})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Item removed from cart")

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, path, customer, nil).Code)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/cart", customer, gin.H{"productId": product.ID, "quantity": 1}).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodDelete, path, customer, nil).Code)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/cart", customer, gin.H{"productId": product.ID, "quantity": 2}).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodDelete, "/cart", customer, nil).Code)

	w = h.do(http.MethodGet, "/cart", customer, nil)
	var cart struct {
		Cart models.Cart `json:"cart"`
	}
	decode(t, w, &cart)
	assert.Empty(t, cart.Cart.Items)
	assert.Zero(t, cart.Cart.Total)
}
