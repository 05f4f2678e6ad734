package controllers

import (
	"fmt"
	"net/http"

	"github.com/Kariqs/farmlink-api/stores"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	Carts *stores.CartStore
}

func NewCartController(carts *stores.CartStore) *CartController {
	return &CartController{Carts: carts}
}

type addToCartRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (c *CartController) CreateCartItem(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var body addToCartRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid input", err)
		return
	}

	line, capped, err := c.Carts.AddToCart(ctx.Request.Context(), actor.ID, body.ProductID, body.Quantity)
	if err != nil {
		respondWithStoreError(ctx, "Unable to add product to cart", err)
		return
	}

	message := line.Name + " added to cart"
	if capped {
		message = fmt.Sprintf("Only %d %s available. Cart quantity set to the available stock.", line.Quantity, line.Unit)
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": message,
		"item":    line,
		"capped":  capped,
	})
}

func (c *CartController) GetCart(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	cart, err := c.Carts.GetCart(ctx.Request.Context(), actor.ID)
	if err != nil {
		respondWithStoreError(ctx, "Failed to fetch cart", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"cart": cart})
}

// UpdateCartItem sets the quantity of one line. Zero or less removes it.
func (c *CartController) UpdateCartItem(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var body updateCartItemRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid input", err)
		return
	}

	quantity, clamped, err := c.Carts.UpdateCartItemQuantity(ctx.Request.Context(), actor.ID, ctx.Param("productId"), *body.Quantity)
	if err != nil {
		respondWithStoreError(ctx, "Unable to update cart item quantity.", err)
		return
	}

	message := "Cart item quantity updated"
	switch {
	case quantity == 0:
		message = "Item removed from cart"
	case clamped:
		message = fmt.Sprintf("Not enough stock. Quantity set to %d.", quantity)
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message":  message,
		"quantity": quantity,
		"clamped":  clamped,
	})
}

func (c *CartController) RemoveCartItem(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.Carts.RemoveFromCart(ctx.Request.Context(), actor.ID, ctx.Param("productId")); err != nil {
		respondWithStoreError(ctx, "Unable to remove cart item", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
}

func (c *CartController) ClearCart(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	if err := c.Carts.ClearCart(ctx.Request.Context(), actor.ID); err != nil {
		respondWithStoreError(ctx, "Unable to clear cart", err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Cart cleared"})
}
