package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/Kariqs/farmlink-api/events"
	"github.com/Kariqs/farmlink-api/metrics"
	"github.com/Kariqs/farmlink-api/models"
	"github.com/Kariqs/farmlink-api/stores"
	"github.com/Kariqs/farmlink-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type OrderController struct {
	Orders       *stores.OrderStore
	Users        *stores.UserStore
	Publisher    events.Publisher
	Mailer       *utils.Mailer
	SaleTemplate string

	announcing sync.WaitGroup
}

func NewOrderController(orders *stores.OrderStore, users *stores.UserStore, publisher events.Publisher, mailer *utils.Mailer) *OrderController {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &OrderController{
		Orders:       orders,
		Users:        users,
		Publisher:    publisher,
		Mailer:       mailer,
		SaleTemplate: filepath.Join("templates", "sale_notification.html"),
	}
}

type checkoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

type statusUpdate struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// CreateOrder checks out the caller's cart.
func (c *OrderController) CreateOrder(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var body checkoutRequest
	if err := ctx.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := c.Orders.Checkout(ctx.Request.Context(), actor, body.ShippingAddress)
	if err != nil {
		metrics.Checkouts.WithLabelValues(checkoutOutcome(err)).Inc()
		respondWithStoreError(ctx, "Failed to place order", err)
		return
	}
	metrics.Checkouts.WithLabelValues("ok").Inc()
	metrics.SaleNotifications.Add(float64(len(result.Notifications)))

	slog.Info("Order placed",
		"order_id", result.Order.ID,
		"user_id", actor.ID,
		"total", result.Order.TotalAmount,
		"farmers", len(result.Notifications),
	)
	requestCtx := ctx.Request.Context()
	c.announcing.Add(1)
	go func() {
		defer c.announcing.Done()
		c.announce(requestCtx, result)
	}()

	ctx.JSON(http.StatusCreated, gin.H{
		"message":       "Order placed successfully",
		"order":         result.Order,
		"notifications": result.Notifications,
	})
}

func checkoutOutcome(err error) string {
	switch {
	case errors.Is(err, stores.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, stores.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, stores.ErrProductNotFound):
		return "product_not_found"
	}
	return "error"
}

// Wait blocks until every order announcement started so far has finished.
func (c *OrderController) Wait() {
	c.announcing.Wait()
}

// announce publishes the committed order and e-mails the farmers. It runs
// after the response is sent; failures are logged only.
func (c *OrderController) announce(parent context.Context, result stores.CheckoutResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), 10*time.Second)
	defer cancel()

	if err := c.Publisher.Publish(ctx, events.TopicOrderPlaced, result.Order.ID, events.NewOrderPlaced(result.Order, result.Notifications)); err != nil {
		slog.Error("Failed to publish order event", "order_id", result.Order.ID, "error", err)
	}
	for _, n := range result.Notifications {
		if err := c.Publisher.Publish(ctx, events.TopicSaleNotification, n.FarmerID, n); err != nil {
			slog.Error("Failed to publish sale notification", "notification_id", n.ID, "error", err)
		}
	}

	if !c.Mailer.Enabled() || c.Users == nil {
		return
	}
	farmerIDs := make([]string, 0, len(result.Notifications))
	for _, n := range result.Notifications {
		farmerIDs = append(farmerIDs, n.FarmerID)
	}
	farmers, err := c.Users.FindByIDs(ctx, farmerIDs)
	if err != nil {
		slog.Error("Failed to load farmers for sale emails", "error", err)
		return
	}
	for _, n := range result.Notifications {
		farmer, ok := farmers[n.FarmerID]
		if !ok || farmer.Email == "" {
			continue
		}
		if err := c.Mailer.SendEmail(farmer.Email, "You made a sale on FarmLink", saleEmail(farmer, n), c.SaleTemplate); err != nil {
			slog.Error("Error sending sale email", "farmer_id", farmer.ID, "error", err)
		}
	}
}

func saleEmail(farmer models.User, n models.SaleNotification) utils.EmailData {
	data := utils.EmailData{
		Name:         farmer.Name,
		Message:      "Good news! A customer just bought some of your produce.",
		CustomerName: n.CustomerName,
		OrderID:      n.OrderID,
		TotalAmount:  decimal.NewFromFloat(n.TotalAmount).StringFixed(2),
	}
	for _, item := range n.Items {
		data.Items = append(data.Items, utils.EmailItem{
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PricePerUnit: decimal.NewFromFloat(item.PricePerUnit).StringFixed(2),
		})
	}
	return data
}

func (c *OrderController) GetOrders(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	page := parsePage(ctx, 15)
	orders, count, err := c.Orders.ListOrders(ctx.Request.Context(), actor.ID, page)
	if err != nil {
		respondWithStoreError(ctx, "Unable to fetch orders", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"orders":   orders,
		"metadata": pageMetadata(count, page),
	})
}

func (c *OrderController) GetOrderByID(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	order, err := c.Orders.GetOrder(ctx.Request.Context(), actor.ID, ctx.Param("orderId"))
	if err != nil {
		respondWithStoreError(ctx, "Order not found", err)
		return
	}
	ctx.JSON(http.StatusOK, order)
}

func (c *OrderController) UpdateOrderStatus(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var body statusUpdate
	if err := ctx.ShouldBindJSON(&body); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	order, err := c.Orders.UpdateOrderStatus(ctx.Request.Context(), actor, ctx.Param("orderId"), body.Status)
	if err != nil {
		respondWithStoreError(ctx, "Failed to update order status", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}
