package controllers

import (
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Kariqs/farmlink-api/models"
	"github.com/Kariqs/farmlink-api/stores"
	"github.com/Kariqs/farmlink-api/utils"
	"github.com/gin-gonic/gin"
)

// Common error response helper
func respondWithError(ctx *gin.Context, statusCode int, message string, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	ctx.JSON(statusCode, gin.H{
		"message": message,
		"error":   errMsg,
	})
}

type ProductController struct {
	Products *stores.ProductStore
	Ratings  *stores.RatingStore
	Uploader utils.ImageUploader
}

func NewProductController(products *stores.ProductStore, ratings *stores.RatingStore, uploader utils.ImageUploader) *ProductController {
	return &ProductController{Products: products, Ratings: ratings, Uploader: uploader}
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	created, err := c.Products.AddProduct(ctx.Request.Context(), actor, product)
	if err != nil {
		respondWithStoreError(ctx, "Failed to create product", err)
		return
	}

	ctx.JSON(http.StatusCreated, created)
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var product models.Product
	if err := ctx.ShouldBindJSON(&product); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	updated, err := c.Products.UpdateProduct(ctx.Request.Context(), actor, ctx.Param("id"), product)
	if err != nil {
		respondWithStoreError(ctx, "Failed to update product", err)
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

type quantityChange struct {
	Delta int `json:"delta" binding:"required"`
}

// AdjustProductQuantity restocks (positive delta) or writes off (negative
// delta) units of the farmer's own product.
func (c *ProductController) AdjustProductQuantity(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var change quantityChange
	if err := ctx.ShouldBindJSON(&change); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product, err := c.Products.RestockProduct(ctx.Request.Context(), actor, ctx.Param("id"), change.Delta)
	if err != nil {
		respondWithStoreError(ctx, "Failed to update product quantity", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func (c *ProductController) GetProducts(ctx *gin.Context) {
	page := parsePage(ctx, 12)
	products, count, err := c.Products.ListProducts(ctx.Request.Context(), stores.ProductFilter{
		Search:   ctx.Query("search"),
		Category: ctx.Query("category"),
		FarmerID: ctx.Query("farmerId"),
		Page:     page,
	})
	if err != nil {
		respondWithStoreError(ctx, "Unable to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": pageMetadata(count, page),
	})
}

// GetMyProducts lists the calling farmer's own products.
func (c *ProductController) GetMyProducts(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	page := parsePage(ctx, 50)
	products, count, err := c.Products.ListProducts(ctx.Request.Context(), stores.ProductFilter{
		FarmerID: actor.ID,
		Page:     page,
	})
	if err != nil {
		respondWithStoreError(ctx, "Unable to fetch products", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"products": products,
		"metadata": pageMetadata(count, page),
	})
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	product, err := c.Products.GetProductByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondWithStoreError(ctx, "Product not found", err)
		return
	}

	ctx.JSON(http.StatusOK, product)
}

func (c *ProductController) GetProductRatings(ctx *gin.Context) {
	productID := ctx.Param("id")
	if _, err := c.Products.GetProductByID(ctx.Request.Context(), productID); err != nil {
		respondWithStoreError(ctx, "Product not found", err)
		return
	}

	ratings, err := c.Ratings.ListForProduct(ctx.Request.Context(), productID)
	if err != nil {
		respondWithStoreError(ctx, "Unable to fetch ratings", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ratings": ratings})
}

func (c *ProductController) UploadProductImage(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}
	if c.Uploader == nil {
		respondWithError(ctx, http.StatusServiceUnavailable, "Image uploads are not available", utils.ErrUploadsDisabled)
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "No image uploaded", err)
		return
	}

	productID := ctx.Param("id")
	product, err := c.Products.GetProductByID(ctx.Request.Context(), productID)
	if err != nil {
		respondWithStoreError(ctx, "Product not found", err)
		return
	}
	if product.FarmerID != actor.ID {
		respondWithError(ctx, http.StatusForbidden, "You can only change images of your own products", stores.ErrForbidden)
		return
	}

	f, err := file.Open()
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Unable to read image", err)
		return
	}
	defer f.Close()

	key := fmt.Sprintf("products/%s-%s%s", productID, time.Now().Format("20060102150405"), filepath.Ext(file.Filename))
	url, err := c.Uploader.Upload(ctx.Request.Context(), key, f, file.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("Error uploading product image", "product_id", productID, "error", err)
		respondWithError(ctx, http.StatusBadGateway, "Failed to upload image", err)
		return
	}

	updated, err := c.Products.SetImageURL(ctx.Request.Context(), actor, productID, url)
	if err != nil {
		respondWithStoreError(ctx, "Failed to save image", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "url": url, "product": updated})
}
