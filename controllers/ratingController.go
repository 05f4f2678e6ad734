package controllers

import (
	"net/http"

	"github.com/Kariqs/farmlink-api/stores"
	"github.com/gin-gonic/gin"
)

type RatingController struct {
	Ratings *stores.RatingStore
}

func NewRatingController(ratings *stores.RatingStore) *RatingController {
	return &RatingController{Ratings: ratings}
}

func (c *RatingController) SubmitRating(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var input stores.RatingInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	product, err := c.Ratings.SubmitRating(ctx.Request.Context(), actor, input)
	if err != nil {
		respondWithStoreError(ctx, "Failed to submit rating", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Thanks for rating " + product.Name,
		"product": product,
	})
}

func (c *RatingController) GetOrderRatings(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	ratings, err := c.Ratings.ListForOrder(ctx.Request.Context(), actor.ID, ctx.Param("orderId"))
	if err != nil {
		respondWithStoreError(ctx, "Unable to fetch ratings", err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"ratings": ratings})
}
