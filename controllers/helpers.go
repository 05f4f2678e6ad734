package controllers

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/Kariqs/farmlink-api/aiflows"
	"github.com/Kariqs/farmlink-api/middlewares"
	"github.com/Kariqs/farmlink-api/stores"
	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, stores.ErrValidation),
		errors.Is(err, stores.ErrInvalidQuantity),
		errors.Is(err, stores.ErrInvalidRating),
		errors.Is(err, stores.ErrInvalidStatus),
		errors.Is(err, stores.ErrEmptyCart),
		errors.Is(err, stores.ErrProductNotInOrder),
		errors.Is(err, aiflows.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, stores.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, stores.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, stores.ErrProductNotFound),
		errors.Is(err, stores.ErrCartItemNotFound),
		errors.Is(err, stores.ErrOrderNotFound),
		errors.Is(err, stores.ErrNotificationNotFound),
		errors.Is(err, stores.ErrUserNotFound),
		errors.Is(err, aiflows.ErrUnknownFlow):
		return http.StatusNotFound
	case errors.Is(err, stores.ErrInsufficientStock),
		errors.Is(err, stores.ErrNegativeStock),
		errors.Is(err, stores.ErrOrderNotDelivered),
		errors.Is(err, stores.ErrUserExists):
		return http.StatusConflict
	case errors.Is(err, aiflows.ErrModel):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// respondWithStoreError maps a store or flow error to its HTTP status.
// Unexpected errors are logged and hidden from the client.
func respondWithStoreError(ctx *gin.Context, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error(message, "error", err, "method", ctx.Request.Method, "path", ctx.Request.URL.Path)
		respondWithError(ctx, status, message, errors.New(msgInternalServerError))
		return
	}
	respondWithError(ctx, status, message, err)
}

func requireActor(ctx *gin.Context) (stores.Actor, bool) {
	actor, ok := middlewares.CurrentActor(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "Please login")
	}
	return actor, ok
}

func parsePage(ctx *gin.Context, defaultLimit int) stores.Page {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	return stores.Page{Page: page, Limit: limit}.Normalize()
}

func pageMetadata(count int64, page stores.Page) gin.H {
	previousPage := page.Page - 1
	nextPage := page.Page + 1
	totalPages := math.Ceil(float64(count) / float64(page.Limit))

	return gin.H{
		"total":        count,
		"currentPage":  page.Page,
		"limit":        page.Limit,
		"hasPrevPage":  previousPage > 0,
		"hasNextPage":  int(totalPages) > page.Page,
		"previousPage": previousPage,
		"nextPage":     nextPage,
	}
}
