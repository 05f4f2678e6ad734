package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/Kariqs/farmlink-api/aiflows"
	"github.com/Kariqs/farmlink-api/stores"
	"github.com/gin-gonic/gin"
)

type AIController struct {
	Runner        *aiflows.Runner
	Notifications *stores.NotificationStore
}

func NewAIController(runner *aiflows.Runner, notifications *stores.NotificationStore) *AIController {
	return &AIController{Runner: runner, Notifications: notifications}
}

func respondWithFlow(ctx *gin.Context, output any, err error) {
	if err != nil {
		respondWithStoreError(ctx, "AI request failed", err)
		return
	}
	ctx.JSON(http.StatusOK, output)
}

func bindFlowInput[I, O any](ctx *gin.Context, fn func(context.Context, I) (O, error)) {
	var input I
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	output, err := fn(ctx.Request.Context(), input)
	respondWithFlow(ctx, output, err)
}

func (c *AIController) VoiceProductUpload(ctx *gin.Context) {
	bindFlowInput(ctx, c.Runner.VoiceProductUpload)
}

func (c *AIController) WeatherAdvice(ctx *gin.Context) {
	bindFlowInput(ctx, c.Runner.WeatherAdvice)
}

func (c *AIController) FarmingNews(ctx *gin.Context) {
	bindFlowInput(ctx, c.Runner.FarmingNews)
}

func (c *AIController) PricePrediction(ctx *gin.Context) {
	bindFlowInput(ctx, c.Runner.PricePrediction)
}

// SalesInsights analyses the farmer's sales. Without salesDataJson in the
// body the farmer's own sale notifications are used.
func (c *AIController) SalesInsights(ctx *gin.Context) {
	actor, ok := requireActor(ctx)
	if !ok {
		return
	}

	var input aiflows.SalesInsightsInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if input.SalesDataJSON == "" {
		records, err := c.Notifications.SalesData(ctx.Request.Context(), actor.ID)
		if err != nil {
			respondWithStoreError(ctx, "Unable to load sales data", err)
			return
		}
		data, err := json.Marshal(records)
		if err != nil {
			respondWithStoreError(ctx, "Unable to load sales data", err)
			return
		}
		input.SalesDataJSON = string(data)
	}

	output, err := c.Runner.SalesInsights(ctx.Request.Context(), input)
	respondWithFlow(ctx, output, err)
}

// RunFlow invokes any flow by name with the raw request body as input.
func (c *AIController) RunFlow(ctx *gin.Context) {
	raw, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		respondWithError(ctx, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	output, err := c.Runner.Invoke(ctx.Request.Context(), ctx.Param("flow"), raw)
	respondWithFlow(ctx, output, err)
}
