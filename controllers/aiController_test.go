package controllers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Kariqs/farmlink-api/aiflows"
	"github.com/Kariqs/farmlink-api/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeatherAdviceEndpoint(t *testing.T) {
	h := newHarness(t)
	_, farmer := h.account(models.RoleFarmer, "Farmer A")
	_, customer := h.account(models.RoleCustomer, "Mary Customer")
	h.generator.answer = `{"weatherSummary":"Sunny","farmingInstructions":"Water early","monthlyOutlook":"Dry"}`

	body := gin.H{"location": "Nakuru", "language": "English"}
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, "/ai/weather-advice", customer, body).Code)

	w := h.do(http.MethodPost, "/ai/weather-advice", farmer, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var advice aiflows.WeatherAdvice
	decode(t, w, &advice)
	assert.Equal(t, "Sunny", advice.WeatherSummary)

	w = h.do(http.MethodPost, "/ai/weather-advice", farmer, gin.H{"location": "Nakuru"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Language cannot be empty.")

	h.generator.err = errors.New("quota exceeded")
	w = h.do(http.MethodPost, "/ai/weather-advice", farmer, gin.H{"location": "Eldoret", "language": "English"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to get weather advice")
}

func TestSalesInsightsDefaultsToOwnSales(t *testing.T) {
	h := newHarness(t)
	_, farmer := h.account(models.RoleFarmer, "Farmer A")
	_, customer := h.account(models.RoleCustomer, "Mary Customer")
	product := h.createProduct(farmer, "Avocados", 0.40, 50)

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/cart", customer, gin.H{"productId": product.ID, "quantity": 10}).Code)
	require.Equal(t, http.StatusCreated, h.do(http.MethodPost, "/orders", customer, nil).Code)

	h.generator.answer = `{"keyInsights":["Avocados sell well"],"actionableRecommendations":["Stock more"],"overallSummary":"Good month"}`
	w := h.do(http.MethodPost, "/ai/sales-insights", farmer, gin.H{"language": "English"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var analysis aiflows.SalesAnalysis
	decode(t, w, &analysis)
	assert.Equal(t, "Good month", analysis.OverallSummary)

	require.Len(t, h.generator.prompts, 1)
	assert.Contains(t, h.generator.prompts[0], `"productName":"Avocados"`)
	assert.Contains(t, h.generator.prompts[0], `"quantitySold":10`)

	w = h.do(http.MethodPost, "/ai/sales-insights", farmer, gin.H{"language": "English", "salesDataJson": `{"not":"an array"}`})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be an array")
}

func TestRunFlowByName(t *testing.T) {
	h := newHarness(t)
	_, farmer := h.account(models.RoleFarmer, "Farmer A")
	h.generator.answer = `{"productName":"Tomatoes","location":"Nakuru","price":2.5,"unit":"kg"}`

	w := h.do(http.MethodPost, "/ai/flows/voiceProductUpload", farmer, gin.H{"voiceInput": "I have tomatoes in Nakuru at 2.50 a kilo"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var product aiflows.VoiceProductUploadOutput
	decode(t, w, &product)
	assert.Equal(t, aiflows.VoiceProductUploadOutput{ProductName: "Tomatoes", Location: "Nakuru", Price: 2.5, Unit: "kg"}, product)

	w = h.do(http.MethodPost, "/ai/flows/horoscope", farmer, gin.H{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
