// Package aiflows runs the farmer assistant features: each flow validates its
// input, renders a prompt, asks the language model for JSON and validates the
// decoded answer before returning it.
package aiflows

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"text/template"
	"time"

	"github.com/Kariqs/farmlink-api/metrics"
	"github.com/go-playground/validator/v10"
)

const (
	FlowVoiceProductUpload = "voiceProductUpload"
	FlowWeatherAdvice      = "weatherAdvice"
	FlowFarmingNews        = "farmingNews"
	FlowPricePrediction    = "pricePrediction"
	FlowSalesInsights      = "salesInsights"

	defaultNewsCount = 3
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnknownFlow  = errors.New("unknown flow")
	ErrModel        = errors.New("model call failed")
)

type InputError struct {
	Message string
}

func (e *InputError) Error() string { return e.Message }

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }

// FlowError is a failed model call or an unusable model answer.
type FlowError struct {
	Flow    string
	Message string
	Err     error
}

func (e *FlowError) Error() string { return e.Message }

func (e *FlowError) Unwrap() error { return e.Err }

func (e *FlowError) Is(target error) bool { return target == ErrModel }

type VoiceProductUploadInput struct {
	VoiceInput string `json:"voiceInput" validate:"required" label:"Voice input"`
}

type VoiceProductUploadOutput struct {
	ProductName string  `json:"productName" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Unit        string  `json:"unit" validate:"required"`
}

type WeatherAdviceInput struct {
	Location string `json:"location" validate:"required" label:"Location"`
	Language string `json:"language" validate:"required" label:"Language"`
}

type WeatherAdvice struct {
	WeatherSummary      string `json:"weatherSummary" validate:"required"`
	FarmingInstructions string `json:"farmingInstructions" validate:"required"`
	MonthlyOutlook      string `json:"monthlyOutlook" validate:"required"`
}

type FarmingNewsInput struct {
	Region   string `json:"region" validate:"required" label:"Region"`
	Language string `json:"language" validate:"required" label:"Language"`
	Count    int    `json:"count,omitempty" validate:"omitempty,min=1,max=10" label:"Count"`
}

type NewsItem struct {
	Title         string `json:"title" validate:"required"`
	Summary       string `json:"summary" validate:"required"`
	Source        string `json:"source,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
}

type FarmingNews struct {
	NewsItems []NewsItem `json:"newsItems" validate:"dive"`
}

type PricePredictionInput struct {
	Location          string `json:"location" validate:"required" label:"Location"`
	ProductType       string `json:"productType" validate:"required" label:"Product type"`
	Unit              string `json:"unit" validate:"required" label:"Unit"`
	Language          string `json:"language" validate:"required" label:"Language"`
	CurrentMarketInfo string `json:"currentMarketInfo,omitempty"`
}

type PriceSuggestion struct {
	SuggestedPriceRange string `json:"suggestedPriceRange" validate:"required"`
	Reasoning           string `json:"reasoning" validate:"required"`
	Confidence          string `json:"confidence,omitempty"`
}

type SalesInsightsInput struct {
	SalesDataJSON       string `json:"salesDataJson" validate:"required,json" label:"Sales data"`
	Language            string `json:"language" validate:"required" label:"Language"`
	TimePeriod          string `json:"timePeriod,omitempty"`
	FarmerSpecificGoals string `json:"farmerSpecificGoals,omitempty"`
}

type SalesAnalysis struct {
	KeyInsights               []string `json:"keyInsights" validate:"required,min=1"`
	ActionableRecommendations []string `json:"actionableRecommendations" validate:"required,min=1"`
	DemandForecast            string   `json:"demandForecast,omitempty"`
	SeasonalTrends            string   `json:"seasonalTrends,omitempty"`
	OverallSummary            string   `json:"overallSummary" validate:"required"`
}

type flow struct {
	name      string
	prompt    *template.Template
	failure   string
	cacheable bool
}

var (
	voiceFlow   = flow{name: FlowVoiceProductUpload, prompt: voicePrompt, failure: "Failed to process voice input"}
	weatherFlow = flow{name: FlowWeatherAdvice, prompt: weatherPrompt, failure: "Failed to get weather advice", cacheable: true}
	newsFlow    = flow{name: FlowFarmingNews, prompt: newsPrompt, failure: "Failed to fetch farming news", cacheable: true}
	priceFlow   = flow{name: FlowPricePrediction, prompt: pricePrompt, failure: "Failed to predict price", cacheable: true}
	salesFlow   = flow{name: FlowSalesInsights, prompt: salesPrompt, failure: "Failed to generate sales insights"}
)

type Runner struct {
	gen      Generator
	cache    Cache
	cacheTTL time.Duration
	validate *validator.Validate
}

// NewRunner builds a Runner. cache may be nil to disable caching.
func NewRunner(gen Generator, cache Cache, cacheTTL time.Duration) *Runner {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &Runner{gen: gen, cache: cache, cacheTTL: cacheTTL, validate: validate}
}

func (r *Runner) checkInput(input any) error {
	err := r.validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &InputError{Message: err.Error()}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return &InputError{Message: fmt.Sprintf("%s cannot be empty.", fe.Field())}
	case "json":
		return &InputError{Message: fmt.Sprintf("%s must be valid JSON.", fe.Field())}
	default:
		return &InputError{Message: fmt.Sprintf("%s is invalid.", fe.Field())}
	}
}

func cacheKey(name string, input any) string {
	data, _ := json.Marshal(input)
	sum := sha256.Sum256(data)
	return name + ":" + hex.EncodeToString(sum[:])
}

// stripFences removes a markdown code fence some models put around JSON.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func run[I, O any](ctx context.Context, r *Runner, f flow, input I) (O, error) {
	var out O
	if err := r.checkInput(input); err != nil {
		metrics.AIFlows.WithLabelValues(f.name, "invalid").Inc()
		return out, err
	}

	var key string
	if f.cacheable && r.cache != nil {
		key = cacheKey(f.name, input)
		raw, ok, err := r.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("AI cache read failed", "flow", f.name, "error", err)
		} else if ok {
			var cached O
			if json.Unmarshal(raw, &cached) == nil {
				metrics.AIFlows.WithLabelValues(f.name, "cached").Inc()
				return cached, nil
			}
		}
	}

	fail := func(err error) (O, error) {
		metrics.AIFlows.WithLabelValues(f.name, "error").Inc()
		var zero O
		return zero, &FlowError{Flow: f.name, Message: fmt.Sprintf("%s: %v", f.failure, err), Err: err}
	}

	var prompt bytes.Buffer
	if err := f.prompt.Execute(&prompt, input); err != nil {
		return fail(err)
	}
	text, err := r.gen.GenerateJSON(ctx, jsonInstruction, prompt.String())
	if err != nil {
		return fail(err)
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return fail(fmt.Errorf("model answer is not valid JSON: %w", err))
	}
	if err := r.validate.Struct(out); err != nil {
		return fail(fmt.Errorf("model answer is incomplete: %w", err))
	}

	if key != "" {
		if raw, err := json.Marshal(out); err == nil {
			if err := r.cache.Set(ctx, key, raw, r.cacheTTL); err != nil {
				slog.Warn("AI cache write failed", "flow", f.name, "error", err)
			}
		}
	}
	metrics.AIFlows.WithLabelValues(f.name, "ok").Inc()
	return out, nil
}

func (r *Runner) VoiceProductUpload(ctx context.Context, input VoiceProductUploadInput) (VoiceProductUploadOutput, error) {
	input.VoiceInput = strings.TrimSpace(input.VoiceInput)
	return run[VoiceProductUploadInput, VoiceProductUploadOutput](ctx, r, voiceFlow, input)
}

func (r *Runner) WeatherAdvice(ctx context.Context, input WeatherAdviceInput) (WeatherAdvice, error) {
	return run[WeatherAdviceInput, WeatherAdvice](ctx, r, weatherFlow, input)
}

func (r *Runner) FarmingNews(ctx context.Context, input FarmingNewsInput) (FarmingNews, error) {
	if input.Count == 0 {
		input.Count = defaultNewsCount
	}
	return run[FarmingNewsInput, FarmingNews](ctx, r, newsFlow, input)
}

func (r *Runner) PricePrediction(ctx context.Context, input PricePredictionInput) (PriceSuggestion, error) {
	return run[PricePredictionInput, PriceSuggestion](ctx, r, priceFlow, input)
}

// SalesInsights additionally requires salesDataJson to hold a JSON array.
func (r *Runner) SalesInsights(ctx context.Context, input SalesInsightsInput) (SalesAnalysis, error) {
	if err := r.checkInput(input); err != nil {
		return SalesAnalysis{}, err
	}
	var records []json.RawMessage
	if err := json.Unmarshal([]byte(input.SalesDataJSON), &records); err != nil {
		return SalesAnalysis{}, &InputError{Message: "Invalid salesDataJson format: salesDataJson must be an array."}
	}
	return run[SalesInsightsInput, SalesAnalysis](ctx, r, salesFlow, input)
}

// Invoke runs a flow by name with a JSON encoded input.
func (r *Runner) Invoke(ctx context.Context, name string, raw json.RawMessage) (any, error) {
	switch name {
	case FlowVoiceProductUpload:
		return invoke(ctx, raw, r.VoiceProductUpload)
	case FlowWeatherAdvice:
		return invoke(ctx, raw, r.WeatherAdvice)
	case FlowFarmingNews:
		return invoke(ctx, raw, r.FarmingNews)
	case FlowPricePrediction:
		return invoke(ctx, raw, r.PricePrediction)
	case FlowSalesInsights:
		return invoke(ctx, raw, r.SalesInsights)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFlow, name)
}

func invoke[I, O any](ctx context.Context, raw json.RawMessage, fn func(context.Context, I) (O, error)) (any, error) {
	var input I
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, &InputError{Message: "Request body must be a JSON object."}
		}
	}
	return fn(ctx, input)
}
