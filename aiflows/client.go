package aiflows

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Generator produces a JSON document for a prompt.
type Generator interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

type ClientConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	http   *resty.Client
	apiKey string
	model  string
}

func NewGeminiClient(cfg ClientConfig) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &GeminiClient{http: client, apiKey: cfg.APIKey, model: cfg.Model}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	MaxOutputTokens  int     `json:"maxOutputTokens,omitempty"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents          []content        `json:"contents"`
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, system, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("GEMINI_API_KEY is not configured")
	}

	body := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      0.4,
			MaxOutputTokens:  2048,
			ResponseMIMEType: "application/json",
		},
	}
	if system != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	var result generateResponse
	var failure apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(&result).
		SetError(&failure).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	if resp.IsError() {
		if failure.Error.Message != "" {
			return "", fmt.Errorf("model returned %d: %s", resp.StatusCode(), failure.Error.Message)
		}
		return "", fmt.Errorf("model returned %d", resp.StatusCode())
	}

	if len(result.Candidates) == 0 {
		return "", errors.New("model returned no candidates")
	}
	var text strings.Builder
	for _, p := range result.Candidates[0].Content.Parts {
		text.WriteString(p.Text)
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("model returned an empty answer (finish reason %s)", result.Candidates[0].FinishReason)
	}
	return text.String(), nil
}
