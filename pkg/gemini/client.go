// Package gemini wraps the Google GenAI SDK behind a small local interface
// so the generation pipeline can be tested against fakes.
package gemini

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Client defines the Gemini operations used by the staged generator.
type Client interface {
	// GenerateJSON sends a prompt with a structured-output schema and
	// returns the raw text payload, which may still carry markdown fences.
	GenerateJSON(ctx context.Context, req Request) (string, error)
}

// Request is our own request type for GenerateJSON.
type Request struct {
	Prompt          string
	Schema          *genai.Schema
	MaxOutputTokens int32
	Temperature     *float32
}

// sdkClient implements Client using the official google.golang.org/genai SDK.
type sdkClient struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
}

// NewClient creates a Gemini client for the given model. qps bounds the
// request rate across all stages; zero disables limiting.
func NewClient(ctx context.Context, apiKey, model string, qps float64) (Client, error) {
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if qps > 0 {
		limiter = rate.NewLimiter(rate.Limit(qps), 1)
	}

	return &sdkClient{client: c, model: model, limiter: limiter}, nil
}

func (c *sdkClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "gemini: rate limit wait")
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}
	if req.Temperature != nil {
		cfg.Temperature = req.Temperature
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", eris.Wrap(err, "gemini: generate content")
	}

	text := resp.Text()
	if text == "" {
		return "", eris.New("gemini: empty response")
	}
	return text, nil
}
