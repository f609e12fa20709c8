package narrative

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"nexalis-roi/internal/metrics"
	"nexalis-roi/internal/roi"
)

var ErrNoAPIKey = errors.New("API key not configured")

const DefaultModel = "gemini-2.0-flash-exp"

// Generator produces raw model text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string, jsonMode bool) (string, error)
}

type GeminiGenerator struct {
	client      *genai.Client
	model       string
	temperature float32
}

var _ Generator = (*GeminiGenerator)(nil)

func NewGeminiGenerator(ctx context.Context, apiKey, model string, temperature float32) (*GeminiGenerator, error) {
	const op = "narrative.NewGeminiGenerator"

	if apiKey == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrNoAPIKey)
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: create client: %w", op, err)
	}

	return &GeminiGenerator{client: client, model: model, temperature: temperature}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}
	if jsonMode {
		config.ResponseMIMEType = "application/json"
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	return result.Text(), nil
}

// Composer is the relay side: prompt building, the model call and
// shaping of the reply.
type Composer struct {
	gen        Generator
	structured bool
}

func NewComposer(gen Generator, structured bool) *Composer {
	return &Composer{gen: gen, structured: structured}
}

func (c *Composer) Compose(ctx context.Context, in roi.Inputs, res roi.Result) (RelayReply, error) {
	const op = "narrative.Composer.Compose"

	if c.gen == nil {
		return RelayReply{}, ErrNoAPIKey
	}

	if c.structured {
		raw, err := c.gen.Generate(ctx, BuildStructuredPrompt(in, res), true)
		if err != nil {
			metrics.RelayGenerations.WithLabelValues(metrics.OutcomeError).Inc()
			return RelayReply{}, fmt.Errorf("%s: %w", op, err)
		}
		insight, err := ParseInsight(raw)
		if err != nil {
			metrics.RelayGenerations.WithLabelValues(metrics.OutcomeError).Inc()
			return RelayReply{}, fmt.Errorf("%s: %w", op, err)
		}
		metrics.RelayGenerations.WithLabelValues(metrics.OutcomeOK).Inc()
		return RelayReply{Text: insight.Markdown(), Insight: insight}, nil
	}

	raw, err := c.gen.Generate(ctx, BuildPrompt(in, res), false)
	if err != nil {
		metrics.RelayGenerations.WithLabelValues(metrics.OutcomeError).Inc()
		return RelayReply{}, fmt.Errorf("%s: %w", op, err)
	}

	metrics.RelayGenerations.WithLabelValues(metrics.OutcomeOK).Inc()
	return RelayReply{Text: CleanMarkdown(raw)}, nil
}
