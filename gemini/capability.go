// Package gemini implements the AI capability provider using Google
// Gemini.
package gemini

import (
	"context"

	"github.com/dochive/dochive"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Default models.
const (
	DefaultModel      = "gemini-2.5-flash"
	DefaultEmbedModel = "gemini-embedding-001"
)

// Gemini free-tier quotas are tight; cap request rate so batch embedding
// a corpus does not trip them.
const (
	requestsPerSecond = 2
	requestBurst      = 4
)

// Ensure Capability implements dochive.Capability at compile time.
var _ dochive.Capability = (*Capability)(nil)

// Capability provides text generation and embeddings via Gemini.
type Capability struct {
	client     *genai.Client
	model      string
	embedModel string
	limiter    *rate.Limiter
}

// NewCapability creates a new Capability. Empty model names fall back to
// the defaults.
func NewCapability(client *genai.Client, model, embedModel string) *Capability {
	if model == "" {
		model = DefaultModel
	}
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}
	return &Capability{
		client:     client,
		model:      model,
		embedModel: embedModel,
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSecond), requestBurst),
	}
}

// Available reports whether a Gemini client is configured.
func (c *Capability) Available() bool {
	return c != nil && c.client != nil
}

// Generate produces text for a prompt.
func (c *Capability) Generate(ctx context.Context, prompt string, opts dochive.GenerateOptions) (string, error) {
	if !c.Available() {
		return "", dochive.Errorf(dochive.EUNAVAILABLE, "gemini client not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	config := &genai.GenerateContentConfig{}
	if opts.MaxOutputTokens > 0 {
		config.MaxOutputTokens = int32(opts.MaxOutputTokens)
	}
	if opts.Temperature != nil {
		config.Temperature = opts.Temperature
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", dochive.Errorf(dochive.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// Embed returns a vector representation of text.
func (c *Capability) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.Available() {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := c.client.Models.EmbedContent(ctx, c.embedModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: text}},
		}},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, dochive.Errorf(dochive.EINTERNAL, "gemini returned no embeddings")
	}

	return result.Embeddings[0].Values, nil
}
