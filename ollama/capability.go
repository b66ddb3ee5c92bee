// Package ollama implements the AI capability provider using a local
// Ollama server.
package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dochive/dochive"
	"github.com/ollama/ollama/api"
)

// Defaults for a local Ollama install.
const (
	DefaultHost       = "http://localhost:11434"
	DefaultModel      = "llama3.2"
	DefaultEmbedModel = "nomic-embed-text"
)

// availabilityTimeout bounds the liveness ping so an absent server does
// not stall request handling.
const availabilityTimeout = 2 * time.Second

// Ensure Capability implements dochive.Capability at compile time.
var _ dochive.Capability = (*Capability)(nil)

// Capability provides text generation and embeddings via Ollama.
type Capability struct {
	client     *api.Client
	model      string
	embedModel string
}

// NewCapability creates a Capability connected to the Ollama server at
// host. Empty arguments fall back to the defaults.
func NewCapability(host, model, embedModel string) (*Capability, error) {
	if host == "" {
		host = DefaultHost
	}
	if model == "" {
		model = DefaultModel
	}
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host: %w", err)
	}

	return &Capability{
		client:     api.NewClient(u, http.DefaultClient),
		model:      model,
		embedModel: embedModel,
	}, nil
}

// Available reports whether the Ollama server is reachable.
func (c *Capability) Available() bool {
	if c == nil || c.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), availabilityTimeout)
	defer cancel()

	_, err := c.client.Version(ctx)
	return err == nil
}

// Generate produces text for a prompt.
func (c *Capability) Generate(ctx context.Context, prompt string, opts dochive.GenerateOptions) (string, error) {
	if c == nil || c.client == nil {
		return "", dochive.Errorf(dochive.EUNAVAILABLE, "ollama client not configured")
	}

	options := map[string]any{}
	if opts.MaxOutputTokens > 0 {
		options["num_predict"] = opts.MaxOutputTokens
	}
	if opts.Temperature != nil {
		options["temperature"] = *opts.Temperature
	}

	stream := false
	var sb strings.Builder
	err := c.client.Generate(ctx, &api.GenerateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  &stream,
		Options: options,
	}, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}

	return sb.String(), nil
}

// Embed returns a vector representation of text.
func (c *Capability) Embed(ctx context.Context, text string) ([]float32, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}

	resp, err := c.client.Embed(ctx, &api.EmbedRequest{
		Model: c.embedModel,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) == 0 {
		return nil, dochive.Errorf(dochive.EINTERNAL, "ollama returned no embeddings")
	}

	return resp.Embeddings[0], nil
}
