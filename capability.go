package dochive

import "context"

// GenerateOptions bounds a text-generation call.
type GenerateOptions struct {
	// MaxOutputTokens caps the response length. Zero means the
	// provider's default.
	MaxOutputTokens int

	// Temperature controls sampling randomness. Nil means the
	// provider's default.
	Temperature *float32
}

// Capability is the single provider abstraction for optional AI
// services. Every consumer (organizer, answer engine, embeddings)
// queries the same provider instance rather than detecting availability
// independently.
type Capability interface {
	// Available reports whether the provider can serve requests. It
	// must be side-effect free.
	Available() bool

	// Generate produces text for a prompt. Returns EUNAVAILABLE when
	// the provider is not available.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Embed returns a vector representation of text, or nil with no
	// error when the provider does not expose embeddings.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// NoCapability is a Capability that is never available. It stands in
// when no AI provider is configured so consumers need no nil checks.
type NoCapability struct{}

// Ensure NoCapability implements Capability at compile time.
var _ Capability = (*NoCapability)(nil)

func (NoCapability) Available() bool { return false }

func (NoCapability) Generate(context.Context, string, GenerateOptions) (string, error) {
	return "", Errorf(EUNAVAILABLE, "no AI capability configured")
}

func (NoCapability) Embed(context.Context, string) ([]float32, error) {
	return nil, nil
}
