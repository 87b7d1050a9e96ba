package ai

import "context"

// Completion is the outcome of one text-completion call. BlockReason is set
// when the model refused to answer because of a content policy; Text may be
// empty in that case.
type Completion struct {
	Text        string
	BlockReason string
}

// Blocked reports whether the response was content-blocked.
func (c Completion) Blocked() bool {
	return c.BlockReason != ""
}

// Completer generates a text completion for a single prompt. The pipeline
// sends exactly two prompt templates through this boundary per question:
// one classification prompt and one synthesis prompt. No streaming, no
// retries.
// Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends one prompt and returns the model's response.
	// Returns an error if the call itself fails; a content-blocked response
	// is not an error and is reported via Completion.BlockReason.
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Completer and Embedder instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Completer returns the text-completion service.
	// The returned Completer is safe for concurrent use.
	Completer() Completer

	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
