// Package llm defines the provider-neutral embedding and generation
// contracts shared by the Ollama and Bedrock clients.
package llm

import (
	"context"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// Embedder turns text into a fixed-length vector. Implementations validate
// the vector length against the configured dimension on every call; a
// mismatch is a configuration fault, not a transient one.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dim() int
}

// Generator produces an assistant message from a role-tagged conversation.
type Generator interface {
	Generate(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// Client is what the provider factory hands out: one value serving both
// pipeline stages, safe for concurrent use.
type Client interface {
	Embedder
	Generator
}

// ValidateDimension is the single point of defense against silent schema
// drift between the embedding provider and the store schema.
func ValidateDimension(vec []float32, dim int) error {
	if len(vec) != dim {
		return faults.Newf(faults.KindDimensionMismatch,
			"embedding dim mismatch: provider returned %d, expected %d; check EMBED_MODEL/EMBED_DIM and the store schema tensor dimension", len(vec), dim)
	}
	return nil
}
