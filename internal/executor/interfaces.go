package executor

import (
	"context"

	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

// Embedder turns text into a fixed-length query or chunk vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
	Dim() int
}

// VectorStore feeds chunks and runs ranked retrieval
type VectorStore interface {
	Feed(ctx context.Context, chunk models.Chunk) error
	Query(ctx context.Context, req models.SearchRequest) (hits []models.SearchHit, yql string, status int, err error)
}

// Generator produces the assistant answer from a grounded conversation
type Generator interface {
	Generate(ctx context.Context, messages []models.ChatMessage) (string, error)
}

// AuditSink records one line per query-time request
type AuditSink interface {
	Append(record models.AuditRecord)
}
