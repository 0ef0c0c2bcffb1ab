package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/chiheb08/vespa-vectorstore/internal/chunker"
	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// IngestExecutor runs the ingest pipeline: chunk the document, embed each
// chunk, feed it to the store. Chunks are processed in order and the pipeline
// stops at the first failure; chunks fed before the failure stay in the store.
type IngestExecutor struct {
	chunker  *chunker.Chunker
	embedder Embedder
	store    VectorStore
	logger   *zerolog.Logger
}

func NewIngestExecutor(
	chunks *chunker.Chunker,
	embedder Embedder,
	store VectorStore,
	logger *zerolog.Logger,
) *IngestExecutor {
	return &IngestExecutor{
		chunker:  chunks,
		embedder: embedder,
		store:    store,
		logger:   logger,
	}
}

// Ingest chunks, embeds and feeds one document. On error the returned result
// still reports the chunks that reached the store, so callers can surface a
// partial-failure count instead of an all-or-nothing answer.
func (e *IngestExecutor) Ingest(ctx context.Context, doc models.Document) (models.IngestResult, error) {
	start := time.Now()

	result := models.IngestResult{
		DocID:      doc.DocID,
		ChunkIDs:   []string{},
		EmbedModel: e.embedder.Model(),
		EmbedDim:   e.embedder.Dim(),
	}

	if strings.TrimSpace(doc.DocID) == "" {
		return result, faults.New(faults.KindValidation, "doc_id is required")
	}

	pieces := e.chunker.Split(doc.Body)
	if len(pieces) == 0 {
		return result, faults.New(faults.KindValidation, "document has no indexable text")
	}

	e.logger.Info().Str("docID", doc.DocID).Int("chunks", len(pieces)).Msg("starting ingest")

	for i, text := range pieces {
		chunk := models.Chunk{
			ChunkID:  fmt.Sprintf("%s::chunk-%d", doc.DocID, i),
			DocID:    doc.DocID,
			TenantID: doc.TenantID,
			Source:   doc.Source,
			Text:     text,
		}

		embedStart := time.Now()
		vec, err := e.embedder.Embed(ctx, text)
		result.EmbedMS += msSince(embedStart)
		if err != nil {
			result.TotalMS = msSince(start)
			e.logger.Error().Err(err).Str("chunkID", chunk.ChunkID).Int("chunksFed", result.ChunksFed).Msg("ingest stopped at embedding")
			return result, err
		}
		chunk.Embedding = vec

		feedStart := time.Now()
		if err := e.store.Feed(ctx, chunk); err != nil {
			result.FeedMS += msSince(feedStart)
			result.TotalMS = msSince(start)
			e.logger.Error().Err(err).Str("chunkID", chunk.ChunkID).Int("chunksFed", result.ChunksFed).Msg("ingest stopped at feed")
			return result, err
		}
		result.FeedMS += msSince(feedStart)

		result.ChunksFed++
		result.ChunkIDs = append(result.ChunkIDs, chunk.ChunkID)
	}

	result.TotalMS = msSince(start)
	e.logger.Info().
		Str("docID", doc.DocID).
		Int("chunksFed", result.ChunksFed).
		Float64("totalMS", result.TotalMS).
		Msg("ingest complete")

	return result, nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t)) / float64(time.Millisecond)
}
