package executor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/chiheb08/vespa-vectorstore/internal/assembler"
	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// AnswerExecutor runs the answer pipeline: embed the query, retrieve, build
// the grounding context, generate. Every run produces a well-formed
// RAGAnswer and one audit record; failures travel in the answer's Err field.
type AnswerExecutor struct {
	embedder   Embedder
	store      VectorStore
	generator  Generator
	assembler  *assembler.Assembler
	audit      AuditSink
	topK       int
	targetHits int
	logger     *zerolog.Logger
}

func NewAnswerExecutor(
	embedder Embedder,
	store VectorStore,
	generator Generator,
	asm *assembler.Assembler,
	audit AuditSink,
	topK int,
	targetHits int,
	logger *zerolog.Logger,
) *AnswerExecutor {
	return &AnswerExecutor{
		embedder:   embedder,
		store:      store,
		generator:  generator,
		assembler:  asm,
		audit:      audit,
		topK:       topK,
		targetHits: targetHits,
		logger:     logger,
	}
}

// Answer runs the full pipeline for one conversation. The query is the last
// user turn. When retrieval produces no usable context the generator is not
// called at all and the fixed not-found answer is returned instead. The
// returned RAGAnswer is always well-formed; on failure it carries the error
// text alongside the typed error.
func (e *AnswerExecutor) Answer(ctx context.Context, requestID string, mode models.SearchMode, filters models.SearchFilters, conversation []models.ChatMessage) (models.RAGAnswer, error) {
	answer := models.RAGAnswer{Sources: []string{}}

	query := lastUserMessage(conversation)
	if query == "" {
		err := faults.New(faults.KindValidation, "conversation has no user message")
		answer.Err = err.Error()
		return answer, err
	}
	if !mode.Valid() {
		err := faults.Newf(faults.KindValidation, "unknown search mode %q (want vector or hybrid)", string(mode))
		answer.Err = err.Error()
		return answer, err
	}

	record := models.AuditRecord{
		RequestID:   requestID,
		TimestampMS: time.Now().UnixMilli(),
		Query:       query,
		Mode:        string(mode),
		Filters:     filters,
		EmbedModel:  e.embedder.Model(),
		EmbedDim:    e.embedder.Dim(),
		Hits:        []models.AuditHit{},
	}
	defer func() { e.audit.Append(record) }()

	embedStart := time.Now()
	vec, err := e.embedder.Embed(ctx, query)
	answer.Timings.EmbedMS = msSince(embedStart)
	record.EmbedMS = answer.Timings.EmbedMS
	if err != nil {
		record.Error = err.Error()
		answer.Err = err.Error()
		e.logger.Error().Err(err).Str("requestID", requestID).Msg("query embedding failed")
		return answer, err
	}

	retrieveStart := time.Now()
	hits, yql, status, err := e.store.Query(ctx, models.SearchRequest{
		QueryVector: vec,
		Mode:        mode,
		Hits:        e.topK,
		TargetHits:  e.targetHits,
		Filters:     filters,
	})
	answer.Timings.RetrieveMS = msSince(retrieveStart)
	record.RetrieveMS = answer.Timings.RetrieveMS
	record.YQL = yql
	record.HTTPStatus = status
	if err != nil {
		record.Error = err.Error()
		answer.Err = err.Error()
		e.logger.Error().Err(err).Str("requestID", requestID).Msg("retrieval failed")
		return answer, err
	}
	record.Hits = auditHits(hits)

	assembled := e.assembler.Assemble(hits)
	if assembled.Empty {
		answer.Content = e.assembler.NotFoundAnswer()
		e.logger.Info().Str("requestID", requestID).Msg("no grounding context, skipping generation")
		return answer, nil
	}

	messages, err := e.assembler.BuildMessages(assembled, conversation)
	if err != nil {
		record.Error = err.Error()
		answer.Err = err.Error()
		return answer, err
	}

	generateStart := time.Now()
	content, err := e.generator.Generate(ctx, messages)
	if err != nil {
		record.Error = err.Error()
		answer.Err = err.Error()
		e.logger.Error().Err(err).Str("requestID", requestID).Msg("generation failed")
		return answer, err
	}

	answer.Content = assembler.AppendSources(content, assembled.Sources)
	answer.Sources = assembled.Sources

	e.logger.Info().
		Str("requestID", requestID).
		Int("hits", len(hits)).
		Float64("embedMS", answer.Timings.EmbedMS).
		Float64("retrieveMS", answer.Timings.RetrieveMS).
		Float64("generateMS", msSince(generateStart)).
		Msg("answer complete")

	return answer, nil
}

func lastUserMessage(conversation []models.ChatMessage) string {
	for i := len(conversation) - 1; i >= 0; i-- {
		if conversation[i].Role == models.RoleUser {
			return conversation[i].Content
		}
	}
	return ""
}

func auditHits(hits []models.SearchHit) []models.AuditHit {
	out := make([]models.AuditHit, 0, len(hits))
	for _, hit := range hits {
		out = append(out, models.AuditHit{
			ChunkID:   hit.ChunkID,
			DocID:     hit.DocID,
			Relevance: hit.Relevance,
		})
	}
	return out
}
