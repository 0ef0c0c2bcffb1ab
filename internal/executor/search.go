package executor

import (
	"context"
	"strings"
	"time"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// SearchParams is one standalone retrieval request. Hits and TargetHits fall
// back to the executor's configured defaults when left at zero.
type SearchParams struct {
	RequestID  string
	Query      string
	Mode       models.SearchMode
	Filters    models.SearchFilters
	Hits       int
	TargetHits int
}

// SearchOutput carries the ranked hits plus the retrieval internals callers
// use for debugging: the synthesized YQL, the store status and the stage
// latencies.
type SearchOutput struct {
	Hits    []models.SearchHit
	YQL     string
	Status  int
	Timings models.Timings
}

// Search embeds the query and runs retrieval without generation. Like Answer
// it appends one audit record per run, success or not.
func (e *AnswerExecutor) Search(ctx context.Context, p SearchParams) (SearchOutput, error) {
	out := SearchOutput{Hits: []models.SearchHit{}}

	if strings.TrimSpace(p.Query) == "" {
		return out, faults.New(faults.KindValidation, "query is required")
	}
	if !p.Mode.Valid() {
		return out, faults.Newf(faults.KindValidation, "unknown search mode %q (want vector or hybrid)", string(p.Mode))
	}

	hits := p.Hits
	if hits <= 0 {
		hits = e.topK
	}
	targetHits := p.TargetHits
	if targetHits <= 0 {
		targetHits = e.targetHits
	}

	record := models.AuditRecord{
		RequestID:   p.RequestID,
		TimestampMS: time.Now().UnixMilli(),
		Query:       p.Query,
		Mode:        string(p.Mode),
		Filters:     p.Filters,
		EmbedModel:  e.embedder.Model(),
		EmbedDim:    e.embedder.Dim(),
		Hits:        []models.AuditHit{},
	}
	defer func() { e.audit.Append(record) }()

	embedStart := time.Now()
	vec, err := e.embedder.Embed(ctx, p.Query)
	out.Timings.EmbedMS = msSince(embedStart)
	record.EmbedMS = out.Timings.EmbedMS
	if err != nil {
		record.Error = err.Error()
		return out, err
	}

	retrieveStart := time.Now()
	found, yql, status, err := e.store.Query(ctx, models.SearchRequest{
		QueryVector: vec,
		Mode:        p.Mode,
		Hits:        hits,
		TargetHits:  targetHits,
		Filters:     p.Filters,
	})
	out.Timings.RetrieveMS = msSince(retrieveStart)
	record.RetrieveMS = out.Timings.RetrieveMS
	record.YQL = yql
	record.HTTPStatus = status
	out.YQL = yql
	out.Status = status
	if err != nil {
		record.Error = err.Error()
		return out, err
	}

	out.Hits = found
	record.Hits = auditHits(found)

	return out, nil
}
