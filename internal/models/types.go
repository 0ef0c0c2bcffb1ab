package models

// Document is the caller-supplied unit of ingestion. Immutable once chunked.
type Document struct {
	DocID    string `json:"doc_id"`
	TenantID string `json:"tenant_id,omitempty"`
	Source   string `json:"source,omitempty"`
	Title    string `json:"title,omitempty"`
	Body     string `json:"body"`
}

// Chunk is one indexed slice of a document. ChunkID is derived as
// "<doc_id>::chunk-<index>" so re-ingesting the same document with the same
// chunking parameters overwrites instead of duplicating.
type Chunk struct {
	ChunkID   string    `json:"chunk_id"`
	DocID     string    `json:"doc_id"`
	TenantID  string    `json:"tenant_id,omitempty"`
	Source    string    `json:"source,omitempty"`
	Text      string    `json:"text"`
	Embedding []float32 `json:"-"`
}

type SearchMode string

const (
	ModeVector SearchMode = "vector"
	ModeHybrid SearchMode = "hybrid"
)

// Valid reports whether the mode names a known ranking profile.
func (m SearchMode) Valid() bool {
	return m == ModeVector || m == ModeHybrid
}

// SearchFilters are the optional equality/containment constraints applied
// before the nearest-neighbor clause.
type SearchFilters struct {
	TenantID string `json:"tenant_id,omitempty"`
	Source   string `json:"source,omitempty"`
	Keyword  string `json:"keyword,omitempty"`
}

// SearchRequest is a retrieval query against the store. Hits bounds the
// returned set; TargetHits bounds the candidate set the nearest-neighbor
// stage considers before ranking. The two are deliberately independent: a
// TargetHits smaller than Hits is accepted and can miss true positives.
type SearchRequest struct {
	QueryVector []float32
	Mode        SearchMode
	Hits        int
	TargetHits  int
	Filters     SearchFilters
}

// SearchHit is one ranked result in the order the store returned it.
// The client never re-sorts.
type SearchHit struct {
	ID        string  `json:"id"`
	Relevance float64 `json:"relevance"`
	ChunkID   string  `json:"chunk_id"`
	DocID     string  `json:"doc_id"`
	TenantID  string  `json:"tenant_id,omitempty"`
	Source    string  `json:"source,omitempty"`
	Text      string  `json:"text"`
}

// ChatMessage is one role-tagged turn of the caller's conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Timings is the per-stage latency breakdown of one answer-pipeline run.
type Timings struct {
	EmbedMS    float64 `json:"embed_ms"`
	RetrieveMS float64 `json:"retrieve_ms"`
}

// RAGAnswer is the answer pipeline's result. It is always well-formed:
// failures are reported through Content plus Err, never by a missing answer.
type RAGAnswer struct {
	Content string   `json:"content"`
	Sources []string `json:"sources"`
	Timings Timings  `json:"timings"`
	Err     string   `json:"error,omitempty"`
}

// AuditHit is the provenance triple recorded per returned hit.
type AuditHit struct {
	ChunkID   string  `json:"chunk_id"`
	DocID     string  `json:"doc_id"`
	Relevance float64 `json:"relevance"`
}

// AuditRecord is one append-only line per query-time request. Records are
// never mutated or deleted.
type AuditRecord struct {
	RequestID   string        `json:"request_id"`
	TimestampMS int64         `json:"timestamp_ms"`
	Query       string        `json:"query"`
	Mode        string        `json:"mode"`
	Filters     SearchFilters `json:"filters"`
	EmbedModel  string        `json:"embed_model"`
	EmbedDim    int           `json:"embed_dim"`
	EmbedMS     float64       `json:"embed_ms"`
	RetrieveMS  float64       `json:"retrieve_ms"`
	YQL         string        `json:"yql"`
	HTTPStatus  int           `json:"http_status"`
	Hits        []AuditHit    `json:"hits"`
	Error       string        `json:"error,omitempty"`
}

// IngestJob is the payload published to the ingest stream for async bulk
// ingestion.
type IngestJob struct {
	RequestID string `json:"request_id,omitempty"`
	DocID     string `json:"doc_id"`
	TenantID  string `json:"tenant_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Title     string `json:"title,omitempty"`
	Text      string `json:"text"`
}

// IngestResult reports one ingest-pipeline run. On partial failure ChunksFed
// counts the chunks that reached the store before the failing chunk; earlier
// feeds are not rolled back.
type IngestResult struct {
	DocID      string   `json:"doc_id"`
	ChunksFed  int      `json:"chunks_fed"`
	ChunkIDs   []string `json:"chunk_ids"`
	EmbedModel string   `json:"embed_model"`
	EmbedDim   int      `json:"embed_dim"`
	EmbedMS    float64  `json:"embed_ms"`
	FeedMS     float64  `json:"feed_ms"`
	TotalMS    float64  `json:"total_ms"`
}
