package api

import (
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

type HealthResponse struct {
	Status     string `json:"status"`
	Version    string `json:"version"`
	Store      string `json:"store"`
	Namespace  string `json:"namespace"`
	DocType    string `json:"doc_type"`
	EmbedModel string `json:"embed_model"`
	EmbedDim   int    `json:"embed_dim"`
	ChatModel  string `json:"chat_model"`
}

// IngestTextRequest carries one document. RequestID is optional; callers that
// supply one get it echoed back for log correlation.
type IngestTextRequest struct {
	RequestID string `json:"request_id,omitempty"`
	DocID     string `json:"doc_id"`
	TenantID  string `json:"tenant_id,omitempty"`
	Source    string `json:"source,omitempty"`
	Title     string `json:"title,omitempty"`
	Text      string `json:"text"`
}

// IngestResponse reports the pipeline run. On partial failure OK is false,
// the counts cover the chunks that reached the store and Error carries the
// cause.
type IngestResponse struct {
	RequestID string `json:"request_id"`
	OK        bool   `json:"ok"`
	models.IngestResult
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

type SearchRequest struct {
	RequestID  string               `json:"request_id,omitempty"`
	Query      string               `json:"query"`
	Mode       string               `json:"mode,omitempty"`
	Hits       int                  `json:"hits,omitempty"`
	TargetHits int                  `json:"target_hits,omitempty"`
	Filters    models.SearchFilters `json:"filters"`
}

// SearchResponse keeps the retrieval internals on both outcomes: a failed
// query still reports its request id, YQL, store status and stage latencies
// so it stays analyzable in evaluation logs.
type SearchResponse struct {
	RequestID  string             `json:"request_id"`
	OK         bool               `json:"ok"`
	HTTPStatus int                `json:"http_status,omitempty"`
	Hits       []models.SearchHit `json:"hits"`
	YQL        string             `json:"yql,omitempty"`
	Timings    models.Timings     `json:"timings"`
	Error      string             `json:"error,omitempty"`
	Kind       string             `json:"kind,omitempty"`
}

// ModelList mirrors the OpenAI GET /v1/models shape.
type ModelList struct {
	Object string      `json:"object"`
	Data   []ModelInfo `json:"data"`
}

type ModelInfo struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	OwnedBy string `json:"owned_by"`
}

// ChatCompletionRequest mirrors the OpenAI POST /v1/chat/completions shape,
// extended with the retrieval controls of this service.
type ChatCompletionRequest struct {
	Model    string               `json:"model,omitempty"`
	Messages []models.ChatMessage `json:"messages"`
	Mode     string               `json:"mode,omitempty"`
	Filters  models.SearchFilters `json:"filters"`
}

type ChatCompletionChoice struct {
	Index        int                `json:"index"`
	Message      models.ChatMessage `json:"message"`
	FinishReason string             `json:"finish_reason"`
}

// ChatDebug exposes the retrieval internals of one completion so answers can
// be reproduced against the store by hand.
type ChatDebug struct {
	RequestID  string         `json:"request_id"`
	Namespace  string         `json:"namespace"`
	TopK       int            `json:"top_k"`
	TargetHits int            `json:"target_hits"`
	EmbedModel string         `json:"embed_model"`
	ChatModel  string         `json:"chat_model"`
	Timings    models.Timings `json:"timings"`
	Sources    []string       `json:"sources"`
}

type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Debug   ChatDebug              `json:"debug"`
}
