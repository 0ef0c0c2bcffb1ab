// Package mcpadapter exposes the retrieval pipeline as MCP tools.
package mcpadapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chiheb08/vespa-vectorstore/internal/executor"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// AnswerInput is the MCP tool input schema for grounded answering.
type AnswerInput struct {
	Question string `json:"question" jsonschema:"question to answer from the indexed documents"`
	Mode     string `json:"mode,omitempty" jsonschema:"ranking profile: vector (default) or hybrid"`
	TenantID string `json:"tenant_id,omitempty" jsonschema:"restrict retrieval to one tenant"`
	Source   string `json:"source,omitempty" jsonschema:"restrict retrieval to one source"`
}

// SearchInput is the MCP tool input schema for raw retrieval.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"retrieval query"`
	Mode     string `json:"mode,omitempty" jsonschema:"ranking profile: vector (default) or hybrid"`
	Hits     int    `json:"hits,omitempty" jsonschema:"maximum hits to return"`
	TenantID string `json:"tenant_id,omitempty" jsonschema:"restrict retrieval to one tenant"`
	Source   string `json:"source,omitempty" jsonschema:"restrict retrieval to one source"`
	Keyword  string `json:"keyword,omitempty" jsonschema:"keyword filter, hybrid mode only"`
}

// SearchResult is the rag_search tool output.
type SearchResult struct {
	Hits []models.SearchHit `json:"hits"`
	YQL  string             `json:"yql"`
}

// NewAnswerHandler returns a tool handler for rag_answer.
// Pass the returned function to mcp.AddTool.
func NewAnswerHandler(exec *executor.AnswerExecutor) func(context.Context, *mcp.CallToolRequest, AnswerInput) (*mcp.CallToolResult, models.RAGAnswer, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnswerInput) (*mcp.CallToolResult, models.RAGAnswer, error) {
		mode := models.SearchMode(input.Mode)
		if input.Mode == "" {
			mode = models.ModeVector
		}

		answer, err := exec.Answer(ctx, uuid.NewString(), mode,
			models.SearchFilters{TenantID: input.TenantID, Source: input.Source},
			[]models.ChatMessage{{Role: models.RoleUser, Content: input.Question}})

		return nil, answer, err
	}
}

// NewSearchHandler returns a tool handler for rag_search.
// Pass the returned function to mcp.AddTool.
func NewSearchHandler(exec *executor.AnswerExecutor) func(context.Context, *mcp.CallToolRequest, SearchInput) (*mcp.CallToolResult, SearchResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchResult, error) {
		mode := models.SearchMode(input.Mode)
		if input.Mode == "" {
			mode = models.ModeVector
		}

		out, err := exec.Search(ctx, executor.SearchParams{
			RequestID: uuid.NewString(),
			Query:     input.Query,
			Mode:      mode,
			Hits:      input.Hits,
			Filters: models.SearchFilters{
				TenantID: input.TenantID,
				Source:   input.Source,
				Keyword:  input.Keyword,
			},
		})
		if err != nil {
			return nil, SearchResult{}, err
		}

		return nil, SearchResult{Hits: out.Hits, YQL: out.YQL}, nil
	}
}
