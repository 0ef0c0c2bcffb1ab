// Package vespa is the HTTP client for the vector store: per-chunk upserts
// on the document API and ranked retrieval on the search API.
package vespa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

const (
	healthTimeout = 3 * time.Second
	feedTimeout   = 15 * time.Second
	queryTimeout  = 15 * time.Second
)

type Client struct {
	baseURL   string
	namespace string
	docType   string

	healthHTTP *http.Client
	feedHTTP   *http.Client
	queryHTTP  *http.Client
}

func NewClient(baseURL string, namespace string, docType string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("vespa base URL is required")
	}
	if namespace == "" || docType == "" {
		return nil, fmt.Errorf("vespa namespace and document type are required")
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		namespace:  namespace,
		docType:    docType,
		healthHTTP: &http.Client{Timeout: healthTimeout},
		feedHTTP:   &http.Client{Timeout: feedTimeout},
		queryHTTP:  &http.Client{Timeout: queryTimeout},
	}, nil
}

func (c *Client) Namespace() string { return c.namespace }

// FeedFields is the field payload of one upsert. Embeddings travel in the
// tensor literal form the document API expects.
type FeedFields struct {
	ChunkID   string       `json:"chunk_id"`
	DocID     string       `json:"doc_id"`
	TenantID  string       `json:"tenant_id,omitempty"`
	Source    string       `json:"source,omitempty"`
	Text      string       `json:"text"`
	Embedding TensorValues `json:"embedding"`
}

type TensorValues struct {
	Values []float32 `json:"values"`
}

// FeedOperation is one line of a JSONL feed file, as consumed by vespa-feed
// tooling. Exposed for the feed generator.
type FeedOperation struct {
	Put    string     `json:"put"`
	Fields FeedFields `json:"fields"`
}

// DocumentID renders the canonical id for a chunk in this client's
// namespace and document type.
func (c *Client) DocumentID(chunkID string) string {
	return fmt.Sprintf("id:%s:%s::%s", c.namespace, c.docType, chunkID)
}

// Feed upserts one chunk keyed by its chunk id. Re-feeding the same id
// overwrites. Feeding is not transactional across the chunks of a document.
func (c *Client) Feed(ctx context.Context, chunk models.Chunk) error {
	url := fmt.Sprintf("%s/document/v1/%s/%s/docid/%s", c.baseURL, c.namespace, c.docType, chunk.ChunkID)

	payload := struct {
		Fields FeedFields `json:"fields"`
	}{
		Fields: FeedFields{
			ChunkID:   chunk.ChunkID,
			DocID:     chunk.DocID,
			TenantID:  chunk.TenantID,
			Source:    chunk.Source,
			Text:      chunk.Text,
			Embedding: TensorValues{Values: chunk.Embedding},
		},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("unable to serialize feed payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("unable to build feed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.feedHTTP.Do(req)
	if err != nil {
		return faults.Wrap(faults.KindFeedRejected, fmt.Sprintf("feed of %s failed", chunk.ChunkID), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return faults.Newf(faults.KindFeedRejected,
			"store rejected %s with status %d: %s", chunk.ChunkID, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return nil
}

type queryBody struct {
	YQL            string    `json:"yql"`
	Hits           int       `json:"hits"`
	RankingProfile string    `json:"ranking.profile"`
	QueryVector    []float32 `json:"input.query(q)"`
}

type searchResponse struct {
	Root struct {
		Children []struct {
			ID        string  `json:"id"`
			Relevance float64 `json:"relevance"`
			Fields    struct {
				ChunkID  string `json:"chunk_id"`
				DocID    string `json:"doc_id"`
				TenantID string `json:"tenant_id"`
				Source   string `json:"source"`
				Text     string `json:"text"`
			} `json:"fields"`
		} `json:"children"`
	} `json:"root"`
}

// Query runs one search request. The mode selects the store's ranking
// profile; the query vector is bound to the named input parameter q. An
// absent hit list is an empty result, not an error. Hits come back in the
// store's relevance order and are never re-sorted here.
func (c *Client) Query(ctx context.Context, req models.SearchRequest) ([]models.SearchHit, string, int, error) {
	yql, err := BuildYQL(req.Mode, req.Filters, req.TargetHits)
	if err != nil {
		return nil, "", 0, err
	}

	raw, err := json.Marshal(queryBody{
		YQL:            yql,
		Hits:           req.Hits,
		RankingProfile: string(req.Mode),
		QueryVector:    req.QueryVector,
	})
	if err != nil {
		return nil, yql, 0, fmt.Errorf("unable to serialize query payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search/", bytes.NewReader(raw))
	if err != nil {
		return nil, yql, 0, fmt.Errorf("unable to build query request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.queryHTTP.Do(httpReq)
	if err != nil {
		return nil, yql, 0, faults.Wrap(faults.KindQueryRejected, "search request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, yql, resp.StatusCode, faults.Wrap(faults.KindQueryRejected, "unable to read search response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, yql, resp.StatusCode, faults.Newf(faults.KindQueryRejected,
			"store rejected query with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, yql, resp.StatusCode, faults.Wrap(faults.KindQueryRejected, "undecodable search response", err)
	}

	hits := make([]models.SearchHit, 0, len(parsed.Root.Children))
	for _, child := range parsed.Root.Children {
		hits = append(hits, models.SearchHit{
			ID:        child.ID,
			Relevance: child.Relevance,
			ChunkID:   child.Fields.ChunkID,
			DocID:     child.Fields.DocID,
			TenantID:  child.Fields.TenantID,
			Source:    child.Fields.Source,
			Text:      child.Fields.Text,
		})
	}

	return hits, yql, resp.StatusCode, nil
}

// Ping reports store reachability. Health-style call, short timeout.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ApplicationStatus", nil)
	if err != nil {
		return err
	}

	resp, err := c.healthHTTP.Do(req)
	if err != nil {
		return faults.Wrap(faults.KindProviderUnavailable, "store unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return faults.Newf(faults.KindProviderUnavailable, "store health returned status %d", resp.StatusCode)
	}
	return nil
}
