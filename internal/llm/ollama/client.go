// Package ollama implements the embedding and generation contracts against
// Ollama's native HTTP API.
package ollama

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
	"github.com/chiheb08/vespa-vectorstore/internal/llm"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// Timeouts are tiered by expected latency class. No retries: a transient
// failure surfaces immediately and the caller re-invokes.
const (
	embedTimeout    = 30 * time.Second
	generateTimeout = 3 * time.Minute
)

type Client struct {
	baseURL    string
	embedModel string
	chatModel  string
	embedDim   int

	embedHTTP *http.Client
	chatHTTP  *http.Client
}

func NewClient(baseURL string, embedModel string, chatModel string, embedDim int) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("ollama base URL is required")
	}
	if embedDim <= 0 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", embedDim)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		embedModel: embedModel,
		chatModel:  chatModel,
		embedDim:   embedDim,
		embedHTTP:  &http.Client{Timeout: embedTimeout},
		chatHTTP:   &http.Client{Timeout: generateTimeout},
	}, nil
}

func (c *Client) Model() string { return c.embedModel }
func (c *Client) Dim() int      { return c.embedDim }

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := c.post(ctx, c.embedHTTP, "/api/embeddings", embedRequest{
		Model:  c.embedModel,
		Prompt: text,
	}, c.embedModel)
	if err != nil {
		return nil, err
	}

	var resp embedResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, faults.Wrap(faults.KindProviderUnavailable, "undecodable embeddings response", err)
	}

	if err := llm.ValidateDimension(resp.Embedding, c.embedDim); err != nil {
		return nil, err
	}
	return resp.Embedding, nil
}

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
}

type chatResponse struct {
	Message models.ChatMessage `json:"message"`
}

func (c *Client) Generate(ctx context.Context, messages []models.ChatMessage) (string, error) {
	body, err := c.post(ctx, c.chatHTTP, "/api/chat", chatRequest{
		Model:    c.chatModel,
		Messages: messages,
		Stream:   false,
	}, c.chatModel)
	if err != nil {
		return "", err
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", faults.Wrap(faults.KindProviderUnavailable, "undecodable chat response", err)
	}

	return resp.Message.Content, nil
}

type errorBody struct {
	Error string `json:"error"`
}

// post issues one JSON call and classifies failures: a transport error or a
// non-success response with no structured cause is ProviderUnavailable; a
// structured "not found" error body is ModelNotFound. Ollama overloads the
// generic 404 for missing models, so the body has to be parsed to tell the
// two apart.
func (c *Client) post(ctx context.Context, httpClient *http.Client, path string, payload any, model string) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to serialize ollama request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("unable to build ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, faults.Wrap(faults.KindProviderUnavailable, "ollama request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, faults.Wrap(faults.KindProviderUnavailable, "unable to read ollama response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && strings.Contains(strings.ToLower(eb.Error), "not found") {
			return nil, faults.Newf(faults.KindModelNotFound,
				"model %q is not available: %s (try: ollama pull %s)", model, eb.Error, model)
		}
		return nil, faults.Newf(faults.KindProviderUnavailable,
			"ollama returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
