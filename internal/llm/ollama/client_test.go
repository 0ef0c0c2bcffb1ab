package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chiheb08/vespa-vectorstore/internal/faults"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

func TestEmbed_ReturnsVector(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("path: %s, want /api/embeddings", r.URL.Path)
		}
		var req embedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Model != "test-embed" {
			t.Errorf("model: %s, want test-embed", req.Model)
		}
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "test-embed", "test-chat", 3)
	if err != nil {
		t.Fatal(err)
	}

	vec, err := client.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 3 {
		t.Errorf("vector length: %d, want 3", len(vec))
	}
}

func TestEmbed_WrongDimensionIsConfigFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2}})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "test-embed", "test-chat", 3)

	_, err := client.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected dimension mismatch error")
	}
	if faults.KindOf(err) != faults.KindDimensionMismatch {
		t.Errorf("kind: %s, want %s", faults.KindOf(err), faults.KindDimensionMismatch)
	}
}

func TestEmbed_ModelNotFoundFromErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": `model "missing" not found`})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "missing", "test-chat", 3)

	_, err := client.Embed(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected model-not-found error")
	}
	if faults.KindOf(err) != faults.KindModelNotFound {
		t.Errorf("kind: %s, want %s", faults.KindOf(err), faults.KindModelNotFound)
	}
	if !strings.Contains(err.Error(), "ollama pull") {
		t.Errorf("expected remediation hint in error, got: %v", err)
	}
}

func TestEmbed_UnstructuredFailureIsProviderUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "test-embed", "test-chat", 3)

	_, err := client.Embed(context.Background(), "hello")
	if faults.KindOf(err) != faults.KindProviderUnavailable {
		t.Errorf("kind: %s, want %s", faults.KindOf(err), faults.KindProviderUnavailable)
	}
}

func TestGenerate_ReturnsAssistantContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path: %s, want /api/chat", r.URL.Path)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("stream must be disabled")
		}
		if len(req.Messages) != 2 {
			t.Errorf("messages: %d, want 2", len(req.Messages))
		}
		json.NewEncoder(w).Encode(chatResponse{
			Message: models.ChatMessage{Role: "assistant", Content: "Paris."},
		})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, "test-embed", "test-chat", 3)

	content, err := client.Generate(context.Background(), []models.ChatMessage{
		{Role: "system", Content: "be brief"},
		{Role: "user", Content: "capital of France?"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "Paris." {
		t.Errorf("content: %q, want %q", content, "Paris.")
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("", "m", "c", 3); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewClient("http://x", "m", "c", 0); err == nil {
		t.Error("expected error for non-positive dimension")
	}
}
