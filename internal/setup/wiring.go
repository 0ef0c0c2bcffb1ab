// Package setup wires the pipeline dependencies shared by the API server,
// the stream worker and the MCP server.
package setup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chiheb08/vespa-vectorstore/internal/assembler"
	"github.com/chiheb08/vespa-vectorstore/internal/audit"
	"github.com/chiheb08/vespa-vectorstore/internal/chunker"
	"github.com/chiheb08/vespa-vectorstore/internal/config"
	"github.com/chiheb08/vespa-vectorstore/internal/executor"
	"github.com/chiheb08/vespa-vectorstore/internal/llm"
	"github.com/chiheb08/vespa-vectorstore/internal/llm/bedrock"
	"github.com/chiheb08/vespa-vectorstore/internal/llm/ollama"
	"github.com/chiheb08/vespa-vectorstore/internal/vespa"
)

type Dependencies struct {
	Config *config.Config
	Store  *vespa.Client
	Ingest *executor.IngestExecutor
	Answer *executor.AnswerExecutor
	Audit  *audit.Logger
	Logger *zerolog.Logger
}

func Wire(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Dependencies, error) {
	store, err := vespa.NewClient(cfg.VespaURL, cfg.VespaNamespace, cfg.VespaDocType)
	if err != nil {
		return nil, fmt.Errorf("failed to create store client: %w", err)
	}

	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	prompts, err := config.LoadPromptsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts config: %w", err)
	}

	asm, err := assembler.New(prompts.GroundingPrompt, prompts.NotFoundAnswer)
	if err != nil {
		return nil, fmt.Errorf("failed to build assembler: %w", err)
	}

	auditLogger := audit.NewLogger(cfg.AuditLogPath, logger)
	chunks, err := chunker.New(cfg.ChunkWords, cfg.OverlapWords)
	if err != nil {
		return nil, fmt.Errorf("invalid chunking config: %w", err)
	}

	ingest := executor.NewIngestExecutor(chunks, llmClient, store, logger)
	answer := executor.NewAnswerExecutor(llmClient, store, llmClient, asm, auditLogger, cfg.TopK, cfg.TargetHits, logger)

	return &Dependencies{
		Config: cfg,
		Store:  store,
		Ingest: ingest,
		Answer: answer,
		Audit:  auditLogger,
		Logger: logger,
	}, nil
}

func createLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	switch cfg.DefaultProvider {
	case "ollama":
		return ollama.NewClient(cfg.OllamaURL, cfg.EmbedModel, cfg.ChatModel, cfg.EmbedDim)
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.BedrockChatModel, cfg.BedrockEmbedModel, cfg.EmbedDim)
	default:
		return ollama.NewClient(cfg.OllamaURL, cfg.EmbedModel, cfg.ChatModel, cfg.EmbedDim)
	}
}
