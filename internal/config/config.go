// Package config loads the process configuration once at startup. Values are
// never mutated at runtime; changing them requires a restart.
package config

import (
	"os"
	"strconv"

	"github.com/chiheb08/vespa-vectorstore/internal/chunker"
)

type Config struct {
	APIPort string

	VespaURL       string
	VespaNamespace string
	VespaDocType   string

	OllamaURL  string
	EmbedModel string
	EmbedDim   int
	ChatModel  string

	DefaultProvider   string
	AWSRegion         string
	BedrockChatModel  string
	BedrockEmbedModel string

	ChunkWords   int
	OverlapWords int
	TopK         int
	TargetHits   int

	AuditLogPath string

	RedisAddr     string
	RedisPassword string
	IngestStream  string
	IngestGroup   string

	LogLevel string
}

func Load() *Config {
	return &Config{
		APIPort: getEnv("RAG_API_PORT", "8000"),

		VespaURL:       getEnv("VESPA_URL", "http://localhost:8080"),
		VespaNamespace: getEnv("VESPA_NAMESPACE", "lab"),
		VespaDocType:   getEnv("VESPA_DOCTYPE", "chunk"),

		OllamaURL:  getEnv("OLLAMA_URL", "http://localhost:11434"),
		EmbedModel: getEnv("EMBED_MODEL", "nomic-embed-text"),
		EmbedDim:   getEnvInt("EMBED_DIM", 384),
		ChatModel:  getEnv("CHAT_MODEL", "llama3.1"),

		DefaultProvider:   getEnv("DEFAULT_LLM_PROVIDER", "ollama"),
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		BedrockChatModel:  getEnv("BEDROCK_CHAT_MODEL_ID", ""),
		BedrockEmbedModel: getEnv("BEDROCK_EMBED_MODEL_ID", ""),

		ChunkWords:   getEnvInt("CHUNK_WORDS", chunker.DefaultChunkWords),
		OverlapWords: getEnvInt("OVERLAP_WORDS", chunker.DefaultOverlapWords),
		TopK:         getEnvInt("TOP_K", 5),
		TargetHits:   getEnvInt("TARGET_HITS", 50),

		AuditLogPath: getEnv("AUDIT_LOG_PATH", "logs/requests.jsonl"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		IngestStream:  getEnv("INGEST_STREAM", "ingest-jobs"),
		IngestGroup:   getEnv("INGEST_GROUP", "ingest-group"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		value = defaultValue
	}

	return value
}
