package stream

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chiheb08/vespa-vectorstore/internal/executor"
	internalredis "github.com/chiheb08/vespa-vectorstore/internal/redis"
	streamredis "github.com/chiheb08/vespa-vectorstore/internal/stream/redis"
)

type StreamConfig struct {
	Provider    string // redis for now; kafka, sqs later
	RedisConfig *streamredis.RedisStreamConfig
}

func NewStreamConsumer(
	ctx context.Context,
	cfg *StreamConfig,
	ingest *executor.IngestExecutor,
	logger *zerolog.Logger,
) (StreamConsumer, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = "redis"
	}

	switch provider {
	case "redis":
		if cfg.RedisConfig == nil {
			return nil, fmt.Errorf("redis config required")
		}

		client, err := internalredis.Connect(ctx, cfg.RedisConfig.RedisAddr, cfg.RedisConfig.RedisPassword, 5, logger)
		if err != nil {
			return nil, err
		}

		return streamredis.NewConsumer(
			client,
			cfg.RedisConfig.Stream,
			cfg.RedisConfig.Group,
			cfg.RedisConfig.ConsumerName,
			ingest,
			logger,
		), nil

	default:
		return nil, fmt.Errorf("unsupported stream provider: %s", cfg.Provider)
	}
}
