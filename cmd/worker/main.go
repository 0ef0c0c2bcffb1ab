package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chiheb08/vespa-vectorstore/internal/config"
	"github.com/chiheb08/vespa-vectorstore/internal/setup"
	setuplogger "github.com/chiheb08/vespa-vectorstore/internal/setup/logger"
	"github.com/chiheb08/vespa-vectorstore/internal/stream"
	streamredis "github.com/chiheb08/vespa-vectorstore/internal/stream/redis"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load env
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := setuplogger.New(cfg.LogLevel)

	deps, err := setup.Wire(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	hostname, _ := os.Hostname()
	consumer, err := stream.NewStreamConsumer(ctx, &stream.StreamConfig{
		Provider: "redis",
		RedisConfig: streamredis.NewRedisStreamConfig(
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.IngestStream,
			cfg.IngestGroup,
			hostname,
		),
	}, deps.Ingest, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create stream consumer")
	}
	defer consumer.Stop()

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up consumer group")
	}

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("Consumer failed")
	}

	log.Info().Msg("Worker stopped")
}
