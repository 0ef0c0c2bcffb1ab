package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chiheb08/vespa-vectorstore/internal/models"
	internalredis "github.com/chiheb08/vespa-vectorstore/internal/redis"
)

func main() {
	data := flag.String("d", "", "Inline JSON IngestJob")
	stream := flag.String("stream", "ingest-jobs", "Stream name")
	flag.Parse()

	if *data == "" {
		fmt.Fprintln(os.Stderr, "Usage: producer -d '<json>'")
		flag.PrintDefaults()
		os.Exit(1)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if err := run(*data, *stream); err != nil {
		log.Error().Err(err).Msg("producer failed")
		os.Exit(1)
	}
}

func run(data, stream string) error {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	ctx := context.Background()
	logger := log.Logger
	client, err := internalredis.Connect(ctx, addr, os.Getenv("REDIS_PASSWORD"), 3, &logger)
	if err != nil {
		return err
	}
	defer client.Close()

	var job models.IngestJob
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return err
	}
	if job.DocID == "" {
		return fmt.Errorf("doc_id is required")
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"payload": data},
	}).Result()
	if err != nil {
		return err
	}

	log.Info().Str("stream", stream).Str("id", id).Str("doc_id", job.DocID).Msg("Published successfully!")
	return nil
}
