package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/chiheb08/vespa-vectorstore/internal/executor"
	"github.com/chiheb08/vespa-vectorstore/internal/models"
)

// Consumer reads ingest jobs from a Redis stream and runs them through the
// ingest pipeline one at a time.
type Consumer struct {
	client       *redis.Client
	stream       string
	groupID      string
	consumerName string
	ingest       *executor.IngestExecutor
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, stream string, groupID string, consumerName string, ingest *executor.IngestExecutor, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		stream:       stream,
		groupID:      groupID,
		consumerName: consumerName,
		ingest:       ingest,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.stream, c.groupID, "0").Err()
	if err != nil && err.Error() != "BUSYGROUP Consumer Group name already exists" {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.stream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("ingest consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.stream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err()
			}

			c.logger.Error().Err(err).Msg("failed to read from stream")
			continue
		}

		for _, msg := range msgs[0].Messages {
			c.process(ctx, msg)
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("ingest job received")

	payload, ok := msg.Values["payload"].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var job models.IngestJob
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("failed to decode ingest job")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}

	result, err := c.ingest.Ingest(ctx, models.Document{
		DocID:    job.DocID,
		TenantID: job.TenantID,
		Source:   job.Source,
		Title:    job.Title,
		Body:     job.Text,
	})
	if err != nil {
		c.logger.Error().Err(err).
			Str("id", msg.ID).
			Str("requestID", job.RequestID).
			Str("docID", job.DocID).
			Int("chunksFed", result.ChunksFed).
			Msg("ingest job failed")
		c.ack(ctx, msg.ID)
		return
	}

	c.logger.Info().
		Str("id", msg.ID).
		Str("requestID", job.RequestID).
		Str("docID", result.DocID).
		Int("chunksFed", result.ChunksFed).
		Float64("totalMS", result.TotalMS).
		Msg("ingest job complete")

	c.ack(ctx, msg.ID)
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.stream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("failed to ACK message")
	}
}
