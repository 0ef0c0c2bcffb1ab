// Package stream abstracts the broker feeding the async ingest pipeline.
package stream

import "context"

type StreamConsumer interface {
	Setup(ctx context.Context) error
	Start(ctx context.Context) error
	Stop() error
}
