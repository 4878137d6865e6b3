// Package kafkasource feeds chat events from a Kafka topic into the ingestion
// coordinator.
package kafkasource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v1 "github.com/aevon-lab/affinity/internal/api/v1"
	"github.com/aevon-lab/affinity/internal/ingestion"
	"github.com/aevon-lab/affinity/internal/transport/codec"
	"github.com/segmentio/kafka-go"
)

const (
	minRetryBackoff = 100 * time.Millisecond
	maxRetryBackoff = 5 * time.Second
)

// Reader is the subset of *kafka.Reader the consumer uses.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Dispatcher applies one decoded event.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev v1.Event) error
}

// Config selects the topic and consumer group.
type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Consumer reads envelopes, decodes them with a codec and dispatches them.
// Offsets are committed only after an event was applied or rejected as
// malformed; storage failures are retried until they succeed or ctx ends.
type Consumer struct {
	reader     Reader
	codec      codec.Codec
	dispatcher Dispatcher
	topic      string
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewConsumer creates a consumer-group reader for cfg.
func NewConsumer(cfg Config, c codec.Codec, d Dispatcher) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    cfg.Topic,
		GroupID:  cfg.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return newConsumer(reader, cfg.Topic, c, d), nil
}

func newConsumer(r Reader, topic string, c codec.Codec, d Dispatcher) *Consumer {
	return &Consumer{
		reader:     r,
		codec:      c,
		dispatcher: d,
		topic:      topic,
		sleep:      sleepCtx,
	}
}

// Run consumes until ctx is cancelled. It always closes the reader.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	slog.Info("[KafkaSource] Consuming", "topic", c.topic, "format", c.codec.Format())

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				slog.Info("[KafkaSource] Stopped", "topic", c.topic)
				return nil
			}
			slog.Warn("[KafkaSource] Read error", "topic", c.topic, "error", err)
			if err := c.sleep(ctx, minRetryBackoff); err != nil {
				return nil
			}
			continue
		}

		if err := c.handle(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Warn("[KafkaSource] Commit failed", "topic", c.topic,
				"partition", msg.Partition, "offset", msg.Offset, "error", err)
		}
	}
}

// handle returns an error only when ctx ended while retrying.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	ev, err := c.codec.Decode(msg.Value)
	if err != nil {
		slog.Warn("[KafkaSource] Dropping undecodable payload",
			"partition", msg.Partition, "offset", msg.Offset, "error", err)
		return nil
	}

	backoff := minRetryBackoff
	for {
		err := c.dispatcher.Dispatch(ctx, ev)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, ingestion.ErrInvalidEvent):
			slog.Warn("[KafkaSource] Dropping invalid event",
				"partition", msg.Partition, "offset", msg.Offset, "error", err)
			return nil
		}

		slog.Error("[KafkaSource] Dispatch failed, retrying",
			"partition", msg.Partition, "offset", msg.Offset, "backoff", backoff, "error", err)
		if err := c.sleep(ctx, backoff); err != nil {
			return err
		}
		backoff *= 2
		if backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
