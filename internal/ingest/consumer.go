package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/docsearch/pkg/utils"
	"github.com/segmentio/kafka-go"
)

const (
	DefaultTopic   = "docsearch.documents"
	DefaultGroupID = "docsearch-worker"

	retryBackoff = time.Second
)

type Config struct {
	Brokers []string
	Topic   string
	GroupID string
}

func LoadEnv() (*Config, error) {
	cfg := &Config{
		Brokers: utils.SplitAndTrim(os.Getenv("KAFKA_BROKERS"), ","),
		Topic:   os.Getenv("KAFKA_TOPIC"),
		GroupID: os.Getenv("KAFKA_GROUP_ID"),
	}
	if len(cfg.Brokers) == 0 {
		slog.Error("KAFKA_BROKERS environment variable is not set")
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is not set")
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	if cfg.GroupID == "" {
		cfg.GroupID = DefaultGroupID
	}
	return cfg, nil
}

// MessageReader is the part of *kafka.Reader the consumer depends on
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer applies document events one message at a time.
// Every fetched message is committed after handling, including the ones that failed.
type Consumer struct {
	reader  MessageReader
	handler *Handler

	mu     sync.Mutex
	cancel context.CancelFunc
}

var _ Pipeline = (*Consumer)(nil)

func NewKafkaReader(cfg Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     time.Second,
		StartOffset: kafka.FirstOffset,
	})
}

func NewConsumer(reader MessageReader, handler *Handler) *Consumer {
	return &Consumer{
		reader:  reader,
		handler: handler,
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()

	defer func() {
		if err := c.reader.Close(); err != nil {
			slog.Error("Failed to close kafka reader", "error", err)
		}
	}()

	slog.Info("Kafka consumer started")
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				slog.Info("Kafka consumer stopping")
				return nil
			}
			slog.Error("Failed to fetch kafka message", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(retryBackoff):
			}
			continue
		}

		start := time.Now()
		if err := c.handler.Handle(ctx, msg.Value); err != nil {
			slog.Error("Failed to apply document event, skipping",
				"topic", msg.Topic,
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err)
		} else {
			slog.Info("Document event applied",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"duration", time.Since(start))
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			slog.Error("Failed to commit kafka message", "offset", msg.Offset, "error", err)
		}
	}
}

func (c *Consumer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}
