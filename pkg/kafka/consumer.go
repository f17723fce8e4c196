package kafka

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/pkg/log"
)

// Handler processes the value of one message.
type Handler func(ctx context.Context, value []byte) error

type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Consumer reads a topic and dispatches messages to handlers by key.
type Consumer struct {
	Config   *cfg.Config
	Logger   log.Logger
	topic    string
	reader   messageReader
	handlers map[string]Handler
	fallback Handler
}

func NewConsumer(config *cfg.Config, logger log.Logger, topic, groupID string) (*Consumer, error) {
	if len(config.Kafka.Brokers) == 0 {
		return nil, ErrNoBrokers
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Kafka.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		Config:   config,
		Logger:   logger,
		topic:    topic,
		reader:   reader,
		handlers: make(map[string]Handler),
	}, nil
}

// RegisterHandler routes messages with key to handler.
func (c *Consumer) RegisterHandler(key string, handler Handler) {
	c.handlers[key] = handler
}

// RegisterFallback handles messages whose key has no handler.
func (c *Consumer) RegisterFallback(handler Handler) {
	c.fallback = handler
}

// Start consumes until ctx ends. Handler errors are logged and skipped.
func (c *Consumer) Start(ctx context.Context) error {
	c.Logger.Info(ctx, "Starting Kafka consumer for topic: %s", c.topic)

	for {
		message, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			c.Logger.Error(ctx, "Error reading message: %v", err)
			continue
		}
		c.Dispatch(ctx, message.Key, message.Value)
	}
}

// Dispatch runs the handler registered for key. It reports whether the
// message was handled without error.
func (c *Consumer) Dispatch(ctx context.Context, key, value []byte) bool {
	handler, exists := c.handlers[string(key)]
	if !exists {
		handler = c.fallback
	}
	if handler == nil {
		c.Logger.Warn(ctx, "No handler registered for message with key: %s", key)
		return false
	}

	if err := handler(ctx, value); err != nil {
		c.Logger.Error(ctx, "Error handling message with key %s: %v", key, err)
		return false
	}
	c.Logger.Debug(ctx, "Processed message with key: %s", key)
	return true
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
