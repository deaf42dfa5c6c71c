package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the subset of *kafka.Reader used by the consumer.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer reads JSON notifications from kafka and publishes them on a bus.
type Consumer struct {
	reader   Reader
	bus      *Bus
	logger   *zap.Logger
	validate *validator.Validate
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// NewConsumer creates a consumer backed by a kafka group reader.
func NewConsumer(cfg Config, bus *Bus, logger *zap.Logger) (*Consumer, error) {
	brokers := cfg.BrokerList()
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka consumer requires at least one broker")
	}
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka consumer requires a topic")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		MinBytes:       1,
		MaxBytes:       10e6, // 10MB
		MaxWait:        500 * time.Millisecond,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: 0, // synchronous commits
	})
	return NewConsumerWithReader(reader, bus, logger), nil
}

// NewConsumerWithReader creates a consumer over an existing reader.
func NewConsumerWithReader(reader Reader, bus *Bus, logger *zap.Logger) *Consumer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Consumer{reader: reader, bus: bus, logger: logger, validate: validator.New()}
}

// Start begins consuming in the background.
func (c *Consumer) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.consumeLoop(ctx)

	c.logger.Info("Notification consumer started")
}

// Stop cancels the loop, waits for the in-flight message and closes the reader.
func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
	return c.reader.Close()
}

func (c *Consumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || ctx.Err() != nil {
				c.logger.Info("Notification consumer stopping")
				return
			}
			c.logger.Error("Failed to fetch message", zap.Error(err))
			continue
		}

		c.processMessage(ctx, msg)
	}
}

func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) {
	log := c.logger.With(
		zap.String("topic", msg.Topic),
		zap.Int("partition", msg.Partition),
		zap.Int64("offset", msg.Offset),
	)

	var n Notification
	// Bad messages are committed so the partition does not stall.
	if err := json.Unmarshal(msg.Value, &n); err != nil {
		log.Error("Failed to decode notification", zap.Error(err))
		c.commit(ctx, log, msg)
		return
	}
	if err := c.validate.Struct(n); err != nil {
		log.Error("Invalid notification", zap.Error(err))
		c.commit(ctx, log, msg)
		return
	}

	if err := c.bus.Publish(ctx, n); err != nil {
		// Not committed: the message is redelivered after a restart or rebalance.
		log.Error("Failed to handle notification", zap.Stringer("notification", n), zap.Error(err))
		return
	}

	c.commit(ctx, log, msg)
}

func (c *Consumer) commit(ctx context.Context, log *zap.Logger, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", zap.Error(err))
	}
}
