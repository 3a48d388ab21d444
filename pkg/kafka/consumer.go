package kafka

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageHandler handles messages from a specific topic.
type MessageHandler interface {
	Topic() string
	Handle(context.Context, []byte) error
}

// Consumer wraps Kafka readers with a worker pool per registered handler.
type Consumer struct {
	cfg      *ConsumerConfig
	handlers map[string]MessageHandler
	readers  map[string]*kafka.Reader
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewConsumer creates a Kafka consumer.
func NewConsumer(opts ...ConsumerOption) (*Consumer, error) {
	cfg := &ConsumerConfig{
		WorkerCount: 4,
		RetryMax:    3,
		BackoffMin:  100 * time.Millisecond,
		BackoffMax:  5 * time.Second,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers are required")
	}
	if cfg.GroupID == "" {
		return nil, fmt.Errorf("group id is required")
	}

	return &Consumer{
		cfg:      cfg,
		handlers: make(map[string]MessageHandler),
		readers:  make(map[string]*kafka.Reader),
	}, nil
}

// RegisterHandler registers a handler for its topic.
func (c *Consumer) RegisterHandler(h MessageHandler) {
	c.handlers[h.Topic()] = h
}

// Start launches one reader loop per registered topic and blocks until Stop.
func (c *Consumer) Start() error {
	if len(c.handlers) == 0 {
		return fmt.Errorf("no handlers registered")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	for topic, handler := range c.handlers {
		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers: c.cfg.Brokers,
			GroupID: c.cfg.GroupID,
			Topic:   topic,
		})
		c.readers[topic] = reader

		for i := 0; i < c.cfg.WorkerCount; i++ {
			c.wg.Add(1)
			go c.readLoop(ctx, reader, handler)
		}
	}

	c.wg.Wait()
	return nil
}

func (c *Consumer) readLoop(ctx context.Context, reader *kafka.Reader, handler MessageHandler) {
	defer c.wg.Done()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			log.Printf("kafka: read %s: %v", handler.Topic(), err)
			continue
		}

		if err := c.handleWithRetry(ctx, handler, msg.Value); err != nil {
			log.Printf("kafka: handle %s: dropping message after retries: %v", handler.Topic(), err)
		}
	}
}

// handleWithRetry retries transient handler failures with jittered backoff.
func (c *Consumer) handleWithRetry(ctx context.Context, handler MessageHandler, data []byte) error {
	var err error
	for attempt := 0; attempt <= c.cfg.RetryMax; attempt++ {
		if err = handler.Handle(ctx, data); err == nil {
			return nil
		}
		backoff := c.cfg.BackoffMin << attempt
		if backoff > c.cfg.BackoffMax {
			backoff = c.cfg.BackoffMax
		}
		jitter := time.Duration(rand.Int63n(int64(backoff)/2 + 1))
		select {
		case <-time.After(backoff + jitter):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

// Stop cancels all reader loops and closes readers.
func (c *Consumer) Stop() {
	c.stopOnce.Do(func() {
		if c.cancel != nil {
			c.cancel()
		}
		for _, reader := range c.readers {
			_ = reader.Close()
		}
	})
}
