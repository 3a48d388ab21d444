package usecase

import (
	"context"

	"TradeLens/internal/domain/models"
	drepo "TradeLens/internal/domain/repository"
)

// FeedCollector drains the journal WebSocket stream into the ingestor.
type FeedCollector struct {
	stream   drepo.EventStream
	ingestor *EventIngestor
	metrics  drepo.Metrics
}

func NewFeedCollector(stream drepo.EventStream, ingestor *EventIngestor, metrics drepo.Metrics) *FeedCollector {
	return &FeedCollector{stream: stream, ingestor: ingestor, metrics: metrics}
}

// IsConnected reports whether the underlying stream is connected.
func (c *FeedCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *FeedCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	recCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, recCh, errCh)
	return nil
}

func (c *FeedCollector) consume(ctx context.Context, recCh <-chan *models.RawRecord, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				c.metrics.RecordError("stream")
				if rerr := c.stream.Reconnect(ctx); rerr == nil {
					recCh, errCh = c.stream.Read(ctx)
				}
			}
		case rec, ok := <-recCh:
			if !ok {
				recCh = nil
				continue
			}
			if rec == nil {
				continue
			}
			_ = c.ingestor.Ingest(ctx, "feed", rec)
		}
	}
}

func (c *FeedCollector) Stop() error { return c.stream.Close() }
