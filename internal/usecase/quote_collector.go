package usecase

import (
	"context"
	"fmt"

	"TradeCommittee/internal/domain/models"
	drepo "TradeCommittee/internal/domain/repository"
	mid "TradeCommittee/internal/middleware"
)

// SnapshotUpdater folds live quotes into the cached ticker snapshots so
// scans run against the latest observed price and session volume.
type SnapshotUpdater struct {
	snapshots drepo.SnapshotStore
	metrics   drepo.Metrics
}

func NewSnapshotUpdater(snapshots drepo.SnapshotStore, metrics drepo.Metrics) *SnapshotUpdater {
	return &SnapshotUpdater{snapshots: snapshots, metrics: metrics}
}

func (u *SnapshotUpdater) Process(ctx context.Context, q *drepo.Quote) error {
	if q == nil {
		return fmt.Errorf("quote is nil")
	}
	t, ok, err := u.snapshots.GetTicker(ctx, q.Symbol)
	if err != nil {
		u.metrics.RecordError("snapshot_read")
		return err
	}
	if !ok {
		t = models.TickerSnapshot{Symbol: q.Symbol}
	}
	t.Price = q.Price
	t.Volume += q.Volume
	if err := u.snapshots.PutTicker(ctx, t); err != nil {
		u.metrics.RecordError("snapshot_write")
		return err
	}
	return nil
}

var _ mid.QuoteProc = (*SnapshotUpdater)(nil)

// QuoteCollector collects quotes from the market stream and folds them
// into the snapshot store via the pipeline.
type QuoteCollector struct {
	stream  drepo.QuoteStream
	updater *SnapshotUpdater
	metrics drepo.Metrics
	pipe    *mid.QuotePipeline
}

// NewQuoteCollector creates a new QuoteCollector instance.
func NewQuoteCollector(stream drepo.QuoteStream, updater *SnapshotUpdater, metrics drepo.Metrics, pipe *mid.QuotePipeline) *QuoteCollector {
	return &QuoteCollector{stream: stream, updater: updater, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the quote stream is connected.
func (c *QuoteCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *QuoteCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	qCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, qCh, errCh)
	return nil
}

func (c *QuoteCollector) consume(ctx context.Context, qCh <-chan *drepo.Quote, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case q := <-qCh:
			if q == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, q)
			} else {
				_ = c.updater.Process(ctx, q)
			}
		}
	}
}

// Shutdown stops the pipeline and closes the stream.
func (c *QuoteCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.stream.Close()
}
