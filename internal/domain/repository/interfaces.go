package repository

import (
	"context"
	"time"

	"TradeCommittee/internal/domain/models"
)

// Quote is a single price/volume observation relayed from the market stream.
type Quote struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp int64
}

// QuoteStream is a live feed of last-trade quotes for watched symbols.
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// SnapshotStore holds the latest externally computed snapshots the scanner
// evaluates when a scan request does not inline its own.
type SnapshotStore interface {
	PutTicker(ctx context.Context, t models.TickerSnapshot) error
	GetTicker(ctx context.Context, symbol string) (models.TickerSnapshot, bool, error)
	PutMarket(ctx context.Context, m models.MarketSnapshot) error
	GetMarket(ctx context.Context) (models.MarketSnapshot, bool, error)
}

// DecisionStore persists committee decisions for audit and review.
// The underlying connection is owned and closed by its client, not here.
type DecisionStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, d *models.CommitteeDecision) error
	StoreBatch(ctx context.Context, ds []*models.CommitteeDecision) error
	Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.CommitteeDecision, error)
	Health(ctx context.Context) error
}

// DecisionPublisher pushes decisions to downstream consumers.
type DecisionPublisher interface {
	Publish(ctx context.Context, d *models.CommitteeDecision) error
	PublishBatch(ctx context.Context, ds []*models.CommitteeDecision) error
	Close() error
}

// CatalystSource answers "is there a known upcoming event for this symbol".
type CatalystSource interface {
	Upcoming(ctx context.Context, symbol string) (*models.CatalystDescriptor, error)
}

// Metrics records operational counters for the committee service.
type Metrics interface {
	RecordDecision(symbol string, decision models.Decision)
	RecordScore(symbol string, score int)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
