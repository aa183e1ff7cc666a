package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"TradeCommittee/internal/domain/models"
	"TradeCommittee/internal/domain/repository"
	"TradeCommittee/pkg/cache"
)

const (
	tickerKeyF    = "snapshot:ticker:%s"
	marketKey     = "snapshot:market"
	snapshotTTL   = 15 * time.Minute
	marketSnapTTL = 30 * time.Minute
)

// CacheSnapshotStore implements SnapshotStore on top of the cache service.
// Snapshots expire on their own so a stale feed cannot drive evaluations.
type CacheSnapshotStore struct {
	cache cache.Service
}

// NewCacheSnapshotStore creates a cache-backed snapshot store.
func NewCacheSnapshotStore(c cache.Service) repository.SnapshotStore {
	return &CacheSnapshotStore{cache: c}
}

func (s *CacheSnapshotStore) PutTicker(ctx context.Context, t models.TickerSnapshot) error {
	if t.Symbol == "" {
		return fmt.Errorf("snapshot store: empty symbol")
	}
	return s.cache.Set(ctx, tickerKey(t.Symbol), t, snapshotTTL)
}

func (s *CacheSnapshotStore) GetTicker(ctx context.Context, symbol string) (models.TickerSnapshot, bool, error) {
	var t models.TickerSnapshot
	err := s.cache.Get(ctx, tickerKey(symbol), &t)
	if errors.Is(err, cache.ErrCacheMiss) {
		return models.TickerSnapshot{}, false, nil
	}
	if err != nil {
		return models.TickerSnapshot{}, false, err
	}
	return t, true, nil
}

func (s *CacheSnapshotStore) PutMarket(ctx context.Context, m models.MarketSnapshot) error {
	return s.cache.Set(ctx, marketKey, m, marketSnapTTL)
}

func (s *CacheSnapshotStore) GetMarket(ctx context.Context) (models.MarketSnapshot, bool, error) {
	var m models.MarketSnapshot
	err := s.cache.Get(ctx, marketKey, &m)
	if errors.Is(err, cache.ErrCacheMiss) {
		return models.MarketSnapshot{}, false, nil
	}
	if err != nil {
		return models.MarketSnapshot{}, false, err
	}
	return m, true, nil
}

func tickerKey(symbol string) string {
	return fmt.Sprintf(tickerKeyF, strings.ToUpper(symbol))
}
