package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TradeCommittee/internal/domain/models"
)

type fakePublisher struct {
	published int
	batches   int
	closed    int
}

func (f *fakePublisher) Publish(context.Context, *models.CommitteeDecision) error {
	f.published++
	return nil
}

func (f *fakePublisher) PublishBatch(_ context.Context, ds []*models.CommitteeDecision) error {
	f.batches++
	f.published += len(ds)
	return nil
}

func (f *fakePublisher) Close() error {
	f.closed++
	return nil
}

type fakeStore struct {
	stored int
}

func (f *fakeStore) Init(context.Context) error { return nil }

func (f *fakeStore) Store(context.Context, *models.CommitteeDecision) error {
	f.stored++
	return nil
}

func (f *fakeStore) StoreBatch(_ context.Context, ds []*models.CommitteeDecision) error {
	f.stored += len(ds)
	return nil
}

func (f *fakeStore) Query(context.Context, string, time.Time, time.Time, int) ([]*models.CommitteeDecision, error) {
	return nil, nil
}

func (f *fakeStore) Health(context.Context) error { return nil }

func TestDecisionProcessor_KafkaBackend(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	p := NewDecisionProcessor(pub, store, &fakeMetrics{}, "kafka")

	d := decision("TEST", models.DecisionBuy, 80)
	require.NoError(t, p.Process(context.Background(), &d))
	require.NoError(t, p.ProcessBatch(context.Background(), []*models.CommitteeDecision{&d, &d}))

	assert.Equal(t, 3, pub.published)
	assert.Equal(t, 1, pub.batches)
	assert.Zero(t, store.stored)
}

func TestDecisionProcessor_ClickHouseBackend(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	p := NewDecisionProcessor(pub, store, &fakeMetrics{}, "clickhouse")

	d := decision("TEST", models.DecisionBuy, 80)
	require.NoError(t, p.Process(context.Background(), &d))

	assert.Equal(t, 1, store.stored)
	assert.Zero(t, pub.published)
}

func TestDecisionProcessor_UnknownBackend(t *testing.T) {
	metrics := &fakeMetrics{}
	p := NewDecisionProcessor(&fakePublisher{}, &fakeStore{}, metrics, "carrier_pigeon")

	d := decision("TEST", models.DecisionBuy, 80)
	assert.Error(t, p.Process(context.Background(), &d))
	assert.Equal(t, 1, metrics.errors)
}

func TestDecisionProcessor_CloseOnlyClosesPublisher(t *testing.T) {
	pub := &fakePublisher{}
	p := NewDecisionProcessor(pub, &fakeStore{}, &fakeMetrics{}, "kafka")

	p.Close()

	assert.Equal(t, 1, pub.closed)
}

func TestDecisionProcessor_NilAndEmpty(t *testing.T) {
	p := NewDecisionProcessor(&fakePublisher{}, &fakeStore{}, &fakeMetrics{}, "kafka")

	assert.Error(t, p.Process(context.Background(), nil))
	assert.NoError(t, p.ProcessBatch(context.Background(), nil))
}
