package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"TradeCommittee/internal/domain/models"
	"TradeCommittee/internal/domain/repository"
	pkgch "TradeCommittee/pkg/clickhouse"
	applogger "TradeCommittee/pkg/logger"
)

// ClickHouseDecisionStore implements DecisionStore for ClickHouse.
// Each decision is persisted as queryable columns plus the full JSON payload
// so the audit trail keeps breakdown and reasoning intact.
type ClickHouseDecisionStore struct {
	db    *sql.DB
	table string
	l     *applogger.Logger
}

// NewClickHouseDecisionStore creates ClickHouse decision storage.
func NewClickHouseDecisionStore(ch *pkgch.Client, table string) *ClickHouseDecisionStore {
	if table == "" {
		table = "committee_decisions"
	}
	return &ClickHouseDecisionStore{db: ch.DB(), table: table}
}

// SetLogger injects a structured logger.
func (s *ClickHouseDecisionStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *ClickHouseDecisionStore) Init(ctx context.Context) error {
	q := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            evaluated_at DateTime,
            symbol LowCardinality(String),
            decision LowCardinality(String),
            reason String,
            final_score Int32,
            raw_score Int32,
            regime LowCardinality(String),
            rr_ratio Float64,
            entry Float64,
            stop Float64,
            target Float64,
            position Float64,
            payload String
        ) ENGINE = MergeTree()
        PARTITION BY toYYYYMM(evaluated_at)
        ORDER BY (symbol, evaluated_at)
    `, s.table)
	_, err := s.db.ExecContext(ctx, q)
	if err != nil {
		return fmt.Errorf("init decision table: %w", err)
	}
	return nil
}

func (s *ClickHouseDecisionStore) Store(ctx context.Context, d *models.CommitteeDecision) error {
	return s.StoreBatch(ctx, []*models.CommitteeDecision{d})
}

func (s *ClickHouseDecisionStore) StoreBatch(ctx context.Context, decisions []*models.CommitteeDecision) error {
	if len(decisions) == 0 {
		return nil
	}
	start := time.Now()

	values := make([]string, 0, len(decisions))
	args := make([]interface{}, 0, len(decisions)*13)
	for _, d := range decisions {
		if d == nil || d.Symbol == "" {
			continue
		}
		payload, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("marshal decision %s: %w", d.Symbol, err)
		}
		values = append(values, "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args, decisionRowArgs(d, payload)...)
	}
	if len(values) == 0 {
		return nil
	}

	q := fmt.Sprintf(
		"INSERT INTO %s (evaluated_at, symbol, decision, reason, final_score, raw_score, regime, rr_ratio, entry, stop, target, position, payload) VALUES %s",
		s.table, strings.Join(values, ","),
	)
	if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
		if s.l != nil {
			s.l.Error("clickhouse decision insert error",
				applogger.String("table", s.table),
				applogger.Int("rows", len(values)),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("insert decisions: %w", err)
	}
	if s.l != nil {
		s.l.Debug("clickhouse decision insert ok",
			applogger.Int("rows", len(values)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// decisionRowArgs flattens one decision into the insert column values.
// The driver splices args into the statement text, so every value here
// must be a scalar; structs would be serialized with fmt.Sprint and break
// the SQL.
func decisionRowArgs(d *models.CommitteeDecision, payload []byte) []interface{} {
	return []interface{}{
		d.EvaluatedAt,
		d.Symbol,
		string(d.Decision),
		d.DecisionReason,
		int32(d.FinalScore),
		int32(d.Breakdown.RawScore),
		d.Regime.Regime,
		d.TradeParams.RRRatio,
		d.TradeParams.Entry,
		d.TradeParams.Stop,
		d.TradeParams.Target,
		d.TradeParams.Position,
		string(payload),
	}
}

func (s *ClickHouseDecisionStore) Query(ctx context.Context, symbol string, from, to time.Time, limit int) ([]*models.CommitteeDecision, error) {
	q := fmt.Sprintf(
		"SELECT payload FROM %s WHERE symbol = ? AND evaluated_at >= ? AND evaluated_at <= ? ORDER BY evaluated_at DESC LIMIT ?",
		s.table,
	)
	rows, err := s.db.QueryContext(ctx, q, symbol, from, to, limit)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse decision query error",
				applogger.String("symbol", symbol),
				applogger.Error(err),
			)
		}
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var out []*models.CommitteeDecision
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		var d models.CommitteeDecision
		if err := json.Unmarshal([]byte(payload), &d); err != nil {
			return nil, fmt.Errorf("unmarshal decision: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (s *ClickHouseDecisionStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var _ repository.DecisionStore = (*ClickHouseDecisionStore)(nil)
