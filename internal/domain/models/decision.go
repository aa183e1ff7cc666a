package models

import "time"

// Decision is the committee verdict for one instrument.
type Decision string

const (
	DecisionBuy       Decision = "BUY"
	DecisionWatchlist Decision = "WATCHLIST"
	DecisionSkip      Decision = "SKIP"
	DecisionReject    Decision = "REJECT"
)

// Regime labels produced by the regime detector.
const (
	RegimeRiskOn  = "risk_on"
	RegimeRiskOff = "risk_off"
	RegimeNeutral = "neutral"
	RegimeUnknown = "unknown"
)

// SectorBias lists sectors the current regime favors or punishes.
type SectorBias struct {
	Boost    []string `json:"boost"`
	Penalize []string `json:"penalize"`
}

// RegimeResult is the regime detector output: a label, a partial score
// (0-15) and a sector bias hint consumed by the sector adjustment.
type RegimeResult struct {
	Regime     string     `json:"regime"`
	Score      int        `json:"score"`
	Reasoning  string     `json:"reasoning"`
	SectorBias SectorBias `json:"sector_bias"`
}

// EvaluatorResult is the common shape of every committee member's output.
// Reasoning lines are ordered by evaluation order within the member.
type EvaluatorResult struct {
	Style     string   `json:"style"`
	Score     int      `json:"score"`
	MaxScore  int      `json:"max_score"`
	Reasoning []string `json:"reasoning"`
}

// TurtlesSignals are the raw metrics derived by the breakout evaluator.
type TurtlesSignals struct {
	Breakout        bool    `json:"breakout"`
	VolumeConfirmed bool    `json:"volume_confirmed"`
	ATRPct          float64 `json:"atr_pct"`
	VolumeRatio     float64 `json:"volume_ratio"`
}

// TurtlesResult scores the breakout-with-volume setup (0-25).
type TurtlesResult struct {
	EvaluatorResult
	Signals TurtlesSignals `json:"signals"`
}

// SeykotaSignals are the raw metrics derived by the trend evaluator.
type SeykotaSignals struct {
	TrendAligned bool    `json:"trend_aligned"`
	Momentum10D  float64 `json:"momentum_10d"`
	AboveEMA20   bool    `json:"above_ema20"`
	EMAsGolden   bool    `json:"emas_golden"`
}

// SeykotaResult scores trend alignment (0-20).
type SeykotaResult struct {
	EvaluatorResult
	Signals SeykotaSignals `json:"signals"`
}

// CatalystSignals are the raw metrics derived by the catalyst evaluator.
type CatalystSignals struct {
	CatalystType      string  `json:"catalyst_type"`
	DaysToEvent       int     `json:"days_to_event"`
	HistoricalAvgMove float64 `json:"historical_avg_move"`
	Expectations      string  `json:"expectations"`
}

// CatalystResult scores catalyst quality and timing (0-25).
type CatalystResult struct {
	EvaluatorResult
	Signals CatalystSignals `json:"signals"`
}

// RiskRewardSignals carry the sizing math behind the risk/reward score.
type RiskRewardSignals struct {
	RRRatio           float64 `json:"rr_ratio"`
	StopATRMultiple   float64 `json:"stop_atr_multiple"`
	SuggestedPosition float64 `json:"suggested_position"`
	RiskAmount        float64 `json:"risk_amount"`
	StopPct           float64 `json:"stop_pct"`
}

// RiskRewardResult scores statistical edge (0-15). HardReject vetoes the
// whole evaluation regardless of the aggregate score.
type RiskRewardResult struct {
	EvaluatorResult
	HardReject bool              `json:"hard_reject"`
	Signals    RiskRewardSignals `json:"signals"`
}

// ScoreBreakdown itemizes every contribution to the final score.
type ScoreBreakdown struct {
	Regime           int `json:"regime"`
	Turtles          int `json:"turtles"`
	Seykota          int `json:"seykota"`
	Catalyst         int `json:"catalyst"`
	RiskReward       int `json:"risk_reward"`
	SectorAdjustment int `json:"sector_adjustment"`
	RawScore         int `json:"raw_score"`
}

// CommitteeReasoning collects each member's human-readable reasoning.
type CommitteeReasoning struct {
	Regime     string   `json:"regime"`
	Turtles    []string `json:"turtles"`
	Seykota    []string `json:"seykota"`
	Catalyst   []string `json:"catalyst"`
	RiskReward []string `json:"risk_reward"`
}

// TradeParams are the concrete trade parameters derived for the candidate.
type TradeParams struct {
	Entry     float64 `json:"entry"`
	Stop      float64 `json:"stop"`
	Target    float64 `json:"target"`
	RRRatio   float64 `json:"rr_ratio"`
	Position  float64 `json:"position"`
	StopPct   float64 `json:"stop_pct"`
	TargetPct float64 `json:"target_pct"`
}

// DecisionSignals aggregates every member's raw signal record.
type DecisionSignals struct {
	RegimeType string            `json:"regime_type"`
	Turtles    TurtlesSignals    `json:"turtles"`
	Seykota    SeykotaSignals    `json:"seykota"`
	Catalyst   CatalystSignals   `json:"catalyst"`
	RiskReward RiskRewardSignals `json:"risk_reward"`
}

// CommitteeDecision is the aggregate committee output for one instrument.
// It is produced once per evaluation and never mutated afterwards.
type CommitteeDecision struct {
	Symbol         string             `json:"symbol"`
	Decision       Decision           `json:"decision"`
	DecisionReason string             `json:"decision_reason"`
	FinalScore     int                `json:"final_score"`
	Regime         RegimeResult       `json:"regime"`
	Breakdown      ScoreBreakdown     `json:"breakdown"`
	Reasoning      CommitteeReasoning `json:"reasoning"`
	TradeParams    TradeParams        `json:"trade_params"`
	Signals        DecisionSignals    `json:"signals"`
	EvaluatedAt    time.Time          `json:"evaluated_at"`
}

// Actionable reports whether the decision is worth reporting upstream.
func (d *CommitteeDecision) Actionable() bool {
	return d.Decision == DecisionBuy || d.Decision == DecisionWatchlist
}
