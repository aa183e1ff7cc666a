package committee

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"TradeCommittee/internal/domain/models"
)

func f64(v float64) *float64 { return &v }
func bptr(v bool) *bool      { return &v }

func TestDetectRegime_NoVIX(t *testing.T) {
	// other market fields must not matter without a VIX reading
	r := DetectRegime(models.MarketSnapshot{
		SP500Change:    1.5,
		SPYAbove200EMA: bptr(true),
		Breadth:        2.0,
	})

	assert.Equal(t, models.RegimeUnknown, r.Regime)
	assert.Equal(t, 10, r.Score)
	assert.Empty(t, r.SectorBias.Boost)
	assert.Empty(t, r.SectorBias.Penalize)
}

func TestDetectRegime_RiskOn(t *testing.T) {
	r := DetectRegime(models.MarketSnapshot{
		VIX:            f64(15),
		SPYAbove200EMA: bptr(true),
		Breadth:        1.3,
	})

	assert.Equal(t, models.RegimeRiskOn, r.Regime)
	assert.Equal(t, MaxRegimeScore, r.Score)
	assert.Contains(t, r.SectorBias.Boost, "tech")
	assert.Empty(t, r.SectorBias.Penalize)
}

func TestDetectRegime_RiskOnWithoutBreadth(t *testing.T) {
	r := DetectRegime(models.MarketSnapshot{
		VIX:            f64(16),
		SPYAbove200EMA: bptr(true),
	})

	assert.Equal(t, models.RegimeRiskOn, r.Regime)
	assert.Equal(t, MaxRegimeScore, r.Score)
}

func TestDetectRegime_RiskOff(t *testing.T) {
	r := DetectRegime(models.MarketSnapshot{VIX: f64(27), SPYAbove200EMA: bptr(true)})
	assert.Equal(t, models.RegimeRiskOff, r.Regime)
	assert.Equal(t, 5, r.Score)
	assert.Contains(t, r.SectorBias.Penalize, "tech")
}

func TestDetectRegime_RiskOffExtreme(t *testing.T) {
	r := DetectRegime(models.MarketSnapshot{VIX: f64(32)})
	assert.Equal(t, models.RegimeRiskOff, r.Regime)
	assert.Equal(t, 0, r.Score)
}

func TestDetectRegime_RiskOffBrokenTrend(t *testing.T) {
	// moderate VIX reads risk-off when the index sits under its 200 EMA
	r := DetectRegime(models.MarketSnapshot{VIX: f64(22), SPYAbove200EMA: bptr(false)})
	assert.Equal(t, models.RegimeRiskOff, r.Regime)
	assert.Equal(t, 5, r.Score)
}

func TestDetectRegime_Neutral(t *testing.T) {
	r := DetectRegime(models.MarketSnapshot{VIX: f64(20), SPYAbove200EMA: bptr(true)})
	assert.Equal(t, models.RegimeNeutral, r.Regime)
	assert.Equal(t, 10, r.Score)
	assert.Empty(t, r.SectorBias.Boost)
}

func TestApplySectorAdjustment_BoostCapped(t *testing.T) {
	regime := DetectRegime(models.MarketSnapshot{VIX: f64(15), SPYAbove200EMA: bptr(true), Breadth: 1.3})

	assert.Equal(t, 75, ApplySectorAdjustment(70, "tech", regime))
	// 98 + 5 caps at 100, never 103
	assert.Equal(t, 100, ApplySectorAdjustment(98, "tech", regime))
}

func TestApplySectorAdjustment_PenaltyFloored(t *testing.T) {
	regime := DetectRegime(models.MarketSnapshot{VIX: f64(27)})

	assert.Equal(t, 40, ApplySectorAdjustment(50, "growth", regime))
	assert.Equal(t, 0, ApplySectorAdjustment(4, "small_caps", regime))
}

func TestApplySectorAdjustment_SubstringCaseInsensitive(t *testing.T) {
	regime := DetectRegime(models.MarketSnapshot{VIX: f64(15), SPYAbove200EMA: bptr(true)})

	assert.Equal(t, 55, ApplySectorAdjustment(50, "Information Technology", regime))
	assert.Equal(t, 50, ApplySectorAdjustment(50, "energy", regime))
	assert.Equal(t, 50, ApplySectorAdjustment(50, "", regime))
}

func TestApplySectorAdjustment_RiskOffBias(t *testing.T) {
	regime := DetectRegime(models.MarketSnapshot{VIX: f64(27)})
	assert.Equal(t, 55, ApplySectorAdjustment(50, "healthcare", regime))
	assert.Equal(t, 40, ApplySectorAdjustment(50, "tech", regime))
}
