package committee

import (
	"fmt"
	"strings"

	"TradeCommittee/internal/domain/models"
)

// catalystTaxonomy ranks catalyst types by asymmetry. Matching is
// case-insensitive substring, first entry wins, so the list is ordered
// most-specific pattern first: "fda_decision" before "fda",
// "earnings_beat_history" before "earnings", "m&a_rumor" before both
// "m&a" and "rumor". This order is the contract; do not sort it.
var catalystTaxonomy = []struct {
	pattern string
	points  int
}{
	{"fda_decision", 8},
	{"fda_approval", 8},
	{"fda", 8},
	{"earnings_beat_history", 8},
	{"m&a_rumor", 7},
	{"m&a", 7},
	{"merger", 7},
	{"acquisition", 7},
	{"earnings", 6},
	{"product_launch", 6},
	{"investor_day", 5},
	{"analyst_upgrade", 5},
	{"buyback", 5},
	{"conference", 4},
	{"macro_event", 4},
	{"rumor", 2},
	{"speculation", 2},
	{"unknown", 2},
}

// Types where low expectations create the most upside asymmetry.
var highAsymmetryTypes = map[string]bool{
	"earnings":       true,
	"fda_decision":   true,
	"fda":            true,
	"product_launch": true,
}

const noCatalystDays = 999

// EvaluateCatalyst scores the quality and timing of a known event (0-25):
// type (8), proximity (7), historical reaction of the instrument (5) and
// expectation asymmetry (5). Without a catalyst it returns a fixed neutral
// 12 so purely technical candidates still compete.
func EvaluateCatalyst(t models.TickerSnapshot, c *models.CatalystDescriptor) models.CatalystResult {
	if c == nil {
		return models.CatalystResult{
			EvaluatorResult: models.EvaluatorResult{
				Style:     "catalyst",
				Score:     12,
				MaxScore:  MaxCatalystScore,
				Reasoning: []string{"no catalyst identified, scoring on technical setup only"},
			},
			Signals: models.CatalystSignals{
				CatalystType: "none",
				DaysToEvent:  noCatalystDays,
			},
		}
	}

	catalystType := strings.ToLower(c.Type)
	if catalystType == "" {
		catalystType = "unknown"
	}
	daysToEvent := noCatalystDays
	if c.DaysToEvent != nil {
		daysToEvent = *c.DaysToEvent
	}
	expectations := strings.ToLower(c.Expectations)
	historical := t.HistoricalEventReaction

	score := 0
	reasoning := make([]string, 0, 4)

	// 1. Catalyst type, first taxonomy match wins.
	typeScore := 2
	for _, entry := range catalystTaxonomy {
		if strings.Contains(catalystType, entry.pattern) {
			typeScore = entry.points
			break
		}
	}
	score += typeScore
	reasoning = append(reasoning, fmt.Sprintf("catalyst %s (%d/8 pts)", catalystType, typeScore))

	// 2. Proximity. Sweet spot is close enough to matter, far enough to
	// position.
	switch {
	case daysToEvent >= 3 && daysToEvent <= 7:
		score += 7
		reasoning = append(reasoning, fmt.Sprintf("optimal timing: %d days to event", daysToEvent))
	case daysToEvent >= 1 && daysToEvent <= 14:
		score += 4
		reasoning = append(reasoning, fmt.Sprintf("acceptable timing: %d days to event", daysToEvent))
	case daysToEvent > 14 && daysToEvent < 30:
		score += 2
		reasoning = append(reasoning, fmt.Sprintf("distant event: %d days (capital tied up)", daysToEvent))
	case daysToEvent >= 30:
		score += 1
		reasoning = append(reasoning, fmt.Sprintf("very distant event: %d days", daysToEvent))
	default:
		// imminent or already passed
		score += 2
		reasoning = append(reasoning, fmt.Sprintf("event imminent or past (%d days)", daysToEvent))
	}

	// 3. How the instrument historically reacts to similar events.
	switch {
	case historical >= 10:
		score += 5
		reasoning = append(reasoning, fmt.Sprintf("history: moves ~%.0f%% on similar events", historical))
	case historical >= 5:
		score += 3
		reasoning = append(reasoning, fmt.Sprintf("history: moves ~%.0f%% on similar events", historical))
	case historical > 0:
		score += 1
		reasoning = append(reasoning, fmt.Sprintf("low historical reactivity (%.0f%%)", historical))
	default:
		score += 2
		reasoning = append(reasoning, "no historical reaction data")
	}

	// 4. Expectation asymmetry.
	switch {
	case expectations == "low" && highAsymmetryTypes[catalystType]:
		score += 5
		reasoning = append(reasoning, "low expectations: positive surprise potential")
	case expectations == "neutral":
		score += 3
		reasoning = append(reasoning, "neutral expectations")
	case expectations == "high":
		score += 1
		reasoning = append(reasoning, "high expectations: limited upside, downside on a miss")
	default:
		score += 3
		reasoning = append(reasoning, "unknown expectations, assuming neutral")
	}

	return models.CatalystResult{
		EvaluatorResult: models.EvaluatorResult{
			Style:     "catalyst",
			Score:     score,
			MaxScore:  MaxCatalystScore,
			Reasoning: reasoning,
		},
		Signals: models.CatalystSignals{
			CatalystType:      catalystType,
			DaysToEvent:       daysToEvent,
			HistoricalAvgMove: historical,
			Expectations:      expectations,
		},
	}
}
