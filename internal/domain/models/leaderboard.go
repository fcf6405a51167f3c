package models

import "time"

// PeriodType is a leaderboard statistics period.
type PeriodType string

// StatisticsType is a leaderboard statistic kind.
type StatisticsType string

const (
	PeriodDaily   PeriodType = "DAILY"
	PeriodWeekly  PeriodType = "WEEKLY"
	PeriodMonthly PeriodType = "MONTHLY"
	PeriodAll     PeriodType = "ALL"

	StatROI StatisticsType = "ROI"
	StatPNL StatisticsType = "PNL"
)

// Periods lists the reported periods in display order.
var Periods = []PeriodType{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAll}

// Statistics lists the reported statistics in display order.
var Statistics = []StatisticsType{StatROI, StatPNL}

// RankEntry is one leaderboard row. Immutable once fetched; Rank is the
// 1-based position in the provider's order, not the provider's own rank field.
type RankEntry struct {
	Rank        int    `json:"rank"`
	TraderID    string `json:"traderId"`
	DisplayName string `json:"displayName"`
}

// PerformanceRecord holds per-trader statistics keyed by (period, statistic).
// ROI values are rounded to 6 decimal places, PNL to 2.
type PerformanceRecord struct {
	LastTrade string                                    `json:"lastTrade"`
	Values    map[PeriodType]map[StatisticsType]float64 `json:"values"`
}

// Value returns the statistic for a (period, statistic) pair if present.
func (p PerformanceRecord) Value(period PeriodType, stat StatisticsType) (float64, bool) {
	stats, ok := p.Values[period]
	if !ok {
		return 0, false
	}
	v, ok := stats[stat]
	return v, ok
}

// PositionRecord is one open position in canonical form. Side is derived from
// the sign of the raw amount by the configured SideRule.
type PositionRecord struct {
	Symbol     string  `json:"symbol"`
	Side       string  `json:"side"`
	Leverage   int     `json:"leverage"`
	Amount     float64 `json:"amount"`
	EntryPrice float64 `json:"entryPrice"`
	MarkPrice  float64 `json:"markPrice"`
	PNL        float64 `json:"pnl"`
	ROE        float64 `json:"roe"` // already scaled to percent
	UpdatedAt  string  `json:"updatedAt"`
}

// PositionBook holds a trader's open positions plus the book-level update time.
type PositionBook struct {
	LastUpdate string           `json:"lastUpdate"`
	Positions  []PositionRecord `json:"positions"`
}

// TraderReport is the unit of output: one fully aggregated trader. Built
// exactly once per invocation and never mutated afterwards. A trader whose
// performance or positions fetch failed keeps its rank and identity but
// carries Err instead of data.
type TraderReport struct {
	Rank        int               `json:"rank"`
	Name        string            `json:"name"`
	TraderID    string            `json:"traderId"`
	Performance PerformanceRecord `json:"performance"`
	Positions   PositionBook      `json:"positions"`
	Err         string            `json:"error,omitempty"`
}

// Failed reports whether this trader's data could not be fetched.
func (t *TraderReport) Failed() bool {
	return t.Err != ""
}

// ResultSet is one invocation's output. Traders are ordered by rank ascending
// and ranks form a contiguous 1..len sequence regardless of fetch completion
// order.
type ResultSet struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Traders     []*TraderReport `json:"traders"`
}
