package models

// Raw payload shapes as returned by the leaderboard provider, before
// normalization. Field names follow the provider's JSON.

// RawPerformanceStat is one (period, statistic) entry from getOtherPerformance.
type RawPerformanceStat struct {
	PeriodType     string  `json:"periodType"`
	StatisticsType string  `json:"statisticsType"`
	Value          float64 `json:"value"`
	Rank           int     `json:"rank"`
}

// RawPerformance is the getOtherPerformance data payload. LastTradeTime is an
// epoch that may be expressed in milliseconds.
type RawPerformance struct {
	LastTradeTime int64                `json:"lastTradeTime"`
	Stats         []RawPerformanceStat `json:"performanceRetList"`
}

// RawPosition is one open position from getOtherPosition. The sign of Amount
// encodes the position side.
type RawPosition struct {
	Symbol          string  `json:"symbol"`
	EntryPrice      float64 `json:"entryPrice"`
	MarkPrice       float64 `json:"markPrice"`
	PNL             float64 `json:"pnl"`
	ROE             float64 `json:"roe"`
	Amount          float64 `json:"amount"`
	Leverage        int     `json:"leverage"`
	UpdateTimestamp int64   `json:"updateTimeStamp"`
}

// RawPositionBook is the getOtherPosition data payload.
type RawPositionBook struct {
	UpdateTimestamp int64         `json:"updateTimeStamp"`
	Positions       []RawPosition `json:"otherPositionRetList"`
}
