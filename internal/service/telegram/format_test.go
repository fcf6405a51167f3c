package telegram

import (
	"strings"
	"testing"
	"time"

	"RankPull/internal/domain/models"
)

func TestFormatSummary(t *testing.T) {
	rs := &models.ResultSet{
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Traders: []*models.TraderReport{
			{
				Rank: 1, Name: "alpha <&>",
				Performance: models.PerformanceRecord{Values: map[models.PeriodType]map[models.StatisticsType]float64{
					models.PeriodDaily: {models.StatPNL: 1234.5, models.StatROI: 0.0456},
				}},
			},
			{Rank: 2, Name: "beta", Err: "fetch performance: timeout"},
		},
	}

	msg := formatSummary(rs, "DAILY", "PNL")

	if !strings.Contains(msg, "Top 2 (DAILY PNL)") {
		t.Fatalf("header missing: %q", msg)
	}
	if !strings.Contains(msg, "🥇") {
		t.Fatalf("rank medal missing: %q", msg)
	}
	if !strings.Contains(msg, "alpha &lt;&amp;&gt;") {
		t.Fatalf("name not HTML-escaped: %q", msg)
	}
	if !strings.Contains(msg, "PNL 1234.50") || !strings.Contains(msg, "ROI 0.0456") {
		t.Fatalf("statistics missing: %q", msg)
	}
	if !strings.Contains(msg, emojis["ALERT"]) {
		t.Fatalf("failed trader not flagged: %q", msg)
	}
}

func TestFormatTraderDetailNoPositions(t *testing.T) {
	tr := &models.TraderReport{
		Rank: 4, Name: "quiet",
		Performance: models.PerformanceRecord{
			LastTrade: "2024-03-01 10:00:00",
			Values: map[models.PeriodType]map[models.StatisticsType]float64{
				models.PeriodAll: {models.StatROI: 0.123456, models.StatPNL: 42},
			},
		},
	}

	msg := formatTraderDetail(tr, nil, 0, 1)

	if !strings.Contains(msg, "#4 quiet") {
		t.Fatalf("header missing: %q", msg)
	}
	if !strings.Contains(msg, "Last trade: 2024-03-01 10:00:00") {
		t.Fatalf("last trade missing: %q", msg)
	}
	if !strings.Contains(msg, "ROI 0.123456, PNL 42.00") {
		t.Fatalf("performance line missing: %q", msg)
	}
	if !strings.Contains(msg, "No open positions") {
		t.Fatalf("empty-book line missing: %q", msg)
	}
}

func TestFormatTraderDetailChunks(t *testing.T) {
	tr := &models.TraderReport{
		Rank: 2, Name: "whale",
		Positions: models.PositionBook{
			LastUpdate: "2024-03-01 11:00:00",
			Positions: []models.PositionRecord{
				{Symbol: "BTCUSDT", Side: "Long", Leverage: 20, EntryPrice: 27000.5, MarkPrice: 27100.123, PNL: 99.5, ROE: 7.37},
				{Symbol: "ETHUSDT", Side: "Short", Leverage: 10, EntryPrice: 1800, MarkPrice: 1810, PNL: -55.25, ROE: -3.07},
			},
		},
	}

	first := formatTraderDetail(tr, tr.Positions.Positions[:1], 0, 2)
	if !strings.Contains(first, "(1/2)") {
		t.Fatalf("chunk marker missing: %q", first)
	}
	if !strings.Contains(first, emojis["UP"]) {
		t.Fatalf("profit arrow missing: %q", first)
	}
	if !strings.Contains(first, "entry 27000.500 mark 27100.123") {
		t.Fatalf("price line missing: %q", first)
	}

	second := formatTraderDetail(tr, tr.Positions.Positions[1:], 1, 2)
	if strings.Contains(second, "Last trade") {
		t.Fatalf("continuation chunk repeats performance: %q", second)
	}
	if !strings.Contains(second, emojis["DOWN"]) {
		t.Fatalf("loss arrow missing: %q", second)
	}
	if !strings.Contains(second, "ROE -3.07%") {
		t.Fatalf("ROE missing: %q", second)
	}
}

func TestFormatFailedTrader(t *testing.T) {
	tr := &models.TraderReport{Rank: 7, Name: "gone", Err: "fetch positions: 503"}
	msg := formatFailedTrader(tr)
	if !strings.Contains(msg, "#7 gone") || !strings.Contains(msg, "fetch positions: 503") {
		t.Fatalf("failed trader message: %q", msg)
	}
	if !strings.Contains(msg, emojis["ALERT"]) {
		t.Fatalf("alert emoji missing: %q", msg)
	}
}
