package usecase

import (
	"testing"

	"RankPull/internal/domain/models"
)

func TestFormatTimestampSentinel(t *testing.T) {
	if got := FormatTimestamp(0); got != "Not available" {
		t.Fatalf("zero timestamp: got %q", got)
	}
	if got := FormatTimestamp(-5); got != "Not available" {
		t.Fatalf("negative timestamp: got %q", got)
	}
}

func TestFormatTimestampSecondsAndMillisAgree(t *testing.T) {
	// Same instant expressed in seconds and in milliseconds must render
	// identically.
	const sec = int64(1_700_000_000)
	fromSec := FormatTimestamp(sec)
	fromMillis := FormatTimestamp(sec * 1000)
	if fromSec != fromMillis {
		t.Fatalf("seconds %q != millis %q", fromSec, fromMillis)
	}
	if fromSec == "Not available" {
		t.Fatalf("valid timestamp rendered as sentinel")
	}
}

func TestNormalizePerformanceRounding(t *testing.T) {
	raw := &models.RawPerformance{
		LastTradeTime: 1_700_000_000_000,
		Stats: []models.RawPerformanceStat{
			{PeriodType: "DAILY", StatisticsType: "ROI", Value: 0.123456789},
			{PeriodType: "DAILY", StatisticsType: "PNL", Value: 12.345},
			{PeriodType: "ALL", StatisticsType: "PNL", Value: -7.005},
		},
	}

	rec := NormalizePerformance(raw)

	if v, ok := rec.Value(models.PeriodDaily, models.StatROI); !ok || v != 0.123457 {
		t.Fatalf("daily ROI: got %v ok=%v, want 0.123457", v, ok)
	}
	if v, ok := rec.Value(models.PeriodDaily, models.StatPNL); !ok || v != 12.35 {
		t.Fatalf("daily PNL: got %v ok=%v, want 12.35", v, ok)
	}
	// Half away from zero also on the negative side.
	if v, ok := rec.Value(models.PeriodAll, models.StatPNL); !ok || v != -7.01 {
		t.Fatalf("all PNL: got %v ok=%v, want -7.01", v, ok)
	}
}

func TestNormalizePerformanceIgnoresUnknownCombinations(t *testing.T) {
	raw := &models.RawPerformance{
		Stats: []models.RawPerformanceStat{
			{PeriodType: "YEARLY", StatisticsType: "ROI", Value: 1},
			{PeriodType: "DAILY", StatisticsType: "SHARPE", Value: 2},
			{PeriodType: "WEEKLY", StatisticsType: "ROI", Value: 0.5},
		},
	}

	rec := NormalizePerformance(raw)

	if _, ok := rec.Value("YEARLY", models.StatROI); ok {
		t.Fatalf("unknown period leaked into record")
	}
	if _, ok := rec.Value(models.PeriodDaily, "SHARPE"); ok {
		t.Fatalf("unknown statistic leaked into record")
	}
	if v, ok := rec.Value(models.PeriodWeekly, models.StatROI); !ok || v != 0.5 {
		t.Fatalf("weekly ROI: got %v ok=%v, want 0.5", v, ok)
	}
	if rec.LastTrade != "Not available" {
		t.Fatalf("missing trade time: got %q", rec.LastTrade)
	}
}

func TestNormalizePositions(t *testing.T) {
	raw := &models.RawPositionBook{
		UpdateTimestamp: 1_700_000_000_000,
		Positions: []models.RawPosition{
			{Symbol: "BTCUSDT", Amount: 1.5, Leverage: 20, EntryPrice: 27123.4567, MarkPrice: 27200.0014, PNL: 114.861, ROE: 0.08467},
			{Symbol: "ETHUSDT", Amount: -3, Leverage: 10, EntryPrice: 1800.5, MarkPrice: 1790.1239, PNL: -31.125, ROE: -0.0576},
		},
	}

	book := NormalizePositions(raw, models.LongPositive)

	if len(book.Positions) != 2 {
		t.Fatalf("positions: got %d, want 2", len(book.Positions))
	}

	long := book.Positions[0]
	if long.Side != "Long" {
		t.Fatalf("positive amount side: got %q", long.Side)
	}
	if long.EntryPrice != 27123.457 || long.MarkPrice != 27200.001 {
		t.Fatalf("prices not rounded to 3dp: entry=%v mark=%v", long.EntryPrice, long.MarkPrice)
	}
	if long.PNL != 114.86 {
		t.Fatalf("PNL: got %v, want 114.86", long.PNL)
	}
	if long.ROE != 8.47 {
		t.Fatalf("ROE percent: got %v, want 8.47", long.ROE)
	}

	short := book.Positions[1]
	if short.Side != "Short" {
		t.Fatalf("negative amount side: got %q", short.Side)
	}
	if short.ROE != -5.76 {
		t.Fatalf("negative ROE percent: got %v, want -5.76", short.ROE)
	}
}

func TestNormalizePositionsShortPositiveConvention(t *testing.T) {
	raw := &models.RawPositionBook{
		Positions: []models.RawPosition{
			{Symbol: "BTCUSDT", Amount: 2},
			{Symbol: "ETHUSDT", Amount: -2},
		},
	}

	book := NormalizePositions(raw, models.ShortPositive)

	if book.Positions[0].Side != "Short" || book.Positions[1].Side != "Long" {
		t.Fatalf("flipped convention: got %q/%q", book.Positions[0].Side, book.Positions[1].Side)
	}
}
