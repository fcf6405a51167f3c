package usecase

import (
	"RankPull/internal/domain/models"
	"RankPull/pkg/util"

	"github.com/shopspring/decimal"
)

// Pure payload normalization. No I/O, no shared state.

const (
	// timestampNotAvailable is the sentinel for absent trade timestamps.
	timestampNotAvailable = "Not available"

	timestampLayout = "2006-01-02 15:04:05"

	roiPlaces   = 6
	pnlPlaces   = 2
	pricePlaces = 3
	roePlaces   = 2
)

// FormatTimestamp converts a seconds-or-milliseconds epoch to a local calendar
// string. Zero or negative values map to the "Not available" sentinel.
func FormatTimestamp(ts int64) string {
	if ts <= 0 {
		return timestampNotAvailable
	}
	return util.EpochTime(ts).Format(timestampLayout)
}

// roundTo rounds half away from zero to the given number of decimal places.
func roundTo(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// NormalizePerformance converts a raw performance payload into canonical form.
// Only the {DAILY, WEEKLY, MONTHLY, ALL} × {ROI, PNL} grid is kept; other
// combinations are ignored. ROI is rounded to 6 decimal places, PNL to 2.
func NormalizePerformance(raw *models.RawPerformance) models.PerformanceRecord {
	rec := models.PerformanceRecord{
		LastTrade: FormatTimestamp(raw.LastTradeTime),
		Values:    make(map[models.PeriodType]map[models.StatisticsType]float64, len(models.Periods)),
	}

	for _, stat := range raw.Stats {
		period := models.PeriodType(stat.PeriodType)
		kind := models.StatisticsType(stat.StatisticsType)
		if !knownPeriod(period) || !knownStatistic(kind) {
			continue
		}

		value := stat.Value
		switch kind {
		case models.StatROI:
			value = roundTo(value, roiPlaces)
		case models.StatPNL:
			value = roundTo(value, pnlPlaces)
		}

		if rec.Values[period] == nil {
			rec.Values[period] = make(map[models.StatisticsType]float64, len(models.Statistics))
		}
		rec.Values[period][kind] = value
	}
	return rec
}

// NormalizePositions converts a raw position payload into canonical form.
// Prices are rounded to 3 decimal places, PNL to 2, and ROE is scaled to a
// percentage rounded to 2. The side label comes from the sign of the raw
// amount via the given rule.
func NormalizePositions(raw *models.RawPositionBook, side models.SideRule) models.PositionBook {
	book := models.PositionBook{
		LastUpdate: FormatTimestamp(raw.UpdateTimestamp),
		Positions:  make([]models.PositionRecord, 0, len(raw.Positions)),
	}

	for _, p := range raw.Positions {
		book.Positions = append(book.Positions, models.PositionRecord{
			Symbol:     p.Symbol,
			Side:       side(p.Amount),
			Leverage:   p.Leverage,
			Amount:     p.Amount,
			EntryPrice: roundTo(p.EntryPrice, pricePlaces),
			MarkPrice:  roundTo(p.MarkPrice, pricePlaces),
			PNL:        roundTo(p.PNL, pnlPlaces),
			ROE:        roundTo(p.ROE*100, roePlaces),
			UpdatedAt:  FormatTimestamp(p.UpdateTimestamp),
		})
	}
	return book
}

func knownPeriod(p models.PeriodType) bool {
	for _, known := range models.Periods {
		if p == known {
			return true
		}
	}
	return false
}

func knownStatistic(s models.StatisticsType) bool {
	for _, known := range models.Statistics {
		if s == known {
			return true
		}
	}
	return false
}
