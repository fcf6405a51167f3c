package telegram

import (
	"fmt"
	"html"
	"strings"

	"RankPull/internal/domain/models"
)

var medals = []string{"🥇", "🥈", "🥉"}

func rankLabel(rank int) string {
	if rank >= 1 && rank <= len(medals) {
		return medals[rank-1]
	}
	return fmt.Sprintf("%d.", rank)
}

// formatSummary renders the ranked overview message.
func formatSummary(rs *models.ResultSet, periodType, statisticsType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Futures Leaderboard — Top %d (%s %s)</b>\n", len(rs.Traders), periodType, statisticsType)
	fmt.Fprintf(&b, "<i>%s</i>\n\n", rs.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, t := range rs.Traders {
		if t.Failed() {
			fmt.Fprintf(&b, "%s <b>%s</b> — %s data unavailable\n", rankLabel(t.Rank), html.EscapeString(t.Name), emojis["ALERT"])
			continue
		}

		line := fmt.Sprintf("%s <b>%s</b>", rankLabel(t.Rank), html.EscapeString(t.Name))
		if pnl, ok := t.Performance.Value(models.PeriodDaily, models.StatPNL); ok {
			line += fmt.Sprintf(" — PNL %.2f", pnl)
		}
		if roi, ok := t.Performance.Value(models.PeriodDaily, models.StatROI); ok {
			line += fmt.Sprintf(", ROI %.4f", roi)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// formatFailedTrader renders the placeholder message for a trader whose data
// could not be fetched.
func formatFailedTrader(t *models.TraderReport) string {
	return fmt.Sprintf("🏆 <b>#%d %s</b>\n%s  data unavailable: %s",
		t.Rank, html.EscapeString(t.Name), emojis["ALERT"], html.EscapeString(t.Err))
}

// formatTraderDetail renders one detail message. chunkIdx/chunkTotal address
// the position chunk carried by this message; performance is only included in
// the first chunk.
func formatTraderDetail(t *models.TraderReport, chunk []models.PositionRecord, chunkIdx, chunkTotal int) string {
	var b strings.Builder

	if chunkTotal > 1 {
		fmt.Fprintf(&b, "🏆 <b>#%d %s</b> (%d/%d)\n", t.Rank, html.EscapeString(t.Name), chunkIdx+1, chunkTotal)
	} else {
		fmt.Fprintf(&b, "🏆 <b>#%d %s</b>\n", t.Rank, html.EscapeString(t.Name))
	}

	if chunkIdx == 0 {
		fmt.Fprintf(&b, "Last trade: %s\n\n", t.Performance.LastTrade)
		for _, period := range models.Periods {
			roi, hasROI := t.Performance.Value(period, models.StatROI)
			pnl, hasPNL := t.Performance.Value(period, models.StatPNL)
			if !hasROI && !hasPNL {
				continue
			}
			fmt.Fprintf(&b, "<b>%s</b>: ROI %.6f, PNL %.2f\n", period, roi, pnl)
		}

		if len(t.Positions.Positions) == 0 {
			b.WriteString("\nNo open positions\n")
			return b.String()
		}
		fmt.Fprintf(&b, "\n<b>Open positions</b> (updated %s):\n", t.Positions.LastUpdate)
	}

	for _, p := range chunk {
		arrow := emojis["UP"]
		if p.PNL < 0 {
			arrow = emojis["DOWN"]
		}
		fmt.Fprintf(&b, "%s %s %s %dx | entry %.3f mark %.3f | PNL %.2f | ROE %.2f%%\n",
			arrow, html.EscapeString(p.Symbol), p.Side, p.Leverage, p.EntryPrice, p.MarkPrice, p.PNL, p.ROE)
	}
	return b.String()
}
