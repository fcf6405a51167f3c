package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"RankPull/internal/domain/models"
	drepo "RankPull/internal/domain/repository"
	xhttp "RankPull/pkg/http"
	xlogger "RankPull/pkg/logger"
)

// maxTraders bounds the fan-out; the leaderboard page is truncated to this
// many entries before any per-trader fetch starts.
const maxTraders = 10

// ReportBuilder runs the fetch-and-aggregate pipeline: leaderboard fetch,
// bounded concurrent per-trader fetch of performance and positions,
// normalization, and rank-ordered reassembly.
type ReportBuilder struct {
	src     drepo.LeaderboardSource
	metrics drepo.Metrics
	logger  *xlogger.Logger
	topN    int
	side    models.SideRule
}

// NewReportBuilder creates a new ReportBuilder. topN is clamped to 1..10.
func NewReportBuilder(src drepo.LeaderboardSource, metrics drepo.Metrics, logger *xlogger.Logger, topN int, side models.SideRule) *ReportBuilder {
	if topN < 1 || topN > maxTraders {
		topN = maxTraders
	}
	if side == nil {
		side = models.LongPositive
	}
	return &ReportBuilder{src: src, metrics: metrics, logger: logger, topN: topN, side: side}
}

// Build produces one ResultSet. A leaderboard fetch failure is fatal and
// returns no partial output. Per-trader fetch failures degrade that trader to
// a placeholder report carrying the error; the other traders are unaffected.
// Traders are always returned in rank order 1..len even though per-trader
// fetches complete in arbitrary order.
func (b *ReportBuilder) Build(ctx context.Context) (*models.ResultSet, error) {
	start := time.Now()

	entries, err := b.src.FetchLeaderboard(ctx)
	if err != nil {
		b.metrics.RecordError(string(xhttp.KindOf(err)))
		return nil, fmt.Errorf("fetch leaderboard: %w", err)
	}
	b.metrics.RecordFetchLatency("leaderboard", time.Since(start).Seconds())

	if len(entries) > b.topN {
		entries = entries[:b.topN]
	}

	// One goroutine per entry. Each returns exactly one report over the
	// channel; rank was fixed before fan-out, so reassembly is a sort.
	out := make(chan *models.TraderReport, len(entries))
	var wg sync.WaitGroup
	for i, entry := range entries {
		wg.Add(1)
		go func(rank int, entry models.RankEntry) {
			defer wg.Done()
			out <- b.buildTrader(ctx, rank, entry)
		}(i+1, entry)
	}
	wg.Wait()
	close(out)

	traders := make([]*models.TraderReport, 0, len(entries))
	for report := range out {
		traders = append(traders, report)
	}
	sort.Slice(traders, func(i, j int) bool {
		return traders[i].Rank < traders[j].Rank
	})

	b.metrics.RecordTradersReported(len(traders))
	b.logger.Info("result set built",
		xlogger.Int("traders", len(traders)),
		xlogger.Duration("took", time.Since(start)),
	)

	return &models.ResultSet{GeneratedAt: start, Traders: traders}, nil
}

// buildTrader fetches and normalizes one trader. The two fetches are
// sequential within a trader; a failure at either degrades the report.
func (b *ReportBuilder) buildTrader(ctx context.Context, rank int, entry models.RankEntry) *models.TraderReport {
	report := &models.TraderReport{
		Rank:     rank,
		Name:     entry.DisplayName,
		TraderID: entry.TraderID,
	}

	start := time.Now()
	rawPerf, err := b.src.FetchPerformance(ctx, entry.TraderID)
	if err != nil {
		b.degrade(report, "performance", err)
		return report
	}
	b.metrics.RecordFetchLatency("performance", time.Since(start).Seconds())

	start = time.Now()
	rawBook, err := b.src.FetchPositions(ctx, entry.TraderID)
	if err != nil {
		b.degrade(report, "positions", err)
		return report
	}
	b.metrics.RecordFetchLatency("positions", time.Since(start).Seconds())

	report.Performance = NormalizePerformance(rawPerf)
	report.Positions = NormalizePositions(rawBook, b.side)
	return report
}

func (b *ReportBuilder) degrade(report *models.TraderReport, op string, err error) {
	b.metrics.RecordError(string(xhttp.KindOf(err)))
	b.logger.Warn("trader fetch failed",
		xlogger.Int("rank", report.Rank),
		xlogger.String("trader", report.TraderID),
		xlogger.String("op", op),
		xlogger.Error(err),
	)
	report.Err = fmt.Sprintf("fetch %s: %v", op, err)
}
