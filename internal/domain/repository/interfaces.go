package repository

import (
	"context"

	"RankPull/internal/domain/models"
)

// LeaderboardSource reads the remote leaderboard service. FetchLeaderboard
// returns up to the provider's natural page size; truncation to the reported
// top N is the pipeline's concern.
type LeaderboardSource interface {
	FetchLeaderboard(ctx context.Context) ([]models.RankEntry, error)
	FetchPerformance(ctx context.Context, traderID string) (*models.RawPerformance, error)
	FetchPositions(ctx context.Context, traderID string) (*models.RawPositionBook, error)
}

// Notifier delivers formatted reports to the messaging channel. Implementations
// retry a failed send once and surface the final outcome; callers treat send
// failures as non-fatal.
type Notifier interface {
	SendSummary(ctx context.Context, rs *models.ResultSet) error
	SendDetails(ctx context.Context, rs *models.ResultSet) error
	SendError(ctx context.Context, message string) error
}

// Publisher pushes a finished ResultSet to a downstream stream.
type Publisher interface {
	PublishResult(ctx context.Context, rs *models.ResultSet) error
	Close() error
}

// Metrics records operational metrics.
type Metrics interface {
	RecordFetchLatency(op string, seconds float64)
	RecordError(kind string)
	RecordTradersReported(n int)
	RecordMessageSent(channel string)
	RecordInvocation(result string, seconds float64)
}
