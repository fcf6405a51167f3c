package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"RankPull/internal/domain/models"
	drepo "RankPull/internal/domain/repository"
	"RankPull/pkg/cache"
	xlogger "RankPull/pkg/logger"
)

// latestReportKey is the cache key holding the last generated ResultSet.
const latestReportKey = "report:latest"

// ReportRunner is the invocation entry point: it runs the pipeline, delivers
// summary then details to the sink, publishes the result downstream, and
// returns the trigger event unchanged. Notifier and publisher are optional;
// their failures never fail the invocation.
type ReportRunner struct {
	builder   *ReportBuilder
	notifier  drepo.Notifier
	publisher drepo.Publisher
	cache     cache.Service
	cacheTTL  time.Duration
	metrics   drepo.Metrics
	logger    *xlogger.Logger
}

// NewReportRunner creates a new ReportRunner. notifier, publisher, and store
// may be nil when the corresponding channel is not configured.
func NewReportRunner(
	builder *ReportBuilder,
	notifier drepo.Notifier,
	publisher drepo.Publisher,
	store cache.Service,
	cacheTTL time.Duration,
	metrics drepo.Metrics,
	logger *xlogger.Logger,
) *ReportRunner {
	return &ReportRunner{
		builder:   builder,
		notifier:  notifier,
		publisher: publisher,
		cache:     store,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle runs one invocation and returns the trigger event unchanged. A
// leaderboard fetch failure emits exactly one error notification and no
// ResultSet.
func (r *ReportRunner) Handle(ctx context.Context, event json.RawMessage) (json.RawMessage, error) {
	start := time.Now()

	rs, err := r.builder.Build(ctx)
	if err != nil {
		r.logger.Error("invocation failed", xlogger.Error(err))
		if r.notifier != nil {
			if nerr := r.notifier.SendError(ctx, fmt.Sprintf("Leaderboard report failed: %v", err)); nerr != nil {
				r.logger.Warn("error notification dropped", xlogger.Error(nerr))
			}
		}
		r.metrics.RecordInvocation("error", time.Since(start).Seconds())
		return event, err
	}

	// Summary first, then details; failed sends are logged and swallowed.
	if r.notifier != nil {
		if err := r.notifier.SendSummary(ctx, rs); err != nil {
			r.metrics.RecordError("notify")
			r.logger.Warn("summary not delivered", xlogger.Error(err))
		} else {
			r.metrics.RecordMessageSent("telegram")
		}
		if err := r.notifier.SendDetails(ctx, rs); err != nil {
			r.metrics.RecordError("notify")
			r.logger.Warn("details not delivered", xlogger.Error(err))
		} else {
			r.metrics.RecordMessageSent("telegram")
		}
	}

	if r.publisher != nil {
		if err := r.publisher.PublishResult(ctx, rs); err != nil {
			r.metrics.RecordError("publish")
			r.logger.Warn("result not published", xlogger.Error(err))
		} else {
			r.metrics.RecordMessageSent("kafka")
		}
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, latestReportKey, rs, r.cacheTTL); err != nil {
			r.logger.Warn("latest report not cached", xlogger.Error(err))
		}
	}

	r.metrics.RecordInvocation("ok", time.Since(start).Seconds())
	return event, nil
}

// Latest returns the last generated ResultSet, if one is cached.
func (r *ReportRunner) Latest(ctx context.Context) (*models.ResultSet, error) {
	if r.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	var rs models.ResultSet
	if err := r.cache.Get(ctx, latestReportKey, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}
