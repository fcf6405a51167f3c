package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchLatency    *prometheus.HistogramVec
	errorsTotal     *prometheus.CounterVec
	tradersReported prometheus.Gauge
	messagesSent    *prometheus.CounterVec
	invocations     *prometheus.CounterVec
	invocationTime  prometheus.Histogram
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		fetchLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rankpull_fetch_duration_seconds",
				Help:    "Duration of remote leaderboard API calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankpull_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		tradersReported: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "rankpull_traders_reported",
				Help: "Number of traders in the last generated result set",
			},
		),
		messagesSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankpull_messages_sent_total",
				Help: "Total number of report messages delivered per channel",
			},
			[]string{"channel"},
		),
		invocations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rankpull_invocations_total",
				Help: "Total pipeline invocations by result",
			},
			[]string{"result"},
		),
		invocationTime: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rankpull_invocation_duration_seconds",
				Help:    "End-to-end invocation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// RecordFetchLatency records a remote call latency in seconds.
func (r *Recorder) RecordFetchLatency(op string, seconds float64) {
	r.fetchLatency.WithLabelValues(op).Observe(seconds)
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordTradersReported records the size of the last result set.
func (r *Recorder) RecordTradersReported(n int) {
	r.tradersReported.Set(float64(n))
}

// RecordMessageSent records a delivered report message.
func (r *Recorder) RecordMessageSent(channel string) {
	r.messagesSent.WithLabelValues(channel).Inc()
}

// RecordInvocation records an invocation outcome and its duration.
func (r *Recorder) RecordInvocation(result string, seconds float64) {
	r.invocations.WithLabelValues(result).Inc()
	r.invocationTime.Observe(seconds)
}
