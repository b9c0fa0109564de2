package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	votesCast         prometheus.Counter
	tallyRecomputes   prometheus.Counter
	skippedBallots    prometheus.Counter
	hashVerifications *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		votesCast: factory.NewCounter(prometheus.CounterOpts{
			Name: "voxen_votes_cast_total",
			Help: "Total number of ballots stored, including re-casts",
		}),
		tallyRecomputes: factory.NewCounter(prometheus.CounterOpts{
			Name: "voxen_tally_recomputes_total",
			Help: "Total number of proposal result recomputations",
		}),
		skippedBallots: factory.NewCounter(prometheus.CounterOpts{
			Name: "voxen_tally_skipped_ballots_total",
			Help: "Total number of ballots that contributed nothing to a tally",
		}),
		hashVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voxen_content_hash_verifications_total",
			Help: "Content hash verifications by outcome",
		}, []string{"match"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voxen_http_requests_total",
			Help: "HTTP requests by method, route and status code",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "voxen_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

func (m *Metrics) VoteCast() {
	if m == nil {
		return
	}
	m.votesCast.Inc()
}

func (m *Metrics) TallyRecomputed(skipped int) {
	if m == nil {
		return
	}
	m.tallyRecomputes.Inc()
	m.skippedBallots.Add(float64(skipped))
}

func (m *Metrics) HashVerified(match bool) {
	if m == nil {
		return
	}
	m.hashVerifications.WithLabelValues(strconv.FormatBool(match)).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
