package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the proof engine. A nil
// *Metrics is valid and records nothing, so tests can run without a registry.
type Metrics struct {
	ProofsStored    *prometheus.CounterVec
	Endorsements    prometheus.Counter
	BadgesMinted    prometheus.Counter
	CommandDuration *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry. Call once
// per process.
func New() *Metrics {
	return &Metrics{
		ProofsStored: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "skillexify_proofs_stored_total",
			Help: "Total number of skill proofs accepted, by platform",
		}, []string{"platform"}),
		Endorsements: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillexify_endorsements_total",
			Help: "Total number of peer endorsements recorded",
		}),
		BadgesMinted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "skillexify_badges_minted_total",
			Help: "Total number of skill badges minted, including re-mints",
		}),
		CommandDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "skillexify_command_duration_seconds",
			Help:    "Latency of engine commands",
			Buckets: prometheus.DefBuckets,
		}, []string{"command", "outcome"}),
	}
}

func (m *Metrics) IncProofsStored(platform string) {
	if m == nil {
		return
	}
	m.ProofsStored.WithLabelValues(platform).Inc()
}

func (m *Metrics) IncEndorsements() {
	if m == nil {
		return
	}
	m.Endorsements.Inc()
}

func (m *Metrics) IncBadgesMinted() {
	if m == nil {
		return
	}
	m.BadgesMinted.Inc()
}

func (m *Metrics) ObserveCommand(command, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.CommandDuration.WithLabelValues(command, outcome).Observe(d.Seconds())
}
