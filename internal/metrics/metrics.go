package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Cycle outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Notification results.
const (
	NotifySent     = "sent"
	NotifyFailed   = "failed"
	NotifyDisabled = "disabled"
)

// Metrics holds the Prometheus collectors for the signal loop.
type Metrics struct {
	CyclesTotal        *prometheus.CounterVec // labels: outcome
	DecisionsTotal     *prometheus.CounterVec // labels: decision
	NotificationsTotal *prometheus.CounterVec // labels: result
	LastRate           prometheus.Gauge
	CycleDuration      prometheus.Histogram

	mu          sync.RWMutex
	lastCycle   time.Time
	lastOutcome string
	lastErr     string
}

// NewMetrics creates all collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CyclesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsentinel_cycles_total",
			Help: "Signal cycles run, by outcome",
		}, []string{"outcome"}),
		DecisionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsentinel_decisions_total",
			Help: "Trade decisions produced, by decision",
		}, []string{"decision"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxsentinel_notifications_total",
			Help: "Alert deliveries, by result",
		}, []string{"result"}),
		LastRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fxsentinel_last_rate",
			Help: "Most recent exchange rate fetched",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxsentinel_cycle_duration_seconds",
			Help:    "Wall time of one signal cycle",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.CyclesTotal,
		m.DecisionsTotal,
		m.NotificationsTotal,
		m.LastRate,
		m.CycleDuration,
	)
	return m
}

// ObserveCycle records the end of a cycle started at start.
func (m *Metrics) ObserveCycle(start time.Time, err error) {
	outcome := OutcomeOK
	msg := ""
	if err != nil {
		outcome = OutcomeError
		msg = err.Error()
	}
	m.CyclesTotal.WithLabelValues(outcome).Inc()
	m.CycleDuration.Observe(time.Since(start).Seconds())

	m.mu.Lock()
	m.lastCycle = time.Now()
	m.lastOutcome = outcome
	m.lastErr = msg
	m.mu.Unlock()
}

// Status is a snapshot of the most recent cycle.
type Status struct {
	LastCycle   time.Time `json:"last_cycle,omitempty"`
	LastOutcome string    `json:"last_outcome,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
}

// Snapshot returns the most recent cycle status. The zero Status means no
// cycle has finished yet.
func (m *Metrics) Snapshot() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Status{LastCycle: m.lastCycle, LastOutcome: m.lastOutcome, LastError: m.lastErr}
}
