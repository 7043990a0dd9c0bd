package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	m.CyclesTotal.WithLabelValues(OutcomeOK).Inc()
	m.DecisionsTotal.WithLabelValues("SELL").Inc()
	m.NotificationsTotal.WithLabelValues(NotifySent).Inc()

	n, err := testutil.GatherAndCount(reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	assert.Panics(t, func() { NewMetrics(reg) }, "double registration")
}

func TestObserveCycle(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	assert.True(t, m.Snapshot().LastCycle.IsZero())

	m.ObserveCycle(time.Now(), nil)
	m.ObserveCycle(time.Now(), errors.New("rate unavailable"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CyclesTotal.WithLabelValues(OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CyclesTotal.WithLabelValues(OutcomeError)))

	st := m.Snapshot()
	assert.False(t, st.LastCycle.IsZero())
	assert.Equal(t, OutcomeError, st.LastOutcome)
	assert.Equal(t, "rate unavailable", st.LastError)

	m.ObserveCycle(time.Now(), nil)
	st = m.Snapshot()
	assert.Equal(t, OutcomeOK, st.LastOutcome)
	assert.Empty(t, st.LastError)
}
