package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBacktest(t *testing.T) {
	r := NewRegistry()

	r.ObserveBacktest(true, 50*time.Millisecond)
	r.ObserveBacktest(true, 10*time.Millisecond)
	r.ObserveBacktest(false, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.backtestsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.backtestsTotal.WithLabelValues("error")))
}

func TestCountSignal(t *testing.T) {
	r := NewRegistry()

	r.CountSignal("ma_crossover", "buy")
	r.CountSignal("ma_crossover", "buy")
	r.CountSignal("ma_crossover", "sell")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.signalsTotal.WithLabelValues("ma_crossover", "buy")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.signalsTotal.WithLabelValues("ma_crossover", "sell")))
}

func TestCountComparison(t *testing.T) {
	r := NewRegistry()

	r.CountComparison(3)
	r.CountComparison(2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.comparisonsTotal))
}

func TestRegistryGathers(t *testing.T) {
	r := NewRegistry()
	r.ObserveBacktest(true, time.Millisecond)

	families, err := r.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"hindsight_backtests_total",
		"hindsight_backtest_duration_seconds",
	} {
		assert.True(t, names[want], "missing metric family %s", want)
	}
}
