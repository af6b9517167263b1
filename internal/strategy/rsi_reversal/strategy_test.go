package rsi_reversal

import (
	"testing"
	"time"

	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/hindsightlabs/hindsight/internal/strategy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsFromCloses(closes []float64) []core.Bar {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]core.Bar, len(closes))
	for i, c := range closes {
		bars[i] = core.Bar{Symbol: "TEST", Close: c, Time: base.AddDate(0, 0, i)}
	}
	return bars
}

func TestCalculateSignals_OversoldRecoveryThenOverboughtFall(t *testing.T) {
	// Steep monotone decline drives the RSI to 0, a long rally pushes it
	// past 90, and the final drop pulls it back under the band.
	var closes []float64
	price := 100.0
	for i := 0; i < 8; i++ {
		closes = append(closes, price)
		price -= 5
	}
	for i := 0; i < 10; i++ {
		closes = append(closes, price)
		price += 5
	}
	for i := 0; i < 6; i++ {
		closes = append(closes, price)
		price -= 5
	}

	s := New(3)
	signals, err := s.CalculateSignals(barsFromCloses(closes))
	require.NoError(t, err)
	require.NotEmpty(t, signals)

	assert.Equal(t, core.ActionStrongBuy, signals[0].Action, "recovery from RSI 0 should be a strong buy")

	var sawStrongSell bool
	for _, sig := range signals {
		assert.Equal(t, "TEST", sig.Symbol)
		assert.False(t, sig.GeneratedAt.IsZero())
		assert.GreaterOrEqual(t, sig.Confidence, 0.5)
		assert.LessOrEqual(t, sig.Confidence, 0.9)
		if sig.Action == core.ActionStrongSell {
			sawStrongSell = true
		}
	}
	assert.True(t, sawStrongSell, "fall from RSI above 90 should be a strong sell")
}

func TestCalculateSignals_FlatSeriesProducesNoSignals(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}

	s := New(14)
	signals, err := s.CalculateSignals(barsFromCloses(closes))
	assert.NoError(t, err)
	assert.Empty(t, signals)
}

func TestCalculateSignals_NotEnoughData(t *testing.T) {
	s := New(14)
	signals, err := s.CalculateSignals(barsFromCloses([]float64{100, 101, 102}))
	assert.NoError(t, err)
	assert.Nil(t, signals)
}

func TestInit(t *testing.T) {
	s := New(14)
	err := s.Init(strategy.Config{Params: map[string]any{
		"period":     7,
		"oversold":   20.0,
		"overbought": 80.0,
	}})
	require.NoError(t, err)
	assert.Equal(t, "RSI Reversal (7, 20/80)", s.Description())

	err = s.Init(strategy.Config{Params: map[string]any{"oversold": 80.0, "overbought": 20.0}})
	assert.Error(t, err)
}
