package rsi_reversal

import (
	"fmt"
	"math"

	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/hindsightlabs/hindsight/internal/indicator"
	"github.com/hindsightlabs/hindsight/internal/strategy"
)

// RSIReversal buys oversold bars and sells overbought bars. Crossings
// of the extreme bands (10/90) escalate to strong signals.
type RSIReversal struct {
	period     int
	oversold   float64
	overbought float64
}

// New creates an RSI reversal strategy with the classic 30/70 bands.
func New(period int) *RSIReversal {
	return &RSIReversal{
		period:     period,
		oversold:   30,
		overbought: 70,
	}
}

func (r *RSIReversal) Name() string {
	return "rsi_reversal"
}

func (r *RSIReversal) Description() string {
	return fmt.Sprintf("RSI Reversal (%d, %.0f/%.0f)", r.period, r.oversold, r.overbought)
}

func (r *RSIReversal) Init(cfg strategy.Config) error {
	if period, ok := cfg.Params["period"].(int); ok {
		r.period = period
	}
	if v, ok := cfg.Params["oversold"].(float64); ok {
		r.oversold = v
	}
	if v, ok := cfg.Params["overbought"].(float64); ok {
		r.overbought = v
	}
	if r.period <= 0 || r.oversold >= r.overbought {
		return fmt.Errorf("invalid rsi config (period=%d bands=%.0f/%.0f)", r.period, r.oversold, r.overbought)
	}
	return nil
}

func (r *RSIReversal) CalculateSignals(bars []core.Bar) ([]core.Signal, error) {
	if len(bars) <= r.period+1 {
		return nil, nil
	}

	prices := make([]float64, len(bars))
	for i, bar := range bars {
		prices[i] = bar.Close
	}
	rsi := indicator.RSI(prices, r.period)

	var signals []core.Signal
	for i := r.period + 1; i < len(bars); i++ {
		prev, curr := rsi[i-1], rsi[i]
		if math.IsNaN(prev) || math.IsNaN(curr) {
			continue
		}

		switch {
		// Crossing up out of oversold territory
		case prev < r.oversold && curr >= r.oversold:
			action := core.ActionBuy
			if prev < r.oversold-20 {
				action = core.ActionStrongBuy
			}
			signals = append(signals, core.Signal{
				Symbol:      bars[i].Symbol,
				Action:      action,
				Confidence:  r.confidence(prev, r.oversold),
				Price:       bars[i].Close,
				Reason:      fmt.Sprintf("RSI recovered from oversold (%.1f -> %.1f)", prev, curr),
				GeneratedAt: bars[i].Time,
			})

		// Crossing down out of overbought territory
		case prev > r.overbought && curr <= r.overbought:
			action := core.ActionSell
			if prev > r.overbought+20 {
				action = core.ActionStrongSell
			}
			signals = append(signals, core.Signal{
				Symbol:      bars[i].Symbol,
				Action:      action,
				Confidence:  r.confidence(prev, r.overbought),
				Price:       bars[i].Close,
				Reason:      fmt.Sprintf("RSI fell from overbought (%.1f -> %.1f)", prev, curr),
				GeneratedAt: bars[i].Time,
			})
		}
	}

	return signals, nil
}

// confidence grows with the distance the RSI traveled past the band.
func (r *RSIReversal) confidence(extreme, band float64) float64 {
	depth := math.Abs(extreme-band) / 30
	confidence := 0.5 + depth*0.4
	if confidence > 0.9 {
		confidence = 0.9
	}
	return confidence
}
