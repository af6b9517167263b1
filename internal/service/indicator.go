package service

import (
	"math"

	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/hindsightlabs/hindsight/internal/indicator"
	"github.com/hindsightlabs/hindsight/internal/strategy"
	"github.com/hindsightlabs/hindsight/internal/strategy/ma_crossover"
	"github.com/hindsightlabs/hindsight/internal/strategy/rsi_reversal"
)

// signalFunc adapts a plain signal-calculation function to the
// Strategy contract. This is the minimal shape external indicator code
// has to satisfy to be backtested.
type signalFunc struct {
	name string
	desc string
	fn   func(bars []core.Bar) ([]core.Signal, error)
}

func (s *signalFunc) Name() string                   { return s.name }
func (s *signalFunc) Description() string            { return s.desc }
func (s *signalFunc) Init(cfg strategy.Config) error { return nil }

func (s *signalFunc) CalculateSignals(bars []core.Bar) ([]core.Signal, error) {
	return s.fn(bars)
}

// indicatorStrategy maps an indicator name to a ready-to-run strategy.
func indicatorStrategy(name string) (strategy.Strategy, error) {
	switch name {
	case "sma_crossover", "ma_crossover":
		return ma_crossover.New(10, 30), nil
	case "rsi":
		return rsi_reversal.New(14), nil
	case "ema_crossover":
		return &signalFunc{
			name: "ema_crossover",
			desc: "EMA Crossover (12/26)",
			fn:   emaCrossSignals,
		}, nil
	default:
		return nil, core.ErrUnknownIndicator
	}
}

func emaCrossSignals(bars []core.Bar) ([]core.Signal, error) {
	const fast, slow = 12, 26
	if len(bars) < slow+1 {
		return nil, nil
	}

	prices := make([]float64, len(bars))
	for i, bar := range bars {
		prices[i] = bar.Close
	}
	fastEMA := indicator.EMA(prices, fast)
	slowEMA := indicator.EMA(prices, slow)

	var signals []core.Signal
	for i := slow; i < len(bars); i++ {
		if math.IsNaN(fastEMA[i-1]) || math.IsNaN(slowEMA[i-1]) {
			continue
		}
		crossedUp := fastEMA[i-1] <= slowEMA[i-1] && fastEMA[i] > slowEMA[i]
		crossedDown := fastEMA[i-1] >= slowEMA[i-1] && fastEMA[i] < slowEMA[i]
		if !crossedUp && !crossedDown {
			continue
		}

		action := core.ActionBuy
		reason := "EMA fast crossed above slow"
		if crossedDown {
			action = core.ActionSell
			reason = "EMA fast crossed below slow"
		}
		signals = append(signals, core.Signal{
			Symbol:      bars[i].Symbol,
			Action:      action,
			Confidence:  0.6,
			Price:       bars[i].Close,
			Reason:      reason,
			GeneratedAt: bars[i].Time,
		})
	}
	return signals, nil
}
