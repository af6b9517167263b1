package service

import (
	"context"
	"sort"

	"github.com/hindsightlabs/hindsight/internal/backtest"
	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/hindsightlabs/hindsight/internal/strategy"
	"go.uber.org/zap"
)

// Composite score weights. Return carries the most weight, then
// risk-adjusted return, drawdown resistance, consistency, and edge.
const (
	weightReturn       = 0.30
	weightSharpe       = 0.25
	weightDrawdown     = 0.20
	weightWinRate      = 0.15
	weightProfitFactor = 0.10

	sharpeScale       = 20
	profitFactorScale = 10
)

// StrategyRanking is one strategy's placement in a comparison.
type StrategyRanking struct {
	Rank     int
	Strategy string
	Score    float64
	Metrics  backtest.Metrics
}

// CompareSummary aggregates best/worst/average figures across the
// compared strategies.
type CompareSummary struct {
	BestReturnPct  float64
	WorstReturnPct float64
	AvgReturnPct   float64

	BestSharpe  float64
	WorstSharpe float64
	AvgSharpe   float64

	BestMaxDrawdownPct  float64 // shallowest
	WorstMaxDrawdownPct float64 // deepest
	AvgMaxDrawdownPct   float64
}

// Comparison is the ranked outcome of running several strategies over
// identical bars and settings.
type Comparison struct {
	Rankings []StrategyRanking
	Summary  CompareSummary
}

// CompareStrategies runs each strategy independently on the same data
// and settings, then ranks them by composite score, descending. Each
// run uses a fresh engine, so the ranking is fair: strategy order
// cannot influence any run's outcome.
func (s *Service) CompareStrategies(ctx context.Context, strats []strategy.Strategy, bars []core.Bar, settings backtest.Settings) (*Comparison, error) {
	if len(strats) == 0 {
		return nil, core.ErrNoData
	}

	rankings := make([]StrategyRanking, 0, len(strats))
	for _, strat := range strats {
		res, err := s.RunBacktest(ctx, strat, bars, settings)
		if err != nil {
			return nil, err
		}
		rankings = append(rankings, StrategyRanking{
			Strategy: res.Strategy,
			Score:    compositeScore(res.Metrics),
			Metrics:  res.Metrics,
		})
	}

	sort.SliceStable(rankings, func(i, j int) bool {
		return rankings[i].Score > rankings[j].Score
	})
	for i := range rankings {
		rankings[i].Rank = i + 1
	}

	if s.registry != nil {
		s.registry.CountComparison(len(strats))
	}
	s.logger.Info("strategy comparison completed",
		zap.Int("strategies", len(strats)),
		zap.String("best", rankings[0].Strategy),
	)

	return &Comparison{
		Rankings: rankings,
		Summary:  summarize(rankings),
	}, nil
}

// compositeScore blends the headline metrics into a single figure,
// floored at zero.
func compositeScore(m backtest.Metrics) float64 {
	score := m.TotalReturnPct*weightReturn +
		m.SharpeRatio*sharpeScale*weightSharpe +
		(100-m.MaxDrawdownPct)*weightDrawdown +
		m.WinRate*weightWinRate +
		m.ProfitFactor*profitFactorScale*weightProfitFactor
	if score < 0 {
		return 0
	}
	return score
}

func summarize(rankings []StrategyRanking) CompareSummary {
	first := rankings[0].Metrics
	sum := CompareSummary{
		BestReturnPct:       first.TotalReturnPct,
		WorstReturnPct:      first.TotalReturnPct,
		BestSharpe:          first.SharpeRatio,
		WorstSharpe:         first.SharpeRatio,
		BestMaxDrawdownPct:  first.MaxDrawdownPct,
		WorstMaxDrawdownPct: first.MaxDrawdownPct,
	}

	for _, r := range rankings {
		m := r.Metrics
		if m.TotalReturnPct > sum.BestReturnPct {
			sum.BestReturnPct = m.TotalReturnPct
		}
		if m.TotalReturnPct < sum.WorstReturnPct {
			sum.WorstReturnPct = m.TotalReturnPct
		}
		if m.SharpeRatio > sum.BestSharpe {
			sum.BestSharpe = m.SharpeRatio
		}
		if m.SharpeRatio < sum.WorstSharpe {
			sum.WorstSharpe = m.SharpeRatio
		}
		if m.MaxDrawdownPct < sum.BestMaxDrawdownPct {
			sum.BestMaxDrawdownPct = m.MaxDrawdownPct
		}
		if m.MaxDrawdownPct > sum.WorstMaxDrawdownPct {
			sum.WorstMaxDrawdownPct = m.MaxDrawdownPct
		}
		sum.AvgReturnPct += m.TotalReturnPct
		sum.AvgSharpe += m.SharpeRatio
		sum.AvgMaxDrawdownPct += m.MaxDrawdownPct
	}

	n := float64(len(rankings))
	sum.AvgReturnPct /= n
	sum.AvgSharpe /= n
	sum.AvgMaxDrawdownPct /= n
	return sum
}
