package backtest

import (
	"math"
	"time"
)

// Annualization constants. Per-bar volatility is scaled by a fixed 252
// periods per year regardless of the actual bar frequency.
const (
	PeriodsPerYear = 252
	DaysPerYear    = 365.25
)

// Metrics is an immutable snapshot of performance figures derived from
// one run's equity curve, drawdown curve, and closed-position ledger.
// Every ratio with a zero denominator resolves to 0, never NaN or Inf.
type Metrics struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	FinalEquity         float64 `json:"final_equity"`
	TotalReturn         float64 `json:"total_return"`
	TotalReturnPct      float64 `json:"total_return_pct"`
	AnnualizedReturnPct float64 `json:"annualized_return_pct"`
	VolatilityPct       float64 `json:"volatility_pct"`
	SharpeRatio         float64 `json:"sharpe_ratio"`
	SortinoRatio        float64 `json:"sortino_ratio"`
	CalmarRatio         float64 `json:"calmar_ratio"`
	MaxDrawdownPct      float64 `json:"max_drawdown_pct"`
	MaxDrawdown         float64 `json:"max_drawdown"`
	RecoveryFactor      float64 `json:"recovery_factor"`

	TotalTrades          int     `json:"total_trades"`
	WinningTrades        int     `json:"winning_trades"`
	LosingTrades         int     `json:"losing_trades"`
	WinRate              float64 `json:"win_rate"`
	AvgWin               float64 `json:"avg_win"`
	AvgLoss              float64 `json:"avg_loss"`
	LargestWin           float64 `json:"largest_win"`
	LargestLoss          float64 `json:"largest_loss"`
	ProfitFactor         float64 `json:"profit_factor"`
	PayoffRatio          float64 `json:"payoff_ratio"`
	Expectancy           float64 `json:"expectancy"`
	MaxConsecutiveWins   int     `json:"max_consecutive_wins"`
	MaxConsecutiveLosses int     `json:"max_consecutive_losses"`

	BestBarPct   float64 `json:"best_bar_pct"`
	WorstBarPct  float64 `json:"worst_bar_pct"`
	PositiveBars int     `json:"positive_bars"`
	NegativeBars int     `json:"negative_bars"`
}

// Calculate derives metrics from a run's output. It is a pure function:
// identical inputs always produce an identical snapshot. An empty
// equity curve yields an all-zero snapshot.
func Calculate(equity EquityCurve, drawdowns DrawdownCurve, positions []Position, initialCapital float64) Metrics {
	var m Metrics
	if len(equity) == 0 {
		return m
	}

	m.StartDate = equity[0].Time
	m.EndDate = equity[len(equity)-1].Time
	m.FinalEquity = equity.Final(initialCapital)

	m.TotalReturn = m.FinalEquity - initialCapital
	if initialCapital > 0 {
		m.TotalReturnPct = m.TotalReturn / initialCapital * 100
	}

	years := m.EndDate.Sub(m.StartDate).Hours() / 24 / DaysPerYear
	if years > 0 && initialCapital > 0 && m.FinalEquity > 0 {
		m.AnnualizedReturnPct = (math.Pow(m.FinalEquity/initialCapital, 1/years) - 1) * 100
	}

	returns := equity.Returns()
	m.VolatilityPct = stddev(returns) * math.Sqrt(PeriodsPerYear) * 100
	if m.VolatilityPct > 0 {
		m.SharpeRatio = m.AnnualizedReturnPct / m.VolatilityPct
	}
	downside := downsideStddev(returns) * math.Sqrt(PeriodsPerYear) * 100
	if downside > 0 {
		m.SortinoRatio = m.AnnualizedReturnPct / downside
	}

	maxDD := drawdowns.Max()
	m.MaxDrawdownPct = maxDD * 100
	m.MaxDrawdown = maxDD * initialCapital
	if m.MaxDrawdownPct > 0 {
		m.CalmarRatio = m.AnnualizedReturnPct / m.MaxDrawdownPct
	}

	m.applyTradeStats(positions)
	m.applyBarStats(returns)
	return m
}

// applyTradeStats fills the ledger-derived fields. Positions with zero
// P&L count toward the trade total but are neither wins nor losses.
func (m *Metrics) applyTradeStats(positions []Position) {
	var (
		winSum, lossSum    float64
		curWins, curLosses int
	)
	for i := range positions {
		p := &positions[i]
		if p.IsOpen() {
			continue
		}
		m.TotalTrades++
		switch {
		case p.IsWin():
			m.WinningTrades++
			winSum += p.PnL
			if p.PnL > m.LargestWin {
				m.LargestWin = p.PnL
			}
			curWins++
			curLosses = 0
			if curWins > m.MaxConsecutiveWins {
				m.MaxConsecutiveWins = curWins
			}
		case p.PnL < 0:
			m.LosingTrades++
			lossSum += p.PnL
			if p.PnL < m.LargestLoss {
				m.LargestLoss = p.PnL
			}
			curLosses++
			curWins = 0
			if curLosses > m.MaxConsecutiveLosses {
				m.MaxConsecutiveLosses = curLosses
			}
		default:
			curWins = 0
			curLosses = 0
		}
	}

	if m.TotalTrades > 0 {
		m.WinRate = float64(m.WinningTrades) / float64(m.TotalTrades) * 100
		m.Expectancy = (winSum + lossSum) / float64(m.TotalTrades)
	}
	if m.WinningTrades > 0 {
		m.AvgWin = winSum / float64(m.WinningTrades)
	}
	if m.LosingTrades > 0 {
		m.AvgLoss = lossSum / float64(m.LosingTrades)
	}
	if lossSum != 0 {
		m.ProfitFactor = winSum / math.Abs(lossSum)
	}
	if m.AvgLoss != 0 {
		m.PayoffRatio = math.Abs(m.AvgWin / m.AvgLoss)
	}
	if m.LargestLoss != 0 {
		m.RecoveryFactor = m.TotalReturn / math.Abs(m.LargestLoss)
	}
}

// applyBarStats fills the per-bar return fields.
func (m *Metrics) applyBarStats(returns []float64) {
	for _, r := range returns {
		if r > 0 {
			m.PositiveBars++
		} else if r < 0 {
			m.NegativeBars++
		}
		pct := r * 100
		if pct > m.BestBarPct {
			m.BestBarPct = pct
		}
		if pct < m.WorstBarPct {
			m.WorstBarPct = pct
		}
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mu := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - mu
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func downsideStddev(values []float64) float64 {
	negatives := make([]float64, 0, len(values))
	for _, v := range values {
		if v < 0 {
			negatives = append(negatives, v)
		}
	}
	return stddev(negatives)
}
