package backtest

import (
	"time"
)

// EquityPoint is one sample of total account value (cash plus
// unrealized P&L), taken at each bar's close.
type EquityPoint struct {
	Time   time.Time
	Equity float64
}

// DrawdownPoint is the fractional decline of equity from its running
// peak, paired index-for-index with the equity curve.
type DrawdownPoint struct {
	Time     time.Time
	Fraction float64 // [0,1]
}

// EquityCurve is the per-bar equity time series of one run.
type EquityCurve []EquityPoint

// Returns calculates per-bar simple returns from the curve.
func (e EquityCurve) Returns() []float64 {
	if len(e) < 2 {
		return nil
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1].Equity
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (e[i].Equity-prev)/prev)
	}
	return returns
}

// Final returns the last equity value, or the fallback when empty.
func (e EquityCurve) Final(fallback float64) float64 {
	if len(e) == 0 {
		return fallback
	}
	return e[len(e)-1].Equity
}

// DrawdownCurve is the per-bar drawdown series of one run.
type DrawdownCurve []DrawdownPoint

// Max returns the deepest drawdown fraction observed.
func (d DrawdownCurve) Max() float64 {
	max := 0.0
	for _, p := range d {
		if p.Fraction > max {
			max = p.Fraction
		}
	}
	return max
}
