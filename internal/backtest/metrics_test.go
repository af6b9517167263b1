package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(i int) time.Time {
	return testBase.AddDate(0, 0, i)
}

func curve(values ...float64) (EquityCurve, DrawdownCurve) {
	eq := make(EquityCurve, len(values))
	dd := make(DrawdownCurve, len(values))
	peak := 0.0
	for i, v := range values {
		if v > peak {
			peak = v
		}
		eq[i] = EquityPoint{Time: day(i), Equity: v}
		frac := 0.0
		if peak > 0 {
			frac = (peak - v) / peak
		}
		dd[i] = DrawdownPoint{Time: day(i), Fraction: frac}
	}
	return eq, dd
}

func closedPos(pnl float64) Position {
	p := Position{Side: SideLong, EntryPrice: 100, Size: 1}
	p.close(day(1), 100+pnl, ExitSellSignal)
	return p
}

func TestCalculate_Empty(t *testing.T) {
	m := Calculate(nil, nil, nil, 100000)
	assert.Equal(t, Metrics{}, m)
}

func TestCalculate_TotalReturn(t *testing.T) {
	eq, dd := curve(10000, 10500, 11000)
	m := Calculate(eq, dd, nil, 10000)

	assert.Equal(t, 11000.0, m.FinalEquity)
	assert.Equal(t, 1000.0, m.TotalReturn)
	assert.Equal(t, 10.0, m.TotalReturnPct)
	assert.Equal(t, day(0), m.StartDate)
	assert.Equal(t, day(2), m.EndDate)
}

func TestCalculate_AnnualizedReturn(t *testing.T) {
	// Exactly one year between first and last point: annualized return
	// equals total return.
	eq := EquityCurve{
		{Time: day(0), Equity: 10000},
		{Time: day(0).Add(time.Duration(float64(24*time.Hour) * DaysPerYear)), Equity: 12000},
	}
	dd := DrawdownCurve{{Time: eq[0].Time}, {Time: eq[1].Time}}

	m := Calculate(eq, dd, nil, 10000)
	assert.InDelta(t, 20.0, m.AnnualizedReturnPct, 1e-6)
}

func TestCalculate_SingleBar_NoAnnualization(t *testing.T) {
	eq, dd := curve(10000)
	m := Calculate(eq, dd, nil, 10000)

	assert.Equal(t, 0.0, m.AnnualizedReturnPct)
	assert.Equal(t, 0.0, m.VolatilityPct)
	assert.Equal(t, 0.0, m.SharpeRatio)
}

func TestCalculate_FlatCurve_ZeroRatiosNotNaN(t *testing.T) {
	eq, dd := curve(10000, 10000, 10000, 10000)
	m := Calculate(eq, dd, nil, 10000)

	for name, v := range map[string]float64{
		"sharpe":  m.SharpeRatio,
		"sortino": m.SortinoRatio,
		"calmar":  m.CalmarRatio,
		"payoff":  m.PayoffRatio,
	} {
		assert.False(t, math.IsNaN(v), name)
		assert.False(t, math.IsInf(v, 0), name)
		assert.Equal(t, 0.0, v, name)
	}
}

func TestCalculate_Volatility(t *testing.T) {
	eq, dd := curve(10000, 11000, 9900)
	m := Calculate(eq, dd, nil, 10000)

	// Returns: +10%, -10%; population stdev = 0.1.
	assert.InDelta(t, 0.1*math.Sqrt(PeriodsPerYear)*100, m.VolatilityPct, 1e-9)
}

func TestCalculate_MaxDrawdown(t *testing.T) {
	eq, dd := curve(10000, 12000, 9000, 11000)
	m := Calculate(eq, dd, nil, 10000)

	// Peak 12000, trough 9000 -> 25%.
	assert.InDelta(t, 25.0, m.MaxDrawdownPct, 1e-9)
	// Absolute drawdown is quoted against initial capital.
	assert.InDelta(t, 2500.0, m.MaxDrawdown, 1e-9)
}

func TestCalculate_TradeStats(t *testing.T) {
	positions := []Position{
		closedPos(100), closedPos(50), closedPos(-30), closedPos(200), closedPos(-70),
	}
	eq, dd := curve(10000, 10250)
	m := Calculate(eq, dd, positions, 10000)

	assert.Equal(t, 5, m.TotalTrades)
	assert.Equal(t, 3, m.WinningTrades)
	assert.Equal(t, 2, m.LosingTrades)
	assert.InDelta(t, 60.0, m.WinRate, 1e-9)
	assert.InDelta(t, 350.0/3, m.AvgWin, 1e-9)
	assert.InDelta(t, -50.0, m.AvgLoss, 1e-9)
	assert.InDelta(t, 200.0, m.LargestWin, 1e-9)
	assert.InDelta(t, -70.0, m.LargestLoss, 1e-9)
	assert.InDelta(t, 350.0/100, m.ProfitFactor, 1e-9)
	assert.InDelta(t, (350.0/3)/50.0, m.PayoffRatio, 1e-9)
	assert.InDelta(t, 250.0/5, m.Expectancy, 1e-9)
	assert.InDelta(t, m.TotalReturn/70.0, m.RecoveryFactor, 1e-9)
}

func TestCalculate_ZeroPnLTradeIsNeitherWinNorLoss(t *testing.T) {
	positions := []Position{closedPos(100), closedPos(0), closedPos(-100)}
	eq, dd := curve(10000, 10000)
	m := Calculate(eq, dd, positions, 10000)

	assert.Equal(t, 3, m.TotalTrades)
	assert.Equal(t, 1, m.WinningTrades)
	assert.Equal(t, 1, m.LosingTrades)
}

func TestCalculate_NoLosses_ProfitFactorZero(t *testing.T) {
	positions := []Position{closedPos(100), closedPos(200)}
	eq, dd := curve(10000, 10300)
	m := Calculate(eq, dd, positions, 10000)

	assert.Equal(t, 0.0, m.ProfitFactor)
	assert.Equal(t, 0.0, m.PayoffRatio)
	assert.Equal(t, 100.0, m.WinRate)
}

func TestCalculate_Streaks(t *testing.T) {
	// W W L W W W L L W -> max 3 wins, 2 losses.
	pnls := []float64{10, 20, -5, 15, 25, 5, -10, -20, 30}
	positions := make([]Position, len(pnls))
	for i, pnl := range pnls {
		positions[i] = closedPos(pnl)
	}
	eq, dd := curve(10000, 10070)
	m := Calculate(eq, dd, positions, 10000)

	assert.Equal(t, 3, m.MaxConsecutiveWins)
	assert.Equal(t, 2, m.MaxConsecutiveLosses)
}

func TestCalculate_StreakBrokenByZeroPnL(t *testing.T) {
	pnls := []float64{10, 10, 0, 10}
	positions := make([]Position, len(pnls))
	for i, pnl := range pnls {
		positions[i] = closedPos(pnl)
	}
	eq, dd := curve(10000, 10030)
	m := Calculate(eq, dd, positions, 10000)

	assert.Equal(t, 2, m.MaxConsecutiveWins)
}

func TestCalculate_BarStats(t *testing.T) {
	eq, dd := curve(10000, 10500, 10200, 10200, 11000)
	m := Calculate(eq, dd, nil, 10000)

	assert.Equal(t, 2, m.PositiveBars)
	assert.Equal(t, 1, m.NegativeBars)
	assert.InDelta(t, 800.0/10200*100, m.BestBarPct, 1e-9)
	assert.InDelta(t, -300.0/10500*100, m.WorstBarPct, 1e-9)
}

func TestCalculate_IgnoresOpenPositions(t *testing.T) {
	open := Position{Side: SideLong, EntryPrice: 100, Size: 1}
	positions := []Position{closedPos(50), open}
	eq, dd := curve(10000, 10050)
	m := Calculate(eq, dd, positions, 10000)

	assert.Equal(t, 1, m.TotalTrades)
}

func TestStddev(t *testing.T) {
	assert.Equal(t, 0.0, stddev(nil))
	assert.InDelta(t, 2.0, stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 1e-9)
}

func TestDownsideStddev(t *testing.T) {
	assert.Equal(t, 0.0, downsideStddev([]float64{1, 2, 3}))
	// Only negatives count: -2 and -4, mean -3, population stdev 1.
	assert.InDelta(t, 1.0, downsideStddev([]float64{1, -2, 3, -4}), 1e-9)
}
