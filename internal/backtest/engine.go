package backtest

import (
	"context"
	"time"

	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/hindsightlabs/hindsight/internal/strategy"
	"go.uber.org/zap"
)

// Engine replays a chronological bar series against a strategy's
// signals and produces a trade ledger plus equity and drawdown curves.
// One engine serves one run at a time; runs never share engines, so
// concurrent backtests each get their own instance.
type Engine struct {
	settings Settings
	logger   *zap.Logger

	capital       float64
	highWaterMark float64
	positions     []Position // arena, indexed by Position.ID
	equity        EquityCurve
	drawdowns     DrawdownCurve
}

// New creates an engine for the given settings.
func New(settings Settings, logger ...*zap.Logger) *Engine {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	e := &Engine{settings: settings, logger: l}
	e.Reset()
	return e
}

// Reset returns the engine to its pre-run state.
func (e *Engine) Reset() {
	e.capital = e.settings.InitialCapital
	e.highWaterMark = e.settings.InitialCapital
	e.positions = nil
	e.equity = nil
	e.drawdowns = nil
}

// Run executes the simulation. The strategy sees the whole bar series
// up front (a batch contract, not streaming); the engine then walks the
// bars once, matching signals to bars by timestamp.
//
// Business conditions never produce errors: an empty or non-chronological
// bar stream yields a zero-valued result, and rejected entries are silent
// no-ops. Errors are returned only for invalid settings, a failing
// strategy, or context cancellation between bar iterations.
func (e *Engine) Run(ctx context.Context, strat strategy.Strategy, bars []core.Bar) (*Result, error) {
	if err := e.settings.Validate(); err != nil {
		return nil, err
	}
	e.Reset()

	bars = e.boundedBars(bars)
	if len(bars) == 0 || !core.Chronological(bars) {
		return e.result(strat.Name(), nil, nil), nil
	}

	signals, err := strat.CalculateSignals(bars)
	if err != nil {
		return nil, core.WrapError(core.ErrStrategyFailed, err)
	}
	byTime := indexSignals(signals)

	for i := range bars {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		bar := &bars[i]

		// Exits first: a position stopped out this bar never acts again
		// within the same bar.
		e.checkExits(bar)

		for _, sig := range byTime[bar.Time.UnixNano()] {
			e.processSignal(sig, bar)
		}

		equity := e.capital
		for j := range e.positions {
			equity += e.positions[j].UnrealizedPnL(bar.Close)
		}
		e.equity = append(e.equity, EquityPoint{Time: bar.Time, Equity: equity})

		if equity > e.highWaterMark {
			e.highWaterMark = equity
		}
		// Negative equity (a losing short can overdraw the account) would
		// push the raw fraction past 1; the curve stays in [0,1].
		dd := 0.0
		if e.highWaterMark > 0 {
			dd = (e.highWaterMark - equity) / e.highWaterMark
			if dd > 1 {
				dd = 1
			}
		}
		e.drawdowns = append(e.drawdowns, DrawdownPoint{Time: bar.Time, Fraction: dd})
	}

	// Every position contributes to the ledger: whatever is still open
	// is closed at the final bar's close.
	last := &bars[len(bars)-1]
	for j := range e.positions {
		if e.positions[j].IsOpen() {
			e.closePosition(&e.positions[j], last.Time, last.Close, ExitEndOfBacktest)
		}
	}

	return e.result(strat.Name(), bars, signals), nil
}

// boundedBars applies the optional date bounds from the settings.
func (e *Engine) boundedBars(bars []core.Bar) []core.Bar {
	start, end := e.settings.StartDate, e.settings.EndDate
	if start.IsZero() && end.IsZero() {
		return bars
	}
	out := make([]core.Bar, 0, len(bars))
	for _, b := range bars {
		if !start.IsZero() && b.Time.Before(start) {
			continue
		}
		if !end.IsZero() && b.Time.After(end) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// indexSignals groups signals by timestamp, preserving strategy order
// within each bar.
func indexSignals(signals []core.Signal) map[int64][]core.Signal {
	byTime := make(map[int64][]core.Signal, len(signals))
	for _, sig := range signals {
		key := sig.GeneratedAt.UnixNano()
		byTime[key] = append(byTime[key], sig)
	}
	return byTime
}

// checkExits closes open positions whose stop-loss or take-profit level
// was touched inside the bar's range. Fills happen at the trigger price
// itself, not at the bar extreme; stop-loss takes precedence when both
// levels sit inside the same bar.
func (e *Engine) checkExits(bar *core.Bar) {
	for j := range e.positions {
		p := &e.positions[j]
		if !p.IsOpen() {
			continue
		}
		switch p.Side {
		case SideLong:
			if p.StopLoss > 0 && bar.Low <= p.StopLoss {
				e.closePosition(p, bar.Time, p.StopLoss, ExitStopLoss)
			} else if p.TakeProfit > 0 && bar.High >= p.TakeProfit {
				e.closePosition(p, bar.Time, p.TakeProfit, ExitTakeProfit)
			}
		case SideShort:
			if p.StopLoss > 0 && bar.High >= p.StopLoss {
				e.closePosition(p, bar.Time, p.StopLoss, ExitStopLoss)
			} else if p.TakeProfit > 0 && bar.Low <= p.TakeProfit {
				e.closePosition(p, bar.Time, p.TakeProfit, ExitTakeProfit)
			}
		}
	}
}

func (e *Engine) processSignal(sig core.Signal, bar *core.Bar) {
	switch {
	case sig.Action.IsEntry():
		e.enterLong(bar)
	case sig.Action.IsExit():
		if e.settings.AllowShort {
			e.enterShort(bar)
		} else {
			e.closeLongs(bar)
		}
	}
}

// enterLong opens a long position at the bar's open with unfavorable
// slippage. Entries rejected by the position limit or by insufficient
// capital are silent no-ops.
func (e *Engine) enterLong(bar *core.Bar) {
	if e.openCount() >= e.settings.MaxPositions {
		return
	}
	entryPrice := bar.Open * (1 + e.settings.Slippage)
	size := e.positionSize(entryPrice)
	if size <= 0 || size*entryPrice > e.capital {
		return
	}

	p := Position{
		ID:         len(e.positions),
		Side:       SideLong,
		EntryTime:  bar.Time,
		EntryPrice: entryPrice,
		Size:       size,
		Commission: e.settings.CommissionRate * size * entryPrice,
	}
	if e.settings.StopLossPercent > 0 {
		p.StopLoss = entryPrice * (1 - e.settings.StopLossPercent/100)
	}
	if e.settings.TakeProfitPercent > 0 {
		p.TakeProfit = entryPrice * (1 + e.settings.TakeProfitPercent/100)
	}
	e.positions = append(e.positions, p)
}

// enterShort mirrors enterLong. Shorts deliberately carry no capital
// sufficiency check: a short sale raises cash rather than spending it,
// so capital may go negative only when the trade loses.
func (e *Engine) enterShort(bar *core.Bar) {
	if e.openCount() >= e.settings.MaxPositions {
		return
	}
	entryPrice := bar.Open * (1 - e.settings.Slippage)
	size := e.positionSize(entryPrice)
	if size <= 0 {
		return
	}

	p := Position{
		ID:         len(e.positions),
		Side:       SideShort,
		EntryTime:  bar.Time,
		EntryPrice: entryPrice,
		Size:       size,
		Commission: e.settings.CommissionRate * size * entryPrice,
	}
	if e.settings.StopLossPercent > 0 {
		p.StopLoss = entryPrice * (1 + e.settings.StopLossPercent/100)
	}
	if e.settings.TakeProfitPercent > 0 {
		p.TakeProfit = entryPrice * (1 - e.settings.TakeProfitPercent/100)
	}
	e.positions = append(e.positions, p)
}

// closeLongs force-closes every open long at the bar's open. Used when
// a sell signal arrives and short selling is disabled.
func (e *Engine) closeLongs(bar *core.Bar) {
	for j := range e.positions {
		p := &e.positions[j]
		if p.IsOpen() && p.Side == SideLong {
			e.closePosition(p, bar.Time, bar.Open, ExitSellSignal)
		}
	}
}

// closePosition fills the exit with slippage against the holder and
// realizes the P&L into capital. Commission was computed at entry and
// is subtracted exactly once, inside the realized P&L.
func (e *Engine) closePosition(p *Position, at time.Time, price float64, reason ExitReason) {
	if p.Side == SideShort {
		price *= 1 + e.settings.Slippage
	} else {
		price *= 1 - e.settings.Slippage
	}
	p.close(at, price, reason)
	e.capital += p.PnL
}

func (e *Engine) positionSize(entryPrice float64) float64 {
	if entryPrice <= 0 {
		return 0
	}
	switch e.settings.Sizing.Method {
	case SizeFixedAmount:
		return e.settings.Sizing.Amount / entryPrice
	case SizePercentOfCapital:
		return e.capital * e.settings.Sizing.Percent / 100 / entryPrice
	default:
		return 0
	}
}

func (e *Engine) openCount() int {
	n := 0
	for j := range e.positions {
		if e.positions[j].IsOpen() {
			n++
		}
	}
	return n
}

func (e *Engine) result(name string, bars []core.Bar, signals []core.Signal) *Result {
	res := &Result{
		Strategy:      name,
		Signals:       signals,
		Positions:     e.positions,
		EquityCurve:   e.equity,
		DrawdownCurve: e.drawdowns,
		Metrics:       Calculate(e.equity, e.drawdowns, e.positions, e.settings.InitialCapital),
	}
	if len(bars) > 0 {
		res.Symbol = bars[0].Symbol
		res.StartDate = bars[0].Time
		res.EndDate = bars[len(bars)-1].Time
	}
	return res
}
