package backtest

import "time"

// Side is the direction of a position.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// ExitReason records what closed a position.
type ExitReason string

const (
	ExitStopLoss      ExitReason = "Stop loss"
	ExitTakeProfit    ExitReason = "Take profit"
	ExitSellSignal    ExitReason = "Sell signal"
	ExitEndOfBacktest ExitReason = "End of backtest"
)

// Position is a single trade record. Positions live in the engine's
// arena and move from open to closed exactly once; the exit fields
// (ExitTime, ExitPrice, ExitReason, PnL) are set together at close and
// never before.
type Position struct {
	ID         int
	Side       Side
	EntryTime  time.Time
	EntryPrice float64
	Size       float64
	StopLoss   float64 // trigger price, 0 when disabled
	TakeProfit float64 // trigger price, 0 when disabled
	Commission float64

	ExitTime   time.Time
	ExitPrice  float64
	ExitReason ExitReason
	PnL        float64

	closed bool
}

// IsOpen reports whether the position has not been closed yet.
func (p *Position) IsOpen() bool {
	return !p.closed
}

// IsWin reports whether a closed position realized a profit.
// Zero-PnL positions are neither wins nor losses.
func (p *Position) IsWin() bool {
	return p.closed && p.PnL > 0
}

// UnrealizedPnL values an open position at the given mark price,
// net of the commission charged at entry.
func (p *Position) UnrealizedPnL(price float64) float64 {
	if p.closed {
		return 0
	}
	if p.Side == SideShort {
		return (p.EntryPrice-price)*p.Size - p.Commission
	}
	return (price-p.EntryPrice)*p.Size - p.Commission
}

// close seals the position. Exit fields are only ever written here so
// the all-or-nothing invariant on them holds.
func (p *Position) close(at time.Time, price float64, reason ExitReason) {
	if p.closed {
		return
	}
	p.ExitTime = at
	p.ExitPrice = price
	p.ExitReason = reason
	if p.Side == SideShort {
		p.PnL = (p.EntryPrice-price)*p.Size - p.Commission
	} else {
		p.PnL = (price-p.EntryPrice)*p.Size - p.Commission
	}
	p.closed = true
}
