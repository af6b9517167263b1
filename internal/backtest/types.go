package backtest

import (
	"time"

	"github.com/hindsightlabs/hindsight/internal/core"
)

// Result holds the complete backtest output: the derived metrics plus
// the full equity curve, drawdown curve, signal list, and the position
// ledger. By the time a Result exists every position in the ledger is
// closed.
type Result struct {
	Strategy  string
	Symbol    string
	StartDate time.Time
	EndDate   time.Time

	Signals       []core.Signal
	Positions     []Position
	EquityCurve   EquityCurve
	DrawdownCurve DrawdownCurve
	Metrics       Metrics
}

// ClosedPositions returns the ledger filtered to closed positions, in
// append order (which is chronological exit processing order).
func (r *Result) ClosedPositions() []Position {
	out := make([]Position, 0, len(r.Positions))
	for i := range r.Positions {
		if !r.Positions[i].IsOpen() {
			out = append(out, r.Positions[i])
		}
	}
	return out
}
