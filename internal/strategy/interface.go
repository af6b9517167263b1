package strategy

import (
	"github.com/hindsightlabs/hindsight/internal/core"
)

// Config holds strategy configuration
type Config struct {
	Enabled bool
	Params  map[string]any
}

// Strategy defines the contract the backtest engine consumes. The
// engine hands the strategy the whole bar series up front and expects
// the returned signals ordered by timestamp; it reacts only to signals
// whose timestamp matches a bar being processed.
type Strategy interface {
	Name() string
	Description() string
	Init(cfg Config) error
	CalculateSignals(bars []core.Bar) ([]core.Signal, error)
}
