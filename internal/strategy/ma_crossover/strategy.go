package ma_crossover

import (
	"fmt"
	"math"

	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/hindsightlabs/hindsight/internal/indicator"
	"github.com/hindsightlabs/hindsight/internal/strategy"
)

// MACrossover implements a moving average crossover strategy over the
// full bar series: buy on golden cross, sell on death cross.
type MACrossover struct {
	fastPeriod int
	slowPeriod int
}

// New creates a new MA Crossover strategy
func New(fastPeriod, slowPeriod int) *MACrossover {
	return &MACrossover{
		fastPeriod: fastPeriod,
		slowPeriod: slowPeriod,
	}
}

func (m *MACrossover) Name() string {
	return "ma_crossover"
}

func (m *MACrossover) Description() string {
	return fmt.Sprintf("MA Crossover (%d/%d)", m.fastPeriod, m.slowPeriod)
}

func (m *MACrossover) Init(cfg strategy.Config) error {
	if fast, ok := cfg.Params["fast_period"].(int); ok {
		m.fastPeriod = fast
	}
	if slow, ok := cfg.Params["slow_period"].(int); ok {
		m.slowPeriod = slow
	}
	if m.fastPeriod <= 0 || m.slowPeriod <= m.fastPeriod {
		return fmt.Errorf("invalid periods %d/%d", m.fastPeriod, m.slowPeriod)
	}
	return nil
}

func (m *MACrossover) CalculateSignals(bars []core.Bar) ([]core.Signal, error) {
	if len(bars) < m.slowPeriod+1 {
		return nil, nil // Not enough data
	}

	prices := make([]float64, len(bars))
	for i, bar := range bars {
		prices[i] = bar.Close
	}

	fastMA := indicator.SMA(prices, m.fastPeriod)
	slowMA := indicator.SMA(prices, m.slowPeriod)

	var signals []core.Signal
	for i := m.slowPeriod; i < len(bars); i++ {
		prevFast, currFast := fastMA[i-1], fastMA[i]
		prevSlow, currSlow := slowMA[i-1], slowMA[i]
		if math.IsNaN(prevFast) || math.IsNaN(prevSlow) {
			continue
		}

		// Golden Cross: fast crosses above slow
		if prevFast <= prevSlow && currFast > currSlow {
			signals = append(signals, core.Signal{
				Symbol:      bars[i].Symbol,
				Action:      core.ActionBuy,
				Confidence:  m.confidence(currFast, currSlow),
				Price:       bars[i].Close,
				Reason:      fmt.Sprintf("Golden Cross: MA%d (%.2f) crossed above MA%d (%.2f)", m.fastPeriod, currFast, m.slowPeriod, currSlow),
				GeneratedAt: bars[i].Time,
			})
		}

		// Death Cross: fast crosses below slow
		if prevFast >= prevSlow && currFast < currSlow {
			signals = append(signals, core.Signal{
				Symbol:      bars[i].Symbol,
				Action:      core.ActionSell,
				Confidence:  m.confidence(currFast, currSlow),
				Price:       bars[i].Close,
				Reason:      fmt.Sprintf("Death Cross: MA%d (%.2f) crossed below MA%d (%.2f)", m.fastPeriod, currFast, m.slowPeriod, currSlow),
				GeneratedAt: bars[i].Time,
			})
		}
	}

	return signals, nil
}

// confidence returns higher confidence for larger divergence
func (m *MACrossover) confidence(fast, slow float64) float64 {
	if slow == 0 {
		return 0.5
	}
	diff := math.Abs((fast - slow) / slow)

	// Scale to 0.5-0.9 range based on divergence
	confidence := 0.5 + diff*10
	if confidence > 0.9 {
		confidence = 0.9
	}
	return confidence
}
