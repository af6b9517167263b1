package core

import "time"

// Bar represents one OHLCV observation for a fixed time interval.
type Bar struct {
	Symbol   string
	Interval string // "1m", "5m", "1d"
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   int64
	Time     time.Time
}

// IsValid checks if the bar has required fields.
func (b Bar) IsValid() bool {
	return !b.Time.IsZero() && b.Open > 0 && b.High > 0 && b.Low > 0 && b.Close > 0
}

// Chronological reports whether the bar sequence is non-decreasing in time.
func Chronological(bars []Bar) bool {
	for i := 1; i < len(bars); i++ {
		if bars[i].Time.Before(bars[i-1].Time) {
			return false
		}
	}
	return true
}

// Action represents a trading signal action
type Action string

const (
	ActionBuy        Action = "buy"
	ActionSell       Action = "sell"
	ActionHold       Action = "hold"
	ActionStrongBuy  Action = "strong_buy"
	ActionStrongSell Action = "strong_sell"
	ActionNeutral    Action = "neutral"
)

// IsEntry reports whether the action opens long exposure.
func (a Action) IsEntry() bool {
	return a == ActionBuy || a == ActionStrongBuy
}

// IsExit reports whether the action closes or reverses long exposure.
func (a Action) IsExit() bool {
	return a == ActionSell || a == ActionStrongSell
}

// Signal represents a trading signal from a strategy
type Signal struct {
	Symbol      string
	Action      Action
	Confidence  float64 // [0,1]
	Price       float64 // Price at signal generation
	Reason      string
	Strategy    string
	GeneratedAt time.Time
}
