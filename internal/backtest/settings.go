package backtest

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hindsightlabs/hindsight/internal/core"
)

// SizingMethod selects how position size is derived from capital.
type SizingMethod string

const (
	SizeFixedAmount      SizingMethod = "fixed"
	SizePercentOfCapital SizingMethod = "percent_of_capital"
)

// Sizing is the position sizing policy.
// Amount applies to SizeFixedAmount, Percent to SizePercentOfCapital.
type Sizing struct {
	Method  SizingMethod `mapstructure:"method" validate:"required,oneof=fixed percent_of_capital"`
	Amount  float64      `mapstructure:"amount" validate:"gte=0"`
	Percent float64      `mapstructure:"percent" validate:"gte=0,lte=100"`
}

// Settings is the immutable configuration for a single backtest run.
// A zero StopLossPercent or TakeProfitPercent disables that exit rule;
// zero StartDate/EndDate leave the bar range unbounded.
type Settings struct {
	InitialCapital    float64   `mapstructure:"initial_capital" validate:"gt=0"`
	CommissionRate    float64   `mapstructure:"commission_rate" validate:"gte=0"`
	Slippage          float64   `mapstructure:"slippage" validate:"gte=0"`
	Sizing            Sizing    `mapstructure:"sizing"`
	MaxPositions      int       `mapstructure:"max_positions" validate:"gte=1"`
	AllowShort        bool      `mapstructure:"allow_short"`
	StopLossPercent   float64   `mapstructure:"stop_loss_percent" validate:"gte=0,lt=100"`
	TakeProfitPercent float64   `mapstructure:"take_profit_percent" validate:"gte=0"`
	StartDate         time.Time `mapstructure:"start_date"`
	EndDate           time.Time `mapstructure:"end_date"`
}

// DefaultSettings returns settings for a plain long-only cash account.
func DefaultSettings() Settings {
	return Settings{
		InitialCapital: 100000,
		CommissionRate: 0.001,
		Slippage:       0,
		Sizing:         Sizing{Method: SizePercentOfCapital, Percent: 10},
		MaxPositions:   1,
		AllowShort:     false,
	}
}

var validate = validator.New()

// Validate checks the settings before a run starts. Invalid settings are
// configuration errors and are reported before any simulation happens.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return core.WrapError(core.ErrInvalidSettings, err)
	}

	// Cross-field checks the tag syntax cannot express.
	switch s.Sizing.Method {
	case SizeFixedAmount:
		if s.Sizing.Amount <= 0 {
			return core.WrapError(core.ErrInvalidSettings, errSizingAmount)
		}
	case SizePercentOfCapital:
		if s.Sizing.Percent <= 0 {
			return core.WrapError(core.ErrInvalidSettings, errSizingPercent)
		}
	}
	if !s.StartDate.IsZero() && !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate) {
		return core.WrapError(core.ErrInvalidSettings, errDateRange)
	}
	return nil
}

var (
	errSizingAmount  = &core.Error{Code: "INVALID_SETTINGS", Message: "fixed sizing requires amount > 0"}
	errSizingPercent = &core.Error{Code: "INVALID_SETTINGS", Message: "percent sizing requires percent > 0"}
	errDateRange     = &core.Error{Code: "INVALID_SETTINGS", Message: "end date before start date"}
)
