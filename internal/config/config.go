package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/hindsightlabs/hindsight/internal/backtest"
	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/spf13/viper"
)

// Config is the CLI run configuration.
type Config struct {
	Data       DataConfig                `mapstructure:"data"`
	Settings   SettingsConfig            `mapstructure:"settings"`
	Strategies map[string]StrategyConfig `mapstructure:"strategies"`
}

// DataConfig points at the bar series to replay.
type DataConfig struct {
	File     string `mapstructure:"file"`
	Symbol   string `mapstructure:"symbol"`
	Interval string `mapstructure:"interval"`
}

// SettingsConfig mirrors backtest.Settings with file-friendly date
// strings (YYYY-MM-DD).
type SettingsConfig struct {
	InitialCapital    float64         `mapstructure:"initial_capital"`
	CommissionRate    float64         `mapstructure:"commission_rate"`
	Slippage          float64         `mapstructure:"slippage"`
	Sizing            backtest.Sizing `mapstructure:"sizing"`
	MaxPositions      int             `mapstructure:"max_positions"`
	AllowShort        bool            `mapstructure:"allow_short"`
	StopLossPercent   float64         `mapstructure:"stop_loss_percent"`
	TakeProfitPercent float64         `mapstructure:"take_profit_percent"`
	StartDate         string          `mapstructure:"start_date"`
	EndDate           string          `mapstructure:"end_date"`
}

// StrategyConfig holds per-strategy parameters.
type StrategyConfig struct {
	Enabled bool           `mapstructure:"enabled"`
	Params  map[string]any `mapstructure:"params"`
}

// Load reads configuration from file with environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("HINDSIGHT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Defaults()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	def := backtest.DefaultSettings()
	return &Config{
		Data: DataConfig{Interval: "1d"},
		Settings: SettingsConfig{
			InitialCapital: def.InitialCapital,
			CommissionRate: def.CommissionRate,
			Sizing:         def.Sizing,
			MaxPositions:   def.MaxPositions,
		},
	}
}

// BacktestSettings converts the file representation into run settings.
func (c *Config) BacktestSettings() (backtest.Settings, error) {
	s := backtest.Settings{
		InitialCapital:    c.Settings.InitialCapital,
		CommissionRate:    c.Settings.CommissionRate,
		Slippage:          c.Settings.Slippage,
		Sizing:            c.Settings.Sizing,
		MaxPositions:      c.Settings.MaxPositions,
		AllowShort:        c.Settings.AllowShort,
		StopLossPercent:   c.Settings.StopLossPercent,
		TakeProfitPercent: c.Settings.TakeProfitPercent,
	}

	var err error
	if s.StartDate, err = parseDate(c.Settings.StartDate); err != nil {
		return s, core.WrapError(core.ErrConfigInvalid, err)
	}
	if s.EndDate, err = parseDate(c.Settings.EndDate); err != nil {
		return s, core.WrapError(core.ErrConfigInvalid, err)
	}
	return s, s.Validate()
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return t, nil
}
