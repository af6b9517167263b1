package main

import (
	"fmt"

	"github.com/hindsightlabs/hindsight/internal/backtest"
	"github.com/hindsightlabs/hindsight/internal/config"
	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/hindsightlabs/hindsight/internal/logger"
	"github.com/hindsightlabs/hindsight/internal/metrics"
	"github.com/hindsightlabs/hindsight/internal/provider"
	"github.com/hindsightlabs/hindsight/internal/service"
	"github.com/hindsightlabs/hindsight/internal/strategy"
	"github.com/hindsightlabs/hindsight/internal/strategy/ma_crossover"
	"github.com/hindsightlabs/hindsight/internal/strategy/rsi_reversal"
	"go.uber.org/zap"
)

// environment bundles everything a command needs for one invocation.
type environment struct {
	cfg      *config.Config
	logger   *zap.Logger
	service  *service.Service
	registry *strategy.Registry
}

func setup() (*environment, error) {
	log := logger.Must(debug)

	cfg := config.Defaults()
	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	reg := strategy.NewRegistry(log)
	reg.Register(ma_crossover.New(10, 30))
	reg.Register(rsi_reversal.New(14))
	for name, sc := range cfg.Strategies {
		s, ok := reg.Get(name)
		if !ok {
			continue
		}
		if err := s.Init(strategy.Config{Enabled: sc.Enabled, Params: sc.Params}); err != nil {
			return nil, fmt.Errorf("configuring strategy %s: %w", name, err)
		}
	}

	svc := service.New(service.NewMemoryHistory(), log, metrics.NewRegistry())
	return &environment{cfg: cfg, logger: log, service: svc, registry: reg}, nil
}

// loadData resolves the bar series from flags or config.
func (env *environment) loadData(dataFile, symbol string) ([]core.Bar, backtest.Settings, error) {
	if dataFile == "" {
		dataFile = env.cfg.Data.File
	}
	if symbol == "" {
		symbol = env.cfg.Data.Symbol
	}
	if dataFile == "" {
		return nil, backtest.Settings{}, core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("no data file given (use --data or the config file)"))
	}

	settings, err := env.cfg.BacktestSettings()
	if err != nil {
		return nil, backtest.Settings{}, err
	}

	p := &provider.CSVProvider{Symbol: symbol, Interval: env.cfg.Data.Interval}
	bars, err := p.Load(dataFile)
	if err != nil {
		return nil, backtest.Settings{}, err
	}
	// One bar cannot produce a return; refuse it here rather than print
	// an all-zero report.
	if len(bars) < 2 {
		return nil, backtest.Settings{}, core.WrapError(core.ErrInsufficientData,
			fmt.Errorf("%s holds %d bar(s), need at least 2", dataFile, len(bars)))
	}
	return bars, settings, nil
}
