package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hindsightlabs/hindsight/internal/backtest"
	"github.com/hindsightlabs/hindsight/internal/core"
	"github.com/hindsightlabs/hindsight/internal/metrics"
	"github.com/hindsightlabs/hindsight/internal/strategy"
	"go.uber.org/zap"
)

// Service orchestrates backtest runs. It owns no simulation state:
// every run gets a fresh engine, so concurrent calls never share
// mutable state beyond the mutex-guarded history store.
type Service struct {
	history  HistoryStore
	logger   *zap.Logger
	registry *metrics.Registry
}

// New creates a backtest service. The metrics registry may be nil when
// telemetry is not wanted.
func New(history HistoryStore, logger *zap.Logger, registry *metrics.Registry) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		history:  history,
		logger:   logger,
		registry: registry,
	}
}

// RunBacktest runs one strategy against the bar series and appends the
// outcome to the history. A panic inside the run is converted to an
// error rather than escaping to the caller.
func (s *Service) RunBacktest(ctx context.Context, strat strategy.Strategy, bars []core.Bar, settings backtest.Settings) (res *backtest.Result, err error) {
	started := time.Now()
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("backtest panicked: %v", r)
		}
		if s.registry != nil {
			s.registry.ObserveBacktest(err == nil, time.Since(started))
		}
	}()

	engine := backtest.New(settings, s.logger)
	res, err = engine.Run(ctx, strat, bars)
	if err != nil {
		s.logger.Warn("backtest failed",
			zap.String("strategy", strat.Name()),
			zap.Error(err),
		)
		return nil, err
	}

	rec := Record{
		ID:       uuid.NewString(),
		Strategy: res.Strategy,
		RanAt:    time.Now(),
		Settings: settings,
		Metrics:  res.Metrics,
	}
	s.history.Append(rec)

	if s.registry != nil {
		for _, sig := range res.Signals {
			s.registry.CountSignal(res.Strategy, string(sig.Action))
		}
	}
	s.logger.Info("backtest completed",
		zap.String("id", rec.ID),
		zap.String("strategy", res.Strategy),
		zap.Int("trades", res.Metrics.TotalTrades),
		zap.Float64("return_pct", res.Metrics.TotalReturnPct),
	)
	return res, nil
}

// RunIndicatorBacktest wraps a named indicator's signal output behind
// the Strategy contract and delegates to RunBacktest. Unknown names
// return core.ErrUnknownIndicator.
func (s *Service) RunIndicatorBacktest(ctx context.Context, name string, bars []core.Bar, settings backtest.Settings) (*backtest.Result, error) {
	strat, err := indicatorStrategy(name)
	if err != nil {
		return nil, err
	}
	return s.RunBacktest(ctx, strat, bars, settings)
}

// History returns the store holding past runs.
func (s *Service) History() HistoryStore {
	return s.history
}
