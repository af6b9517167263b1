package service

import "time"

// ExportResults flattens a stored run into primitive key/value pairs.
// How the pairs get serialized (JSON, CSV, table) is the caller's
// concern.
func (s *Service) ExportResults(id string) (map[string]any, error) {
	rec, err := s.history.Get(id)
	if err != nil {
		return nil, err
	}

	m := rec.Metrics
	return map[string]any{
		"id":                     rec.ID,
		"strategy":               rec.Strategy,
		"ran_at":                 rec.RanAt.Format(time.RFC3339),
		"start_date":             m.StartDate.Format(time.RFC3339),
		"end_date":               m.EndDate.Format(time.RFC3339),
		"initial_capital":        rec.Settings.InitialCapital,
		"final_equity":           m.FinalEquity,
		"total_return":           m.TotalReturn,
		"total_return_pct":       m.TotalReturnPct,
		"annualized_return_pct":  m.AnnualizedReturnPct,
		"volatility_pct":         m.VolatilityPct,
		"sharpe_ratio":           m.SharpeRatio,
		"sortino_ratio":          m.SortinoRatio,
		"calmar_ratio":           m.CalmarRatio,
		"max_drawdown_pct":       m.MaxDrawdownPct,
		"max_drawdown":           m.MaxDrawdown,
		"recovery_factor":        m.RecoveryFactor,
		"total_trades":           m.TotalTrades,
		"winning_trades":         m.WinningTrades,
		"losing_trades":          m.LosingTrades,
		"win_rate":               m.WinRate,
		"avg_win":                m.AvgWin,
		"avg_loss":               m.AvgLoss,
		"largest_win":            m.LargestWin,
		"largest_loss":           m.LargestLoss,
		"profit_factor":          m.ProfitFactor,
		"payoff_ratio":           m.PayoffRatio,
		"expectancy":             m.Expectancy,
		"max_consecutive_wins":   m.MaxConsecutiveWins,
		"max_consecutive_losses": m.MaxConsecutiveLosses,
		"best_bar_pct":           m.BestBarPct,
		"worst_bar_pct":          m.WorstBarPct,
		"positive_bars":          m.PositiveBars,
		"negative_bars":          m.NegativeBars,
	}, nil
}
