package main

import (
	"fmt"

	"github.com/hindsightlabs/hindsight/internal/backtest"
	"github.com/spf13/cobra"
)

var (
	backtestData   string
	backtestSymbol string
)

var backtestCmd = &cobra.Command{
	Use:   "backtest [strategy]",
	Short: "Run backtest on a strategy",
	Long:  "Run a strategy against historical data and show performance statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runBacktest,
}

func init() {
	backtestCmd.Flags().StringVar(&backtestData, "data", "", "CSV file with OHLCV bars")
	backtestCmd.Flags().StringVar(&backtestSymbol, "symbol", "", "Symbol label for the bars")

	rootCmd.AddCommand(backtestCmd)
}

func runBacktest(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	strat, err := env.registry.MustGet(args[0])
	if err != nil {
		return fmt.Errorf("%w: %s (known: %v)", err, args[0], env.registry.Names())
	}

	bars, settings, err := env.loadData(backtestData, backtestSymbol)
	if err != nil {
		return err
	}

	res, err := env.service.RunBacktest(cmd.Context(), strat, bars, settings)
	if err != nil {
		return err
	}

	printReport(res, settings)
	return nil
}

func printReport(res *backtest.Result, settings backtest.Settings) {
	m := res.Metrics

	fmt.Println("=== Hindsight Backtest ===")
	fmt.Printf("Strategy: %s\n", res.Strategy)
	if res.Symbol != "" {
		fmt.Printf("Symbol:   %s\n", res.Symbol)
	}
	fmt.Printf("Period:   %s to %s (%d bars)\n",
		res.StartDate.Format("2006-01-02"), res.EndDate.Format("2006-01-02"), len(res.EquityCurve))
	fmt.Println()

	fmt.Printf("Initial capital:    %12.2f\n", settings.InitialCapital)
	fmt.Printf("Final equity:       %12.2f\n", m.FinalEquity)
	fmt.Printf("Total return:       %12.2f (%.2f%%)\n", m.TotalReturn, m.TotalReturnPct)
	fmt.Printf("Annualized return:  %11.2f%%\n", m.AnnualizedReturnPct)
	fmt.Printf("Volatility:         %11.2f%%\n", m.VolatilityPct)
	fmt.Printf("Sharpe ratio:       %12.2f\n", m.SharpeRatio)
	fmt.Printf("Sortino ratio:      %12.2f\n", m.SortinoRatio)
	fmt.Printf("Calmar ratio:       %12.2f\n", m.CalmarRatio)
	fmt.Printf("Max drawdown:       %11.2f%% (%.2f)\n", m.MaxDrawdownPct, m.MaxDrawdown)
	fmt.Println()

	fmt.Printf("Trades:             %6d (%d wins / %d losses)\n", m.TotalTrades, m.WinningTrades, m.LosingTrades)
	fmt.Printf("Win rate:           %5.1f%%\n", m.WinRate)
	fmt.Printf("Profit factor:      %6.2f\n", m.ProfitFactor)
	fmt.Printf("Payoff ratio:       %6.2f\n", m.PayoffRatio)
	fmt.Printf("Avg win / loss:     %.2f / %.2f\n", m.AvgWin, m.AvgLoss)
	fmt.Printf("Largest win / loss: %.2f / %.2f\n", m.LargestWin, m.LargestLoss)
	fmt.Printf("Streaks:            %d wins, %d losses\n", m.MaxConsecutiveWins, m.MaxConsecutiveLosses)
}
