package main

import (
	"github.com/spf13/cobra"
)

var (
	indicatorData   string
	indicatorSymbol string
)

var indicatorCmd = &cobra.Command{
	Use:   "indicator [name]",
	Short: "Backtest a raw indicator's signals",
	Long:  "Wrap a single indicator (sma_crossover, ema_crossover, rsi) behind the strategy contract and backtest it",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndicator,
}

func init() {
	indicatorCmd.Flags().StringVar(&indicatorData, "data", "", "CSV file with OHLCV bars")
	indicatorCmd.Flags().StringVar(&indicatorSymbol, "symbol", "", "Symbol label for the bars")

	rootCmd.AddCommand(indicatorCmd)
}

func runIndicator(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	bars, settings, err := env.loadData(indicatorData, indicatorSymbol)
	if err != nil {
		return err
	}

	res, err := env.service.RunIndicatorBacktest(cmd.Context(), args[0], bars, settings)
	if err != nil {
		return err
	}

	printReport(res, settings)
	return nil
}
