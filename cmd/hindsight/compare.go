package main

import (
	"fmt"

	"github.com/hindsightlabs/hindsight/internal/strategy"
	"github.com/spf13/cobra"
)

var (
	compareData   string
	compareSymbol string
)

var compareCmd = &cobra.Command{
	Use:   "compare [strategy...]",
	Short: "Compare strategies on the same data",
	Long:  "Run several strategies against identical data and settings and rank them by composite score",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareData, "data", "", "CSV file with OHLCV bars")
	compareCmd.Flags().StringVar(&compareSymbol, "symbol", "", "Symbol label for the bars")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.logger.Sync()

	var strats []strategy.Strategy
	if len(args) == 0 {
		strats = env.registry.All()
	} else {
		for _, name := range args {
			s, err := env.registry.MustGet(name)
			if err != nil {
				return fmt.Errorf("%w: %s (known: %v)", err, name, env.registry.Names())
			}
			strats = append(strats, s)
		}
	}

	bars, settings, err := env.loadData(compareData, compareSymbol)
	if err != nil {
		return err
	}

	cmp, err := env.service.CompareStrategies(cmd.Context(), strats, bars, settings)
	if err != nil {
		return err
	}

	fmt.Println("=== Hindsight Strategy Comparison ===")
	fmt.Printf("%-4s %-20s %8s %10s %8s %8s %8s\n",
		"Rank", "Strategy", "Score", "Return%", "Sharpe", "MaxDD%", "WinRate")
	for _, r := range cmp.Rankings {
		fmt.Printf("%-4d %-20s %8.2f %10.2f %8.2f %8.2f %7.1f%%\n",
			r.Rank, r.Strategy, r.Score,
			r.Metrics.TotalReturnPct, r.Metrics.SharpeRatio,
			r.Metrics.MaxDrawdownPct, r.Metrics.WinRate)
	}
	fmt.Println()

	s := cmp.Summary
	fmt.Printf("Return%%:  best %.2f / worst %.2f / avg %.2f\n", s.BestReturnPct, s.WorstReturnPct, s.AvgReturnPct)
	fmt.Printf("Sharpe:   best %.2f / worst %.2f / avg %.2f\n", s.BestSharpe, s.WorstSharpe, s.AvgSharpe)
	fmt.Printf("MaxDD%%:   best %.2f / worst %.2f / avg %.2f\n", s.BestMaxDrawdownPct, s.WorstMaxDrawdownPct, s.AvgMaxDrawdownPct)
	return nil
}
