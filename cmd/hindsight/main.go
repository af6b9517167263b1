package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "hindsight",
	Short: "Hindsight - strategy backtesting engine",
	Long: `Hindsight replays historical OHLCV bars against trading strategies
and produces verifiable performance reports: equity curve, drawdown,
trade ledger, and risk/return ratios.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
