package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List registered strategies",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup()
		if err != nil {
			return err
		}
		defer env.logger.Sync()

		for _, s := range env.registry.All() {
			fmt.Printf("%-16s %s\n", s.Name(), s.Description())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
