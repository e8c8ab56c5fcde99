// Package cmd implements the offline trainer for the seller fraud model.
package cmd

import (
	"fraudGuard/pkg/logger"

	"github.com/spf13/cobra"
)

var logEnv string

var rootCmd = &cobra.Command{
	Use:   "trainer",
	Short: "Train and inspect the seller fraud model",
	Long: `trainer fits the relational graph network on the current marketplace
snapshot and writes the weight file the API server loads at startup.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logEnv)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logEnv, "env", "development", "logging environment (production logs JSON)")
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(inspectCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
