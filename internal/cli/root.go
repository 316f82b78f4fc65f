// Package cli implements the gridbill command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "gridbill",
	Short: "Utility accounts dashboard with mock payment validation",
	Long: `gridbill serves a small web dashboard for viewing utility accounts
(electricity and gas) and submitting mock credit-card payments against them.
Payments are validated and discarded — nothing is charged or persisted.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (default: $GRIDBILL_HOME/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
