// Package cmd implements the bokdeok-devserver commands.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "bokdeok-devserver",
	Short: "Development backend for the bokdeok client",
	Long: "Serves the bokdeok authentication, profile, scrap and listing\n" +
		"endpoints from in-memory state. Data is lost on restart.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (defaults apply when empty)")
	rootCmd.AddCommand(serveCmd(), versionCmd(), openapiCmd())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
