package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/bokdeok/internal/devserver"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "bokdeok-devserver "+devserver.Version)
		},
	}
}
