package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/bokdeok/internal/app"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

func estatesCmd() *cobra.Command {
	estatesRoot := &cobra.Command{
		Use:     "estates",
		Aliases: []string{"estate"},
		Short:   "Browse listings",
	}

	estatesRoot.AddCommand(estatesListCmd(), estatesGetCmd())

	return estatesRoot
}

func estatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every listing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				estates, err := a.Listings.List(ctx)
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), estates)
				}
				if len(estates) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No listings found.")
					return nil
				}
				return printEstateTable(cmd.OutOrStdout(), estates, a.Scraps.IsScrapped)
			})
		},
	}
}

func estatesGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				e, ok, err := a.Listings.Find(ctx, domain.ListingID(args[0]))
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("listing %s not found", args[0])
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), e)
				}
				return printEstateDetail(cmd.OutOrStdout(), &e, a.Scraps.IsScrapped(e.ID))
			})
		},
	}
}
