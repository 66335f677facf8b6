package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/bokdeok/internal/app"
	"github.com/donaldgifford/bokdeok/internal/resync"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

func scrapsCmd() *cobra.Command {
	scrapsRoot := &cobra.Command{
		Use:   "scraps",
		Short: "Manage scrapped listings",
		Long: "List, toggle and reconcile the listings you have scrapped.\n" +
			"Every command except list requires a signed-in session.",
	}

	scrapsRoot.AddCommand(
		scrapsListCmd(),
		scrapsToggleCmd(),
		scrapsSyncCmd(),
		scrapsWatchCmd(),
	)

	return scrapsRoot
}

func scrapsListCmd() *cobra.Command {
	var details bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scrapped listing ids",
		Example: `  bokdeok scraps list

  # Include listing titles and prices
  bokdeok scraps list --details`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				ids := a.Scraps.IDs()

				if !details {
					if jsonOutput() {
						return outputJSON(cmd.OutOrStdout(), ids)
					}
					if len(ids) == 0 {
						fmt.Fprintln(cmd.OutOrStdout(), "No scraps.")
						return nil
					}
					for _, id := range ids {
						fmt.Fprintln(cmd.OutOrStdout(), id)
					}
					return nil
				}

				all, err := a.Listings.List(ctx)
				if err != nil {
					return err
				}
				scrapped := make([]domain.Estate, 0, len(ids))
				for i := range all {
					if a.Scraps.IsScrapped(all[i].ID) {
						scrapped = append(scrapped, all[i])
					}
				}

				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), scrapped)
				}
				return printEstateTable(cmd.OutOrStdout(), scrapped, a.Scraps.IsScrapped)
			})
		},
	}

	cmd.Flags().BoolVar(&details, "details", false, "join with the listing catalogue")

	return cmd
}

func scrapsToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Scrap or unscrap a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				id := domain.ListingID(args[0])
				if _, err := a.Scraps.Toggle(ctx, id); err != nil {
					return err
				}

				state := "removed"
				if a.Scraps.IsScrapped(id) {
					state = "added"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Scrap %s %s (%d total)\n", id, state, a.Scraps.Count())
				return nil
			})
		},
	}
}

func scrapsSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile scraps with the backend",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if !a.Session.IsAuthenticated() {
					return errNotLoggedIn
				}
				if err := a.Scraps.Load(ctx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d scraps\n", a.Scraps.Count())
				return nil
			})
		},
	}
}

func scrapsWatchCmd() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep scraps reconciled until interrupted",
		Long: "Reloads scraps from the backend every scraps.resync_interval\n" +
			"and prints the count after each run. Stops on Ctrl-C.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if !a.Session.IsAuthenticated() {
					return errNotLoggedIn
				}

				sched, err := resync.New(a.Scraps, a.Config.Scraps.ResyncInterval, a.Logger(),
					resync.WithAfterRun(func() {
						fmt.Fprintf(cmd.OutOrStdout(), "%d scraps\n", a.Scraps.Count())
					}),
				)
				if err != nil {
					return err
				}

				if metricsAddr != "" {
					srv := &http.Server{
						Addr:              metricsAddr,
						Handler:           promhttp.Handler(),
						ReadHeaderTimeout: 5 * time.Second,
					}
					go func() {
						if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
							a.Logger().Warn("metrics listener stopped", "addr", metricsAddr, "error", err)
						}
					}()
					defer func() { _ = srv.Shutdown(context.WithoutCancel(ctx)) }()
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Watching every %s, %d scraps\n",
					a.Config.Scraps.ResyncInterval, a.Scraps.Count())
				sched.Start()
				<-ctx.Done()
				<-sched.Stop().Done()
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9102)")

	return cmd
}
