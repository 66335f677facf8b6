package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/donaldgifford/bokdeok/internal/config"
	"github.com/donaldgifford/bokdeok/internal/devserver"
	"github.com/donaldgifford/bokdeok/internal/mockapi"
	"github.com/donaldgifford/bokdeok/internal/tracing"
	"github.com/donaldgifford/bokdeok/pkg/logger"
	domain "github.com/donaldgifford/bokdeok/pkg/types"
)

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Finalize(&config.Config{})
	}
	return config.Load(cfgFile)
}

func serveCmd() *cobra.Command {
	var (
		seed          bool
		seedPassword  string
		profileLookup bool
		port          int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the development server",
		Example: `  bokdeok-devserver serve

  # Login returns only a token; clients must fetch /user/profile
  bokdeok-devserver serve --profile-lookup --port 9090`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if cmd.Flags().Changed("profile-lookup") {
				cfg.DevServer.ProfileLookup = profileLookup
			}
			if cmd.Flags().Changed("port") {
				cfg.DevServer.Port = port
			}

			log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

			state, err := devserver.NewState(
				devserver.WithBcryptCost(bcrypt.DefaultCost),
				devserver.WithStateLogger(log),
			)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			shutdownTracing, err := tracing.Setup(ctx, cfg.Tracing, "bokdeok-devserver", devserver.Version)
			if err != nil {
				return err
			}

			if seed {
				u := mockapi.MockUser
				if _, err := state.Seed(ctx, domain.RegisterForm{
					Email:    u.Email,
					Password: seedPassword,
					Nickname: u.Nickname,
				}, mockapi.MockScraps...); err != nil {
					return err
				}
				log.Info("seeded account", "email", u.Email)
			}

			srv := devserver.New(cfg.DevServer, state, log)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down server")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return shutdownTracing(shutdownCtx)
		},
	}

	cmd.Flags().BoolVar(&seed, "seed", true, "create the sample account with scraps 1 and 3")
	cmd.Flags().StringVar(&seedPassword, "seed-password", "password", "password of the sample account")
	cmd.Flags().BoolVar(&profileLookup, "profile-lookup", false, "return only a token from login")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides config)")

	return cmd
}
