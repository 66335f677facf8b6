// Package cmd implements the bokdeok CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/donaldgifford/bokdeok/internal/app"
	"github.com/donaldgifford/bokdeok/internal/config"
	"github.com/donaldgifford/bokdeok/internal/notify"
	"github.com/donaldgifford/bokdeok/internal/tracing"
	"github.com/donaldgifford/bokdeok/pkg/logger"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bokdeok",
		Short: "CLI client for the bokdeok real-estate service",
		Long: "bokdeok signs in to the bokdeok backend, keeps the session across\n" +
			"runs, and manages your scrapped (bookmarked) listings.",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (YAML)")
	root.PersistentFlags().String("server", "", "backend base URL (overrides config)")
	root.PersistentFlags().String("output", "table", "output format (table, json)")
	root.PersistentFlags().Bool("mock", false, "answer requests from built-in fixtures")
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")

	for _, name := range []string{"config", "server", "output", "mock", "log-level"} {
		cobra.CheckErr(viper.BindPFlag(name, root.PersistentFlags().Lookup(name)))
	}

	root.AddCommand(
		loginCmd(),
		logoutCmd(),
		registerCmd(),
		whoamiCmd(),
		scrapsCmd(),
		estatesCmd(),
		versionCmd(),
	)

	return root
}

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command's
// context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// A missing .env is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "Ignoring .env:", err)
	}

	viper.SetEnvPrefix("BOKDEOK")
	viper.AutomaticEnv()
}

// loadConfig reads the config file, if any, and applies flag and
// environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if path := viper.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if server := viper.GetString("server"); server != "" {
		cfg.API.BaseURL = server
	}
	if viper.GetBool("mock") {
		cfg.Backend.Mode = config.BackendMock
	}
	if level := viper.GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}

	return config.Finalize(cfg)
}

// withApp builds and initializes the client, runs fn, and closes storage.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	shutdown, err := tracing.Setup(ctx, cfg.Tracing, "bokdeok", Version)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("flushing traces", "error", err)
		}
	}()

	a, err := app.New(ctx, cfg,
		app.WithLogger(log),
		app.WithNotifier(notify.NewBannerNotifier(cmd.ErrOrStderr())),
	)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.Init(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
