// Command trackerctl administers the task tracker: schema migrations, sample
// data, and offline reports over the configured record store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tasktracker/internal/app"
	"tasktracker/internal/config"
	"tasktracker/internal/logger"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "trackerctl",
		Short:         "Task tracker administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.InitWriter(cmd.ErrOrStderr(), logLevel, false)
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		migrateCmd(),
		seedCmd(),
		insightsCmd(),
		achievementsCmd(),
		templatesCmd(),
		eventsCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "trackerctl %s\n", version)
			},
		},
	)
	return cmd
}

// withApp loads config, wires the app and closes it after fn
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg, err := config.Read()
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
