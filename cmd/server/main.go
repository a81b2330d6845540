package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostprobe/internal/app"
	"hostprobe/internal/shared/configs"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "hostprobe",
		Short:         "Diagnostic HTTP service reporting health, identity and metrics",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configs.LoadConfig(configPath, cmd.Flags())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
				return err
			}

			application, err := app.New(cfg, app.Output{Requests: os.Stdout, Ops: os.Stderr})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to initialize app: %v\n", err)
				return err
			}

			if err := run(cmd.Context(), application); err != nil {
				fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to an optional YAML config file")
	cmd.Flags().Int(configs.FlagPort, configs.DefaultPort, "Port to listen on (env "+configs.EnvPort+")")
	cmd.Flags().String(configs.FlagLogLevel, "info", "Operational log level (env "+configs.EnvLogLevel+")")

	return cmd
}

// run serves until the process receives SIGINT or SIGTERM, then drains
// in-flight requests for up to shutdownTimeout.
func run(parent context.Context, application *app.App) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return application.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
