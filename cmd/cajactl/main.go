package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/MrJamesThe3rd/cambio/internal/app"
	"github.com/MrJamesThe3rd/cambio/internal/config"
)

var rootCmd = &cobra.Command{
	Use:               "cajactl",
	Short:             "Operator tooling for the cambio back office",
	Long:              `cajactl runs one-off maintenance tasks against the cambio database and its Redis mirror.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var cfg *config.Config

func setup(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	var err error
	if cfg, err = config.Load(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()})))

	decimal.MarshalJSONWithoutQuotes = true

	return nil
}

// openApp builds the application without starting its background loops.
func openApp(cmd *cobra.Command) (*app.App, error) {
	return app.New(cmd.Context(), cfg)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
