package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cambio/internal/app"
	"github.com/MrJamesThe3rd/cambio/internal/config"
	cambioHttp "github.com/MrJamesThe3rd/cambio/internal/http"
	authHandler "github.com/MrJamesThe3rd/cambio/internal/http/auth"
	balanceHandler "github.com/MrJamesThe3rd/cambio/internal/http/balance"
	bankHandler "github.com/MrJamesThe3rd/cambio/internal/http/bank"
	cajaHandler "github.com/MrJamesThe3rd/cambio/internal/http/caja"
	clientHandler "github.com/MrJamesThe3rd/cambio/internal/http/client"
	currencyHandler "github.com/MrJamesThe3rd/cambio/internal/http/currency"
	operationTypeHandler "github.com/MrJamesThe3rd/cambio/internal/http/operationtype"
	operatorHandler "github.com/MrJamesThe3rd/cambio/internal/http/operator"
	syncHandler "github.com/MrJamesThe3rd/cambio/internal/http/sync"
	txHandler "github.com/MrJamesThe3rd/cambio/internal/http/transaction"
	"github.com/MrJamesThe3rd/cambio/internal/mirror"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg))

	decimal.MarshalJSONWithoutQuotes = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel()}

	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}

	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func run(ctx context.Context, cfg *config.Config) error {
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Start(ctx); err != nil {
		return err
	}

	var latest mirror.Reader
	if a.Gateway != nil {
		latest = a.Gateway
	}

	svc := a.Services

	router := cambioHttp.New(cambioHttp.Handlers{
		Auth:           authHandler.NewHandler(svc.Auth),
		Caja:           cajaHandler.NewHandler(svc.Caja),
		Balances:       balanceHandler.NewHandler(svc.Balances, svc.Caja),
		Transactions:   txHandler.NewHandler(svc.Transactions, svc.OperationTypes, latest),
		Clients:        clientHandler.NewHandler(svc.Clients),
		Currencies:     currencyHandler.NewHandler(svc.Currencies),
		OperationTypes: operationTypeHandler.NewHandler(svc.OperationTypes),
		Operators:      operatorHandler.NewHandler(svc.Operators),
		Banks:          bankHandler.NewHandler(svc.Banks),
		Sync:           syncHandler.NewHandler(a.Refresh),
	}, cambioHttp.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Tokens:      svc.Auth,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "port", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
