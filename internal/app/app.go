// Package app assembles the containers, services and synchronizers from config.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MrJamesThe3rd/cambio/internal/auth"
	"github.com/MrJamesThe3rd/cambio/internal/balance"
	balanceStore "github.com/MrJamesThe3rd/cambio/internal/balance/store"
	"github.com/MrJamesThe3rd/cambio/internal/bank"
	bankStore "github.com/MrJamesThe3rd/cambio/internal/bank/store"
	"github.com/MrJamesThe3rd/cambio/internal/caja"
	cajaStore "github.com/MrJamesThe3rd/cambio/internal/caja/store"
	"github.com/MrJamesThe3rd/cambio/internal/client"
	clientStore "github.com/MrJamesThe3rd/cambio/internal/client/store"
	"github.com/MrJamesThe3rd/cambio/internal/config"
	"github.com/MrJamesThe3rd/cambio/internal/currency"
	currencyStore "github.com/MrJamesThe3rd/cambio/internal/currency/store"
	"github.com/MrJamesThe3rd/cambio/internal/database"
	"github.com/MrJamesThe3rd/cambio/internal/mirror"
	mirrorStore "github.com/MrJamesThe3rd/cambio/internal/mirror/store"
	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
	operationTypeStore "github.com/MrJamesThe3rd/cambio/internal/operationtype/store"
	"github.com/MrJamesThe3rd/cambio/internal/operator"
	operatorStore "github.com/MrJamesThe3rd/cambio/internal/operator/store"
	"github.com/MrJamesThe3rd/cambio/internal/refresh"
	"github.com/MrJamesThe3rd/cambio/internal/state"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
	txStore "github.com/MrJamesThe3rd/cambio/internal/transaction/store"
)

type Services struct {
	Auth           *auth.Service
	Caja           *caja.Service
	Balances       *balance.Service
	Transactions   *transaction.Service
	Clients        *client.Service
	Currencies     *currency.Service
	OperationTypes *operationtype.Service
	Operators      *operator.Service
	Banks          *bank.Service
}

type App struct {
	Config   *config.Config
	State    *State
	Services Services
	Refresh  *refresh.Synchronizer
	// Mirror and Gateway are nil when the mirror is disabled.
	Mirror  *mirror.Synchronizer
	Gateway *mirrorStore.Store

	db          *sql.DB
	rdb         *redis.Client
	stopPersist func()
	cancel      context.CancelFunc
}

// New connects to the backends, restores local state and builds the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	if cfg.DB.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}

		slog.Info("database schema applied")
	}

	a := &App{Config: cfg, State: NewState(), db: db}

	disk, err := state.NewDisk(cfg.State.Dir)
	if err != nil {
		a.Close()
		return nil, err
	}

	if a.stopPersist, err = a.State.Persist(disk); err != nil {
		a.Close()
		return nil, err
	}

	a.wire(db, cfg)

	if cfg.Sync.MirrorEnabled {
		if a.rdb, err = mirrorStore.NewClient(ctx, cfg.Redis.URL); err != nil {
			a.Close()
			return nil, err
		}

		writerID := cfg.Sync.WriterID
		if writerID == "" {
			writerID = uuid.NewString()
		}

		a.Gateway = mirrorStore.New(a.rdb, cfg.Redis.Key, cfg.Redis.Channel)
		a.Mirror = mirror.New(a.Gateway, a.mirrorTargets(), mirror.Options{
			Debounce: cfg.Sync.MirrorDebounce,
			WriterID: writerID,
		})
	}

	return a, nil
}

func (a *App) wire(db *sql.DB, cfg *config.Config) {
	st := a.State

	var (
		transactions   = txStore.New(db)
		sessions       = cajaStore.New(db)
		balances       = balanceStore.New(db)
		clients        = clientStore.New(db)
		currencies     = currencyStore.New(db)
		operationTypes = operationTypeStore.New(db)
		operators      = operatorStore.New(db)
	)

	operatorService := operator.NewService(operators, st.Operators)

	a.Services = Services{
		Auth:           auth.NewService(operatorService, st.Auth, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		Caja:           caja.NewService(sessions, st.Session, st.Balances),
		Balances:       balance.NewService(balances, st.Balances),
		Transactions:   transaction.NewService(transactions, st.Transactions, st.Balances),
		Clients:        client.NewService(clients, st.Clients),
		Currencies:     currency.NewService(currencies, st.Currencies, st.Cryptos),
		OperationTypes: operationtype.NewService(operationTypes, st.OperationTypes),
		Operators:      operatorService,
		Banks:          bank.NewService(bankStore.New(db), st.Banks, st.BankBalances),
	}

	a.Refresh = refresh.New(refresh.Sources{
		Transactions:   transactions,
		Sessions:       sessions,
		Balances:       balances,
		Clients:        clients,
		Currencies:     currencies,
		OperationTypes: operationTypes,
		Operators:      operators,
	}, refresh.Targets{
		Transactions:   st.Transactions,
		Session:        st.Session,
		Balances:       st.Balances,
		Clients:        st.Clients,
		Currencies:     st.Currencies,
		Cryptos:        st.Cryptos,
		OperationTypes: st.OperationTypes,
		Operators:      st.Operators,
	})
}

func (a *App) mirrorTargets() mirror.Targets {
	return mirror.Targets{
		Balances:       a.State.Balances,
		Transactions:   a.State.Transactions,
		Currencies:     a.State.Currencies,
		Cryptos:        a.State.Cryptos,
		OperationTypes: a.State.OperationTypes,
	}
}

// Start attaches the mirror, loads the banks and runs the periodic refresh
// in the background until ctx is done or Close is called.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)

	if a.Mirror != nil {
		if err := a.Mirror.Start(ctx); err != nil {
			return err
		}
	}

	if err := a.Services.Banks.Load(ctx); err != nil {
		slog.Error("failed to load banks", "error", err)
	}

	go a.Refresh.Run(ctx, a.Config.Sync.RefreshInterval)

	return nil
}

// Close stops the synchronizers and releases the connections.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}

	if a.Mirror != nil {
		a.Mirror.Stop()
	}

	if a.stopPersist != nil {
		a.stopPersist()
	}

	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil {
			slog.Warn("failed to close redis", "error", err)
		}
	}

	if err := a.db.Close(); err != nil {
		slog.Warn("failed to close database", "error", err)
	}
}

// Ping checks both backends.
func (a *App) Ping(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	if a.rdb != nil {
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("pinging redis: %w", err)
		}
	}

	return nil
}
