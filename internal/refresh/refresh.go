// Package refresh pulls every entity family from the relational store and
// replaces the local containers with the result, all or nothing.
package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/caja"
	"github.com/MrJamesThe3rd/cambio/internal/client"
	"github.com/MrJamesThe3rd/cambio/internal/currency"
	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
	"github.com/MrJamesThe3rd/cambio/internal/operator"
	"github.com/MrJamesThe3rd/cambio/internal/state"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
)

const DefaultInterval = 5 * time.Minute

type TransactionLister interface {
	ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type SessionGetter interface {
	GetOpenSession(ctx context.Context) (*caja.Session, error)
}

type BalanceLister interface {
	ListBalances(ctx context.Context) ([]*balance.Balance, error)
}

type ClientLister interface {
	ListClients(ctx context.Context) ([]*client.Client, error)
}

type CurrencyLister interface {
	ListRows(ctx context.Context) ([]*currency.Row, error)
}

type OperationTypeLister interface {
	ListOperationTypes(ctx context.Context) ([]*operationtype.OperationType, error)
}

type OperatorLister interface {
	ListOperators(ctx context.Context) ([]*operator.Operator, error)
}

// Sources are the relational reads a refresh issues.
type Sources struct {
	Transactions   TransactionLister
	Sessions       SessionGetter
	Balances       BalanceLister
	Clients        ClientLister
	Currencies     CurrencyLister
	OperationTypes OperationTypeLister
	Operators      OperatorLister
}

// Targets are the containers a successful refresh replaces.
type Targets struct {
	Transactions   *state.Container[transaction.Transaction]
	Session        *state.Value[caja.Session]
	Balances       *state.Container[balance.Balance]
	Clients        *state.Container[client.Client]
	Currencies     *state.Container[currency.Currency]
	Cryptos        *state.Container[currency.Crypto]
	OperationTypes *state.Container[operationtype.OperationType]
	Operators      *state.Container[operator.Operator]
}

type Status struct {
	IsSyncing    bool       `json:"isSyncing"`
	LastSyncTime *time.Time `json:"lastSyncTime,omitempty"`
	LastError    string     `json:"error,omitempty"`
}

type Synchronizer struct {
	src     Sources
	dst     Targets
	syncing atomic.Bool

	mu       sync.RWMutex
	lastSync *time.Time
	lastErr  error
}

func New(src Sources, dst Targets) *Synchronizer {
	return &Synchronizer{src: src, dst: dst}
}

func (s *Synchronizer) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{IsSyncing: s.syncing.Load(), LastSyncTime: s.lastSync}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}

	return st
}

// snapshot is the result of one round of reads.
type snapshot struct {
	transactions   []*transaction.Transaction
	session        *caja.Session
	balances       []*balance.Balance
	clients        []*client.Client
	currencies     []*currency.Row
	operationTypes []*operationtype.OperationType
	operators      []*operator.Operator
}

// Sync performs one full refresh. A call made while another is running
// returns nil immediately.
func (s *Synchronizer) Sync(ctx context.Context) error {
	if !s.syncing.CompareAndSwap(false, true) {
		slog.Debug("refresh already running")
		return nil
	}
	defer s.syncing.Store(false)

	s.mu.Lock()
	s.lastErr = nil
	s.mu.Unlock()

	snap, err := s.fetch(ctx)
	if err != nil {
		slog.Error("failed to refresh state", "error", err)

		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()

		return err
	}

	s.apply(snap)

	now := time.Now()

	s.mu.Lock()
	s.lastSync = &now
	s.mu.Unlock()

	slog.Debug("state refreshed",
		"transactions", len(snap.transactions),
		"balances", len(snap.balances),
		"session_open", snap.session != nil,
	)

	return nil
}

func (s *Synchronizer) fetch(ctx context.Context) (*snapshot, error) {
	var (
		snap snapshot
		g    errgroup.Group
		errs [7]error
	)

	g.Go(func() (err error) {
		snap.transactions, err = s.src.Transactions.ListTransactions(ctx, transaction.ListFilter{})
		if err != nil {
			errs[0] = fmt.Errorf("fetching transactions: %w", err)
		}

		return nil
	})
	g.Go(func() error {
		sess, err := s.src.Sessions.GetOpenSession(ctx)

		switch {
		case errors.Is(err, caja.ErrNoOpenSession):
		case err != nil:
			errs[1] = fmt.Errorf("fetching caja status: %w", err)
		default:
			snap.session = sess
		}

		return nil
	})
	g.Go(func() (err error) {
		if snap.balances, err = s.src.Balances.ListBalances(ctx); err != nil {
			errs[2] = fmt.Errorf("fetching balances: %w", err)
		}

		return nil
	})
	g.Go(func() (err error) {
		if snap.clients, err = s.src.Clients.ListClients(ctx); err != nil {
			errs[3] = fmt.Errorf("fetching clients: %w", err)
		}

		return nil
	})
	g.Go(func() (err error) {
		if snap.currencies, err = s.src.Currencies.ListRows(ctx); err != nil {
			errs[4] = fmt.Errorf("fetching currencies: %w", err)
		}

		return nil
	})
	g.Go(func() (err error) {
		if snap.operationTypes, err = s.src.OperationTypes.ListOperationTypes(ctx); err != nil {
			errs[5] = fmt.Errorf("fetching operation types: %w", err)
		}

		return nil
	})
	g.Go(func() (err error) {
		if snap.operators, err = s.src.Operators.ListOperators(ctx); err != nil {
			errs[6] = fmt.Errorf("fetching operators: %w", err)
		}

		return nil
	})

	// Failures go to errs so every read completes and all of them are reported.
	_ = g.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return nil, err
	}

	return &snap, nil
}

func (s *Synchronizer) apply(snap *snapshot) {
	s.dst.Transactions.Replace(state.SourceRefresh, deref(snap.transactions))

	if snap.session != nil {
		s.dst.Session.Set(state.SourceRefresh, *snap.session)
	} else {
		s.dst.Session.Set(state.SourceRefresh, caja.Session{})
	}

	s.dst.Balances.Replace(state.SourceRefresh, deref(snap.balances))
	s.dst.Clients.Replace(state.SourceRefresh, deref(snap.clients))

	currencies, cryptos := currency.Partition(snap.currencies)
	s.dst.Currencies.Replace(state.SourceRefresh, currencies)
	s.dst.Cryptos.Replace(state.SourceRefresh, cryptos)

	s.dst.OperationTypes.Replace(state.SourceRefresh, deref(snap.operationTypes))
	s.dst.Operators.Replace(state.SourceRefresh, deref(snap.operators))
}

// Run syncs immediately and then every interval until ctx is done. A
// non-positive interval falls back to DefaultInterval.
func (s *Synchronizer) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	_ = s.Sync(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = s.Sync(ctx)
		}
	}
}

func deref[T any](items []*T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}

	return out
}
