package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/balance"
	"github.com/MrJamesThe3rd/cambio/internal/currency"
	"github.com/MrJamesThe3rd/cambio/internal/operationtype"
	"github.com/MrJamesThe3rd/cambio/internal/state"
	"github.com/MrJamesThe3rd/cambio/internal/transaction"
)

const DefaultDebounce = time.Second

// Targets are the containers mirrored in the document.
type Targets struct {
	Balances       *state.Container[balance.Balance]
	Transactions   *state.Container[transaction.Transaction]
	Currencies     *state.Container[currency.Currency]
	Cryptos        *state.Container[currency.Crypto]
	OperationTypes *state.Container[operationtype.OperationType]
}

type Options struct {
	// Debounce is the quiet period after the last change before a push.
	Debounce time.Duration
	// WriterID stamps pushed documents; documents carrying it are ignored on receipt.
	WriterID string
	Now      func() time.Time
}

type Synchronizer struct {
	gw   Gateway
	dst  Targets
	opts Options

	mu          sync.Mutex
	ctx         context.Context
	timer       *time.Timer
	token       uint64
	running     bool
	cancels     []func()
	unsubscribe func() error

	// applyMu orders the initial merge against subscription deliveries.
	applyMu    sync.Mutex
	deliveries uint64
}

func New(gw Gateway, dst Targets, opts Options) *Synchronizer {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Synchronizer{gw: gw, dst: dst, opts: opts}
}

// Start watches the containers for local changes, subscribes to remote
// changes and merges the current document. Pushes use ctx.
func (s *Synchronizer) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}

	s.ctx = ctx
	s.running = true
	s.cancels = []func(){
		s.dst.Balances.Watch(s.onChange),
		s.dst.Transactions.Watch(s.onChange),
		s.dst.Currencies.Watch(s.onChange),
		s.dst.Cryptos.Watch(s.onChange),
		s.dst.OperationTypes.Watch(s.onChange),
	}
	s.mu.Unlock()

	s.applyMu.Lock()
	s.deliveries = 0
	s.applyMu.Unlock()

	unsubscribe, err := s.gw.Subscribe(ctx, s.deliver)
	if err != nil {
		s.Stop()
		return fmt.Errorf("subscribing to mirror: %w", err)
	}

	s.mu.Lock()
	s.unsubscribe = unsubscribe
	s.mu.Unlock()

	doc, err := s.gw.Read(ctx)
	if err != nil {
		slog.Error("failed to read mirror document", "error", err)
		return nil
	}

	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	// Deliveries since subscribing carry the read document or a newer one.
	if s.deliveries > 0 {
		return nil
	}

	if err := s.Apply(doc); err != nil {
		slog.Warn("failed to merge mirror document", "error", err)
	}

	return nil
}

// Stop detaches the watchers, drops a pending push and closes the subscription.
func (s *Synchronizer) Stop() {
	s.mu.Lock()
	cancels := s.cancels
	unsubscribe := s.unsubscribe

	s.running = false
	s.cancels = nil
	s.unsubscribe = nil
	s.token++

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}

	if unsubscribe != nil {
		if err := unsubscribe(); err != nil {
			slog.Warn("failed to close mirror subscription", "error", err)
		}
	}
}

func (s *Synchronizer) deliver(doc []byte) {
	s.applyMu.Lock()
	defer s.applyMu.Unlock()

	s.deliveries++

	if err := s.Apply(doc); err != nil {
		slog.Warn("failed to merge mirror document", "error", err)
	}
}

func (s *Synchronizer) onChange(src state.Source) {
	if src == state.SourceMirror || src == state.SourceDisk {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.token++
	token := s.token

	if s.timer != nil {
		s.timer.Stop()
	}

	s.timer = time.AfterFunc(s.opts.Debounce, func() { s.fire(token) })
}

func (s *Synchronizer) fire(token uint64) {
	s.mu.Lock()
	if token != s.token || !s.running {
		s.mu.Unlock()
		return
	}

	s.timer = nil
	ctx := s.ctx
	s.mu.Unlock()

	_ = s.Push(ctx)
}

// Snapshot builds the document from the current containers.
func (s *Synchronizer) Snapshot() *ProjectState {
	return &ProjectState{
		Balances: serializable("balances",
			identified("balances", s.dst.Balances.All(), func(b balance.Balance) uuid.UUID { return b.ID })),
		Transactions: serializable("transactions",
			identified("transactions", s.dst.Transactions.All(), func(tx transaction.Transaction) uuid.UUID { return tx.ID })),
		Settings: Settings{
			Currencies:     serializable("currencies", s.dst.Currencies.All()),
			Cryptos:        serializable("cryptos", s.dst.Cryptos.All()),
			OperationTypes: serializable("operationTypes", s.dst.OperationTypes.All()),
		},
		LastUpdated: s.opts.Now().UTC(),
		Origin:      s.opts.WriterID,
	}
}

// Push overwrites the mirror document with the current containers.
func (s *Synchronizer) Push(ctx context.Context) error {
	ps := s.Snapshot()

	if err := ps.Validate(); err != nil {
		slog.Error("refusing to push mirror document", "error", err)
		return err
	}

	doc, err := json.Marshal(ps)
	if err != nil {
		slog.Error("failed to encode mirror document", "error", err)
		return fmt.Errorf("encoding mirror document: %w", err)
	}

	if err := s.gw.Write(ctx, doc); err != nil {
		slog.Error("failed to push mirror document", "error", err)
		return err
	}

	slog.Debug("mirror document pushed",
		"balances", len(ps.Balances),
		"transactions", len(ps.Transactions),
		"bytes", len(doc),
	)

	return nil
}

// Apply merges a received document into the containers. Each group present
// as an array replaces its container; other groups are left alone. Documents
// this process wrote are ignored.
func (s *Synchronizer) Apply(doc []byte) error {
	if isEmpty(doc) {
		return nil
	}

	var ws wireState
	if err := json.Unmarshal(doc, &ws); err != nil {
		return fmt.Errorf("decoding mirror document: %w", err)
	}

	if s.opts.WriterID != "" && ws.Origin == s.opts.WriterID {
		return nil
	}

	if balances, ok := decodeGroup[balance.Balance]("balances", ws.Balances); ok {
		s.dst.Balances.Replace(state.SourceMirror, balances)
	}

	if txs, ok := decodeTransactions(ws.Transactions, s.opts.Now()); ok {
		s.dst.Transactions.Replace(state.SourceMirror, txs)
	}

	if isEmpty(ws.Settings) {
		return nil
	}

	var settings wireSettings
	if err := json.Unmarshal(ws.Settings, &settings); err != nil {
		slog.Warn("ignoring malformed mirror settings", "error", err)
		return nil
	}

	if currencies, ok := decodeGroup[currency.Currency]("currencies", settings.Currencies); ok {
		s.dst.Currencies.Replace(state.SourceMirror, currencies)
	}

	if cryptos, ok := decodeGroup[currency.Crypto]("cryptos", settings.Cryptos); ok {
		s.dst.Cryptos.Replace(state.SourceMirror, cryptos)
	}

	if types, ok := decodeGroup[operationtype.OperationType]("operationTypes", settings.OperationTypes); ok {
		s.dst.OperationTypes.Replace(state.SourceMirror, types)
	}

	return nil
}
