package mirror

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cambio/internal/transaction"
)

// wireState is the document as read from the mirror. Groups stay raw so a
// missing or malformed group can be told apart from an empty one.
type wireState struct {
	Balances     json.RawMessage `json:"balances"`
	Transactions json.RawMessage `json:"transactions"`
	Settings     json.RawMessage `json:"settings"`
	Origin       string          `json:"origin"`
}

type wireSettings struct {
	Currencies     json.RawMessage `json:"currencies"`
	Cryptos        json.RawMessage `json:"cryptos"`
	OperationTypes json.RawMessage `json:"operationTypes"`
}

// wireTransaction accepts the date fields in any of the forms writers use.
type wireTransaction struct {
	transaction.Transaction
	Date      json.RawMessage `json:"date"`
	CreatedAt json.RawMessage `json:"createdAt"`
	UpdatedAt json.RawMessage `json:"updatedAt"`
}

func isEmpty(doc []byte) bool {
	doc = bytes.TrimSpace(doc)
	return len(doc) == 0 || bytes.Equal(doc, []byte("null"))
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// decodeGroup decodes a JSON array element by element. It reports false when
// raw is not an array; elements that do not decode are dropped.
func decodeGroup[T any](group string, raw json.RawMessage) ([]T, bool) {
	if !isArray(raw) {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		slog.Warn("ignoring malformed mirror group", "group", group, "error", err)
		return nil, false
	}

	out := make([]T, 0, len(elems))

	for _, elem := range elems {
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			slog.Debug("dropping undecodable mirror record", "group", group, "error", err)
			continue
		}

		out = append(out, v)
	}

	return out, true
}

func decodeTransactions(raw json.RawMessage, now time.Time) ([]transaction.Transaction, bool) {
	wire, ok := decodeGroup[wireTransaction]("transactions", raw)
	if !ok {
		return nil, false
	}

	out := make([]transaction.Transaction, 0, len(wire))

	for _, w := range wire {
		tx, _ := w.resolve(now)
		out = append(out, tx)
	}

	return out, true
}

// resolve fills the dates of w. An unreadable date becomes now and dated
// reports false.
func (w wireTransaction) resolve(now time.Time) (tx transaction.Transaction, dated bool) {
	tx = w.Transaction
	tx.Date = now

	if d := parseTime(w.Date); d != nil {
		tx.Date = *d
		dated = true
	}

	tx.CreatedAt = parseOptionalTime(w.CreatedAt, now)
	tx.UpdatedAt = parseOptionalTime(w.UpdatedAt, now)

	return tx, dated
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	time.DateOnly,
}

// parseTime reads a date string or epoch milliseconds. It returns nil when
// the value is absent or cannot be read.
func parseTime(raw json.RawMessage) *time.Time {
	if isEmpty(raw) {
		return nil
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return new(time.UnixMilli(ms).UTC())
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	return nil
}

// parseOptionalTime keeps an absent value nil and replaces an unreadable one with now.
func parseOptionalTime(raw json.RawMessage, now time.Time) *time.Time {
	if isEmpty(raw) {
		return nil
	}

	if t := parseTime(raw); t != nil {
		return t
	}

	return &now
}

// serializable drops records that do not survive a JSON round trip.
func serializable[T any](group string, items []T) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if err := roundTrip(item); err != nil {
			slog.Debug("dropping record from mirror push", "group", group, "error", err)
			continue
		}

		out = append(out, item)
	}

	return out
}

// identified drops records without an id.
func identified[T any](group string, items []T, id func(T) uuid.UUID) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if id(item) == uuid.Nil {
			slog.Debug("dropping record without id from mirror push", "group", group)
			continue
		}

		out = append(out, item)
	}

	return out
}

func roundTrip[T any](v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotSerializable, err)
	}

	var back T
	if err := json.Unmarshal(data, &back); err != nil {
		return fmt.Errorf("%w: %w", ErrNotSerializable, err)
	}

	return nil
}

// Reader is the read side of a Gateway.
type Reader interface {
	Read(ctx context.Context) ([]byte, error)
}

// LatestTransactions returns the n most recent mirrored transactions by date.
// Transactions without a readable date are left out.
func LatestTransactions(ctx context.Context, r Reader, n int) ([]transaction.Transaction, error) {
	doc, err := r.Read(ctx)
	if err != nil {
		return nil, err
	}

	if isEmpty(doc) {
		return []transaction.Transaction{}, nil
	}

	var ws wireState
	if err := json.Unmarshal(doc, &ws); err != nil {
		return nil, fmt.Errorf("decoding mirror document: %w", err)
	}

	wire, _ := decodeGroup[wireTransaction]("transactions", ws.Transactions)
	now := time.Now()
	txs := make([]transaction.Transaction, 0, len(wire))

	for _, w := range wire {
		if tx, dated := w.resolve(now); dated {
			txs = append(txs, tx)
		}
	}

	slices.SortStableFunc(txs, func(a, b transaction.Transaction) int {
		return cmp.Compare(b.Date.UnixNano(), a.Date.UnixNano())
	})

	if n > 0 && len(txs) > n {
		txs = txs[:n]
	}

	return txs, nil
}
