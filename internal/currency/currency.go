// Package currency manages the fiat currencies and cryptos the office trades.
// Both live in one table, discriminated by Type.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	iso "golang.org/x/text/currency"
)

var (
	ErrNotFound    = errors.New("currency not found")
	ErrInvalidCode = errors.New("invalid currency code")
)

type Type string

const (
	TypeFiat   Type = "FIAT"
	TypeCrypto Type = "CRYPTO"
)

type Currency struct {
	ID       uuid.UUID       `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Symbol   string          `json:"symbol"`
	BuyRate  decimal.Decimal `json:"buyRate"`
	SellRate decimal.Decimal `json:"sellRate"`
	Active   bool            `json:"active"`
}

type Crypto struct {
	ID      uuid.UUID `json:"id"`
	Code    string    `json:"code"`
	Name    string    `json:"name"`
	Network string    `json:"network"`
	Active  bool      `json:"active"`
}

// Row is a stored record of either type.
type Row struct {
	ID       uuid.UUID
	Type     Type
	Code     string
	Name     string
	Symbol   string
	BuyRate  decimal.Decimal
	SellRate decimal.Decimal
	Network  string
	Active   bool
}

func (r Row) Currency() Currency {
	return Currency{
		ID:       r.ID,
		Code:     r.Code,
		Name:     r.Name,
		Symbol:   r.Symbol,
		BuyRate:  r.BuyRate,
		SellRate: r.SellRate,
		Active:   r.Active,
	}
}

func (r Row) Crypto() Crypto {
	return Crypto{ID: r.ID, Code: r.Code, Name: r.Name, Network: r.Network, Active: r.Active}
}

func currencyRow(c Currency) *Row {
	return &Row{
		ID:       c.ID,
		Type:     TypeFiat,
		Code:     c.Code,
		Name:     c.Name,
		Symbol:   c.Symbol,
		BuyRate:  c.BuyRate,
		SellRate: c.SellRate,
		Active:   c.Active,
	}
}

func cryptoRow(c Crypto) *Row {
	return &Row{ID: c.ID, Type: TypeCrypto, Code: c.Code, Name: c.Name, Network: c.Network, Active: c.Active}
}

// Partition splits stored rows by type. Rows of an unknown type are skipped.
func Partition(rows []*Row) ([]Currency, []Crypto) {
	currencies := make([]Currency, 0, len(rows))
	cryptos := make([]Crypto, 0)

	for _, r := range rows {
		switch r.Type {
		case TypeFiat:
			currencies = append(currencies, r.Currency())
		case TypeCrypto:
			cryptos = append(cryptos, r.Crypto())
		}
	}

	return currencies, cryptos
}

// NormalizeFiatCode upper-cases code and checks it against ISO 4217.
func NormalizeFiatCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	unit, err := iso.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCode, code)
	}

	return unit.String(), nil
}

// NormalizeCryptoCode upper-cases code. Crypto tickers have no registry to check against.
func NormalizeCryptoCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidCode)
	}

	return code, nil
}
