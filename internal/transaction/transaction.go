package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("transaction not found")

// CurrencyOperation names the cash movement a transaction represents.
type CurrencyOperation string

const (
	OpARSIn    CurrencyOperation = "ARS_IN"
	OpARSOut   CurrencyOperation = "ARS_OUT"
	OpUSDTBuy  CurrencyOperation = "USDT_BUY"
	OpUSDTSell CurrencyOperation = "USDT_SELL"
	OpUSDTIn   CurrencyOperation = "USDT_IN"
	OpUSDTOut  CurrencyOperation = "USDT_OUT"
	OpUSDIn    CurrencyOperation = "USD_IN"
	OpUSDOut   CurrencyOperation = "USD_OUT"
	OpUSDBuy   CurrencyOperation = "USD_BUY"
	OpUSDSell  CurrencyOperation = "USD_SELL"
)

// Deductions flags the withholdings applied to a transaction.
type Deductions struct {
	IIBB        bool             `json:"iibb"`
	DebCred     bool             `json:"debCred"`
	Copter      bool             `json:"copter"`
	Custom      bool             `json:"custom"`
	CustomValue *decimal.Decimal `json:"customValue,omitempty"`
}

// Transaction is an immutable buy/sell/in/out record.
type Transaction struct {
	ID                uuid.UUID         `json:"id"`
	ClientID          uuid.UUID         `json:"clientId"`
	OperatorID        uuid.UUID         `json:"operatorId"`
	OperationType     string            `json:"operationType"`
	CurrencyOperation CurrencyOperation `json:"currencyOperation"`
	Amount            decimal.Decimal   `json:"amount"`
	NetAmount         *decimal.Decimal  `json:"netAmount,omitempty"`
	CalculatedAmount  *decimal.Decimal  `json:"calculatedAmount,omitempty"`
	ExchangeRate      *decimal.Decimal  `json:"exchangeRate,omitempty"`
	BalanceID         *uuid.UUID        `json:"balanceId,omitempty"`
	Description       string            `json:"description,omitempty"`
	Date              time.Time         `json:"date"`
	Deductions        *Deductions       `json:"deductions,omitempty"`
	CreatedAt         *time.Time        `json:"createdAt,omitempty"`
	UpdatedAt         *time.Time        `json:"updatedAt,omitempty"`
}
