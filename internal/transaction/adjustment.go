package transaction

import "github.com/shopspring/decimal"

type adjustFunc func(tx *Transaction) (decimal.Decimal, bool)

func plusAmount(tx *Transaction) (decimal.Decimal, bool)  { return tx.Amount, true }
func minusAmount(tx *Transaction) (decimal.Decimal, bool) { return tx.Amount.Neg(), true }

func plusNet(tx *Transaction) (decimal.Decimal, bool) {
	if tx.NetAmount != nil {
		return *tx.NetAmount, true
	}

	return tx.Amount, true
}

func minusNet(tx *Transaction) (decimal.Decimal, bool) {
	d, _ := plusNet(tx)
	return d.Neg(), true
}

func plusCalculated(tx *Transaction) (decimal.Decimal, bool) {
	if tx.CalculatedAmount == nil {
		return decimal.Zero, false
	}

	return *tx.CalculatedAmount, true
}

var adjustments = map[CurrencyOperation]adjustFunc{
	OpARSIn:    plusNet,
	OpARSOut:   minusNet,
	OpUSDTBuy:  plusCalculated,
	OpUSDTSell: minusAmount,
	OpUSDTIn:   plusAmount,
	OpUSDTOut:  minusAmount,
	OpUSDIn:    plusAmount,
	OpUSDOut:   minusAmount,
	OpUSDBuy:   plusCalculated,
	OpUSDSell:  minusAmount,
}

// Adjustment returns the signed delta tx posts against its balance.
// ok is false when the transaction moves no balance.
func Adjustment(tx *Transaction) (delta decimal.Decimal, ok bool) {
	if tx.BalanceID == nil {
		return decimal.Zero, false
	}

	fn, found := adjustments[tx.CurrencyOperation]
	if !found {
		return decimal.Zero, false
	}

	return fn(tx)
}
