package models

import "fmt"

// BitcoinUnit is a display denomination for bitcoin amounts.
type BitcoinUnit string

const (
	UnitMsat BitcoinUnit = "msat"
	UnitSat  BitcoinUnit = "sat"
	UnitBtc  BitcoinUnit = "btc"
)

// MsatPerUnit returns the number of millisatoshis in one unit.
func (u BitcoinUnit) MsatPerUnit() float64 {
	switch u {
	case UnitMsat:
		return 1
	case UnitSat:
		return 1_000
	case UnitBtc:
		return 100_000_000_000
	default:
		return 0
	}
}

// Currency identifies either a bitcoin denomination or a fiat currency.
// Exactly one of Unit or Fiat is set.
type Currency struct {
	Unit BitcoinUnit `json:"unit,omitempty"`
	Fiat string      `json:"fiat,omitempty"`
}

func (c Currency) IsFiat() bool { return c.Fiat != "" }

func (c Currency) String() string {
	if c.IsFiat() {
		return c.Fiat
	}
	return string(c.Unit)
}

// CurrencyAmount is an amount tagged with its currency, used for spending
// limits and for reporting over-limit amounts in the limit's own currency.
type CurrencyAmount struct {
	Currency Currency `json:"currency"`
	Amount   float64  `json:"amount"`
}

func (a CurrencyAmount) String() string {
	return fmt.Sprintf("%g %s", a.Amount, a.Currency)
}

// ToMsat converts a bitcoin-denominated amount to millisatoshis.
// Returns 0 for fiat amounts.
func (a CurrencyAmount) ToMsat() int64 {
	if a.Currency.IsFiat() {
		return 0
	}
	return int64(a.Amount * a.Currency.Unit.MsatPerUnit())
}

// BitcoinAmount builds a bitcoin-denominated CurrencyAmount from msat.
func BitcoinAmount(msat int64, unit BitcoinUnit) CurrencyAmount {
	return CurrencyAmount{
		Currency: Currency{Unit: unit},
		Amount:   float64(msat) / unit.MsatPerUnit(),
	}
}

// FiatAmount builds a fiat-denominated CurrencyAmount.
func FiatAmount(amount float64, code string) CurrencyAmount {
	return CurrencyAmount{
		Currency: Currency{Fiat: code},
		Amount:   amount,
	}
}

// MsatToFiat converts a msat amount to fiat units given a fiat-per-BTC rate.
func MsatToFiat(msat int64, rate float64) float64 {
	return float64(msat) / 100_000_000_000 * rate
}
