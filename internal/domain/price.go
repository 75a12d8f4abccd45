package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
)

// DefaultCurrency is the settlement currency of every payment.
const DefaultCurrency = "BDT"

var bdt = currency.MustParseISO(DefaultCurrency)

// knownCurrencies is the set of currency codes a price token may carry.
var knownCurrencies = map[currency.Unit]struct{}{
	currency.GBP: {},
	currency.USD: {},
	currency.EUR: {},
	bdt:          {},
}

// Money is a canonical amount in a three-letter currency.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// String formats the amount with two decimals as the payment backend expects.
func (m Money) String() string {
	return strconv.FormatFloat(m.Amount, 'f', 2, 64)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// ZeroMoney is the fail-safe result for prices that cannot be read.
func ZeroMoney() Money {
	return Money{Amount: 0, Currency: DefaultCurrency}
}

// ParsePrice normalizes a loosely formatted price token. It never fails:
// anything unreadable yields zero BDT. GBP amounts are converted with gbpToBDT.
func ParsePrice(token string, gbpToBDT float64) Money {
	m, err := ParsePriceStrict(token, gbpToBDT)
	if err != nil {
		return ZeroMoney()
	}
	return m
}

// ParsePriceStrict is ParsePrice that reports ErrUnparseablePrice instead of falling back.
//
// Accepted shapes are a bare number (BDT), "CUR amount" and "amount CUR",
// with CUR one of GBP, BDT, USD or EUR in upper case.
func ParsePriceStrict(token string, gbpToBDT float64) (Money, error) {
	token = strings.TrimSpace(token)

	if amount, ok := parseAmount(token); ok {
		return newMoney(amount, bdt, gbpToBDT), nil
	}

	parts := strings.Fields(token)
	if len(parts) == 2 {
		if unit, ok := parseCurrency(parts[0]); ok {
			if amount, ok := parseAmount(parts[1]); ok {
				return newMoney(amount, unit, gbpToBDT), nil
			}
		}
		if unit, ok := parseCurrency(parts[1]); ok {
			if amount, ok := parseAmount(parts[0]); ok {
				return newMoney(amount, unit, gbpToBDT), nil
			}
		}
	}

	return Money{}, fmt.Errorf("%w: %q", ErrUnparseablePrice, token)
}

func newMoney(amount float64, unit currency.Unit, gbpToBDT float64) Money {
	if unit == currency.GBP {
		amount *= gbpToBDT
		unit = bdt
	}
	return Money{Amount: round2(amount), Currency: unit.String()}
}

func parseAmount(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseCurrency(s string) (currency.Unit, bool) {
	unit, err := currency.ParseISO(s)
	if err != nil || unit.String() != s {
		return currency.Unit{}, false
	}
	if _, ok := knownCurrencies[unit]; !ok {
		return currency.Unit{}, false
	}
	return unit, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
