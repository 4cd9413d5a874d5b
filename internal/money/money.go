// Package money models currency-tagged monetary values. Arithmetic and
// comparison are defined only within one currency; a cross-currency
// operation returns a recoverable CurrencyMismatch status instead of
// computing a wrong-currency result. Storage keeps amounts as integer
// minor units (cents); the domain presents them divided by 100.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/nanokusa/go-shop-catalog/internal/status"
)

// CurrencyCode is the closed currency enum carried at the product level.
type CurrencyCode string

const (
	USD CurrencyCode = "USD"
	CNY CurrencyCode = "CNY"
)

// ReasonCurrencyMismatch is the ErrorInfo reason attached to cross-currency
// operation failures.
const ReasonCurrencyMismatch = "CURRENCY_MISMATCH"

const errorDomain = "shop.money"

// ParseCurrency reads a stored currency code. Unrecognized values fail with
// InvalidArgument; callers decide whether that poisons the whole read.
func ParseCurrency(s string) (CurrencyCode, error) {
	switch s {
	case "USD", "usd":
		return USD, nil
	case "CNY", "cny":
		return CNY, nil
	default:
		return "", status.InvalidArgument("currency_code", s, "one of USD, CNY")
	}
}

// Money is an amount in a single currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency CurrencyCode    `json:"currency_code"`
}

func New(amount decimal.Decimal, code CurrencyCode) Money {
	return Money{Amount: amount, Currency: code}
}

// Zero is the degenerate zero value used for empty sums and ranges.
func Zero(code CurrencyCode) Money {
	return Money{Amount: decimal.Zero, Currency: code}
}

// FromMinorUnits converts a stored integer minor-unit amount (cents) into
// a Money.
func FromMinorUnits(cents int64, code CurrencyCode) Money {
	return Money{Amount: decimal.New(cents, -2), Currency: code}
}

// MinorUnits renders the amount back to integer cents for storage.
func (m Money) MinorUnits() int64 {
	return m.Amount.Shift(2).IntPart()
}

func mismatch(a, b CurrencyCode) error {
	return status.InvalidArgument("currency_code", string(b), string(a)).
		WithErrorInfo(ReasonCurrencyMismatch, errorDomain, map[string]string{
			"lhs": string(a),
			"rhs": string(b),
		})
}

// Add returns m + o. Fails on a currency mismatch.
func (m Money) Add(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, mismatch(m.Currency, o.Currency)
	}
	return Money{Amount: m.Amount.Add(o.Amount), Currency: m.Currency}, nil
}

// MulInt scales the amount by an integer factor (e.g. a quantity).
func (m Money) MulInt(n int64) Money {
	return Money{Amount: m.Amount.Mul(decimal.NewFromInt(n)), Currency: m.Currency}
}

// Cmp orders two same-currency values: -1, 0 or +1.
func (m Money) Cmp(o Money) (int, error) {
	if m.Currency != o.Currency {
		return 0, mismatch(m.Currency, o.Currency)
	}
	return m.Amount.Cmp(o.Amount), nil
}

// Equal reports value equality within one currency.
func (m Money) Equal(o Money) (bool, error) {
	c, err := m.Cmp(o)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// Sum folds a slice of same-currency values. An empty slice yields the
// degenerate zero USD value, matching the read models' empty-collection
// behavior.
func Sum(values []Money) (Money, error) {
	if len(values) == 0 {
		return Zero(USD), nil
	}
	total := values[0]
	for _, v := range values[1:] {
		var err error
		total, err = total.Add(v)
		if err != nil {
			return Money{}, err
		}
	}
	return total, nil
}

func (m Money) String() string {
	return m.Amount.String() + " " + string(m.Currency)
}
