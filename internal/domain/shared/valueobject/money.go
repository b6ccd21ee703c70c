package valueobject

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency represents a currency code (ISO 4217)
type Currency string

const (
	USD Currency = "USD" // US Dollar (default)
	CAD Currency = "CAD" // Canadian Dollar
	EUR Currency = "EUR" // Euro
	GBP Currency = "GBP" // British Pound
)

// DefaultCurrency is the default currency for the system
const DefaultCurrency = USD

// Money is a value object representing monetary amounts in integer cents.
// It is immutable - all operations return new Money instances.
type Money struct {
	cents    int64
	currency Currency
}

// NewMoney creates a new Money with the specified amount in cents
func NewMoney(cents int64, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{cents: cents, currency: currency}, nil
}

// NewMoneyUSD creates Money in USD from cents
func NewMoneyUSD(cents int64) Money {
	return Money{cents: cents, currency: USD}
}

// ZeroMoney returns a zero amount in the default currency
func ZeroMoney() Money {
	return Money{cents: 0, currency: DefaultCurrency}
}

// Cents returns the amount in integer cents
func (m Money) Cents() int64 {
	return m.cents
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// Decimal returns the amount as a decimal in major units (e.g. dollars)
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// Add returns the sum of two Money values of the same currency
func (m Money) Add(other Money) (Money, error) {
	if m.currency != other.currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.currency, other.currency)
	}
	return Money{cents: m.cents + other.cents, currency: m.currency}, nil
}

// IsNegative returns true if the amount is below zero
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.cents == 0
}

// Equal returns true if amount and currency match
func (m Money) Equal(other Money) bool {
	return m.cents == other.cents && m.currency == other.currency
}

// String formats the amount in major units, e.g. "125.00 USD"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Decimal().StringFixed(2), m.currency)
}

// Value implements driver.Valuer; Money persists as integer cents
func (m Money) Value() (driver.Value, error) {
	return m.cents, nil
}

// Scan implements sql.Scanner
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		*m = ZeroMoney()
		return nil
	}
	cents, ok := value.(int64)
	if !ok {
		return fmt.Errorf("cannot scan %T into Money", value)
	}
	m.cents = cents
	m.currency = DefaultCurrency
	return nil
}
