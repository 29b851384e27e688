// Copyright 2021 Silvio Böhler
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/coinjar/coinjar/lib/model/currency"
)

// DisplayPrecision is the number of decimal places used for display.
const DisplayPrecision = 2

// ErrCurrencyMismatch is raised when combining amounts of different
// currencies.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// Money is an exact amount in a currency.
type Money struct {
	Amount   decimal.Decimal
	Currency *currency.Currency
}

// New creates a new Money.
func New(amount decimal.Decimal, c *currency.Currency) Money {
	return Money{Amount: amount, Currency: c}
}

// FromMinor creates a Money from an integer number of hundredths.
func FromMinor(minor int64, c *currency.Currency) Money {
	return New(decimal.New(minor, -DisplayPrecision), c)
}

// TryAdd adds two amounts of the same currency.
func (m Money) TryAdd(o Money) (Money, error) {
	if m.Currency != o.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, code(m.Currency), code(o.Currency))
	}
	return New(m.Amount.Add(o.Amount), m.Currency), nil
}

// Add adds two amounts of the same currency. It panics if the
// currencies differ.
func (m Money) Add(o Money) Money {
	res, err := m.TryAdd(o)
	if err != nil {
		panic(err)
	}
	return res
}

// Neg negates the amount.
func (m Money) Neg() Money {
	return New(m.Amount.Neg(), m.Currency)
}

// DivInt divides the exact amount by n.
func (m Money) DivInt(n int64) Money {
	return New(m.Amount.Div(decimal.NewFromInt(n)), m.Currency)
}

// Round rounds half to even at dp decimal places.
func (m Money) Round(dp int32) Money {
	return New(m.Amount.RoundBank(dp), m.Currency)
}

// IsZero checks whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount.IsZero()
}

// Sign returns -1, 0 or 1.
func (m Money) Sign() int {
	return m.Amount.Sign()
}

// Equal checks whether the amounts are numerically equal and in the
// same currency.
func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.Amount.Equal(o.Amount)
}

// String displays the amount with two decimal places, rounded half to
// even, following the currency's convention.
func (m Money) String() string {
	r := m.Amount.RoundBank(DisplayPrecision)
	return m.format(r.IsNegative(), r.Abs().StringFixed(DisplayPrecision))
}

// Exact displays the amount without rounding, with at least two
// decimal places. Exact is the inverse of Parse.
func (m Money) Exact() string {
	var (
		abs = m.Amount.Abs()
		dp  = int32(DisplayPrecision)
	)
	if _, frac, ok := strings.Cut(abs.String(), "."); ok && int32(len(frac)) > dp {
		dp = int32(len(frac))
	}
	return m.format(m.Amount.IsNegative(), abs.StringFixed(dp))
}

func (m Money) format(neg bool, abs string) string {
	var sign string
	if neg {
		sign = "-"
	}
	if m.Currency == nil {
		return sign + abs
	}
	if m.Currency.Convention() == currency.CodeSuffix {
		return fmt.Sprintf("%s%s %s", sign, abs, m.Currency.Code())
	}
	return sign + m.Currency.Symbol() + abs
}

// Split divides the amount into n shares at dp decimal places. Each
// share is the amount divided by n, rounded half to even; the first
// shares absorb the remainder one unit at a time. The shares sum
// exactly to the amount and differ by at most one unit.
func (m Money) Split(n int, dp int32) ([]Money, error) {
	if n < 1 {
		return nil, fmt.Errorf("cannot split %s into %d shares", m, n)
	}
	if !m.Amount.Equal(m.Amount.Round(dp)) {
		return nil, fmt.Errorf("cannot split %s exactly at %d decimal places", m.Amount, dp)
	}
	var (
		count     = decimal.NewFromInt(int64(n))
		share     = m.Amount.Div(count).RoundBank(dp)
		remainder = m.Amount.Sub(share.Mul(count))
		unit      = decimal.New(1, -dp)
		k         = int(remainder.Abs().Div(unit).Round(0).IntPart())
	)
	if remainder.IsNegative() {
		unit = unit.Neg()
	}
	res := make([]Money, n)
	for i := range res {
		s := share
		if i < k {
			s = s.Add(unit)
		}
		res[i] = New(s, m.Currency)
	}
	return res, nil
}

func code(c *currency.Currency) string {
	if c == nil {
		return "<none>"
	}
	return c.Code()
}
