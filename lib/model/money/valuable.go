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
	"strings"

	"github.com/shopspring/decimal"

	"github.com/coinjar/coinjar/lib/common/dict"
	"github.com/coinjar/coinjar/lib/model/currency"
)

// Valuable is a multi-currency amount. Currencies with a zero amount
// are never stored. The zero value is an empty Valuable.
type Valuable struct {
	amounts map[*currency.Currency]decimal.Decimal
}

// Sum sums the given amounts.
func Sum(ms ...Money) Valuable {
	var v Valuable
	for _, m := range ms {
		v.AddMoney(m)
	}
	return v
}

// AddMoney adds an amount to the entry of its currency.
func (v *Valuable) AddMoney(m Money) {
	if m.Amount.IsZero() {
		return
	}
	if v.amounts == nil {
		v.amounts = make(map[*currency.Currency]decimal.Decimal)
	}
	s := v.amounts[m.Currency].Add(m.Amount)
	if s.IsZero() {
		delete(v.amounts, m.Currency)
	} else {
		v.amounts[m.Currency] = s
	}
}

// Add adds all entries of o.
func (v *Valuable) Add(o Valuable) {
	for c, a := range o.amounts {
		v.AddMoney(New(a, c))
	}
}

// Sub subtracts all entries of o.
func (v *Valuable) Sub(o Valuable) {
	for c, a := range o.amounts {
		v.AddMoney(New(a.Neg(), c))
	}
}

// Neg returns the negated amount.
func (v Valuable) Neg() Valuable {
	var res Valuable
	res.Sub(v)
	return res
}

// Clone returns a copy.
func (v Valuable) Clone() Valuable {
	var res Valuable
	res.Add(v)
	return res
}

// IsZero checks whether all entries are zero.
func (v Valuable) IsZero() bool {
	return len(v.amounts) == 0
}

// Len returns the number of currencies with a non-zero amount.
func (v Valuable) Len() int {
	return len(v.amounts)
}

// Amount returns the amount in currency c.
func (v Valuable) Amount(c *currency.Currency) decimal.Decimal {
	return v.amounts[c]
}

// Moneys returns the entries sorted by currency code.
func (v Valuable) Moneys() []Money {
	var res []Money
	for _, c := range dict.SortedKeys(v.amounts, currency.Compare) {
		res = append(res, New(v.amounts[c], c))
	}
	return res
}

// Sign returns 1 if all entries are positive, -1 if all are
// negative and 0 otherwise.
func (v Valuable) Sign() int {
	var pos, neg bool
	for _, a := range v.amounts {
		pos = pos || a.IsPositive()
		neg = neg || a.IsNegative()
	}
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	}
	return 0
}

// Equal checks whether both hold the same amounts.
func (v Valuable) Equal(o Valuable) bool {
	if len(v.amounts) != len(o.amounts) {
		return false
	}
	for c, a := range v.amounts {
		if b, ok := o.amounts[c]; !ok || !a.Equal(b) {
			return false
		}
	}
	return true
}

func (v Valuable) String() string {
	if v.IsZero() {
		return "0.00"
	}
	var ss []string
	for _, m := range v.Moneys() {
		ss = append(ss, m.String())
	}
	return strings.Join(ss, ", ")
}
