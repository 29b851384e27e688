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
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/coinjar/coinjar/lib/model/currency"
)

// Parse parses an amount with a leading currency symbol or a trailing
// currency code or symbol, e.g. $100.00, -$100, $-10, 100.00 USD or
// 10£. The sign may precede the whole token. An unknown currency
// yields a currency.NotFoundError.
func Parse(text string, cat *currency.Catalog) (Money, error) {
	s := strings.TrimSpace(text)
	var neg bool
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		neg, s = true, strings.TrimSpace(rest)
	} else if rest, ok := strings.CutPrefix(s, "+"); ok {
		s = strings.TrimSpace(rest)
	}
	if len(s) == 0 {
		return Money{}, fmt.Errorf("invalid amount %q", text)
	}
	var num, cur string
	if isNumeric(rune(s[0])) {
		i := strings.IndexFunc(s, func(r rune) bool { return !isNumeric(r) })
		if i < 0 {
			return Money{}, fmt.Errorf("missing currency in %q", text)
		}
		num, cur = s[:i], strings.TrimSpace(s[i:])
	} else {
		i := strings.IndexFunc(s, isNumeric)
		if i < 0 {
			return Money{}, fmt.Errorf("missing amount in %q", text)
		}
		cur, num = strings.TrimSpace(s[:i]), s[i:]
	}
	amount, err := decimal.NewFromString(num)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount in %q: %w", text, err)
	}
	if neg {
		if amount.IsNegative() {
			return Money{}, fmt.Errorf("invalid amount %q: duplicate sign", text)
		}
		amount = amount.Neg()
	}
	c, err := cat.Resolve(cur)
	if err != nil {
		return Money{}, err
	}
	return New(amount, c), nil
}

// MustParse parses an amount or panics.
func MustParse(text string, cat *currency.Catalog) Money {
	m, err := Parse(text, cat)
	if err != nil {
		panic(err)
	}
	return m
}

func isNumeric(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == '-'
}
