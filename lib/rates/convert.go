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

package rates

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/coinjar/coinjar/lib/model/currency"
	"github.com/coinjar/coinjar/lib/model/money"
)

// Convert converts m into the target currency at the rate of the
// given date. The result is not rounded.
func Convert(ctx context.Context, b *Book, m money.Money, to *currency.Currency, d time.Time) (money.Money, error) {
	r, err := b.Rate(ctx, m.Currency, to, d)
	if err != nil {
		return money.Money{}, err
	}
	return money.New(m.Amount.Mul(r), to), nil
}

// ConvertValuable converts every amount of v into the target currency
// and returns their sum.
func ConvertValuable(ctx context.Context, b *Book, v money.Valuable, to *currency.Currency, d time.Time) (money.Money, error) {
	res := money.New(decimal.Zero, to)
	for _, m := range v.Moneys() {
		c, err := Convert(ctx, b, m, to, d)
		if err != nil {
			return money.Money{}, err
		}
		res = res.Add(c)
	}
	return res, nil
}
