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

package posting

import (
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/money"
)

// Posting is an amount booked on an account.
type Posting struct {
	Account account.Account
	Money   money.Money
}

// New creates a new posting.
func New(a account.Account, m money.Money) Posting {
	return Posting{Account: a, Money: m}
}

// Sum returns the total of the given postings.
func Sum(ps []Posting) money.Valuable {
	var res money.Valuable
	for _, p := range ps {
		res.AddMoney(p.Money)
	}
	return res
}

// Combine adds p to the posting with the same account and currency,
// or appends it if there is none.
func Combine(ps []Posting, p Posting) []Posting {
	for i, q := range ps {
		if q.Account == p.Account && q.Money.Currency == p.Money.Currency {
			ps[i].Money = q.Money.Add(p.Money)
			return ps
		}
	}
	return append(ps, p)
}
