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

package journal

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/coinjar/coinjar/lib/common/compare"
	"github.com/coinjar/coinjar/lib/common/dict"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/money"
)

// Total returns the sum of all matched postings.
func (pq *PostingQuery) Total() money.Valuable {
	var res money.Valuable
	for e := range pq.Entries() {
		res.AddMoney(e.Posting.Money)
	}
	return res
}

// DailyChange sums the matched postings per date. Every date within
// Bounds without postings maps to a zero Valuable.
func (pq *PostingQuery) DailyChange() map[time.Time]money.Valuable {
	res := make(map[time.Time]money.Valuable)
	for _, d := range pq.Bounds().Days() {
		res[d] = money.Valuable{}
	}
	for e := range pq.Entries() {
		v := res[e.Date()]
		v.AddMoney(e.Posting.Money)
		res[e.Date()] = v
	}
	return res
}

// DailyBalance is the change and the running balance on a date.
type DailyBalance struct {
	Date    time.Time
	Change  money.Valuable
	Balance money.Valuable
}

// DailyBalance returns the daily changes sorted by date, with the
// running balance.
func (pq *PostingQuery) DailyBalance() []DailyBalance {
	var (
		changes = pq.DailyChange()
		balance money.Valuable
		res     = make([]DailyBalance, 0, len(changes))
	)
	for _, d := range dict.SortedKeys(changes, compare.Time) {
		balance.Add(changes[d])
		res = append(res, DailyBalance{
			Date:    d,
			Change:  changes[d],
			Balance: balance.Clone(),
		})
	}
	return res
}

// Balance is the change caused by a transaction and the running
// balance after it.
type Balance struct {
	Date          time.Time
	Description   string
	TransactionID ulid.ULID
	Change        money.Valuable
	Balance       money.Valuable
}

// Balances returns one row per transaction with matched postings,
// sorted by date, with the running balance.
func (pq *PostingQuery) Balances() []Balance {
	var (
		res     []Balance
		balance money.Valuable
	)
	for e := range pq.Entries() {
		if len(res) == 0 || res[len(res)-1].TransactionID != e.TransactionID() {
			res = append(res, Balance{
				Date:          e.Date(),
				Description:   e.Description(),
				TransactionID: e.TransactionID(),
			})
		}
		res[len(res)-1].Change.AddMoney(e.Posting.Money)
	}
	for i := range res {
		balance.Add(res[i].Change)
		res[i].Balance = balance.Clone()
	}
	return res
}

// Register is a matched posting with the running balance after it.
type Register struct {
	Date        time.Time
	Description string
	Account     account.Account
	Money       money.Money
	Balance     money.Valuable
}

// Register returns one row per matched posting with the running balance.
func (pq *PostingQuery) Register() []Register {
	var (
		res     []Register
		balance money.Valuable
	)
	for e := range pq.Entries() {
		balance.AddMoney(e.Posting.Money)
		res = append(res, Register{
			Date:        e.Date(),
			Description: e.Description(),
			Account:     e.Posting.Account,
			Money:       e.Posting.Money,
			Balance:     balance.Clone(),
		})
	}
	return res
}
