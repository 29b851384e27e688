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

package transaction

import (
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/coinjar/coinjar/lib/common/compare"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/money"
	"github.com/coinjar/coinjar/lib/model/posting"
)

// Transaction represents a committed transaction.
type Transaction struct {
	ID          ulid.ULID
	Date        time.Time
	Description string
	Payee       *account.Contact
	Postings    []posting.Posting
}

// Balance returns the sum of all postings, which is zero for every
// committed transaction.
func (t *Transaction) Balance() money.Valuable {
	return posting.Sum(t.Postings)
}

// Clone returns a copy which shares no postings with t.
func (t *Transaction) Clone() *Transaction {
	res := *t
	res.Postings = append([]posting.Posting(nil), t.Postings...)
	return &res
}

// Compare orders transactions by date, then by creation.
func Compare(t, t2 *Transaction) compare.Order {
	if o := compare.Time(t.Date, t2.Date); o != compare.Equal {
		return o
	}
	return order(t.ID.Compare(t2.ID))
}

// order converts the result of a three-way comparison.
func order(c int) compare.Order {
	switch {
	case c < 0:
		return compare.Smaller
	case c > 0:
		return compare.Greater
	}
	return compare.Equal
}
