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

	"github.com/coinjar/coinjar/lib/common/date"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/money"
	"github.com/coinjar/coinjar/lib/model/posting"
	"github.com/coinjar/coinjar/lib/model/transaction"
)

// Builder builds a transaction. At most one posting may omit its
// amount; on Build, it absorbs the imbalance of the other postings.
type Builder struct {
	journal     *Journal
	date        time.Time
	description string
	payee       *account.Contact
	postings    []posting.Posting
	inferred    []account.Account
	spent       bool
}

// NewTransaction starts a new transaction. The time of day of d is
// dropped.
func (j *Journal) NewTransaction(d time.Time, description string) *Builder {
	return &Builder{
		journal:     j,
		date:        date.Truncate(d),
		description: description,
	}
}

// Date returns the date of the transaction.
func (b *Builder) Date() time.Time {
	return b.date
}

// SetDate changes the date of the transaction.
func (b *Builder) SetDate(d time.Time) *Builder {
	b.date = date.Truncate(d)
	return b
}

// Description returns the description of the transaction.
func (b *Builder) Description() string {
	return b.description
}

// WithPayee sets the counterpart of the transaction.
func (b *Builder) WithPayee(c *account.Contact) *Builder {
	b.payee = c
	return b
}

// WithPosting appends a posting.
func (b *Builder) WithPosting(a account.Account, m money.Money) *Builder {
	b.postings = append(b.postings, posting.New(a, m))
	return b
}

// WithPostingCombined adds the amount to an existing posting on the
// same account and currency, or appends a new posting.
func (b *Builder) WithPostingCombined(a account.Account, m money.Money) *Builder {
	b.postings = posting.Combine(b.postings, posting.New(a, m))
	return b
}

// WithInferredPosting designates the account which absorbs the
// imbalance. Designating a second account makes Build fail with
// ErrInferredConflict.
func (b *Builder) WithInferredPosting(a account.Account) *Builder {
	b.inferred = append(b.inferred, a)
	return b
}

// Postings returns the explicit postings added so far.
func (b *Builder) Postings() []posting.Posting {
	return append([]posting.Posting(nil), b.postings...)
}

// Imbalance returns the sum of the explicit postings.
func (b *Builder) Imbalance() money.Valuable {
	return posting.Sum(b.postings)
}

// Build balances the transaction and commits it to the journal. On
// error, the journal is not modified.
func (b *Builder) Build() (*transaction.Transaction, error) {
	if b.spent {
		return nil, ErrBuilderSpent
	}
	if len(b.inferred) > 1 {
		return nil, ErrInferredConflict
	}
	postings := append([]posting.Posting(nil), b.postings...)
	if imbalance := posting.Sum(postings); !imbalance.IsZero() {
		if len(b.inferred) == 0 {
			return nil, UnbalancedError{Imbalance: imbalance}
		}
		for _, m := range imbalance.Moneys() {
			postings = append(postings, posting.New(b.inferred[0], m.Neg()))
		}
	}
	if imbalance := posting.Sum(postings); !imbalance.IsZero() {
		return nil, UnbalancedError{Imbalance: imbalance}
	}
	t := &transaction.Transaction{
		ID:          ulid.Make(),
		Date:        b.date,
		Description: b.description,
		Payee:       b.payee,
		Postings:    postings,
	}
	b.journal.commit(t)
	b.spent = true
	return t.Clone(), nil
}
