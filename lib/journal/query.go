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
	"iter"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/coinjar/coinjar/lib/common/date"
	"github.com/coinjar/coinjar/lib/common/predicate"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/posting"
	"github.com/coinjar/coinjar/lib/model/transaction"
)

// Query selects postings. A query is a conjunction of account clauses
// and a date range. Each account clause matches postings on any of its
// accounts or their descendants.
type Query struct {
	clauses [][]account.Account
	period  date.Period
}

// All matches every posting.
func All() Query {
	return Query{}
}

// NewQuery is an alias for All, to start a chain of restrictions.
func NewQuery() Query {
	return All()
}

// ByAccount matches postings on a or its descendants.
func ByAccount(a account.Account) Query {
	return ByAccounts(a)
}

// ByAccounts matches postings on any of the given accounts or their
// descendants.
func ByAccounts(as ...account.Account) Query {
	return Query{clauses: [][]account.Account{append([]account.Account(nil), as...)}}
}

// Since matches postings on or after the date of d.
func Since(d time.Time) Query {
	return Query{period: date.Period{Start: date.Truncate(d)}}
}

// Until matches postings on or before the date of d.
func Until(d time.Time) Query {
	return Query{period: date.Period{End: date.Truncate(d)}}
}

// And matches postings matched by both queries. The resulting bounds
// are the tightest bounds of either side.
func And(q1, q2 Query) Query {
	var clauses [][]account.Account
	clauses = append(clauses, q1.clauses...)
	clauses = append(clauses, q2.clauses...)
	return Query{
		clauses: clauses,
		period:  q1.period.Clip(q2.period),
	}
}

// Account restricts q to postings on a or its descendants.
func (q Query) Account(a account.Account) Query {
	return And(q, ByAccount(a))
}

// Accounts restricts q to postings on any of the given accounts.
func (q Query) Accounts(as ...account.Account) Query {
	return And(q, ByAccounts(as...))
}

// Since restricts q to postings on or after d.
func (q Query) Since(d time.Time) Query {
	return And(q, Since(d))
}

// Until restricts q to postings on or before d.
func (q Query) Until(d time.Time) Query {
	return And(q, Until(d))
}

// Period returns the date bounds of the query. Unknown bounds are zero.
func (q Query) Period() date.Period {
	return q.period
}

func (q Query) filter(tree *account.Tree) predicate.Predicate[Entry] {
	ps := []predicate.Predicate[Entry]{
		func(e Entry) bool { return q.period.Contains(e.Date()) },
	}
	for _, clause := range q.clauses {
		var or []predicate.Predicate[Entry]
		for _, a := range clause {
			or = append(or, func(e Entry) bool {
				return tree.IsDescendantOrSelf(e.Posting.Account, a)
			})
		}
		ps = append(ps, predicate.Or(or...))
	}
	return predicate.And(ps...)
}

// Entry is a posting together with its transaction.
type Entry struct {
	Posting posting.Posting

	txn *transaction.Transaction
}

// Date returns the date of the transaction.
func (e Entry) Date() time.Time {
	return e.txn.Date
}

// Description returns the description of the transaction.
func (e Entry) Description() string {
	return e.txn.Description
}

// TransactionID returns the ID of the transaction.
func (e Entry) TransactionID() ulid.ULID {
	return e.txn.ID
}

// PostingQuery evaluates a query against a journal. It must not be
// used after the journal has changed; doing so panics with
// ErrStaleQuery.
type PostingQuery struct {
	journal    *Journal
	query      Query
	generation uint64
}

// QueryPostings prepares the evaluation of q.
func (j *Journal) QueryPostings(q Query) *PostingQuery {
	return &PostingQuery{
		journal:    j,
		query:      q,
		generation: j.generation,
	}
}

func (pq *PostingQuery) check() {
	if pq.generation != pq.journal.generation {
		panic(ErrStaleQuery)
	}
}

// Entries returns the matching postings, ordered by transaction date,
// transaction creation and posting order. The sequence can be iterated
// repeatedly.
func (pq *PostingQuery) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		pq.check()
		match := pq.query.filter(pq.journal.reg.Accounts())
		for _, t := range pq.journal.sorted() {
			for _, p := range t.Postings {
				e := Entry{Posting: p, txn: t}
				if !match(e) {
					continue
				}
				if !yield(e) {
					return
				}
			}
		}
	}
}

// Bounds returns the period used for filling gaps. A bound missing
// from the query is taken from the matched postings, provided the
// other bound is known.
func (pq *PostingQuery) Bounds() date.Period {
	p := pq.query.period
	if p.Bounded() || (p.Start.IsZero() && p.End.IsZero()) {
		return p
	}
	var first, last time.Time
	for e := range pq.Entries() {
		if first.IsZero() || e.Date().Before(first) {
			first = e.Date()
		}
		if last.IsZero() || e.Date().After(last) {
			last = e.Date()
		}
	}
	if first.IsZero() {
		return p
	}
	if p.Start.IsZero() {
		p.Start = first
	}
	if p.End.IsZero() {
		p.End = last
	}
	return p
}
