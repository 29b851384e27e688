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
	"errors"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/coinjar/coinjar/lib/common/compare"
	"github.com/coinjar/coinjar/lib/model/money"
	"github.com/coinjar/coinjar/lib/model/registry"
	"github.com/coinjar/coinjar/lib/model/transaction"
)

var (
	// ErrInferredConflict is returned when a transaction has more than
	// one posting without amount.
	ErrInferredConflict = errors.New("more than one posting without amount")

	// ErrBuilderSpent is returned when a builder is built twice.
	ErrBuilderSpent = errors.New("transaction has already been built")

	// ErrTransactionNotFound is returned when removing an unknown transaction.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrStaleQuery is the panic value raised when a query is evaluated
	// after the journal has changed.
	ErrStaleQuery = errors.New("journal changed while a query was outstanding")
)

// UnbalancedError is returned when the postings of a transaction do
// not sum to zero.
type UnbalancedError struct {
	Imbalance money.Valuable
}

func (e UnbalancedError) Error() string {
	return fmt.Sprintf("transaction is not balanced, imbalance: %s", e.Imbalance)
}

// Journal is a store of balanced transactions.
type Journal struct {
	reg        *registry.Registry
	txns       map[ulid.ULID]*transaction.Transaction
	generation uint64
}

// New creates an empty journal.
func New(reg *registry.Registry) *Journal {
	return &Journal{
		reg:  reg,
		txns: make(map[ulid.ULID]*transaction.Transaction),
	}
}

// Registry returns the registry of accounts and currencies.
func (j *Journal) Registry() *registry.Registry {
	return j.reg
}

// Len returns the number of transactions.
func (j *Journal) Len() int {
	return len(j.txns)
}

// Transaction returns a copy of the transaction with the given ID.
func (j *Journal) Transaction(id ulid.ULID) (*transaction.Transaction, bool) {
	t, ok := j.txns[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Transactions returns copies of all transactions, sorted by date and
// creation. Changing them does not affect the journal.
func (j *Journal) Transactions() []*transaction.Transaction {
	res := j.sorted()
	for i, t := range res {
		res[i] = t.Clone()
	}
	return res
}

func (j *Journal) sorted() []*transaction.Transaction {
	res := make([]*transaction.Transaction, 0, len(j.txns))
	for _, t := range j.txns {
		res = append(res, t)
	}
	compare.Sort(res, transaction.Compare)
	return res
}

// Remove deletes a transaction and all its postings.
func (j *Journal) Remove(id ulid.ULID) error {
	if _, ok := j.txns[id]; !ok {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	delete(j.txns, id)
	j.generation++
	return nil
}

func (j *Journal) commit(t *transaction.Transaction) {
	j.txns[t.ID] = t
	j.generation++
}
