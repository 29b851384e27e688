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

// Package extension provides transforms which sit between a journal
// reader and the transaction builder. Each transform handles its own
// tag and forwards everything else to the sink it wraps.
package extension

import (
	"fmt"

	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/money"
	"github.com/coinjar/coinjar/lib/model/transaction"
)

// Sink receives the parts of a transaction.
type Sink interface {
	// Builder returns the underlying transaction builder.
	Builder() *journal.Builder
	// WithTag applies a tag with its arguments.
	WithTag(name string, args []string) error
	// ResolveAccount turns the segments of an account name into an account.
	ResolveAccount(segments []string) (account.Account, error)
	// WithPosting adds a posting. A nil amount designates the posting
	// which absorbs the imbalance.
	WithPosting(a account.Account, m *money.Money) error
	// WithPostingCombined adds an amount to the posting on the same
	// account and currency.
	WithPostingCombined(a account.Account, m money.Money) error
	// Build commits the transaction.
	Build() (*transaction.Transaction, error)
}

// Decorator wraps a sink.
type Decorator func(Sink) Sink

// Chain wraps base with the given decorators. The first decorator is
// the outermost one.
func Chain(base Sink, ds ...Decorator) Sink {
	s := base
	for i := len(ds) - 1; i >= 0; i-- {
		s = ds[i](s)
	}
	return s
}

// New creates a sink for b, decorated with ds.
func New(b *journal.Builder, tree *account.Tree, ds ...Decorator) Sink {
	return Chain(&base{builder: b, tree: tree}, ds...)
}

// Defaults returns all transforms.
func Defaults(tree *account.Tree, precision int32) []Decorator {
	return []Decorator{
		Fuzzy(tree),
		RelativeDate(),
		Split(tree, precision),
	}
}

type base struct {
	builder *journal.Builder
	tree    *account.Tree
}

var _ Sink = (*base)(nil)

func (b *base) Builder() *journal.Builder {
	return b.builder
}

func (b *base) WithTag(name string, _ []string) error {
	return fmt.Errorf("unknown tag #%s", name)
}

func (b *base) ResolveAccount(segments []string) (account.Account, error) {
	return b.tree.Resolve(segments)
}

func (b *base) WithPosting(a account.Account, m *money.Money) error {
	if m == nil {
		b.builder.WithInferredPosting(a)
	} else {
		b.builder.WithPosting(a, *m)
	}
	return nil
}

func (b *base) WithPostingCombined(a account.Account, m money.Money) error {
	b.builder.WithPostingCombined(a, m)
	return nil
}

func (b *base) Build() (*transaction.Transaction, error) {
	return b.builder.Build()
}
