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

package syntax

import (
	"strings"

	"github.com/oklog/ulid/v2"
	"go.uber.org/multierr"

	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/journal/extension"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/currency"
	"github.com/coinjar/coinjar/lib/model/money"
	"github.com/coinjar/coinjar/lib/model/transaction"
)

type loader struct {
	journal    *journal.Journal
	path       string
	decorators []extension.Decorator
}

func (l loader) load(f file) error {
	cat := l.journal.Registry().Currencies()
	for _, c := range f.currencies {
		conv := currency.SymbolPrefix
		if c.symbol == "" {
			conv = currency.CodeSuffix
		}
		if _, err := cat.Register(c.code, c.symbol, c.name, conv); err != nil {
			return Error{Path: l.path, Line: c.line, Message: "invalid currency declaration", Wrapped: err}
		}
	}
	var committed []ulid.ULID
	for _, b := range f.transactions {
		t, err := l.build(b)
		if err != nil {
			for _, id := range committed {
				err = multierr.Append(err, l.journal.Remove(id))
			}
			return err
		}
		committed = append(committed, t.ID)
	}
	return nil
}

func (l loader) build(b block) (*transaction.Transaction, error) {
	var (
		reg     = l.journal.Registry()
		tree    = reg.Accounts()
		builder = l.journal.NewTransaction(b.date, b.description)
	)
	if b.payee != "" {
		builder.WithPayee(tree.ProvisionContact(b.payee))
	}
	sink := extension.New(builder, tree, l.decorators...)
	for _, t := range b.tags {
		if err := sink.WithTag(t.name, t.args); err != nil {
			return nil, Error{Path: l.path, Line: t.line, Message: "invalid tag", Wrapped: err}
		}
	}
	for _, p := range b.postings {
		a, err := sink.ResolveAccount(strings.Split(p.account, account.Separator))
		if err != nil {
			return nil, Error{Path: l.path, Line: p.line, Message: "invalid account", Wrapped: err}
		}
		var m *money.Money
		if p.amount != "" {
			amount, err := reg.ParseMoney(p.amount)
			if err != nil {
				return nil, Error{Path: l.path, Line: p.line, Message: "invalid amount", Wrapped: err}
			}
			m = &amount
		}
		if err := sink.WithPosting(a, m); err != nil {
			return nil, Error{Path: l.path, Line: p.line, Message: "invalid posting", Wrapped: err}
		}
	}
	t, err := sink.Build()
	if err != nil {
		return nil, Error{Path: l.path, Line: b.line, Message: "invalid transaction", Wrapped: err}
	}
	return t, nil
}
