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

package registry

import (
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/currency"
	"github.com/coinjar/coinjar/lib/model/money"
)

// Registry is the context of a ledger, namely its tree of accounts
// and its catalog of currencies.
type Registry struct {
	accounts   *account.Tree
	currencies *currency.Catalog
}

// New creates a registry with the root accounts and the default
// currencies.
func New() *Registry {
	return NewWith(account.NewTree(), currency.NewDefaultCatalog())
}

// NewWith creates a registry from the given parts.
func NewWith(accounts *account.Tree, currencies *currency.Catalog) *Registry {
	return &Registry{
		accounts:   accounts,
		currencies: currencies,
	}
}

// Accounts returns the account tree.
func (reg *Registry) Accounts() *account.Tree {
	return reg.accounts
}

// Currencies returns the currency catalog.
func (reg *Registry) Currencies() *currency.Catalog {
	return reg.currencies
}

// Account resolves a full account name or panics.
func (reg *Registry) Account(name string) account.Account {
	a, err := reg.accounts.ResolveName(name)
	if err != nil {
		panic(err)
	}
	return a
}

// Currency returns a currency by code or symbol or panics.
func (reg *Registry) Currency(text string) *currency.Currency {
	c, err := reg.currencies.Resolve(text)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseMoney parses an amount using the registry's currencies.
func (reg *Registry) ParseMoney(text string) (money.Money, error) {
	return money.Parse(text, reg.currencies)
}

// Money parses an amount or panics.
func (reg *Registry) Money(text string) money.Money {
	return money.MustParse(text, reg.currencies)
}
