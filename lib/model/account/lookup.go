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

package account

import (
	"iter"
	"strings"

	"golang.org/x/text/cases"

	"github.com/coinjar/coinjar/lib/common/compare"
	"github.com/coinjar/coinjar/lib/common/dict"
)

// FindExact returns the only account named name. It returns a
// NotFoundError or an AmbiguousError if there is no such account or
// more than one.
func (t *Tree) FindExact(name string) (Account, error) {
	var res []Account
	t.walk(func(a Account, _ []string) bool {
		if t.nodes[a].name == name {
			res = append(res, a)
		}
		return true
	})
	return t.unique(name, res)
}

// FindExactFold is like FindExact, but ignores case.
func (t *Tree) FindExactFold(name string) (Account, error) {
	folder := cases.Fold()
	want := folder.String(name)
	var res []Account
	t.walk(func(a Account, _ []string) bool {
		if folder.String(t.nodes[a].name) == want {
			res = append(res, a)
		}
		return true
	})
	return t.unique(name, res)
}

// FindRoot returns the only root category whose name contains text,
// ignoring case.
func (t *Tree) FindRoot(text string) (Account, error) {
	var res []Account
	for _, r := range t.roots {
		if containsFold(t.nodes[r].name, text) {
			res = append(res, r)
		}
	}
	return t.unique(text, res)
}

// FindChild returns the only child of parent whose name contains
// text, ignoring case.
func (t *Tree) FindChild(parent Account, text string) (Account, error) {
	var res []Account
	for _, c := range t.Children(parent) {
		if containsFold(t.nodes[c].name, text) {
			res = append(res, c)
		}
	}
	return t.unique(text, res)
}

func containsFold(s, substr string) bool {
	folder := cases.Fold()
	return strings.Contains(folder.String(s), folder.String(substr))
}

// FindFuzzy returns every account whose trailing path segments
// contain the given tokens position by position, ignoring case. The
// tokens a and a match income:a:aa because both a and aa contain a.
func (t *Tree) FindFuzzy(tokens []string) iter.Seq[Account] {
	folder := cases.Fold()
	folded := make([]string, len(tokens))
	for i, tok := range tokens {
		folded[i] = folder.String(tok)
	}
	return func(yield func(Account) bool) {
		folder := cases.Fold()
		t.walk(func(a Account, stack []string) bool {
			if len(stack) < len(folded) {
				return true
			}
			window := stack[len(stack)-len(folded):]
			for i, tok := range folded {
				if !strings.Contains(folder.String(window[i]), tok) {
					return true
				}
			}
			return yield(a)
		})
	}
}

// FindUnique splits pattern at colons and returns the only account
// matching the tokens fuzzily.
func (t *Tree) FindUnique(pattern string) (Account, error) {
	var res []Account
	for a := range t.FindFuzzy(strings.Split(pattern, Separator)) {
		res = append(res, a)
	}
	return t.unique(pattern, res)
}

func (t *Tree) unique(query string, as []Account) (Account, error) {
	switch len(as) {
	case 0:
		return Account{}, NotFoundError{query}
	case 1:
		return as[0], nil
	}
	compare.Sort(as, t.Compare)
	names := make([]string, 0, len(as))
	for _, a := range as {
		names = append(names, t.AbsName(a))
	}
	return Account{}, AmbiguousError{Query: query, Candidates: as, Names: names}
}

// ProvisionContact returns the contact with the given name, creating
// its accounts liability:@name:payable and asset:@name:receivable
// on first use.
func (t *Tree) ProvisionContact(name string) *Contact {
	name = strings.TrimPrefix(name, "@")
	if c, ok := t.contacts[name]; ok {
		return c
	}
	c := &Contact{
		Name:       name,
		Payable:    t.OpenChild(t.OpenChild(t.Liability(), "@"+name), "payable"),
		Receivable: t.OpenChild(t.OpenChild(t.Asset(), "@"+name), "receivable"),
	}
	t.contacts[name] = c
	return c
}

// Contact returns a contact which has been provisioned before.
func (t *Tree) Contact(name string) (*Contact, bool) {
	c, ok := t.contacts[strings.TrimPrefix(name, "@")]
	return c, ok
}

// Contacts returns all contacts, sorted by name.
func (t *Tree) Contacts() []*Contact {
	var res []*Contact
	for _, name := range dict.SortedKeys(t.contacts, compare.Ordered[string]) {
		res = append(res, t.contacts[name])
	}
	return res
}
