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
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/coinjar/coinjar/lib/common/compare"
	"github.com/coinjar/coinjar/lib/common/set"
)

type node struct {
	name        string
	parent      Account
	accountType Type
}

// Tree is a forest of accounts below the five root categories.
type Tree struct {
	nodes    map[Account]*node
	children map[Account][]Account
	roots    [5]Account
	contacts map[string]*Contact
}

// NewTree creates a tree holding only the root categories.
func NewTree() *Tree {
	t := &Tree{
		nodes:    make(map[Account]*node),
		children: make(map[Account][]Account),
		contacts: make(map[string]*Contact),
	}
	for _, at := range Types {
		t.roots[at] = t.insert(Account{}, at.String(), at)
	}
	return t
}

func (t *Tree) insert(parent Account, name string, at Type) Account {
	a := Account{uuid.New()}
	t.nodes[a] = &node{name: name, parent: parent, accountType: at}
	t.children[parent] = append(t.children[parent], a)
	return a
}

func (t *Tree) node(a Account) *node {
	n, ok := t.nodes[a]
	if !ok {
		panic(fmt.Sprintf("account %v does not belong to this tree", a))
	}
	return n
}

// Root returns the root account of the given type.
func (t *Tree) Root(at Type) Account {
	return t.roots[at]
}

// Asset returns the asset root.
func (t *Tree) Asset() Account { return t.roots[ASSET] }

// Liability returns the liability root.
func (t *Tree) Liability() Account { return t.roots[LIABILITY] }

// Equity returns the equity root.
func (t *Tree) Equity() Account { return t.roots[EQUITY] }

// Income returns the income root.
func (t *Tree) Income() Account { return t.roots[INCOME] }

// Expense returns the expense root.
func (t *Tree) Expense() Account { return t.roots[EXPENSE] }

// Roots returns the five root accounts.
func (t *Tree) Roots() []Account {
	return t.roots[:]
}

// RootByName returns the root category with the given name.
func (t *Tree) RootByName(name string) (Account, bool) {
	for _, r := range t.roots {
		if t.nodes[r].name == name {
			return r, true
		}
	}
	return Account{}, false
}

// OpenChild returns the child of parent with the given name, creating
// it if it does not exist yet.
func (t *Tree) OpenChild(parent Account, name string) Account {
	p := t.node(parent)
	for _, c := range t.children[parent] {
		if t.nodes[c].name == name {
			return c
		}
	}
	return t.insert(parent, name, p.accountType)
}

// Resolve returns the account with the given path, creating missing
// accounts. The first segment must name a root category. A segment
// starting with @ provisions the contact of that name.
func (t *Tree) Resolve(segments []string) (Account, error) {
	if len(segments) == 0 {
		return Account{}, fmt.Errorf("empty account path")
	}
	for _, s := range segments {
		if !isValidSegment(s) {
			return Account{}, fmt.Errorf("account %q has an invalid segment %q", strings.Join(segments, Separator), s)
		}
	}
	acc, ok := t.RootByName(segments[0])
	if !ok {
		return Account{}, NotFoundError{strings.Join(segments, Separator)}
	}
	for _, s := range segments[1:] {
		if name, ok := strings.CutPrefix(s, "@"); ok {
			t.ProvisionContact(name)
		}
		acc = t.OpenChild(acc, s)
	}
	return acc, nil
}

// ResolveName resolves a full account name like expense:food:drinks.
func (t *Tree) ResolveName(name string) (Account, error) {
	return t.Resolve(strings.Split(name, Separator))
}

func isValidSegment(s string) bool {
	return len(s) > 0 && s != "@" && !strings.ContainsAny(s, Separator+" \t\n#;")
}

// Name returns the segment name of a.
func (t *Tree) Name(a Account) string {
	return t.node(a).name
}

// Type returns the type of a.
func (t *Tree) Type(a Account) Type {
	return t.node(a).accountType
}

// IsAsset returns whether a is an asset account.
func (t *Tree) IsAsset(a Account) bool { return t.Type(a) == ASSET }

// IsLiability returns whether a is a liability account.
func (t *Tree) IsLiability(a Account) bool { return t.Type(a) == LIABILITY }

// IsEquity returns whether a is an equity account.
func (t *Tree) IsEquity(a Account) bool { return t.Type(a) == EQUITY }

// IsIncome returns whether a is an income account.
func (t *Tree) IsIncome(a Account) bool { return t.Type(a) == INCOME }

// IsExpense returns whether a is an expense account.
func (t *Tree) IsExpense(a Account) bool { return t.Type(a) == EXPENSE }

// Parent returns the parent of a. Root accounts have no parent.
func (t *Tree) Parent(a Account) (Account, bool) {
	p := t.node(a).parent
	return p, !p.IsZero()
}

// Children returns the children of a in creation order.
func (t *Tree) Children(a Account) []Account {
	t.node(a)
	return append([]Account(nil), t.children[a]...)
}

// Ancestors returns the chain of ancestors of a, starting at its root
// and including a.
func (t *Tree) Ancestors(a Account) []Account {
	var res []Account
	for ; !a.IsZero(); a = t.node(a).parent {
		res = append(res, a)
	}
	for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
		res[i], res[j] = res[j], res[i]
	}
	return res
}

// IsDescendantOrSelf checks whether ancestor lies on the ancestor chain of a.
func (t *Tree) IsDescendantOrSelf(a, ancestor Account) bool {
	for ; !a.IsZero(); a = t.node(a).parent {
		if a == ancestor {
			return true
		}
	}
	return false
}

// AbsName returns the full name of a, e.g. expense:food:drinks.
func (t *Tree) AbsName(a Account) string {
	var ss []string
	for _, anc := range t.Ancestors(a) {
		ss = append(ss, t.nodes[anc].name)
	}
	return strings.Join(ss, Separator)
}

// Segments returns the names on the path to a.
func (t *Tree) Segments(a Account) []string {
	return strings.Split(t.AbsName(a), Separator)
}

// Len returns the number of accounts.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Accounts returns all accounts, sorted by full name.
func (t *Tree) Accounts() []Account {
	res := make([]Account, 0, len(t.nodes))
	t.walk(func(a Account, _ []string) bool {
		res = append(res, a)
		return true
	})
	compare.Sort(res, t.Compare)
	return res
}

// Compare orders accounts by their full name.
func (t *Tree) Compare(a1, a2 Account) compare.Order {
	return compare.Ordered(t.AbsName(a1), t.AbsName(a2))
}

// Elders returns the accounts of as which have no proper ancestor in as.
func (t *Tree) Elders(as set.Set[Account]) set.Set[Account] {
	res := set.New[Account]()
	for a := range as {
		res.Add(a)
	}
	res.Retain(func(a Account) bool {
		for p, ok := t.Parent(a); ok; p, ok = t.Parent(p) {
			if as.Has(p) {
				return false
			}
		}
		return true
	})
	return res
}

// walk visits all accounts depth-first in pre-order, passing the names
// on the path to each account. It stops when f returns false.
func (t *Tree) walk(f func(Account, []string) bool) bool {
	var (
		stack []string
		visit func(a Account) bool
	)
	visit = func(a Account) bool {
		stack = append(stack, t.nodes[a].name)
		defer func() { stack = stack[:len(stack)-1] }()
		if !f(a, stack) {
			return false
		}
		for _, c := range t.children[a] {
			if !visit(c) {
				return false
			}
		}
		return true
	}
	for _, r := range t.roots {
		if !visit(r) {
			return false
		}
	}
	return true
}
