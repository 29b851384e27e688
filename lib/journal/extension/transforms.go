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

package extension

import (
	"fmt"
	"strconv"

	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/transaction"
)

type fuzzy struct {
	Sink
	tree      *account.Tree
	enabled   bool
	recursive bool
	rootOnly  bool
	addsAccn  bool
}

// Fuzzy handles the tag #fuzzy_accn [recursive|deep] [root|root_only]
// [adds_accn]. Once enabled, a single-segment account name is matched
// against all account names ignoring case. With root, the first
// segment is matched against the root categories. With recursive,
// every segment selects the only child containing it, and adds_accn
// creates children which do not match; if that fails, the name is
// resolved as usual.
func Fuzzy(tree *account.Tree) Decorator {
	return func(s Sink) Sink {
		return &fuzzy{Sink: s, tree: tree}
	}
}

func (f *fuzzy) WithTag(name string, args []string) error {
	if name != "fuzzy_accn" {
		return f.Sink.WithTag(name, args)
	}
	f.enabled = true
	for _, arg := range args {
		switch arg {
		case "recursive", "deep":
			f.recursive = true
		case "root", "root_only":
			f.rootOnly = true
		case "adds_accn":
			f.addsAccn = true
		default:
			return fmt.Errorf("unknown argument for tag #fuzzy_accn: %q", arg)
		}
	}
	return nil
}

func (f *fuzzy) ResolveAccount(segments []string) (account.Account, error) {
	if !f.enabled {
		return f.Sink.ResolveAccount(segments)
	}
	if len(segments) == 1 {
		return f.tree.FindExactFold(segments[0])
	}
	switch {
	case f.recursive:
		if a, ok := f.walk(segments); ok {
			return a, nil
		}
		return f.Sink.ResolveAccount(segments)
	case f.rootOnly:
		root, err := f.tree.FindRoot(segments[0])
		if err != nil {
			return account.Account{}, err
		}
		rest := append([]string{f.tree.Name(root)}, segments[1:]...)
		return f.Sink.ResolveAccount(rest)
	}
	return f.Sink.ResolveAccount(segments)
}

func (f *fuzzy) walk(segments []string) (account.Account, bool) {
	acc, err := f.tree.FindRoot(segments[0])
	if err != nil {
		return account.Account{}, false
	}
	for _, s := range segments[1:] {
		if len(s) > 1 && s[0] == '@' {
			f.tree.ProvisionContact(s[1:])
		}
		child, err := f.tree.FindChild(acc, s)
		switch {
		case err == nil:
			acc = child
		case f.addsAccn:
			acc = f.tree.OpenChild(acc, s)
		default:
			return account.Account{}, false
		}
	}
	return acc, true
}

type relativeDate struct {
	Sink
	days *int
}

// RelativeDate handles the tag #date N, which shifts the date of the
// transaction by N days.
func RelativeDate() Decorator {
	return func(s Sink) Sink {
		return &relativeDate{Sink: s}
	}
}

func (r *relativeDate) WithTag(name string, args []string) error {
	if name != "date" {
		return r.Sink.WithTag(name, args)
	}
	if r.days != nil {
		return fmt.Errorf("tag #date is already set")
	}
	if len(args) != 1 {
		return fmt.Errorf("tag #date expects exactly one argument, got %d", len(args))
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("tag #date expects an integer argument: %w", err)
	}
	r.days = &n
	return nil
}

func (r *relativeDate) Build() (*transaction.Transaction, error) {
	if r.days == nil {
		return r.Sink.Build()
	}
	b := r.Builder()
	d := b.Date()
	b.SetDate(d.AddDate(0, 0, *r.days))
	t, err := r.Sink.Build()
	if err != nil {
		b.SetDate(d)
	}
	return t, err
}
