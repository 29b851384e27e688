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
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coinjar/coinjar/lib/common/date"
	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/money"
	"github.com/coinjar/coinjar/lib/model/posting"
	"github.com/coinjar/coinjar/lib/model/registry"
	"github.com/coinjar/coinjar/lib/model/transaction"
)

func newSink(reg *registry.Registry, j *journal.Journal) Sink {
	b := j.NewTransaction(date.Date(2021, 5, 10), "Dinner")
	return New(b, reg.Accounts(), Defaults(reg.Accounts(), 2)...)
}

func lines(reg *registry.Registry, ps []posting.Posting) []string {
	var res []string
	for _, p := range ps {
		res = append(res, reg.Accounts().AbsName(p.Account)+" "+p.Money.String())
	}
	return res
}

func resolve(t *testing.T, s Sink, segments ...string) account.Account {
	t.Helper()
	a, err := s.ResolveAccount(segments)
	if err != nil {
		t.Fatalf("ResolveAccount(%v) returned unexpected error: %v", segments, err)
	}
	return a
}

func tag(t *testing.T, s Sink, name string, args ...string) {
	t.Helper()
	if err := s.WithTag(name, args); err != nil {
		t.Fatalf("WithTag(%q, %v) returned unexpected error: %v", name, args, err)
	}
}

func post(t *testing.T, s Sink, a account.Account, m *money.Money) {
	t.Helper()
	if err := s.WithPosting(a, m); err != nil {
		t.Fatalf("WithPosting() returned unexpected error: %v", err)
	}
}

func build(t *testing.T, s Sink) *transaction.Transaction {
	t.Helper()
	txn, err := s.Build()
	if err != nil {
		t.Fatalf("Build() returned unexpected error: %v", err)
	}
	return txn
}

func ptr(m money.Money) *money.Money {
	return &m
}

func TestBaseRejectsUnknownTag(t *testing.T) {
	reg := registry.New()
	s := newSink(reg, journal.New(reg))

	err := s.WithTag("nope", nil)

	if err == nil || !strings.Contains(err.Error(), "#nope") {
		t.Fatalf("WithTag() returned %v, want error mentioning #nope", err)
	}
}

func TestPlainResolution(t *testing.T) {
	reg := registry.New()
	s := newSink(reg, journal.New(reg))

	a := resolve(t, s, "expense", "food", "Drinks")

	if got, want := reg.Accounts().AbsName(a), "expense:food:Drinks"; got != want {
		t.Fatalf("AbsName() = %q, want %q", got, want)
	}
}

func TestFuzzy(t *testing.T) {
	reg := registry.New()
	for _, name := range []string{"expense:food:drinks", "expense:food:groceries", "asset:bank:checking"} {
		reg.Account(name)
	}
	j := journal.New(reg)

	tests := []struct {
		name     string
		args     []string
		segments []string
		want     string
	}{
		{
			name:     "single segment ignores case",
			args:     nil,
			segments: []string{"GROCERIES"},
			want:     "expense:food:groceries",
		},
		{
			name:     "root",
			args:     []string{"root"},
			segments: []string{"exp", "food", "snacks"},
			want:     "expense:food:snacks",
		},
		{
			name:     "recursive",
			args:     []string{"deep"},
			segments: []string{"ass", "BA", "check"},
			want:     "asset:bank:checking",
		},
		{
			name:     "recursive falls back to plain resolution",
			args:     []string{"recursive"},
			segments: []string{"expense", "xyz", "wine"},
			want:     "expense:xyz:wine",
		},
		{
			name:     "recursive adds accounts",
			args:     []string{"recursive", "adds_accn"},
			segments: []string{"exp", "fo", "beer"},
			want:     "expense:food:beer",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			s := newSink(reg, j)
			tag(t, s, "fuzzy_accn", test.args...)

			a := resolve(t, s, test.segments...)

			if got := reg.Accounts().AbsName(a); got != test.want {
				t.Fatalf("AbsName() = %q, want %q", got, test.want)
			}
		})
	}

	t.Run("single segment must be unique", func(t *testing.T) {
		s := newSink(reg, j)
		tag(t, s, "fuzzy_accn")
		_, err := s.ResolveAccount([]string{"missing"})
		if !errors.As(err, new(account.NotFoundError)) {
			t.Fatalf("ResolveAccount() returned %v, want account.NotFoundError", err)
		}
	})

	t.Run("unknown argument", func(t *testing.T) {
		s := newSink(reg, j)
		if err := s.WithTag("fuzzy_accn", []string{"sideways"}); err == nil {
			t.Fatalf("WithTag() returned nil, want error")
		}
	})

	t.Run("disabled without tag", func(t *testing.T) {
		s := newSink(reg, j)
		_, err := s.ResolveAccount([]string{"groceries"})
		if !errors.As(err, new(account.NotFoundError)) {
			t.Fatalf("ResolveAccount() returned %v, want account.NotFoundError", err)
		}
	})
}

func TestRelativeDate(t *testing.T) {
	reg := registry.New()
	j := journal.New(reg)
	s := newSink(reg, j)

	tag(t, s, "date", "-3")
	post(t, s, resolve(t, s, "expense", "food"), ptr(reg.Money("$10")))
	post(t, s, resolve(t, s, "asset", "cash"), nil)
	txn := build(t, s)

	if want := date.Date(2021, 5, 7); !txn.Date.Equal(want) {
		t.Fatalf("txn.Date = %v, want %v", txn.Date, want)
	}
}

func TestRelativeDateErrors(t *testing.T) {
	reg := registry.New()
	s := newSink(reg, journal.New(reg))

	for _, args := range [][]string{nil, {"x"}} {
		if err := s.WithTag("date", args); err == nil {
			t.Errorf("WithTag(date, %v) returned nil, want error", args)
		}
	}
	tag(t, s, "date", "1")
	if err := s.WithTag("date", []string{"1"}); err == nil {
		t.Errorf("second WithTag(date) returned nil, want error")
	}
}

func TestSplit(t *testing.T) {
	reg := registry.New()
	j := journal.New(reg)
	s := newSink(reg, j)

	tag(t, s, "split", "alice", "@bob")
	post(t, s, resolve(t, s, "expense", "food"), ptr(reg.Money("$10")))
	post(t, s, resolve(t, s, "expense", "drinks"), ptr(reg.Money("$5")))
	post(t, s, resolve(t, s, "liability", "card"), nil)
	txn := build(t, s)

	want := []string{
		"expense:food $3.34",
		"asset:@alice:receivable $5.00",
		"asset:@bob:receivable $5.00",
		"expense:drinks $1.66",
		"liability:card -$15.00",
	}
	if diff := cmp.Diff(want, lines(reg, txn.Postings)); diff != "" {
		t.Fatalf("unexpected diff (+got/-want):\n%s", diff)
	}
	if !txn.Balance().IsZero() {
		t.Fatalf("txn.Balance() = %v, want 0", txn.Balance())
	}
}

func TestSplitKeepsOtherPostings(t *testing.T) {
	reg := registry.New()
	j := journal.New(reg)
	s := newSink(reg, j)

	tag(t, s, "split", "alice")
	post(t, s, resolve(t, s, "expense", "food"), ptr(reg.Money("$0.05")))
	post(t, s, resolve(t, s, "asset", "cash"), ptr(reg.Money("-$0.05")))
	txn := build(t, s)

	want := []string{
		"expense:food $0.03",
		"asset:@alice:receivable $0.02",
		"asset:cash -$0.05",
	}
	if diff := cmp.Diff(want, lines(reg, txn.Postings)); diff != "" {
		t.Fatalf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestSplitErrors(t *testing.T) {
	reg := registry.New()
	s := newSink(reg, journal.New(reg))

	if err := s.WithTag("split", nil); err == nil {
		t.Errorf("WithTag(split) without arguments returned nil, want error")
	}
	tag(t, s, "split", "alice")
	if err := s.WithTag("split", []string{"bob"}); err == nil {
		t.Errorf("second WithTag(split) returned nil, want error")
	}
	if err := s.WithPosting(resolve(t, s, "expense", "food"), ptr(reg.Money("$0.001"))); err == nil {
		t.Errorf("WithPosting($0.001) returned nil, want error")
	}
}

func TestChainOrder(t *testing.T) {
	var calls []string
	trace := func(name string) Decorator {
		return func(s Sink) Sink {
			return &tracer{Sink: s, name: name, calls: &calls}
		}
	}
	reg := registry.New()
	s := New(journal.New(reg).NewTransaction(date.Date(2021, 1, 1), ""), reg.Accounts(), trace("outer"), trace("inner"))

	_, _ = s.Build()

	if diff := cmp.Diff([]string{"outer", "inner"}, calls); diff != "" {
		t.Fatalf("unexpected diff (+got/-want):\n%s", diff)
	}
}

type tracer struct {
	Sink
	name  string
	calls *[]string
}

func (t *tracer) Build() (*transaction.Transaction, error) {
	*t.calls = append(*t.calls, t.name)
	return t.Sink.Build()
}
