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
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coinjar/coinjar/lib/common/set"
)

func exampleTree(t *testing.T) *Tree {
	t.Helper()
	tree := NewTree()
	for _, name := range []string{
		"expense:food:drinks:beer",
		"expense:food:drinks:wine",
		"expense:food:drinks:chips:drinks",
		"expense:food:drinks:drinks",
		"income:salary",
	} {
		if _, err := tree.ResolveName(name); err != nil {
			t.Fatal(err)
		}
	}
	tree.ProvisionContact("Alice")
	tree.ProvisionContact("Bob")
	return tree
}

func names(tree *Tree, as []Account) []string {
	var res []string
	for _, a := range as {
		res = append(res, tree.AbsName(a))
	}
	slices.Sort(res)
	return res
}

func TestNewTree(t *testing.T) {
	tree := NewTree()
	if tree.Len() != 5 {
		t.Fatalf("Len(): Got %d, wanted 5", tree.Len())
	}
	for _, at := range Types {
		r := tree.Root(at)
		if got := tree.AbsName(r); got != at.String() {
			t.Errorf("AbsName(%v): Got %q, wanted %q", at, got, at.String())
		}
		if _, ok := tree.Parent(r); ok {
			t.Errorf("root %v has a parent", at)
		}
		if tree.Type(r) != at {
			t.Errorf("Type(%v): Got %v", at, tree.Type(r))
		}
	}
}

func TestOpenChildIsIdempotent(t *testing.T) {
	tree := NewTree()
	a1 := tree.OpenChild(tree.Expense(), "x")
	a2 := tree.OpenChild(tree.Expense(), "x")
	if a1 != a2 {
		t.Errorf("OpenChild returned different accounts for the same name")
	}
	if got := len(tree.Children(tree.Expense())); got != 1 {
		t.Errorf("Children(expense): Got %d accounts, wanted 1", got)
	}
	if other := tree.OpenChild(tree.Income(), "x"); other == a1 {
		t.Errorf("accounts under different parents must differ")
	}
}

func TestResolveRoundTrip(t *testing.T) {
	tree := NewTree()
	for _, path := range []string{
		"asset",
		"asset:cash:checking",
		"liability:credit-card:visa",
		"expense:food:drinks",
		"expense:food:drinks:beer",
		"equity:opening-balances",
	} {
		a, err := tree.ResolveName(path)
		if err != nil {
			t.Fatalf("ResolveName(%q): %v", path, err)
		}
		if got := tree.AbsName(a); got != path {
			t.Errorf("AbsName(ResolveName(%q)): Got %q", path, got)
		}
		again, _ := tree.ResolveName(path)
		if again != a {
			t.Errorf("ResolveName(%q) is not idempotent", path)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	tree := NewTree()
	var nf NotFoundError
	if _, err := tree.ResolveName("assets:cash"); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError for unknown root, got %v", err)
	}
	for _, path := range []string{"", "asset::cash", "asset:@", "asset:a;b"} {
		if _, err := tree.ResolveName(path); err == nil {
			t.Errorf("ResolveName(%q): expected error", path)
		}
	}
	if tree.Len() != 5 {
		t.Errorf("failed resolution must not create accounts, Len() = %d", tree.Len())
	}
}

func TestResolveProvisionsContacts(t *testing.T) {
	tree := NewTree()
	a, err := tree.ResolveName("asset:@carol:receivable")
	if err != nil {
		t.Fatal(err)
	}
	c, ok := tree.Contact("carol")
	if !ok {
		t.Fatalf("contact carol was not provisioned")
	}
	if c.Receivable != a {
		t.Errorf("resolved account differs from the contact's receivable")
	}
	if got := tree.AbsName(c.Payable); got != "liability:@carol:payable" {
		t.Errorf("payable: Got %q", got)
	}
}

func TestProvisionContact(t *testing.T) {
	tree := NewTree()
	c1 := tree.ProvisionContact("alice")
	n := tree.Len()
	c2 := tree.ProvisionContact("@alice")
	if c1 != c2 || c1.Payable != c2.Payable || c1.Receivable != c2.Receivable {
		t.Errorf("ProvisionContact is not idempotent")
	}
	if tree.Len() != n {
		t.Errorf("ProvisionContact created accounts twice")
	}
	got := []string{tree.AbsName(c1.Payable), tree.AbsName(c1.Receivable)}
	want := []string{"liability:@alice:payable", "asset:@alice:receivable"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
	if !tree.IsLiability(c1.Payable) || !tree.IsAsset(c1.Receivable) {
		t.Errorf("contact accounts have the wrong type")
	}
}

func TestFindExact(t *testing.T) {
	tree := exampleTree(t)

	food, err := tree.FindExact("food")
	if err != nil {
		t.Fatal(err)
	}
	if !tree.IsExpense(food) {
		t.Errorf("food is not an expense account")
	}
	salary, err := tree.FindExact("salary")
	if err != nil {
		t.Fatal(err)
	}
	if !tree.IsIncome(salary) {
		t.Errorf("salary is not an income account")
	}

	_, err = tree.FindExact("drinks")
	var amb AmbiguousError
	if !errors.As(err, &amb) {
		t.Fatalf("expected AmbiguousError, got %v", err)
	}
	want := []string{
		"expense:food:drinks",
		"expense:food:drinks:chips:drinks",
		"expense:food:drinks:drinks",
	}
	if diff := cmp.Diff(want, amb.Names); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
	if len(amb.Candidates) != 3 {
		t.Errorf("Candidates: Got %d, wanted 3", len(amb.Candidates))
	}

	var nf NotFoundError
	if _, err := tree.FindExact("Food"); !errors.As(err, &nf) {
		t.Errorf("FindExact must be case-sensitive, got %v", err)
	}
}

func TestFindFuzzy(t *testing.T) {
	tree := NewTree()
	for _, name := range []string{"income:a:aa:aab:aaab", "income:b:ba:bab:baab"} {
		if _, err := tree.ResolveName(name); err != nil {
			t.Fatal(err)
		}
	}
	var tests = []struct {
		tokens []string
		want   []string
	}{
		{
			tokens: []string{"a", "a"},
			want: []string{
				"income:a:aa",
				"income:a:aa:aab",
				"income:a:aa:aab:aaab",
				"income:b:ba:bab",
				"income:b:ba:bab:baab",
			},
		},
		{
			tokens: []string{"A", "AA"},
			want: []string{
				"income:a:aa",
				"income:a:aa:aab",
				"income:a:aa:aab:aaab",
				"income:b:ba:bab:baab",
			},
		},
		{
			tokens: []string{"inc", "b"},
			want:   []string{"income:b"},
		},
		{
			tokens: []string{"asset", "x"},
		},
	}
	for _, test := range tests {
		var got []Account
		for a := range tree.FindFuzzy(test.tokens) {
			got = append(got, a)
		}
		if diff := cmp.Diff(test.want, names(tree, got)); diff != "" {
			t.Errorf("FindFuzzy(%v): unexpected diff (+got/-want):\n%s", test.tokens, diff)
		}
	}
}

func TestFindFuzzyStopsEarly(t *testing.T) {
	tree := exampleTree(t)
	var n int
	for range tree.FindFuzzy([]string{""}) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("Got %d accounts, wanted 2", n)
	}
}

func TestFindUnique(t *testing.T) {
	tree := exampleTree(t)
	a, err := tree.FindUnique("dr:BEE")
	if err != nil {
		t.Fatal(err)
	}
	if got := tree.AbsName(a); got != "expense:food:drinks:beer" {
		t.Errorf("Got %q", got)
	}
	var amb AmbiguousError
	if _, err := tree.FindUnique("@"); !errors.As(err, &amb) {
		t.Errorf("expected AmbiguousError, got %v", err)
	}
	var nf NotFoundError
	if _, err := tree.FindUnique("nothing"); !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestElders(t *testing.T) {
	tree := exampleTree(t)
	drinks, _ := tree.ResolveName("expense:food:drinks")
	beer, _ := tree.ResolveName("expense:food:drinks:beer")
	salary, _ := tree.ResolveName("income:salary")

	got := tree.Elders(set.Of(drinks, beer, salary))

	want := []string{"expense:food:drinks", "income:salary"}
	if diff := cmp.Diff(want, names(tree, got.Slice())); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}

	var matched []Account
	for a := range tree.FindFuzzy([]string{"drinks"}) {
		matched = append(matched, a)
	}
	elders := tree.Elders(set.Of(matched...))
	if diff := cmp.Diff([]string{"expense:food:drinks"}, names(tree, elders.Slice())); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestAncestors(t *testing.T) {
	tree := exampleTree(t)
	beer, _ := tree.ResolveName("expense:food:drinks:beer")
	food, _ := tree.ResolveName("expense:food")

	got := names(tree, tree.Ancestors(beer))

	want := []string{"expense", "expense:food", "expense:food:drinks", "expense:food:drinks:beer"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
	if !tree.IsDescendantOrSelf(beer, food) || !tree.IsDescendantOrSelf(food, food) {
		t.Errorf("beer and food must descend from food")
	}
	if tree.IsDescendantOrSelf(food, beer) {
		t.Errorf("food does not descend from beer")
	}
}

func TestAccounts(t *testing.T) {
	tree := NewTree()
	tree.ResolveName("income:salary")
	tree.ResolveName("asset:cash")
	var got []string
	for _, a := range tree.Accounts() {
		got = append(got, tree.AbsName(a))
	}
	want := []string{"asset", "asset:cash", "equity", "expense", "income", "income:salary", "liability"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestFindIgnoringCase(t *testing.T) {
	tree := exampleTree(t)
	food, _ := tree.ResolveName("expense:food")

	if got, err := tree.FindExactFold("FOOD"); err != nil || got != food {
		t.Errorf("FindExactFold(FOOD): Got %v, %v", got, err)
	}
	if got, err := tree.FindRoot("Exp"); err != nil || got != tree.Expense() {
		t.Errorf("FindRoot(Exp): Got %v, %v", got, err)
	}
	var amb AmbiguousError
	if _, err := tree.FindRoot("e"); !errors.As(err, &amb) {
		t.Errorf("FindRoot(e): expected AmbiguousError, got %v", err)
	}
	if got, err := tree.FindChild(tree.Expense(), "FO"); err != nil || got != food {
		t.Errorf("FindChild(expense, FO): Got %v, %v", got, err)
	}
	var nf NotFoundError
	if _, err := tree.FindChild(food, "x"); !errors.As(err, &nf) {
		t.Errorf("FindChild(food, x): expected NotFoundError, got %v", err)
	}
}
