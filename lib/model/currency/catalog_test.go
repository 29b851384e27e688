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

package currency

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve(t *testing.T) {
	cat := NewDefaultCatalog()
	var tests = []struct {
		text string
		want string
	}{
		{"USD", "USD"},
		{"usd", "USD"},
		{"$", "USD"},
		{"€", "EUR"},
		{"£", "GBP"},
		{"¥", "CNY"},
		{"jpy", "JPY"},
		{"chf", "CHF"},
	}
	for _, test := range tests {
		c, err := cat.Resolve(test.text)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error %v", test.text, err)
		}
		if c.Code() != test.want {
			t.Errorf("Resolve(%q): Got %s, wanted %s", test.text, c.Code(), test.want)
		}
	}
}

func TestResolveNotFound(t *testing.T) {
	cat := NewDefaultCatalog()
	_, err := cat.Resolve("XYZ")
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Resolve(XYZ): expected NotFoundError, got %v", err)
	}
	if nf.Text != "XYZ" {
		t.Errorf("NotFoundError.Text: Got %q, wanted %q", nf.Text, "XYZ")
	}
}

func TestRegister(t *testing.T) {
	cat := NewDefaultCatalog()

	c, err := cat.Register("btc", "₿", "Bitcoin", SymbolPrefix)
	if err != nil {
		t.Fatal(err)
	}
	if c.Code() != "BTC" {
		t.Errorf("Code(): Got %q, wanted BTC", c.Code())
	}
	again, err := cat.Register("BTC", "₿", "", SymbolPrefix)
	if err != nil {
		t.Fatal(err)
	}
	if again != c {
		t.Errorf("re-registering BTC returned a different currency")
	}
	if _, err := cat.Register("BTC", "B", "", SymbolPrefix); err == nil {
		t.Errorf("expected error when changing the symbol of BTC")
	}
	if _, err := cat.Register("1X", "", "", SymbolPrefix); err == nil {
		t.Errorf("expected error for invalid code")
	}
	if _, err := cat.Register("ABC", "A1", "", SymbolPrefix); err == nil {
		t.Errorf("expected error for invalid symbol")
	}
	noSymbol := cat.MustRegister("SEK", "", "Swedish Krona", SymbolPrefix)
	if noSymbol.Convention() != CodeSuffix {
		t.Errorf("currency without symbol must use the code convention")
	}

	var got []string
	for _, c := range cat.Declared() {
		got = append(got, c.String())
	}
	want := []string{"BTC ₿ -- Bitcoin", "SEK -- Swedish Krona"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declared(): unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestCurrencies(t *testing.T) {
	var got []string
	for _, c := range NewDefaultCatalog().Currencies() {
		got = append(got, c.Code())
	}
	want := []string{"CHF", "CNY", "EUR", "GBP", "JPY", "USD"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Currencies(): unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestRegisterTakenSymbol(t *testing.T) {
	tests := []struct {
		code, symbol string
		want         Convention
	}{
		{"BTC", "₿", SymbolPrefix},
		{"AUD", "$", CodeSuffix},
		{"MXN", "$", CodeSuffix},
		{"XCH", "CHF", CodeSuffix},
		{"XUS", "usd", CodeSuffix},
		{"NOK", "kr", SymbolPrefix},
		{"SEK", "kr", CodeSuffix},
	}
	cat := NewDefaultCatalog()
	for _, test := range tests {
		c, err := cat.Register(test.code, test.symbol, "", SymbolPrefix)
		if err != nil {
			t.Fatalf("Register(%s, %s): %v", test.code, test.symbol, err)
		}
		if c.Convention() != test.want {
			t.Errorf("Register(%s, %s): Got convention %v, wanted %v", test.code, test.symbol, c.Convention(), test.want)
		}
	}
	if c, err := cat.BySymbol("$"); err != nil || c.Code() != "USD" {
		t.Errorf("BySymbol($): Got %v, %v, wanted USD", c, err)
	}
	if _, err := cat.Register("KR", "", "", CodeSuffix); err == nil {
		t.Errorf("expected error for a code which is the symbol of NOK")
	}
}

func TestDeclaredKeepsRegistrationOrder(t *testing.T) {
	cat := NewDefaultCatalog()
	cat.MustRegister("ZZZ", "Z", "", SymbolPrefix)
	cat.MustRegister("AAA", "Z", "", SymbolPrefix)

	var got []string
	for _, c := range cat.Declared() {
		got = append(got, fmt.Sprintf("%s %v", c.Code(), c.Convention()))
	}

	want := []string{"ZZZ symbol", "AAA code"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Declared(): unexpected diff (+got/-want):\n%s", diff)
	}
}
