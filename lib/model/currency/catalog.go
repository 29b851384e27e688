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
	"fmt"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/coinjar/coinjar/lib/common/compare"
	"github.com/coinjar/coinjar/lib/common/dict"
)

// Catalog is a thread-safe collection of currencies.
type Catalog struct {
	mutex   sync.RWMutex
	index   map[string]*Currency
	symbols []*Currency
	order   []*Currency
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		index: make(map[string]*Currency),
	}
}

// Defaults are the currencies known to every default catalog.
var Defaults = []struct {
	Code, Symbol, Name string
	Convention         Convention
}{
	{"USD", "$", "US Dollar", SymbolPrefix},
	{"EUR", "€", "Euro", SymbolPrefix},
	{"GBP", "£", "British Pound", SymbolPrefix},
	{"CHF", "", "Swiss Franc", CodeSuffix},
	{"CNY", "¥", "Chinese Yuan", SymbolPrefix},
	{"JPY", "¥", "Japanese Yen", CodeSuffix},
}

// NewDefaultCatalog creates a catalog holding the default currencies.
func NewDefaultCatalog() *Catalog {
	cat := NewCatalog()
	for _, d := range Defaults {
		c := cat.MustRegister(d.Code, d.Symbol, d.Name, d.Convention)
		c.builtin = true
	}
	return cat
}

// Register adds a currency. Registering a code again with the same
// symbol returns the existing currency. A currency is displayed with
// its code if it has no symbol, or if its symbol is already used by
// another currency or equals a currency code, so that every displayed
// amount parses back to its currency. A code which equals the symbol
// of a symbol-prefixed currency is rejected.
func (cat *Catalog) Register(code, symbol, name string, conv Convention) (*Currency, error) {
	code = strings.ToUpper(code)
	if !isValidCode(code) {
		return nil, fmt.Errorf("invalid currency code %q", code)
	}
	if strings.ContainsFunc(symbol, func(r rune) bool { return unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' || r == '.' }) {
		return nil, fmt.Errorf("invalid currency symbol %q", symbol)
	}
	if symbol == "" {
		conv = CodeSuffix
	}
	cat.mutex.Lock()
	defer cat.mutex.Unlock()
	if c, ok := cat.index[code]; ok {
		if c.symbol != symbol {
			return nil, fmt.Errorf("currency %s is already registered with symbol %q", code, c.symbol)
		}
		return c, nil
	}
	if c := cat.bySymbol(code); c != nil && c.convention == SymbolPrefix {
		return nil, fmt.Errorf("currency code %s is the symbol of %s", code, c.code)
	}
	if cat.bySymbol(symbol) != nil || cat.index[strings.ToUpper(symbol)] != nil {
		conv = CodeSuffix
	}
	c := &Currency{
		code:       code,
		symbol:     symbol,
		name:       name,
		convention: conv,
	}
	cat.index[code] = c
	cat.order = append(cat.order, c)
	if symbol != "" {
		cat.symbols = append(cat.symbols, c)
	}
	return c, nil
}

// MustRegister registers a currency or panics.
func (cat *Catalog) MustRegister(code, symbol, name string, conv Convention) *Currency {
	c, err := cat.Register(code, symbol, name, conv)
	if err != nil {
		panic(err)
	}
	return c
}

// ByCode looks up a currency by its code, ignoring case.
func (cat *Catalog) ByCode(code string) (*Currency, error) {
	cat.mutex.RLock()
	defer cat.mutex.RUnlock()
	if c, ok := cat.index[strings.ToUpper(code)]; ok {
		return c, nil
	}
	return nil, NotFoundError{code}
}

// BySymbol returns the first registered currency with the given symbol.
func (cat *Catalog) BySymbol(symbol string) (*Currency, error) {
	cat.mutex.RLock()
	defer cat.mutex.RUnlock()
	if c := cat.bySymbol(symbol); c != nil {
		return c, nil
	}
	return nil, NotFoundError{symbol}
}

func (cat *Catalog) bySymbol(symbol string) *Currency {
	for _, c := range cat.symbols {
		if strings.EqualFold(c.symbol, symbol) {
			return c
		}
	}
	return nil
}

// Resolve looks up a currency by code or by symbol.
func (cat *Catalog) Resolve(text string) (*Currency, error) {
	if c, err := cat.ByCode(text); err == nil {
		return c, nil
	}
	return cat.BySymbol(text)
}

// Symbols returns the registered symbols, longest first.
func (cat *Catalog) Symbols() []string {
	cat.mutex.RLock()
	defer cat.mutex.RUnlock()
	var res []string
	for _, c := range cat.symbols {
		res = append(res, c.symbol)
	}
	compare.Sort(res, compare.Desc(compare.By(utf8.RuneCountInString, compare.Ordered[int])))
	return res
}

// Currencies returns all currencies, sorted by code.
func (cat *Catalog) Currencies() []*Currency {
	cat.mutex.RLock()
	defer cat.mutex.RUnlock()
	var res []*Currency
	for _, code := range dict.SortedKeys(cat.index, compare.Ordered[string]) {
		res = append(res, cat.index[code])
	}
	return res
}

// Declared returns the currencies which are not built in, in the
// order of registration.
func (cat *Catalog) Declared() []*Currency {
	cat.mutex.RLock()
	defer cat.mutex.RUnlock()
	var res []*Currency
	for _, c := range cat.order {
		if !c.builtin {
			res = append(res, c)
		}
	}
	return res
}

func isValidCode(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, c := range s {
		if !(unicode.IsLetter(c) || unicode.IsDigit(c)) {
			return false
		}
	}
	return unicode.IsLetter(rune(s[0]))
}
