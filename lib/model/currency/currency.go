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

	"github.com/coinjar/coinjar/lib/common/compare"
)

// Convention determines how amounts in a currency are displayed.
type Convention int

const (
	// SymbolPrefix displays amounts as -$10.00.
	SymbolPrefix Convention = iota
	// CodeSuffix displays amounts as -10.00 GBP.
	CodeSuffix
)

func (c Convention) String() string {
	switch c {
	case SymbolPrefix:
		return "symbol"
	case CodeSuffix:
		return "code"
	}
	return ""
}

// Currency is a currency. Currencies are created by a Catalog and
// compared by identity.
type Currency struct {
	code       string
	symbol     string
	name       string
	convention Convention
	builtin    bool
}

// Code returns the ISO code, e.g. USD.
func (c *Currency) Code() string {
	return c.code
}

// Symbol returns the symbol, which may be empty.
func (c *Currency) Symbol() string {
	return c.symbol
}

// Name returns the descriptive name, which may be empty.
func (c *Currency) Name() string {
	return c.name
}

// Convention returns the display convention.
func (c *Currency) Convention() Convention {
	return c.convention
}

func (c *Currency) String() string {
	var b strings.Builder
	b.WriteString(c.code)
	if c.symbol != "" {
		b.WriteString(" ")
		b.WriteString(c.symbol)
	}
	if c.name != "" {
		b.WriteString(" -- ")
		b.WriteString(c.name)
	}
	return b.String()
}

// Compare orders currencies by code.
func Compare(c1, c2 *Currency) compare.Order {
	return compare.Ordered(c1.code, c2.code)
}

// NotFoundError is returned when a text does not refer to a
// registered currency.
type NotFoundError struct {
	Text string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("currency not found: %q", e.Text)
}
