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
)

// Type is the type of an account, given by its root category.
type Type int

const (
	// ASSET represents an asset account.
	ASSET Type = iota
	// LIABILITY represents a liability account.
	LIABILITY
	// EQUITY represents an equity account.
	EQUITY
	// INCOME represents an income account.
	INCOME
	// EXPENSE represents an expense account.
	EXPENSE
)

func (t Type) String() string {
	switch t {
	case ASSET:
		return "asset"
	case LIABILITY:
		return "liability"
	case EQUITY:
		return "equity"
	case INCOME:
		return "income"
	case EXPENSE:
		return "expense"
	}
	return ""
}

// Types is an array with the ordered account types.
var Types = []Type{ASSET, LIABILITY, EQUITY, INCOME, EXPENSE}

// Separator separates the segments of a full account name.
const Separator = ":"

// Account identifies an account of a Tree. Accounts are only created
// by a Tree; the zero value refers to no account.
type Account struct {
	id uuid.UUID
}

// IsZero checks whether a refers to no account.
func (a Account) IsZero() bool {
	return a.id == uuid.Nil
}

func (a Account) String() string {
	return a.id.String()
}

// NotFoundError is returned when a lookup matches no account.
type NotFoundError struct {
	Query string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("account %q not found", e.Query)
}

// AmbiguousError is returned when a lookup matches more than one
// account.
type AmbiguousError struct {
	Query      string
	Candidates []Account
	Names      []string
}

func (e AmbiguousError) Error() string {
	return fmt.Sprintf("account %q is ambiguous, candidates: %s", e.Query, strings.Join(e.Names, ", "))
}

// Contact is an external party with a payable and a receivable account.
type Contact struct {
	Name       string
	Payable    Account
	Receivable Account
}

func (c *Contact) String() string {
	return "@" + c.Name
}
