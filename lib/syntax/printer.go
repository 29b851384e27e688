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

package syntax

import (
	"bufio"
	"fmt"
	"io"

	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/transaction"
)

// Print writes the journal in normalized form: the declared currencies
// first, then all transactions ordered by date. Parsing the output
// yields an equivalent journal.
func Print(w io.Writer, j *journal.Journal) error {
	var (
		b       = bufio.NewWriter(w)
		tree    = j.Registry().Accounts()
		decl    = j.Registry().Currencies().Declared()
		written bool
	)
	for _, c := range decl {
		fmt.Fprintf(b, "currency %s\n", c)
		written = true
	}
	for _, t := range j.Transactions() {
		if written {
			b.WriteString("\n")
		}
		printTransaction(b, tree, t)
		written = true
	}
	return b.Flush()
}

// PrintTransaction writes a single transaction.
func PrintTransaction(w io.Writer, tree *account.Tree, t *transaction.Transaction) error {
	b := bufio.NewWriter(w)
	printTransaction(b, tree, t)
	return b.Flush()
}

func printTransaction(w io.Writer, tree *account.Tree, t *transaction.Transaction) {
	fmt.Fprint(w, t.Date.Format("2006-01-02"))
	if t.Description != "" {
		fmt.Fprintf(w, " %s", t.Description)
	}
	if t.Payee != nil {
		fmt.Fprintf(w, " %s", t.Payee)
	}
	fmt.Fprintln(w)
	for _, p := range t.Postings {
		fmt.Fprintf(w, "    %-59s %10s\n", tree.AbsName(p.Account), p.Money.Exact())
	}
}
