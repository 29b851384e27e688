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

package commands

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/coinjar/coinjar/cmd/flags"
	"github.com/coinjar/coinjar/lib/common/table"
	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/money"
)

// queryFlags selects postings by account and date.
type queryFlags struct {
	accounts flags.AccountsFlag
	from, to flags.DateFlag
}

func (f *queryFlags) setup(c *cobra.Command) {
	c.Flags().VarP(&f.accounts, "account", "a", "restrict to accounts matching the pattern (repeatable)")
	c.Flags().Var(&f.from, "from", "from date")
	c.Flags().Var(&f.to, "to", "to date")
}

func (f *queryFlags) query(tree *account.Tree) (journal.Query, error) {
	q := journal.NewQuery()
	as, err := f.accounts.Value(tree)
	if err != nil {
		return q, err
	}
	if len(as) > 0 {
		q = q.Accounts(as...)
	}
	if d := f.from.Value(); !d.IsZero() {
		q = q.Since(d)
	}
	if d := f.to.Value(); !d.IsZero() {
		q = q.Until(d)
	}
	return q, nil
}

func addValuable(row *table.Row, v money.Valuable) *table.Row {
	return row.AddAmount(v.String(), v.Sign())
}

func addHeader(tbl *table.Table, titles ...string) {
	tbl.AddSeparatorRow()
	row := tbl.AddRow()
	for _, t := range titles {
		row.AddText(t, table.Center)
	}
	tbl.AddSeparatorRow()
}

type outputFlags struct {
	color bool
	csv   bool
}

func (f *outputFlags) setup(c *cobra.Command) {
	c.Flags().BoolVar(&f.color, "color", true, "print output in color")
	c.Flags().BoolVar(&f.csv, "csv", false, "print output as CSV")
}

func (f *outputFlags) render(cmd *cobra.Command, tbl *table.Table) error {
	var (
		r table.Renderer = &table.TextRenderer{Color: f.color}
		w                = bufio.NewWriter(cmd.OutOrStdout())
	)
	if f.csv {
		r = &table.CSVRenderer{}
	}
	if err := r.Render(tbl, w); err != nil {
		return err
	}
	return w.Flush()
}
