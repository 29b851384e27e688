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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coinjar/coinjar/cmd/flags"
	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/rates"
)

// CreateTotalCmd creates the command.
func CreateTotalCmd() *cobra.Command {
	var r totalRunner
	c := &cobra.Command{
		Use:   "total",
		Short: "print the total of accounts",
		Long:  `Print the total of the selected accounts, one line per currency. With --val, the total is converted into the given currency at the rate of the --on date, or the latest rate.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type totalRunner struct {
	accounts  flags.AccountsFlag
	on        flags.DateFlag
	valuation flags.CurrencyFlag
}

func (r *totalRunner) setupFlags(c *cobra.Command) {
	c.Flags().VarP(&r.accounts, "account", "a", "restrict to accounts matching the pattern (repeatable)")
	c.Flags().Var(&r.on, "on", "total as of the given date")
	c.Flags().Var(&r.valuation, "val", "convert the total into the given currency")
}

func (r *totalRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *totalRunner) execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	j, err := load(ctx, args[0])
	if err != nil {
		return err
	}
	reg := j.Registry()
	valuation, err := r.valuation.Value(reg.Currencies())
	if err != nil {
		return err
	}
	as, err := r.accounts.Value(reg.Accounts())
	if err != nil {
		return err
	}
	q := journal.NewQuery()
	if len(as) > 0 {
		q = q.Accounts(as...)
	}
	if d := r.on.Value(); !d.IsZero() {
		q = q.Until(d)
	}
	total := j.QueryPostings(q).Total()
	w := bufio.NewWriter(cmd.OutOrStdout())
	if valuation != nil {
		book, err := newBook(ctx)
		if err != nil {
			return err
		}
		defer book.Close()
		m, err := rates.ConvertValuable(ctx, book, total, valuation, r.on.Value())
		if err != nil {
			return err
		}
		fmt.Fprintln(w, m)
		return w.Flush()
	}
	if total.IsZero() {
		fmt.Fprintln(w, total)
	}
	for _, m := range total.Moneys() {
		fmt.Fprintln(w, m)
	}
	return w.Flush()
}
