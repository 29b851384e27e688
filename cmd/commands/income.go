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
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/coinjar/coinjar/cmd/flags"
	"github.com/coinjar/coinjar/lib/common/compare"
	"github.com/coinjar/coinjar/lib/common/set"
	"github.com/coinjar/coinjar/lib/common/table"
	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/model/money"
)

// CreateIncomeCmd creates the command.
func CreateIncomeCmd() *cobra.Command {
	var r incomeRunner
	c := &cobra.Command{
		Use:   "income",
		Short: "print an income statement",
		Long:  `Print income, expenses and their difference for every day of the period.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type incomeRunner struct {
	from, to flags.DateFlag
	output   outputFlags
}

func (r *incomeRunner) setupFlags(c *cobra.Command) {
	c.Flags().Var(&r.from, "from", "from date")
	c.Flags().Var(&r.to, "to", "to date")
	r.output.setup(c)
}

func (r *incomeRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *incomeRunner) execute(cmd *cobra.Command, args []string) error {
	j, err := load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	var (
		tree = j.Registry().Accounts()
		q    = journal.NewQuery()
	)
	if d := r.from.Value(); !d.IsZero() {
		q = q.Since(d)
	}
	if d := r.to.Value(); !d.IsZero() {
		q = q.Until(d)
	}
	var (
		income  = j.QueryPostings(q.Account(tree.Income())).DailyChange()
		expense = j.QueryPostings(q.Account(tree.Expense())).DailyChange()
		days    = set.New[time.Time]()
	)
	for d := range income {
		days.Add(d)
	}
	for d := range expense {
		days.Add(d)
	}
	tbl := table.New(1, 3)
	addHeader(tbl, "Date", "Income", "Expense", "Net")
	var totalIncome, totalExpense money.Valuable
	for _, d := range days.Sorted(compare.Time) {
		inc := income[d].Neg()
		exp := expense[d]
		totalIncome.Add(inc)
		totalExpense.Add(exp)
		addIncomeRow(tbl.AddRow().AddText(d.Format("2006-01-02"), table.Left), inc, exp)
	}
	tbl.AddSeparatorRow()
	addIncomeRow(tbl.AddRow().AddText("Total", table.Left), totalIncome, totalExpense)
	tbl.AddSeparatorRow()
	return r.output.render(cmd, tbl)
}

func addIncomeRow(row *table.Row, inc, exp money.Valuable) {
	net := inc.Clone()
	net.Sub(exp)
	addValuable(row, inc)
	addValuable(row, exp)
	addValuable(row, net)
}
