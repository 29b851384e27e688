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

	"github.com/spf13/cobra"

	"github.com/coinjar/coinjar/lib/common/table"
)

// CreateDailyCmd creates the command.
func CreateDailyCmd() *cobra.Command {
	var r dailyRunner
	c := &cobra.Command{
		Use:   "daily",
		Short: "print daily balances",
		Long:  `Print the change and the balance of the selected accounts for every day of the period, including days without postings.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type dailyRunner struct {
	queryFlags
	output outputFlags
}

func (r *dailyRunner) setupFlags(c *cobra.Command) {
	r.queryFlags.setup(c)
	r.output.setup(c)
}

func (r *dailyRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *dailyRunner) execute(cmd *cobra.Command, args []string) error {
	j, err := load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	q, err := r.query(j.Registry().Accounts())
	if err != nil {
		return err
	}
	tbl := table.New(1, 2)
	addHeader(tbl, "Date", "Change", "Balance")
	for _, b := range j.QueryPostings(q).DailyBalance() {
		row := tbl.AddRow().AddText(b.Date.Format("2006-01-02"), table.Left)
		addValuable(row, b.Change)
		addValuable(row, b.Balance)
	}
	tbl.AddSeparatorRow()
	return r.output.render(cmd, tbl)
}
