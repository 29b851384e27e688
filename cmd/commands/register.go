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

// CreateRegisterCmd creates the command.
func CreateRegisterCmd() *cobra.Command {
	var r registerRunner
	c := &cobra.Command{
		Use:   "register",
		Short: "print a statement of transactions",
		Long:  `Print the transactions touching the selected accounts, with the change and the running balance after each transaction.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type registerRunner struct {
	queryFlags
	output outputFlags
}

func (r *registerRunner) setupFlags(c *cobra.Command) {
	r.queryFlags.setup(c)
	r.output.setup(c)
}

func (r *registerRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *registerRunner) execute(cmd *cobra.Command, args []string) error {
	j, err := load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	q, err := r.query(j.Registry().Accounts())
	if err != nil {
		return err
	}
	tbl := table.New(1, 1, 2)
	addHeader(tbl, "Date", "Description", "Change", "Balance")
	for _, b := range j.QueryPostings(q).Balances() {
		row := tbl.AddRow().
			AddText(b.Date.Format("2006-01-02"), table.Left).
			AddText(b.Description, table.Left)
		addValuable(row, b.Change)
		addValuable(row, b.Balance)
	}
	tbl.AddSeparatorRow()
	return r.output.render(cmd, tbl)
}
