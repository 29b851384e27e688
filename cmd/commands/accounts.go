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
)

// CreateAccountsCmd creates the command.
func CreateAccountsCmd() *cobra.Command {
	var r accountsRunner
	c := &cobra.Command{
		Use:   "accounts",
		Short: "list the accounts of a journal",
		Long:  `List the full names of all accounts of the given journal, or its contacts.`,

		Args: cobra.ExactArgs(1),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type accountsRunner struct {
	contacts bool
}

func (r *accountsRunner) setupFlags(c *cobra.Command) {
	c.Flags().BoolVar(&r.contacts, "contacts", false, "list contacts instead of accounts")
}

func (r *accountsRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *accountsRunner) execute(cmd *cobra.Command, args []string) error {
	j, err := load(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	var (
		tree = j.Registry().Accounts()
		w    = bufio.NewWriter(cmd.OutOrStdout())
	)
	if r.contacts {
		for _, c := range tree.Contacts() {
			fmt.Fprintln(w, c)
		}
		return w.Flush()
	}
	for _, a := range tree.Accounts() {
		fmt.Fprintln(w, tree.AbsName(a))
	}
	return w.Flush()
}
