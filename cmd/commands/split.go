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
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coinjar/coinjar/cmd/flags"
	"github.com/coinjar/coinjar/lib/common/date"
	"github.com/coinjar/coinjar/lib/config"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/syntax"
)

// CreateSplitCmd creates the command.
func CreateSplitCmd() *cobra.Command {
	var r splitRunner
	c := &cobra.Command{
		Use:   "split FILE MONEY on ACCOUNT [for DESCRIPTION] by PAYEE...",
		Short: "split an amount between payees",
		Long: `Add a transaction to the journal which books MONEY on ACCOUNT and an
equal share of it off each PAYEE. A payee is an account pattern or a
contact (@name), whose receivable account is used. Shares differ by at
most one cent.`,

		Args: cobra.MinimumNArgs(6),

		Run: r.run,
	}
	r.setupFlags(c)
	return c
}

type splitRunner struct {
	date flags.DateFlag
}

type splitArgs struct {
	file, amount, account, description string
	payees                             []string
}

func (r *splitRunner) setupFlags(c *cobra.Command) {
	c.Flags().Var(&r.date, "date", "date of the transaction (default today)")
}

func (r *splitRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *splitRunner) execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sa, err := parseSplitArgs(args)
	if err != nil {
		return err
	}
	j, err := load(ctx, sa.file)
	if err != nil {
		return err
	}
	var (
		reg  = j.Registry()
		tree = reg.Accounts()
	)
	m, err := reg.ParseMoney(sa.amount)
	if err != nil {
		return err
	}
	target, err := tree.FindUnique(sa.account)
	if err != nil {
		return err
	}
	var payees []account.Account
	for _, p := range sa.payees {
		if strings.HasPrefix(p, "@") {
			payees = append(payees, tree.ProvisionContact(p).Receivable)
			continue
		}
		a, err := tree.FindUnique(p)
		if err != nil {
			return err
		}
		payees = append(payees, a)
	}
	shares, err := m.Split(len(payees), config.FromContext(ctx).Precision)
	if err != nil {
		return err
	}
	b := j.NewTransaction(r.date.ValueOr(date.Today()), sa.description).WithPosting(target, m)
	for i, p := range payees {
		b.WithPostingCombined(p, shares[i].Neg())
	}
	t, err := b.Build()
	if err != nil {
		return err
	}
	if err := save(j, sa.file); err != nil {
		return err
	}
	return syntax.PrintTransaction(cmd.OutOrStdout(), tree, t)
}

func parseSplitArgs(args []string) (splitArgs, error) {
	usage := errors.New("usage: split FILE MONEY on ACCOUNT [for DESCRIPTION] by PAYEE...")
	if len(args) < 6 || args[2] != "on" {
		return splitArgs{}, usage
	}
	res := splitArgs{
		file:        args[0],
		amount:      args[1],
		account:     args[3],
		description: "Split",
	}
	rest := args[4:]
	if rest[0] == "for" {
		if len(rest) < 4 {
			return splitArgs{}, usage
		}
		res.description, rest = rest[1], rest[2:]
	}
	if rest[0] != "by" || len(rest) < 2 {
		return splitArgs{}, usage
	}
	res.payees = rest[1:]
	return res, nil
}
