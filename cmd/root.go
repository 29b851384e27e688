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

// Package cmd is the main command file for Cobra
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coinjar/coinjar/cmd/commands"
	"github.com/coinjar/coinjar/lib/config"
	"github.com/coinjar/coinjar/lib/logging"
)

// CreateRootCmd creates the root command.
func CreateRootCmd(version string) *cobra.Command {
	var verbose bool
	c := &cobra.Command{
		Use:     "coinjar",
		Short:   "coinjar is a plain text bookkeeping tool",
		Long:    `coinjar is a double-entry bookkeeping tool for plain text journals, with multiple currencies, fuzzy account lookup and bill splitting.`,
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.LogLevel
			if verbose {
				level = "debug"
			}
			logger := logging.New(logging.Config{
				Level:  level,
				Format: cfg.LogFormat,
				Out:    cmd.ErrOrStderr(),
			})
			cmd.SetContext(config.WithContext(logger.WithContext(cmd.Context()), cfg))
			logger.Debug().Str("command", cmd.Name()).Msg("starting")
			return nil
		},
	}
	c.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	c.AddCommand(
		commands.CreateAccountsCmd(),
		commands.CreatePrintCmd(),
		commands.CreateFormatCmd(),
		commands.CreateRegisterCmd(),
		commands.CreateDailyCmd(),
		commands.CreateIncomeCmd(),
		commands.CreateTotalCmd(),
		commands.CreateSplitCmd(),
		commands.CreateRatesCmd(),
	)
	return c
}

// Execute runs the root command. This is called by main.main().
func Execute(version string) {
	c := CreateRootCmd(version)
	if err := c.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(c.ErrOrStderr(), err)
		os.Exit(1)
	}
}
