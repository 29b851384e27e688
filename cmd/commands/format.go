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
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

// CreateFormatCmd creates the command.
func CreateFormatCmd() *cobra.Command {
	var r formatRunner
	return &cobra.Command{
		Use:   "format",
		Short: "format journal files",
		Long:  `Rewrite the given journal files in place in normalized form. A file is only replaced if it loads without errors.`,

		Args: cobra.MinimumNArgs(1),

		Run: r.run,
	}
}

type formatRunner struct{}

const formatConcurrency = 10

func (r *formatRunner) run(cmd *cobra.Command, args []string) {
	if err := r.execute(cmd, args); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func (r *formatRunner) execute(cmd *cobra.Command, args []string) error {
	var (
		ctx  = cmd.Context()
		g    errgroup.Group
		mu   sync.Mutex
		errs error
	)
	g.SetLimit(formatConcurrency)
	for _, arg := range args {
		g.Go(func() error {
			if err := r.formatFile(cmd, arg); err != nil {
				mu.Lock()
				defer mu.Unlock()
				errs = multierr.Append(errs, err)
				return nil
			}
			zerolog.Ctx(ctx).Debug().Str("path", arg).Msg("formatted")
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

func (r *formatRunner) formatFile(cmd *cobra.Command, path string) error {
	j, err := load(cmd.Context(), path)
	if err != nil {
		return err
	}
	return save(j, path)
}
