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

// Package cmdtest runs commands in tests.
package cmdtest

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/spf13/cobra"
)

// Run runs the command with the given arguments and returns its
// standard output.
func Run(t *testing.T, cmd *cobra.Command, args []string) []byte {
	t.Helper()
	return RunContext(t, context.Background(), cmd, args)
}

// RunContext is like Run, with the given context.
func RunContext(t *testing.T, ctx context.Context, cmd *cobra.Command, args []string) []byte {
	t.Helper()
	var b bytes.Buffer
	cmd.SetOut(&b)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		t.Fatalf("%s %v returned unexpected error: %v", cmd.Name(), args, err)
	}
	return b.Bytes()
}
