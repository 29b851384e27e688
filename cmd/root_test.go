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

package cmd

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coinjar/coinjar/cmd/cmdtest"
)

func TestSubcommands(t *testing.T) {
	var got []string
	for _, c := range CreateRootCmd("dev").Commands() {
		got = append(got, c.Name())
	}
	want := []string{"accounts", "daily", "format", "income", "print", "rates", "register", "split", "total"}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected diff (+got/-want):\n%s", diff)
	}
}

func TestVersion(t *testing.T) {
	got := cmdtest.Run(t, CreateRootCmd("1.2.3"), []string{"--version"})

	if diff := cmp.Diff("coinjar version 1.2.3\n", string(got)); diff != "" {
		t.Fatalf("unexpected diff (+got/-want):\n%s", diff)
	}
}
