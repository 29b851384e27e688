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
	"bytes"
	"context"

	"github.com/natefinch/atomic"

	"github.com/coinjar/coinjar/lib/config"
	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/journal/extension"
	"github.com/coinjar/coinjar/lib/model/registry"
	"github.com/coinjar/coinjar/lib/syntax"
)

// load reads the journal file at path into a new journal.
func load(ctx context.Context, path string) (*journal.Journal, error) {
	var (
		cfg = config.FromContext(ctx)
		reg = registry.New()
		j   = journal.New(reg)
	)
	if err := syntax.ParseFile(ctx, path, j, extension.Defaults(reg.Accounts(), cfg.Precision)...); err != nil {
		return nil, err
	}
	return j, nil
}

// save replaces the file at path with the printed journal.
func save(j *journal.Journal, path string) error {
	var b bytes.Buffer
	if err := syntax.Print(&b, j); err != nil {
		return err
	}
	return atomic.WriteFile(path, &b)
}
