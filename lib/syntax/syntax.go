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

// Package syntax reads and writes the plain-text journal format.
//
// A journal file consists of currency declarations and transactions:
//
//	; comment
//	currency BTC ₿ -- Bitcoin
//
//	2021-01-01 Opening balances @alice
//	    asset:cash:checking  $1000.00
//	    equity:opening-balances
//	    #date -1
//
// A transaction starts with a header line holding the date, the
// description and an optional payee. The indented lines following the
// header are postings (an account and an optional amount) and tags.
// Tags are applied before the postings of their transaction.
package syntax

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/coinjar/coinjar/lib/journal"
	"github.com/coinjar/coinjar/lib/journal/extension"
)

var _ error = Error{}

// Error is an error at a position in a journal file.
type Error struct {
	Path    string
	Line    int
	Message string
	Wrapped error
}

func (e Error) Error() string {
	var s strings.Builder
	if len(e.Path) > 0 {
		s.WriteString(e.Path)
		s.WriteString(":")
	}
	fmt.Fprintf(&s, "%d: %s", e.Line, e.Message)
	if e.Wrapped != nil {
		s.WriteString(": ")
		s.WriteString(e.Wrapped.Error())
	}
	return s.String()
}

func (e Error) Unwrap() error {
	return e.Wrapped
}

// ParseFile loads the journal file at path into j.
func ParseFile(ctx context.Context, path string, j *journal.Journal, ds ...extension.Decorator) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Parse(ctx, f, path, j, ds...)
}

// Parse loads a journal from r into j, passing every transaction
// through the given decorators. Either all transactions of r are
// committed or none is.
func Parse(ctx context.Context, r io.Reader, path string, j *journal.Journal, ds ...extension.Decorator) error {
	f, err := read(r, path)
	if err != nil {
		return err
	}
	l := loader{journal: j, path: path, decorators: ds}
	if err := l.load(f); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("currencies", len(f.currencies)).
		Int("transactions", len(f.transactions)).
		Msg("loaded journal")
	return nil
}
