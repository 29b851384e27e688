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

package flags

import (
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/coinjar/coinjar/lib/common/date"
	"github.com/coinjar/coinjar/lib/common/set"
	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/currency"
)

// DateFlag manages a flag to determine a date. It accepts absolute
// dates, the words today, yesterday and tomorrow, and day offsets.
type DateFlag time.Time

var _ pflag.Value = (*DateFlag)(nil)

func (tf DateFlag) String() string {
	if tf.Value().IsZero() {
		return ""
	}
	return tf.Value().Format("2006-01-02")
}

// Set implements pflag.Value.
func (tf *DateFlag) Set(v string) error {
	t, err := date.Parse(v, date.Today())
	if err != nil {
		return err
	}
	*tf = (DateFlag)(t)
	return nil
}

// Type implements pflag.Value.
func (tf DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (tf DateFlag) Value() time.Time {
	return time.Time(tf)
}

// ValueOr returns the flag value, or t if the flag is not set.
func (tf DateFlag) ValueOr(t time.Time) time.Time {
	v := tf.Value()
	if v.IsZero() {
		return t
	}
	return v
}

// AccountsFlag manages a repeatable flag of fuzzy account patterns.
type AccountsFlag struct {
	patterns []string
}

var _ pflag.Value = (*AccountsFlag)(nil)

func (af AccountsFlag) String() string {
	return strings.Join(af.patterns, ",")
}

// Set implements pflag.Value.
func (af *AccountsFlag) Set(v string) error {
	af.patterns = append(af.patterns, v)
	return nil
}

// Type implements pflag.Value.
func (af AccountsFlag) Type() string {
	return "<pattern>"
}

// Value resolves the patterns to the accounts they match. Matches
// nested below another match are dropped, so that every selected
// subtree is returned once, sorted by name. A pattern without matches
// is an error.
func (af AccountsFlag) Value(tree *account.Tree) ([]account.Account, error) {
	matches := set.New[account.Account]()
	for _, p := range af.patterns {
		var found bool
		for a := range tree.FindFuzzy(strings.Split(p, account.Separator)) {
			matches.Add(a)
			found = true
		}
		if !found {
			return nil, account.NotFoundError{Query: p}
		}
	}
	return tree.Elders(matches).Sorted(tree.Compare), nil
}

// CurrencyFlag manages a flag to select a currency.
type CurrencyFlag struct {
	val string
}

var _ pflag.Value = (*CurrencyFlag)(nil)

func (cf CurrencyFlag) String() string {
	return cf.val
}

// Set implements pflag.Value.
func (cf *CurrencyFlag) Set(v string) error {
	cf.val = v
	return nil
}

// Type implements pflag.Value.
func (cf CurrencyFlag) Type() string {
	return "<currency>"
}

// Value returns the selected currency, or nil if the flag is not set.
func (cf CurrencyFlag) Value(cat *currency.Catalog) (*currency.Currency, error) {
	if len(cf.val) == 0 {
		return nil, nil
	}
	return cat.Resolve(cf.val)
}
