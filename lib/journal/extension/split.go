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

package extension

import (
	"fmt"

	"github.com/coinjar/coinjar/lib/model/account"
	"github.com/coinjar/coinjar/lib/model/money"
)

type split struct {
	Sink
	tree      *account.Tree
	precision int32
	contacts  []*account.Contact
}

// Split handles the tag #split NAME..., which shares every explicit
// expense posting equally between the owner and the named contacts.
// The owner's share stays on the expense account, the contacts'
// shares are booked on their receivable accounts.
func Split(tree *account.Tree, precision int32) Decorator {
	return func(s Sink) Sink {
		return &split{Sink: s, tree: tree, precision: precision}
	}
}

func (s *split) WithTag(name string, args []string) error {
	if name != "split" {
		return s.Sink.WithTag(name, args)
	}
	if s.contacts != nil {
		return fmt.Errorf("tag #split is already set")
	}
	if len(args) == 0 {
		return fmt.Errorf("tag #split expects at least one contact")
	}
	for _, arg := range args {
		s.contacts = append(s.contacts, s.tree.ProvisionContact(arg))
	}
	return nil
}

func (s *split) WithPosting(a account.Account, m *money.Money) error {
	if s.contacts == nil || m == nil || !s.tree.IsExpense(a) {
		return s.Sink.WithPosting(a, m)
	}
	shares, err := m.Split(len(s.contacts)+1, s.precision)
	if err != nil {
		return err
	}
	if err := s.Sink.WithPostingCombined(a, shares[0]); err != nil {
		return err
	}
	for i, c := range s.contacts {
		if err := s.Sink.WithPostingCombined(c.Receivable, shares[i+1]); err != nil {
			return err
		}
	}
	return nil
}
