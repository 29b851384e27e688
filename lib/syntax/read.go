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

package syntax

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
)

type file struct {
	currencies   []currencyDecl
	transactions []block
}

type currencyDecl struct {
	line               int
	code, symbol, name string
}

type block struct {
	line        int
	date        time.Time
	description string
	payee       string
	tags        []tag
	postings    []postingLine
}

type tag struct {
	line int
	name string
	args []string
}

type postingLine struct {
	line    int
	account string
	amount  string
}

// read splits the input into currency declarations and transaction
// blocks without interpreting accounts or amounts.
func read(r io.Reader, path string) (file, error) {
	var (
		res     file
		current *block
		s       = bufio.NewScanner(r)
		n       int
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if len(current.postings) == 0 {
			return Error{Path: path, Line: current.line, Message: "transaction has no postings"}
		}
		res.transactions = append(res.transactions, *current)
		current = nil
		return nil
	}
	for s.Scan() {
		n++
		line := strings.TrimRightFunc(s.Text(), unicode.IsSpace)
		trimmed := strings.TrimSpace(line)
		switch {
		case len(trimmed) == 0:
			if err := flush(); err != nil {
				return file{}, err
			}
		case strings.HasPrefix(trimmed, ";"):
		case line != trimmed:
			if current == nil {
				return file{}, Error{Path: path, Line: n, Message: "indented line outside of transaction"}
			}
			if strings.HasPrefix(trimmed, "#") {
				current.tags = append(current.tags, parseTag(n, trimmed))
			} else {
				current.postings = append(current.postings, parsePosting(n, trimmed))
			}
		case strings.HasPrefix(trimmed, "currency "):
			if err := flush(); err != nil {
				return file{}, err
			}
			c, err := parseCurrency(n, trimmed)
			if err != nil {
				return file{}, Error{Path: path, Line: n, Message: "invalid currency declaration", Wrapped: err}
			}
			res.currencies = append(res.currencies, c)
		default:
			if err := flush(); err != nil {
				return file{}, err
			}
			b, err := parseHeader(n, trimmed)
			if err != nil {
				return file{}, Error{Path: path, Line: n, Message: "invalid transaction header", Wrapped: err}
			}
			current = &b
		}
	}
	if err := s.Err(); err != nil {
		return file{}, err
	}
	if err := flush(); err != nil {
		return file{}, err
	}
	return res, nil
}

func parseHeader(n int, text string) (block, error) {
	fields := strings.Fields(text)
	d, err := time.Parse("2006-01-02", fields[0])
	if err != nil {
		return block{}, err
	}
	res := block{line: n, date: d}
	rest := fields[1:]
	if k := len(rest); k > 0 && len(rest[k-1]) > 1 && strings.HasPrefix(rest[k-1], "@") {
		res.payee = rest[k-1][1:]
		rest = rest[:k-1]
	}
	res.description = strings.Join(rest, " ")
	return res, nil
}

func parseTag(n int, text string) tag {
	fields := strings.Fields(strings.TrimPrefix(text, "#"))
	if len(fields) == 0 {
		return tag{line: n}
	}
	return tag{line: n, name: fields[0], args: fields[1:]}
}

func parsePosting(n int, text string) postingLine {
	account, amount, _ := strings.Cut(text, " ")
	return postingLine{line: n, account: account, amount: strings.TrimSpace(amount)}
}

func parseCurrency(n int, text string) (currencyDecl, error) {
	head, name, _ := strings.Cut(strings.TrimPrefix(text, "currency "), "--")
	fields := strings.Fields(head)
	res := currencyDecl{line: n, name: strings.TrimSpace(name)}
	switch len(fields) {
	case 2:
		res.symbol = fields[1]
		fallthrough
	case 1:
		res.code = fields[0]
	default:
		return currencyDecl{}, fmt.Errorf("expected code and optional symbol, got %q", head)
	}
	return res, nil
}
