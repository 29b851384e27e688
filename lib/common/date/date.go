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

package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Layouts lists the accepted absolute date layouts.
var Layouts = []string{"2006-01-02", "2006/01/02"}

// Date creates a new date at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the time of day.
func Truncate(t time.Time) time.Time {
	return Date(t.Year(), t.Month(), t.Day())
}

// Today returns today's date.
func Today() time.Time {
	return Truncate(time.Now().Local())
}

// Parse parses an absolute date, one of the words today, yesterday
// and tomorrow, or a signed offset in days, relative to today.
func Parse(s string, today time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return today.AddDate(0, 0, n), nil
	}
	for _, layout := range Layouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD, YYYY/MM/DD, today, yesterday, tomorrow or a day offset", s)
}

// Period is a closed range of dates. A zero Start or End means
// the period is unbounded on that side.
type Period struct {
	Start, End time.Time
}

// Clip returns the intersection of the two periods.
func (p Period) Clip(p2 Period) Period {
	if p.Start.IsZero() || p2.Start.After(p.Start) {
		p.Start = p2.Start
	}
	if p.End.IsZero() || (!p2.End.IsZero() && p2.End.Before(p.End)) {
		p.End = p2.End
	}
	return p
}

// Contains checks whether t lies within the period.
func (p Period) Contains(t time.Time) bool {
	if !p.Start.IsZero() && t.Before(p.Start) {
		return false
	}
	if !p.End.IsZero() && t.After(p.End) {
		return false
	}
	return true
}

// Bounded returns whether both ends are known.
func (p Period) Bounded() bool {
	return !p.Start.IsZero() && !p.End.IsZero()
}

// Days returns every date in the period, in order. The period
// must be bounded.
func (p Period) Days() []time.Time {
	if !p.Bounded() {
		return nil
	}
	var res []time.Time
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		res = append(res, d)
	}
	return res
}

func (p Period) String() string {
	return fmt.Sprintf("%s..%s", format(p.Start), format(p.End))
}

func format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}
