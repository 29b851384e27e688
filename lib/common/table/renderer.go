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

package table

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Renderer renders a table to a writer.
type Renderer interface {
	Render(t *Table, w io.Writer) error
}

var (
	_ Renderer = (*TextRenderer)(nil)
	_ Renderer = (*CSVRenderer)(nil)
)

// TextRenderer renders a table to text.
type TextRenderer struct {
	Color bool
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render renders this table to w.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	color.NoColor = !r.Color

	widths := make([]int, t.Width())
	for _, row := range t.rows {
		for i, c := range row.cells {
			if l := minLengthCell(c); widths[i] < l {
				widths[i] = l
			}
		}
	}
	groups := make(map[int]int)
	for i, w := range widths {
		if groups[t.columns[i]] < w {
			groups[t.columns[i]] = w
		}
	}
	for i := range widths {
		if g := groups[t.columns[i]]; widths[i] < g {
			widths[i] = g
		}
	}
	for _, row := range t.rows {
		if len(row.cells) == 0 {
			continue
		}
		start, end := "| ", " |\n"
		if row.cells[0].isSep() {
			start = "+-"
		}
		if row.cells[len(row.cells)-1].isSep() {
			end = "-+\n"
		}
		if err := writeString(w, start); err != nil {
			return err
		}
		for i, c := range row.cells {
			if err := r.renderCell(c, widths[i], w); err != nil {
				return err
			}
			if i < len(row.cells)-1 {
				if err := writeString(w, createSep(c, row.cells[i+1])); err != nil {
					return err
				}
			}
		}
		if err := writeString(w, end); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderCell(c cell, l int, w io.Writer) error {
	switch t := c.(type) {

	case emptyCell:
		return writeSpace(w, l)

	case SeparatorCell:
		return writeStrings(w, "-", l)

	case textCell:
		var before int
		switch t.Align {
		case Left:
			before = t.Indent
		case Right:
			before = l - utf8.RuneCountInString(t.Content)
		case Center:
			before = (l - utf8.RuneCountInString(t.Content)) / 2
		}
		if err := writeSpace(w, before); err != nil {
			return err
		}
		if err := writeString(w, t.Content); err != nil {
			return err
		}
		return writeSpace(w, l-before-utf8.RuneCountInString(t.Content))

	case amountCell:
		if err := writeSpace(w, l-utf8.RuneCountInString(t.Content)); err != nil {
			return err
		}
		var err error
		switch {
		case t.Sign < 0:
			_, err = red.Fprint(w, t.Content)
		case t.Sign > 0:
			_, err = green.Fprint(w, t.Content)
		default:
			err = writeString(w, t.Content)
		}
		return err
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

func writeStrings(w io.Writer, s string, l int) error {
	for i := 0; i < l; i++ {
		if err := writeString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}

func writeSpace(w io.Writer, l int) error {
	return writeStrings(w, " ", l)
}

func minLengthCell(c cell) int {
	switch t := c.(type) {
	case emptyCell, SeparatorCell:
		return 0
	case textCell:
		if t.Align == Left {
			return t.Indent + utf8.RuneCountInString(t.Content)
		}
		return utf8.RuneCountInString(t.Content)
	case amountCell:
		return utf8.RuneCountInString(t.Content)
	}
	return 0
}

func createSep(c1, c2 cell) string {
	switch {
	case c1.isSep() && c2.isSep():
		return "-+-"
	case c1.isSep():
		return "-+ "
	case c2.isSep():
		return " +-"
	default:
		return " | "
	}
}
