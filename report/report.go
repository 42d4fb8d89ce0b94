// Copyright 2022 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package report formats experiment results as a text or CSV table.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
)

// Row of a Table.
type Row interface {
	CSV() []string // an encoding/csv compatible row representation
}

// Table of rows with an optional header.
type Table struct {
	Header []string // optional, may be nil
	Rows   []Row
}

// NewTable creates a Table with the given header.
func NewTable(header ...string) *Table {
	return &Table{Header: header}
}

// AddRow appends rows to the table.
func (t *Table) AddRow(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Params for writing a Table.
type Params struct {
	CSV         bool // write CSV instead of aligned text
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for text only; 0 = unlimited, otherwise must be >= 4
}

// lines returns the header (when present and requested) and up to p.Rows rows
// as string slices.
func (t *Table) lines(p Params) (header []string, rows [][]string) {
	if !p.NoHeader && len(t.Header) > 0 {
		header = t.Header
	}
	for i, r := range t.Rows {
		if p.Rows > 0 && i >= p.Rows {
			break
		}
		rows = append(rows, r.CSV())
	}
	return
}

// Write the table in text or CSV format according to p.
func (t *Table) Write(w io.Writer, p Params) error {
	if p.CSV {
		return t.WriteCSV(w, p)
	}
	return t.WriteText(w, p)
}

// WriteCSV writes the table in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	header, rows := t.lines(p)
	cw := csv.NewWriter(w)
	if header != nil {
		if err := cw.Write(header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	if err := cw.WriteAll(rows); err != nil {
		return errors.Annotate(err, "failed to write rows")
	}
	return nil
}

// columnWidths computes the width of each column, capped at maxWidth if it is
// positive. All lines must have the same non-zero number of columns.
func columnWidths(lines [][]string, maxWidth int) ([]int, error) {
	var widths []int
	for _, line := range lines {
		if len(line) == 0 {
			return nil, errors.Reason("row size = 0")
		}
		if widths == nil {
			widths = make([]int, len(line))
		}
		if len(line) != len(widths) {
			return nil, errors.Reason("row size [%d] != expected size [%d]",
				len(line), len(widths))
		}
		for i, s := range line {
			n := len([]rune(s))
			if maxWidth > 0 && n > maxWidth {
				n = maxWidth
			}
			if widths[i] < n {
				widths[i] = n
			}
		}
	}
	return widths, nil
}

// fit trims s to width runes, marking the trimmed string with "..", and pads
// it on the left to width.
func fit(s string, width int) string {
	if r := []rune(s); len(r) > width {
		s = string(r[:width-2]) + ".."
	}
	return fmt.Sprintf("%[2]*[1]s", s, width)
}

// WriteText writes the table as right-aligned text columns separated by "|".
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	header, rows := t.lines(p)
	all := rows
	if header != nil {
		all = append([][]string{header}, rows...)
	}
	widths, err := columnWidths(all, p.MaxColWidth)
	if err != nil {
		return errors.Annotate(err, "inconsistent table")
	}
	write := func(line []string) error {
		cols := make([]string, len(line))
		for i, s := range line {
			cols[i] = fit(s, widths[i])
		}
		_, err := fmt.Fprintf(w, "%s\n", strings.Join(cols, " | "))
		return err
	}
	if header != nil {
		if err := write(header); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
		dashes := make([]string, len(widths))
		for i, n := range widths {
			dashes[i] = strings.Repeat("-", n)
		}
		if err := write(dashes); err != nil {
			return errors.Annotate(err, "failed to write header separator")
		}
	}
	for _, r := range rows {
		if err := write(r); err != nil {
			return errors.Annotate(err, "failed to write row")
		}
	}
	return nil
}
