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

package report

import (
	"fmt"
	"math"
)

// DefaultPrecision is the number of decimal places of a Number cell.
const DefaultPrecision = 4

// Cell of a table Row which is a union of string or number (float64).
type Cell struct {
	IsNumber  bool // which field to use as a value
	number    float64
	string    string
	precision int // decimal places for a number
}

// String formats the cell. Numbers use a fixed number of decimal places.
func (c Cell) String() string {
	if !c.IsNumber {
		return c.string
	}
	if math.IsNaN(c.number) || math.IsInf(c.number, 0) {
		return fmt.Sprintf("%g", c.number)
	}
	return fmt.Sprintf("%.*f", c.precision, c.number)
}

// Value of a number cell, or NaN for a string.
func (c Cell) Value() float64 {
	if c.IsNumber {
		return c.number
	}
	return math.NaN()
}

// String creates a string cell.
func String(s string) Cell {
	return Cell{string: s}
}

// Number creates a number cell with the default precision.
func Number(n float64) Cell {
	return Fixed(n, DefaultPrecision)
}

// Fixed creates a number cell printed with prec decimal places.
func Fixed(n float64, prec int) Cell {
	if prec < 0 {
		prec = 0
	}
	return Cell{IsNumber: true, number: n, precision: prec}
}

// Cells is a Row of Cell values.
type Cells []Cell

var _ Row = Cells{}

func (r Cells) CSV() []string {
	res := make([]string, len(r))
	for i, c := range r {
		res[i] = c.String()
	}
	return res
}
