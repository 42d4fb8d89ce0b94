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
	"bytes"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCell(t *testing.T) {
	t.Parallel()

	Convey("Cell formatting", t, func() {
		So(String("pi").String(), ShouldEqual, "pi")
		So(Number(math.Pi).String(), ShouldEqual, "3.1416")
		So(Fixed(math.Pi, 2).String(), ShouldEqual, "3.14")
		So(Fixed(2.5, -1).String(), ShouldEqual, "2")
		So(Number(math.NaN()).String(), ShouldEqual, "NaN")
		So(Number(math.Inf(1)).String(), ShouldEqual, "+Inf")
		So(Number(1.5).Value(), ShouldEqual, 1.5)
		So(math.IsNaN(String("x").Value()), ShouldBeTrue)
		So(Cells{String("a"), Number(1)}.CSV(), ShouldResemble, []string{"a", "1.0000"})
	})
}

func TestTable(t *testing.T) {
	t.Parallel()

	Convey("Table methods work", t, func() {
		t := NewTable("Experiment", "Estimate")
		headless := NewTable()

		So(t.Header, ShouldResemble, []string{"Experiment", "Estimate"})
		t.AddRow(Cells{String("pi"), Number(3.1412)}, Cells{String("x^2"), Fixed(0.3333, 2)})
		headless.AddRow(Cells{String("pi"), Number(3.1412)}, Cells{String("x^2"), Fixed(0.3333, 2)})

		Convey("AddRow worked", func() {
			So(len(t.Rows), ShouldEqual, 2)
			So(len(headless.Rows), ShouldEqual, 2)
		})

		Convey("WriteCSV", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(t.Write(&buf, Params{CSV: true}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Experiment,Estimate
pi,3.1412
x^2,0.33
`)
			})

			Convey("Default Params, headless", func() {
				var buf bytes.Buffer
				So(headless.WriteCSV(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
pi,3.1412
x^2,0.33
`)
			})

			Convey("Limited rows, no header", func() {
				var buf bytes.Buffer
				So(t.WriteCSV(&buf, Params{Rows: 1, NoHeader: true}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
pi,3.1412
`)
			})
		})

		Convey("WriteText", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(t.Write(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Experiment | Estimate
---------- | --------
        pi |   3.1412
       x^2 |     0.33
`)
			})

			Convey("Default Params, headless", func() {
				var buf bytes.Buffer
				So(headless.WriteText(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
 pi | 3.1412
x^2 |   0.33
`)
			})

			Convey("Limited rows and width", func() {
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{Rows: 1, MaxColWidth: 5}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Exp.. | Est..
----- | -----
   pi | 3.1..
`)
			})

			Convey("Bad width", func() {
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{MaxColWidth: 3}), ShouldNotBeNil)
			})

			Convey("Inconsistent rows", func() {
				t.AddRow(Cells{String("short")})
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{}), ShouldNotBeNil)
			})
		})
	})
}
