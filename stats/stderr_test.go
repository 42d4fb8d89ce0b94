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

package stats

import (
	"math"
	"testing"

	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestStandardError(t *testing.T) {
	t.Parallel()

	Convey("PreciseEnough works", t, func() {
		So(PreciseEnough(3.1415, 0.0314, 0.01, true), ShouldBeTrue)
		So(PreciseEnough(3.1415, 0.0315, 0.01, true), ShouldBeFalse)
		So(PreciseEnough(0.31415, 0.011, 0.01, false), ShouldBeFalse)
		So(PreciseEnough(0.31415, 0.01, 0.011, false), ShouldBeTrue)
		So(PreciseEnough(1.0, 0.0, 0.0, false), ShouldBeTrue)
		So(PreciseEnough(1.0, 0.1, 0.0, false), ShouldBeFalse)
	})

	Convey("StandardError works", t, func() {
		data := []float64{1.5, 2.0, 2.5, 0.0}

		Convey("zero value", func() {
			var e StandardError
			So(e.N(), ShouldEqual, 0)
			So(e.Mean(), ShouldEqual, 0.0)
			So(e.Sigma(), ShouldEqual, 0.0)
			So(e.MeanError(), ShouldEqual, 0.0)
		})

		Convey("matches Sample statistics", func() {
			var e StandardError
			for _, x := range data {
				e.Add(x)
			}
			s := NewSample(data)
			So(e.N(), ShouldEqual, 4)
			So(e.Sum(), ShouldEqual, 6.0)
			So(e.Mean(), ShouldEqual, s.Mean())
			So(testutil.Round(e.Variance(), 10), ShouldEqual,
				testutil.Round(s.Variance(), 10))
			So(testutil.Round(e.MeanError(), 10), ShouldEqual,
				testutil.Round(s.Sigma()/2.0, 10))
		})

		Convey("Merge of batches equals a single pass", func() {
			var all, a, b StandardError
			for i, x := range data {
				all.Add(x)
				if i < 1 {
					a.Add(x)
				} else {
					b.Add(x)
				}
			}
			a.Merge(b)
			So(a.N(), ShouldEqual, all.N())
			So(a.Mean(), ShouldEqual, all.Mean())
			So(testutil.Round(a.Variance(), 10), ShouldEqual,
				testutil.Round(all.Variance(), 10))
		})

		Convey("AddZeros", func() {
			var e StandardError
			e.Add(4.0)
			e.AddZeros(3)
			So(e.N(), ShouldEqual, 4)
			So(e.Mean(), ShouldEqual, 1.0)
			So(e.Variance(), ShouldEqual, 3.0)
		})
	})

	Convey("Variable substitution methods work", t, func() {
		Convey("SafeLog", func() {
			So(SafeLog(0.0), ShouldEqual, math.Inf(-1))
			So(SafeLog(-1.0), ShouldEqual, math.Inf(-1))
			So(testutil.Round(SafeLog(math.E), 10), ShouldEqual, 1.0)
		})

		Convey("VarSubst is symmetric and large near -1 and 1", func() {
			So(VarSubst(0, 5, 2), ShouldEqual, 0)
			So(testutil.Round(VarSubst(0.5, 5, 2), 3), ShouldEqual, 2.67)
			So(testutil.Round(VarSubst(-0.5, 5, 2), 3), ShouldEqual, -2.67)
			So(testutil.Round(VarSubst(0.999, 5, 2), 3), ShouldEqual, 1250)
			So(testutil.Round(VarSubst(-0.999, 5, 2), 3), ShouldEqual, -1250)
		})

		Convey("VarPrime is indeed a derivative", func() {
			t := 0.5
			dt := 0.001
			r, b := 5.0, 2.0
			dx := VarSubst(t+dt/2.0, r, b) - VarSubst(t-dt/2.0, r, b)
			So(testutil.Round(dx/dt, 5), ShouldEqual,
				testutil.Round(VarPrime(t, r, b), 5))
		})
	})
}
