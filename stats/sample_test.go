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

func TestSample(t *testing.T) {
	t.Parallel()
	Convey("Sample works correctly", t, func() {
		data := []float64{1.5, 2.0, 2.5, 0.0}

		Convey("Data is correct", func() {
			So(NewSample(data).Data(), ShouldResemble, data)
			So(NewSample(data).Len(), ShouldEqual, 4)
		})

		Convey("Copy indeed copies data", func() {
			d := []float64{1.0, 2.0}
			s := NewSample(d)
			s2 := s.Copy()
			So(s.Data(), ShouldResemble, d)
			So(s2.Data(), ShouldResemble, d)

			d[1] = 3.0
			So(s.Data(), ShouldResemble, d)
			So(s2.Data(), ShouldResemble, []float64{1.0, 2.0})
		})

		Convey("Mean", func() {
			So(NewSample(data).Mean(), ShouldEqual, 1.5)
			So(NewSample([]float64{2.0, 4.0}).Mean(), ShouldEqual, 3.0)
			So(NewSample([]float64{}).Mean(), ShouldEqual, 0.0)
		})

		Convey("Variance", func() {
			So(NewSample(data).Variance(), ShouldEqual, 0.875)
			So(NewSample([]float64{2.0, 4.0}).Variance(), ShouldEqual, 1.0)
			So(NewSample([]float64{}).Variance(), ShouldEqual, 0.0)
		})

		Convey("Sigma", func() {
			So(NewSample(data).Sigma(), ShouldEqual, math.Sqrt(0.875))
			So(NewSample([]float64{2.0, 4.0}).Sigma(), ShouldEqual, 1.0)
			So(NewSample([]float64{}).Sigma(), ShouldEqual, 0.0)
		})
	})

	Convey("Bivariate works correctly", t, func() {
		b := NewBivariate([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})

		Convey("Mean", func() {
			So(b.Mean(), ShouldResemble, [2]float64{2.5, 5.0})
			So(NewBivariate(nil, nil).Mean(), ShouldResemble, [2]float64{})
		})

		Convey("Covariance is unbiased", func() {
			c := b.Covariance()
			So(testutil.Round(c[0][0], 5), ShouldEqual, 1.6667)
			So(testutil.Round(c[0][1], 5), ShouldEqual, 3.3333)
			So(c[1][0], ShouldEqual, c[0][1])
			So(testutil.Round(c[1][1], 5), ShouldEqual, 6.6667)
			So(NewBivariate([]float64{1}, []float64{1}).Covariance(),
				ShouldResemble, [2][2]float64{})
		})

		Convey("Correlation", func() {
			So(testutil.Round(b.Correlation(), 5), ShouldEqual, 1.0)
		})

		Convey("mismatched lengths panic", func() {
			So(func() { NewBivariate([]float64{1}, nil) }, ShouldPanic)
		})
	})
}
