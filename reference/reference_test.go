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

package reference

import (
	"math"
	"testing"

	"github.com/stockparfait/testutil"

	. "github.com/smartystreets/goconvey/convey"
)

func TestReference(t *testing.T) {
	t.Parallel()

	Convey("BlackScholesCall", t, func() {
		So(testutil.Round(BlackScholesCall(100, 105, 1, 0.05, 0.2), 4),
			ShouldEqual, 8.021)
		// Deep in the money, the call is worth spot - discounted strike.
		So(testutil.Round(BlackScholesCall(1000, 1, 1, 0.05, 0.2), 6),
			ShouldEqual, testutil.Round(1000-math.Exp(-0.05), 6))
	})

	Convey("Quadrature", t, func() {
		Convey("rejects invalid intervals", func() {
			_, err := NewQuadrature(1, 0, 0)
			So(err, ShouldNotBeNil)
			_, err = NewQuadrature(math.Inf(-1), 0, 0)
			So(err, ShouldNotBeNil)
			_, err = NewQuadrature(0, 1, -1)
			So(err, ShouldNotBeNil)
		})

		Convey("integrates polynomials", func() {
			q, err := NewQuadrature(0, 1, 0)
			So(err, ShouldBeNil)
			So(q.Points, ShouldEqual, DefaultPoints)
			So(testutil.Round(q.Integral(func(x float64) float64 { return x * x }), 8),
				ShouldEqual, testutil.Round(1.0/3.0, 8))
		})

		Convey("normalizes exp(-x^4)", func() {
			q, err := NewQuadrature(-5, 5, 0)
			So(err, ShouldBeNil)
			density := func(x float64) float64 { return math.Exp(-x * x * x * x) }
			So(testutil.Round(q.NormalizingConstant(density), 6), ShouldEqual,
				testutil.Round(2*math.Gamma(1.25), 6))
			mean, variance := q.Moments(density)
			So(math.Abs(mean), ShouldBeLessThan, 1e-8)
			// E[x^2] = Gamma(3/4) / Gamma(1/4).
			So(testutil.Round(variance, 6), ShouldEqual,
				testutil.Round(math.Gamma(0.75)/math.Gamma(0.25), 6))
			pdf := q.PDF(density)
			So(testutil.Round(pdf(0), 6), ShouldEqual,
				testutil.Round(1/(2*math.Gamma(1.25)), 6))
		})
	})
}
