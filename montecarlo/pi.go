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

package montecarlo

import (
	"github.com/stockparfait/errors"
	"github.com/stockparfait/stochastic/rng"
	"github.com/stockparfait/stochastic/stats"
)

// piBatch samples n points in the unit square, scoring 4 for each point in
// the quarter disk (boundary included) and 0 otherwise.
func piBatch(s *rng.Stream, n int) stats.StandardError {
	var e stats.StandardError
	var misses uint
	for i := 0; i < n; i++ {
		x := s.Float64()
		y := s.Float64()
		if x*x+y*y <= 1 {
			e.Add(4)
		} else {
			misses++
		}
	}
	e.AddZeros(misses)
	return e
}

// Pi estimates the value of pi as 4 times the fraction of n uniform points in
// [0, 1)^2 falling within the unit quarter circle.
func Pi(s *rng.Stream, n int) (Estimate, error) {
	if err := checkSamples(n); err != nil {
		return Estimate{}, errors.Annotate(err, "invalid pi parameters")
	}
	return newEstimate(piBatch(s, n)), nil
}
