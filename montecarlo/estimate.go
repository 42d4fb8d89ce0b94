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

// Package montecarlo implements simple Monte Carlo estimators: pi, definite
// integrals and European call option prices, in sequential and parallel
// forms.
package montecarlo

import (
	"math"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/stochastic/stats"
)

// Estimate is the result of a Monte Carlo estimation.
type Estimate struct {
	Value  float64 // the estimated quantity
	StdErr float64 // standard error of Value
	N      int     // number of samples used
}

func newEstimate(e stats.StandardError) Estimate {
	return Estimate{Value: e.Mean(), StdErr: e.MeanError(), N: int(e.N())}
}

func checkSamples(n int) error {
	if n < 1 {
		return errors.Reason("number of samples=%d must be >= 1", n)
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
