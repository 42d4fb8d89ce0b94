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
	"math"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/stochastic/rng"
	"github.com/stockparfait/stochastic/stats"
)

// Parameters of the variable substitution for (-Inf, Inf) integrals.
const (
	substScale = 1.0
	substPower = 1.0
)

// interval classifies integration bounds.
type interval int

const (
	finiteInterval interval = iota
	infiniteInterval
)

func checkInterval(a, b float64) (interval, error) {
	if math.IsNaN(a) || math.IsNaN(b) {
		return 0, errors.Reason("bounds [%f, %f] cannot be NaN", a, b)
	}
	if math.IsInf(a, -1) && math.IsInf(b, 1) {
		return infiniteInterval, nil
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return 0, errors.Reason(
			"bounds [%f, %f] must be both finite or (-Inf, Inf)", a, b)
	}
	if !(a < b) {
		return 0, errors.Reason("lower bound %f must be < upper bound %f", a, b)
	}
	return finiteInterval, nil
}

// integrand returns a function which, for a random stream, draws one sample
// whose expectation is the integral of f over [a, b].
func integrand(f func(float64) float64, a, b float64, kind interval) func(*rng.Stream) float64 {
	if kind == infiniteInterval {
		return func(s *rng.Stream) float64 {
			t := s.Uniform(-1, 1)
			for t <= -1 { // x(t) is infinite at the boundary
				t = s.Uniform(-1, 1)
			}
			x := stats.VarSubst(t, substScale, substPower)
			return 2 * f(x) * stats.VarPrime(t, substScale, substPower)
		}
	}
	return func(s *rng.Stream) float64 {
		return (b - a) * f(s.Uniform(a, b))
	}
}

func integralBatch(sample func(*rng.Stream) float64, s *rng.Stream, n int) stats.StandardError {
	var e stats.StandardError
	for i := 0; i < n; i++ {
		e.Add(sample(s))
	}
	return e
}

// Integral estimates the definite integral of f over [a, b] as
// (b-a)*mean(f(x)) for n uniform samples x in [a, b).
//
// When a = -Inf and b = +Inf, the integral is computed for the substituted
// variable x = stats.VarSubst(t, ...) with t uniform in (-1, 1). Half-infinite
// intervals are not supported.
func Integral(f func(float64) float64, a, b float64, s *rng.Stream, n int) (Estimate, error) {
	kind, err := checkInterval(a, b)
	if err != nil {
		return Estimate{}, errors.Annotate(err, "invalid integral parameters")
	}
	if err := checkSamples(n); err != nil {
		return Estimate{}, errors.Annotate(err, "invalid integral parameters")
	}
	return newEstimate(integralBatch(integrand(f, a, b, kind), s, n)), nil
}

// IntegralToPrecision is like Integral, but stops sampling as soon as the
// standard error falls below the precision, or when maxN samples have been
// drawn. The precision is relative to the estimate when relative is true, and
// absolute otherwise; see stats.PreciseEnough.
//
// At least minN samples are always drawn, to accumulate a reasonable initial
// error estimate. The error of a single sample is unknown, so the precision is
// never considered reached before the second sample.
func IntegralToPrecision(f func(float64) float64, a, b float64, s *rng.Stream,
	minN, maxN int, precision float64, relative bool) (Estimate, error) {
	kind, err := checkInterval(a, b)
	if err != nil {
		return Estimate{}, errors.Annotate(err, "invalid integral parameters")
	}
	if minN < 1 || maxN < minN {
		return Estimate{}, errors.Reason(
			"sample bounds must satisfy 1 <= min=%d <= max=%d", minN, maxN)
	}
	if !(precision > 0) {
		return Estimate{}, errors.Reason("precision=%f must be positive", precision)
	}
	sample := integrand(f, a, b, kind)
	var e stats.StandardError
	for i := 0; i < maxN; i++ {
		e.Add(sample(s))
		if i+1 < minN || e.N() < 2 {
			continue
		}
		if stats.PreciseEnough(e.Mean(), e.MeanError(), precision, relative) {
			break
		}
	}
	return newEstimate(e), nil
}
