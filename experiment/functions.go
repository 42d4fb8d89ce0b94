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

package experiment

import (
	"math"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/stochastic/mcmc"
	"github.com/stockparfait/stochastic/reference"
)

// function is a named integrand with a closed-form antiderivative for the
// reference value.
type function struct {
	f              func(float64) float64
	antiderivative func(float64) float64
}

var functions = map[string]function{
	"x^2": {
		f:              func(x float64) float64 { return x * x },
		antiderivative: func(x float64) float64 { return x * x * x / 3 },
	},
	"sin": {
		f:              math.Sin,
		antiderivative: func(x float64) float64 { return -math.Cos(x) },
	},
	"exp": {
		f:              math.Exp,
		antiderivative: math.Exp,
	},
	"gauss": {
		f: func(x float64) float64 { return math.Exp(-x * x / 2) },
		antiderivative: func(x float64) float64 {
			return math.Sqrt(math.Pi/2) * math.Erf(x/math.Sqrt2)
		},
	},
}

// function returns the integrand and checks that its integral over the
// configured interval is finite.
func (e *Experiment) function() (function, error) {
	fn, ok := functions[e.Function]
	if !ok {
		return function{}, errors.Reason("unknown function: '%s'", e.Function)
	}
	if _, err := e.integralReference(fn); err != nil {
		return function{}, err
	}
	return fn, nil
}

func (e *Experiment) integralReference(fn function) (float64, error) {
	if e.High == nil {
		return 0, errors.Reason("upper bound is required")
	}
	if !(e.Low < *e.High) {
		return 0, errors.Reason("low=%g must be < high=%g", e.Low, *e.High)
	}
	if math.IsInf(e.Low, 0) != math.IsInf(*e.High, 0) {
		return 0, errors.Reason("half-infinite interval [%g, %g] is not supported",
			e.Low, *e.High)
	}
	ref := fn.antiderivative(*e.High) - fn.antiderivative(e.Low)
	if math.IsNaN(ref) || math.IsInf(ref, 0) {
		return 0, errors.Reason("integral of %s over [%g, %g] does not converge",
			e.Function, e.Low, *e.High)
	}
	return ref, nil
}

// target is a named Metropolis target with the interval holding practically
// all of its probability mass, for computing reference moments.
type target struct {
	mcmc.LogDensity
	low, high float64
}

func (e *Experiment) target() (target, error) {
	switch e.Target {
	case "quartic":
		return target{LogDensity: mcmc.Quartic, low: -5, high: 5}, nil
	case "normal":
		sigma := float(e.Sigma)
		if !(sigma > 0) || math.IsInf(sigma, 1) || math.IsNaN(e.Mu) || math.IsInf(e.Mu, 0) {
			return target{}, errors.Reason(
				"normal target requires finite mu=%f and positive sigma=%f", e.Mu, sigma)
		}
		return target{
			LogDensity: mcmc.NormalTarget(e.Mu, sigma),
			low:        e.Mu - 10*sigma,
			high:       e.Mu + 10*sigma,
		}, nil
	}
	return target{}, errors.Reason("unknown target: '%s'", e.Target)
}

// moments of the normalized target density by numerical quadrature.
func (t target) moments() (mean, variance float64, err error) {
	q, err := reference.NewQuadrature(t.low, t.high, 0)
	if err != nil {
		return 0, 0, errors.Annotate(err, "failed to create quadrature")
	}
	mean, variance = q.Moments(func(x float64) float64 {
		return math.Exp(t.LogDensity(x))
	})
	return mean, variance, nil
}
