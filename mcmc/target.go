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

// Package mcmc implements Markov Chain Monte Carlo samplers: a Metropolis
// sampler for an arbitrary unnormalized 1-D density and a Gibbs sampler for
// the bivariate normal distribution.
//
// Both samplers are strictly sequential: every iteration depends on the
// previous chain state. Each comes in two forms: a function running the whole
// chain into a pre-sized buffer, and a lazy chain iterator which allows the
// caller to stop early.
package mcmc

import (
	"math"

	"github.com/stockparfait/stochastic/stats"
)

// Target is an unnormalized probability density on the real line, given by
// its natural logarithm. LogProb returns -Inf where the density is zero.
//
// LogProb must be a pure function. A Target whose density is negative, NaN or
// +Inf anywhere the chain can reach is a contract violation, and the sampler's
// behavior is then undefined.
type Target interface {
	LogProb(x float64) float64
}

// LogDensity is a Target defined directly by the log of the unnormalized
// density. This is the preferred form: it never underflows.
type LogDensity func(x float64) float64

var _ Target = LogDensity(nil)

// LogProb implements Target.
func (f LogDensity) LogProb(x float64) float64 { return f(x) }

// Density is a Target defined by a raw unnormalized density. Its zeros
// (including those due to underflow) map to -Inf.
type Density func(x float64) float64

var _ Target = Density(nil)

// LogProb implements Target.
func (f Density) LogProb(x float64) float64 { return stats.SafeLog(f(x)) }

// Quartic is the unnormalized density exp(-x^4).
var Quartic = LogDensity(func(x float64) float64 {
	x2 := x * x
	return -x2 * x2
})

// NormalTarget is the unnormalized density of N(mu, sigma^2).
func NormalTarget(mu, sigma float64) LogDensity {
	return func(x float64) float64 {
		z := (x - mu) / sigma
		return -z * z / 2
	}
}

// acceptance computes min(1, p(proposed)/p(current)) from the log densities
// without ever leaving log space for the ratio. A zero current density accepts
// any proposal of positive density.
func acceptance(logCurrent, logProposed float64) float64 {
	if math.IsInf(logCurrent, -1) {
		if math.IsInf(logProposed, -1) {
			return 0.0
		}
		return 1.0
	}
	logRatio := logProposed - logCurrent
	if logRatio >= 0 {
		return 1.0
	}
	return math.Exp(logRatio)
}
