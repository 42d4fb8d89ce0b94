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
)

// SafeLog is a "safe" natural logarithm, which for x <= 0 returns -Inf.
func SafeLog(x float64) float64 {
	if x <= 0 {
		return math.Inf(-1)
	}
	return math.Log(x)
}

// VarSubst computes the value of
//
//   x(t) = scale * t / (1 - t^(2*power))
//
// to be used as a variable substitution in an integral over x in
// (-Inf..Inf). The new bounds for t become (-1..1), excluding the boundaries.
//
// In Monte Carlo integration, the integral_{-Inf..Inf} f(x)dx is approximated
// by 2 * E[ f(x(t))*x'(t) ] for a uniformly distributed t over (-1..1).
func VarSubst(t, scale, power float64) float64 {
	t2p := math.Pow(t*t, power) // use t*t so power could be fractional
	return scale * t / (1 - t2p)
}

// VarPrime is the value of x'(t), the first derivative of x(t).
func VarPrime(t, scale, power float64) float64 {
	t2p := math.Pow(t*t, power)
	return scale * (1 + (2*power-1)*t2p) / ((1 - t2p) * (1 - t2p))
}
