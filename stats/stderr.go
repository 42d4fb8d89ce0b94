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

// PreciseEnough determines if the value of x with an estimated deviation is
// within epsilon neighborhood of its true value. Monte Carlo estimators use it
// as a termination criterion when sampling to a target precision.
//
// When relative is true, the precision is reached when deviation < epsilon*|x|,
// otherwise when deviation < epsilon.
func PreciseEnough(x, deviation, epsilon float64, relative bool) bool {
	if deviation <= 0 {
		return true
	}
	if epsilon <= 0 {
		return false
	}
	if relative {
		return deviation < epsilon*math.Abs(x)
	}
	return deviation < epsilon
}

// StandardError accumulates the mean and the standard deviation of an online
// sequence of samples. The accumulation of the standard deviation is done in a
// computationally stable way using a generalization of the Youngs and Cramer
// formulas, a variant of the more popular Welford's algorithm.
//
// Accumulators of disjoint batches can be combined with Merge, which is how
// parallel estimators reduce their per-batch results.
//
// A zero value of StandardError is ready for use, and represents 0 samples.
type StandardError struct {
	n          uint    // number of samples
	sum        float64 // sum of samples
	sumSquares float64 // sum of (x_i - sum/n)^2
}

// Add a single sample.
func (e *StandardError) Add(x float64) {
	e.Merge(StandardError{n: 1, sum: x})
}

// AddZeros adds n zero-valued samples.
func (e *StandardError) AddZeros(n uint) {
	e.Merge(StandardError{n: n})
}

// Merge the other StandardError into e, so the resulting estimate is for the
// union of samples.
func (e *StandardError) Merge(other StandardError) {
	if e.n == 0 {
		*e = other
		return
	}
	if other.n == 0 {
		return
	}
	n := e.n + other.n
	adj := float64(other.n)/float64(e.n)*e.sum - other.sum
	adj *= adj
	adj *= float64(e.n) / float64(other.n) / float64(n)
	*e = StandardError{
		n:          n,
		sum:        e.sum + other.sum,
		sumSquares: e.sumSquares + other.sumSquares + adj,
	}
}

// N returns the number of accumulated samples.
func (e StandardError) N() uint { return e.n }

// Sum of all samples.
func (e StandardError) Sum() float64 { return e.sum }

// Mean value of all samples.
func (e StandardError) Mean() float64 {
	if e.n == 0 {
		return 0
	}
	return e.sum / float64(e.n)
}

// Variance of the accumulated samples.
func (e StandardError) Variance() float64 {
	if e.n == 0 {
		return 0
	}
	return e.sumSquares / float64(e.n)
}

// Sigma is the standard deviation of the accumulated samples.
func (e StandardError) Sigma() float64 {
	return math.Sqrt(e.Variance())
}

// MeanError is the standard error of the mean, sigma/sqrt(n).
func (e StandardError) MeanError() float64 {
	if e.n == 0 {
		return 0
	}
	return e.Sigma() / math.Sqrt(float64(e.n))
}
