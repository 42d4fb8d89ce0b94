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

// Package reference computes closed-form and deterministic numerical values
// used to validate Monte Carlo estimates. Nothing in the estimators or the
// samplers depends on it.
package reference

import (
	"math"

	"github.com/stockparfait/errors"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/stat/distuv"
)

// BlackScholesCall is the price of a European call option with the given spot
// price, strike, time to expiry (in years), risk-free rate and volatility.
func BlackScholesCall(spot, strike, expiry, rate, vol float64) float64 {
	sd := vol * math.Sqrt(expiry)
	d1 := (math.Log(spot/strike) + (rate+vol*vol/2)*expiry) / sd
	d2 := d1 - sd
	return spot*distuv.UnitNormal.CDF(d1) -
		strike*math.Exp(-rate*expiry)*distuv.UnitNormal.CDF(d2)
}

// DefaultPoints is the number of Gauss-Legendre quadrature points used by
// default.
const DefaultPoints = 1000

// Quadrature integrates functions over a finite interval with a fixed
// Gauss-Legendre rule. A zero Points value means DefaultPoints.
type Quadrature struct {
	Low, High float64
	Points    int
}

// NewQuadrature checks the interval and creates a Quadrature.
func NewQuadrature(low, high float64, points int) (*Quadrature, error) {
	if !(low < high) || math.IsInf(low, 0) || math.IsInf(high, 0) {
		return nil, errors.Reason("interval [%f..%f] must be finite and non-empty",
			low, high)
	}
	if points < 0 {
		return nil, errors.Reason("points=%d must be >= 0", points)
	}
	if points == 0 {
		points = DefaultPoints
	}
	return &Quadrature{Low: low, High: high, Points: points}, nil
}

// Integral of f over the interval.
func (q *Quadrature) Integral(f func(float64) float64) float64 {
	return quad.Fixed(f, q.Low, q.High, q.Points, nil, 0)
}

// NormalizingConstant of an unnormalized density restricted to the interval.
func (q *Quadrature) NormalizingConstant(density func(float64) float64) float64 {
	return q.Integral(density)
}

// Moments computes the mean and the variance of the distribution given by the
// unnormalized density restricted to the interval.
func (q *Quadrature) Moments(density func(float64) float64) (mean, variance float64) {
	z := q.NormalizingConstant(density)
	mean = q.Integral(func(x float64) float64 { return x * density(x) }) / z
	variance = q.Integral(func(x float64) float64 {
		return (x - mean) * (x - mean) * density(x)
	}) / z
	return
}

// PDF returns the normalized density for the interval, suitable for comparing
// against a histogram of samples.
func (q *Quadrature) PDF(density func(float64) float64) func(float64) float64 {
	z := q.NormalizingConstant(density)
	return func(x float64) float64 { return density(x) / z }
}
