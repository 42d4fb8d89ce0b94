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

	"github.com/stockparfait/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample stores an ordered sequence of numerical data (float64), such as the
// states of a Markov chain, and computes various statistics over it.
type Sample struct {
	data     []float64 // keep it private, so we correctly update caches.
	sum      *float64  // cached sum of samples (for mean computation)
	sumSqDev *float64  // cached sum of squared deviations (for variance)
}

// NewSample creates a new Sample. Note, that it reuses the data slice without
// copying. Use Copy() to decouple the Sample from the input.
func NewSample(data []float64) *Sample {
	return &Sample{data: data}
}

// Data returns the sample data.
func (s *Sample) Data() []float64 { return s.data }

// Len is the number of data points.
func (s *Sample) Len() int { return len(s.data) }

// Copy the Sample. The copy's data can then be safely modified without
// affecting the original.
func (s *Sample) Copy() *Sample {
	cp := make([]float64, len(s.data))
	copy(cp, s.data)
	return NewSample(cp)
}

// Sum of samples, cached.
func (s *Sample) Sum() float64 {
	if s.sum == nil {
		sum := floats.Sum(s.data)
		s.sum = &sum
	}
	return *s.sum
}

// Mean computes the mean of the Sample, cached.
func (s *Sample) Mean() float64 {
	if len(s.data) == 0 {
		return 0.0
	}
	return s.Sum() / float64(len(s.data))
}

// SumSquaredDev computes the sum of squared deviations from the mean, cached.
func (s *Sample) SumSquaredDev() float64 {
	if s.sumSqDev == nil {
		mean := s.Mean()
		v := 0.0
		for _, d := range s.data {
			v += (d - mean) * (d - mean)
		}
		s.sumSqDev = &v
	}
	return *s.sumSqDev
}

// Variance of the Sample (sigma squared), cached. This is the population
// variance, normalized by the number of samples.
func (s *Sample) Variance() float64 {
	if len(s.data) == 0 {
		return 0.0
	}
	return s.SumSquaredDev() / float64(len(s.data))
}

// Sigma computes the standard deviation of the Sample.
func (s *Sample) Sigma() float64 {
	return math.Sqrt(s.Variance())
}

// Bivariate is a sample of 2-dimensional points stored as two aligned
// coordinate slices.
type Bivariate struct {
	X, Y []float64
}

// NewBivariate creates a Bivariate sample. It panics if the coordinate slices
// have different lengths. The slices are used as is, not copied.
func NewBivariate(x, y []float64) *Bivariate {
	if len(x) != len(y) {
		panic(errors.Reason("len(x)=%d != len(y)=%d", len(x), len(y)))
	}
	return &Bivariate{X: x, Y: y}
}

// Len is the number of points.
func (b *Bivariate) Len() int { return len(b.X) }

// Mean of each coordinate.
func (b *Bivariate) Mean() [2]float64 {
	if b.Len() == 0 {
		return [2]float64{}
	}
	return [2]float64{stat.Mean(b.X, nil), stat.Mean(b.Y, nil)}
}

// Covariance is the unbiased (normalized by n-1) sample covariance
// matrix. It is all zeros for fewer than 2 points.
func (b *Bivariate) Covariance() [2][2]float64 {
	if b.Len() < 2 {
		return [2][2]float64{}
	}
	cxy := stat.Covariance(b.X, b.Y, nil)
	return [2][2]float64{
		{stat.Variance(b.X, nil), cxy},
		{cxy, stat.Variance(b.Y, nil)},
	}
}

// Correlation is the Pearson correlation coefficient of the two coordinates.
func (b *Bivariate) Correlation() float64 {
	if b.Len() < 2 {
		return 0.0
	}
	return stat.Correlation(b.X, b.Y, nil)
}
