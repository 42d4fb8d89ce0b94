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

package mcmc

import (
	"math"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/stochastic/rng"
	"github.com/stockparfait/stochastic/stats"
)

// Point is a state of a 2-dimensional chain.
type Point [2]float64

// gibbsKernel holds the conditional distribution parameters which are
// invariant across iterations.
type gibbsKernel struct {
	mu1, mu2         float64
	slope1, slope2   float64 // (sigma1/sigma2)*rho and (sigma2/sigma1)*rho
	condSD1, condSD2 float64 // sigma_i * sqrt(1 - rho^2)
}

func newGibbsKernel(p *GibbsParams) gibbsKernel {
	sq := math.Sqrt(1 - p.Rho*p.Rho)
	return gibbsKernel{
		mu1:     p.Mu1,
		mu2:     p.Mu2,
		slope1:  p.Sigma1 / p.Sigma2 * p.Rho,
		slope2:  p.Sigma2 / p.Sigma1 * p.Rho,
		condSD1: p.Sigma1 * sq,
		condSD2: p.Sigma2 * sq,
	}
}

// step draws x1 from its conditional given x2, then x2 from its conditional
// given the new x1.
func (k *gibbsKernel) step(x Point, s *rng.Stream) Point {
	x1 := s.Normal(k.mu1+k.slope1*(x[1]-k.mu2), k.condSD1)
	x2 := s.Normal(k.mu2+k.slope2*(x1-k.mu1), k.condSD2)
	return Point{x1, x2}
}

// GibbsChain lazily runs a Gibbs sampler for the bivariate normal distribution
// starting at (0, 0). Its Next method yields the chain states after burn-in,
// one per iteration, until Samples iterations are done.
type GibbsChain struct {
	kernel  gibbsKernel
	samples int
	burnIn  int
	stream  *rng.Stream
	state   Point
	iter    int
}

var _ iterator.Iterator[Point] = &GibbsChain{}

// NewGibbsChain validates the parameters and creates a new chain.
func NewGibbsChain(p *GibbsParams, s *rng.Stream) (*GibbsChain, error) {
	if s == nil {
		panic(errors.Reason("random stream cannot be nil"))
	}
	if err := p.Check(); err != nil {
		return nil, errors.Annotate(err, "invalid Gibbs parameters")
	}
	return &GibbsChain{
		kernel:  newGibbsKernel(p),
		samples: p.Samples,
		burnIn:  p.BurnIn,
		stream:  s,
	}, nil
}

// Next runs the chain until the next retained sample. It returns false when
// all the iterations are done.
func (c *GibbsChain) Next() (Point, bool) {
	for c.iter < c.samples {
		c.state = c.kernel.step(c.state, c.stream)
		c.iter++
		if c.iter > c.burnIn {
			return c.state, true
		}
	}
	return Point{}, false
}

// Iterations done so far, including burn-in.
func (c *GibbsChain) Iterations() int { return c.iter }

// Gibbs samples the bivariate normal distribution by alternately drawing each
// coordinate from its exact conditional distribution. It returns the
// Samples-BurnIn chain states after burn-in. Invalid parameters fail before
// any random draw.
func Gibbs(p *GibbsParams, s *rng.Stream) ([]Point, error) {
	c, err := NewGibbsChain(p, s)
	if err != nil {
		return nil, err
	}
	samples := make([]Point, p.Samples-p.BurnIn)
	for i := range samples {
		samples[i], _ = c.Next()
	}
	return samples, nil
}

// ToBivariate splits the points into coordinate slices for computing sample
// statistics.
func ToBivariate(points []Point) *stats.Bivariate {
	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p[0]
		y[i] = p[1]
	}
	return stats.NewBivariate(x, y)
}
