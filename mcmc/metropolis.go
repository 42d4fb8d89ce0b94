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
	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/stochastic/rng"
)

// metropolisState is the current position of the chain along with its cached
// log density.
type metropolisState struct {
	x    float64
	logP float64
}

// metropolisStep performs one Metropolis iteration: propose from
// N(x, scale^2), then accept with probability min(1, p(proposed)/p(x)). It
// returns the new state and whether the proposal was accepted. Exactly one
// normal and one uniform variate are drawn per step.
func metropolisStep(target Target, scale float64, st metropolisState, s *rng.Stream) (metropolisState, bool) {
	proposed := s.Normal(st.x, scale)
	logP := target.LogProb(proposed)
	if s.Float64() < acceptance(st.logP, logP) {
		return metropolisState{x: proposed, logP: logP}, true
	}
	return st, false
}

// MetropolisChain lazily runs a Metropolis sampler starting at x=0. Its Next
// method yields the chain states after burn-in, one per iteration, until
// Samples iterations are done.
type MetropolisChain struct {
	target   Target
	params   MetropolisParams
	stream   *rng.Stream
	state    metropolisState
	iter     int // iterations done so far
	accepted int
}

var _ iterator.Iterator[float64] = &MetropolisChain{}

// NewMetropolisChain validates the parameters and creates a new chain. No
// random values are drawn until the first call to Next.
func NewMetropolisChain(target Target, p *MetropolisParams, s *rng.Stream) (*MetropolisChain, error) {
	if s == nil {
		panic(errors.Reason("random stream cannot be nil"))
	}
	if err := p.Check(); err != nil {
		return nil, errors.Annotate(err, "invalid Metropolis parameters")
	}
	return &MetropolisChain{
		target: target,
		params: *p,
		stream: s,
		state:  metropolisState{x: 0.0, logP: target.LogProb(0.0)},
	}, nil
}

// Next runs the chain until the next retained sample. It returns false when
// all the iterations are done.
func (c *MetropolisChain) Next() (float64, bool) {
	for c.iter < c.params.Samples {
		var ok bool
		c.state, ok = metropolisStep(c.target, c.params.ProposalScale, c.state, c.stream)
		c.iter++
		if ok {
			c.accepted++
		}
		if c.iter > c.params.BurnIn {
			return c.state.x, true
		}
	}
	return 0.0, false
}

// Iterations done so far, including burn-in.
func (c *MetropolisChain) Iterations() int { return c.iter }

// Accepted is the number of accepted proposals so far, including burn-in.
func (c *MetropolisChain) Accepted() int { return c.accepted }

// AcceptanceRate over all iterations done so far, including burn-in.
func (c *MetropolisChain) AcceptanceRate() float64 {
	if c.iter == 0 {
		return 0.0
	}
	return float64(c.accepted) / float64(c.iter)
}

// Metropolis samples the target density starting at x=0 with a symmetric
// normal proposal of the given scale. It returns the Samples-BurnIn chain
// states after burn-in and the acceptance rate over all Samples iterations.
// Invalid parameters fail before any random draw.
func Metropolis(target Target, p *MetropolisParams, s *rng.Stream) ([]float64, float64, error) {
	c, err := NewMetropolisChain(target, p, s)
	if err != nil {
		return nil, 0.0, err
	}
	samples := make([]float64, p.Samples-p.BurnIn)
	for i := range samples {
		samples[i], _ = c.Next()
	}
	return samples, c.AcceptanceRate(), nil
}
