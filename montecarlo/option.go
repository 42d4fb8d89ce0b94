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

// OptionParams are the parameters of a European call option and of its
// simulation.
type OptionParams struct {
	Spot       float64 // initial price of the underlying
	Strike     float64
	Expiry     float64 // time to expiry in years
	Rate       float64 // risk-free interest rate
	Volatility float64 // annualized volatility of the underlying
	Paths      int     // number of simulated price paths
	Steps      int     // number of time steps per path
}

// Check the parameters for validity.
func (p *OptionParams) Check() error {
	if !(p.Spot > 0) || !(p.Strike > 0) || !(p.Expiry > 0) || !(p.Volatility > 0) {
		return errors.Reason(
			"spot=%f, strike=%f, expiry=%f and volatility=%f must be positive",
			p.Spot, p.Strike, p.Expiry, p.Volatility)
	}
	if !isFinite(p.Spot) || !isFinite(p.Strike) || !isFinite(p.Expiry) ||
		!isFinite(p.Rate) || !isFinite(p.Volatility) {
		return errors.Reason("option parameters must be finite")
	}
	if p.Paths < 1 {
		return errors.Reason("paths=%d must be >= 1", p.Paths)
	}
	if p.Steps < 1 {
		return errors.Reason("steps=%d must be >= 1", p.Steps)
	}
	return nil
}

// optionBatch simulates n geometric Brownian motion paths and accumulates
// their discounted payoffs.
func optionBatch(p *OptionParams, s *rng.Stream, n int) stats.StandardError {
	dt := p.Expiry / float64(p.Steps)
	drift := (p.Rate - p.Volatility*p.Volatility/2) * dt
	diffusion := p.Volatility * math.Sqrt(dt)
	discount := math.Exp(-p.Rate * p.Expiry)

	var e stats.StandardError
	for i := 0; i < n; i++ {
		price := p.Spot
		for j := 0; j < p.Steps; j++ {
			price *= math.Exp(drift + diffusion*s.StdNormal())
		}
		e.Add(discount * math.Max(price-p.Strike, 0))
	}
	return e
}

// OptionPrice estimates the price of a European call option as the discounted
// mean payoff over p.Paths simulated price paths.
func OptionPrice(p *OptionParams, s *rng.Stream) (Estimate, error) {
	if err := p.Check(); err != nil {
		return Estimate{}, errors.Annotate(err, "invalid option parameters")
	}
	return newEstimate(optionBatch(p, s, p.Paths)), nil
}
