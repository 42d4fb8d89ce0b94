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
	"context"
	"fmt"
	"math"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/stochastic/mcmc"
	"github.com/stockparfait/stochastic/montecarlo"
	"github.com/stockparfait/stochastic/reference"
	"github.com/stockparfait/stochastic/report"
	"github.com/stockparfait/stochastic/rng"
	"github.com/stockparfait/stochastic/stats"
)

// Header of the result table.
var Header = []string{
	"Experiment", "Estimate", "Reference", "Abs Error", "Std Error", "Notes"}

// result of a single experiment.
type result struct {
	estimate  float64
	reference float64
	stdErr    float64 // NaN when not available
	notes     string
}

func (r result) row(label string) report.Cells {
	stdErr := report.String("")
	if !math.IsNaN(r.stdErr) {
		stdErr = report.Fixed(r.stdErr, 6)
	}
	return report.Cells{
		report.String(label),
		report.Number(r.estimate),
		report.Number(r.reference),
		report.Fixed(math.Abs(r.estimate-r.reference), 6),
		stdErr,
		report.String(r.notes),
	}
}

func fromEstimate(e montecarlo.Estimate, ref float64) result {
	return result{
		estimate:  e.Value,
		reference: ref,
		stdErr:    e.StdErr,
		notes:     fmt.Sprintf("n=%d", e.N),
	}
}

// Label of the experiment in the result table.
func (e *Experiment) Label() string {
	if e.Name != "" {
		return e.Name
	}
	switch e.Kind {
	case KindIntegral:
		return fmt.Sprintf("integral %s [%g, %g]", e.Function, e.Low, *e.High)
	case KindOption:
		return fmt.Sprintf("call S=%g K=%g T=%g",
			float(e.Spot), float(e.Strike), float(e.Expiry))
	case KindMetropolis:
		return fmt.Sprintf("metropolis %s mean", e.Target)
	case KindGibbs:
		return "gibbs correlation"
	}
	return e.Kind
}

func (e *Experiment) runPi(ctx context.Context, s *rng.Stream, pc *montecarlo.ParallelConfig) (result, error) {
	var est montecarlo.Estimate
	var err error
	if e.Parallel {
		est, err = montecarlo.ParallelPi(ctx, s, integer(e.Samples), pc)
	} else {
		est, err = montecarlo.Pi(s, integer(e.Samples))
	}
	if err != nil {
		return result{}, err
	}
	return fromEstimate(est, math.Pi), nil
}

func (e *Experiment) runIntegral(ctx context.Context, s *rng.Stream, pc *montecarlo.ParallelConfig) (result, error) {
	fn, err := e.function()
	if err != nil {
		return result{}, err
	}
	ref, err := e.integralReference(fn)
	if err != nil {
		return result{}, err
	}
	n := integer(e.Samples)
	var est montecarlo.Estimate
	switch {
	case e.Precision != nil:
		est, err = montecarlo.IntegralToPrecision(fn.f, e.Low, *e.High, s,
			minPrecisionSamples, n, *e.Precision, e.Relative)
	case e.Parallel:
		est, err = montecarlo.ParallelIntegral(ctx, fn.f, e.Low, *e.High, s, n, pc)
	default:
		est, err = montecarlo.Integral(fn.f, e.Low, *e.High, s, n)
	}
	if err != nil {
		return result{}, err
	}
	return fromEstimate(est, ref), nil
}

func (e *Experiment) runOption(ctx context.Context, s *rng.Stream, pc *montecarlo.ParallelConfig) (result, error) {
	p := e.optionParams()
	ref := reference.BlackScholesCall(p.Spot, p.Strike, p.Expiry, p.Rate, p.Volatility)
	var est montecarlo.Estimate
	var err error
	if e.Parallel {
		est, err = montecarlo.ParallelOptionPrice(ctx, p, s, pc)
	} else {
		est, err = montecarlo.OptionPrice(p, s)
	}
	if err != nil {
		return result{}, err
	}
	r := fromEstimate(est, ref)
	r.notes += fmt.Sprintf(" steps=%d", p.Steps)
	return r, nil
}

func (e *Experiment) runMetropolis(ctx context.Context, s *rng.Stream) (result, error) {
	t, err := e.target()
	if err != nil {
		return result{}, err
	}
	mean, variance, err := t.moments()
	if err != nil {
		return result{}, errors.Annotate(err, "failed to compute reference moments")
	}
	samples, rate, err := mcmc.Metropolis(t.LogDensity, e.metropolisParams(), s)
	if err != nil {
		return result{}, err
	}
	sample := stats.NewSample(samples)
	logging.Debugf(ctx, "metropolis: %d samples, variance=%.4f (reference %.4f)",
		sample.Len(), sample.Variance(), variance)
	return result{
		estimate:  sample.Mean(),
		reference: mean,
		stdErr:    math.NaN(),
		notes: fmt.Sprintf("acceptance=%.3f variance=%.4f ref=%.4f",
			rate, sample.Variance(), variance),
	}, nil
}

func (e *Experiment) runGibbs(ctx context.Context, s *rng.Stream) (result, error) {
	p := e.gibbsParams()
	points, err := mcmc.Gibbs(p, s)
	if err != nil {
		return result{}, err
	}
	b := mcmc.ToBivariate(points)
	mean := b.Mean()
	cov := b.Covariance()
	logging.Debugf(ctx, "gibbs: %d samples, covariance=%v", b.Len(), cov)
	return result{
		estimate:  b.Correlation(),
		reference: p.Rho,
		stdErr:    math.NaN(),
		notes: fmt.Sprintf("mean=(%.3f, %.3f) var=(%.3f, %.3f)",
			mean[0], mean[1], cov[0][0], cov[1][1]),
	}, nil
}

func (e *Experiment) run(ctx context.Context, s *rng.Stream, pc *montecarlo.ParallelConfig) (result, error) {
	switch e.Kind {
	case KindPi:
		return e.runPi(ctx, s, pc)
	case KindIntegral:
		return e.runIntegral(ctx, s, pc)
	case KindOption:
		return e.runOption(ctx, s, pc)
	case KindMetropolis:
		return e.runMetropolis(ctx, s)
	case KindGibbs:
		return e.runGibbs(ctx, s)
	}
	return result{}, errors.Reason("unknown kind: '%s'", e.Kind)
}

// Run all the experiments in c sequentially and return the table of results.
// Experiment i draws from the i-th sub-stream of the seed, so its result does
// not depend on the other experiments.
func Run(ctx context.Context, c *Config) (*report.Table, error) {
	streams := rng.New(c.Seed).Split(len(c.Experiments))
	pc := c.ParallelConfig()
	tbl := report.NewTable(Header...)
	for i := range c.Experiments {
		e := &c.Experiments[i]
		label := e.Label()
		logging.Infof(ctx, "running experiment %d: %s", i, label)
		r, err := e.run(ctx, streams[i], pc)
		if err != nil {
			return nil, errors.Annotate(err, "experiment %d (%s) failed", i, label)
		}
		logging.Debugf(ctx, "%s: estimate=%g reference=%g", label, r.estimate, r.reference)
		tbl.AddRow(r.row(label))
	}
	return tbl, nil
}
