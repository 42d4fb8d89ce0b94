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
)

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// checkCounts validates the total number of iterations and the number of
// initial iterations to discard.
func checkCounts(samples, burnIn int) error {
	if samples < 1 {
		return errors.Reason("samples=%d must be >= 1", samples)
	}
	if burnIn < 0 {
		return errors.Reason("burn-in=%d must be >= 0", burnIn)
	}
	if burnIn >= samples {
		return errors.Reason("burn-in=%d must be < samples=%d", burnIn, samples)
	}
	return nil
}

// MetropolisParams configures a Metropolis run.
type MetropolisParams struct {
	ProposalScale float64 // standard deviation of the normal proposal
	Samples       int     // total iterations, including burn-in
	BurnIn        int     // initial iterations to discard
}

// Check the parameters for validity.
func (p *MetropolisParams) Check() error {
	if !(p.ProposalScale > 0) || math.IsInf(p.ProposalScale, 1) {
		return errors.Reason("proposal scale=%f must be positive and finite",
			p.ProposalScale)
	}
	return checkCounts(p.Samples, p.BurnIn)
}

// GibbsParams configures a Gibbs run for the bivariate normal distribution
// with means (Mu1, Mu2), standard deviations (Sigma1, Sigma2) and correlation
// Rho.
type GibbsParams struct {
	Mu1, Mu2       float64
	Sigma1, Sigma2 float64
	Rho            float64
	Samples        int // total iterations, including burn-in
	BurnIn         int // initial iterations to discard
}

// Check the parameters for validity. Note, that |Rho| = 1 is rejected: the
// conditional distributions would have zero variance.
func (p *GibbsParams) Check() error {
	if !isFinite(p.Mu1) || !isFinite(p.Mu2) {
		return errors.Reason("means (%f, %f) must be finite", p.Mu1, p.Mu2)
	}
	if !(p.Sigma1 > 0) || !(p.Sigma2 > 0) ||
		math.IsInf(p.Sigma1, 1) || math.IsInf(p.Sigma2, 1) {
		return errors.Reason("sigmas (%f, %f) must be positive and finite",
			p.Sigma1, p.Sigma2)
	}
	if !(-1 < p.Rho && p.Rho < 1) {
		return errors.Reason("rho=%f must be in (-1, 1)", p.Rho)
	}
	return checkCounts(p.Samples, p.BurnIn)
}
