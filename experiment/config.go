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

// Package experiment runs a configured list of Monte Carlo and MCMC
// experiments and reports their estimates against reference values.
package experiment

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/stochastic/mcmc"
	"github.com/stockparfait/stochastic/montecarlo"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Experiment kinds.
const (
	KindPi         = "pi"
	KindIntegral   = "integral"
	KindOption     = "option"
	KindMetropolis = "metropolis"
	KindGibbs      = "gibbs"
)

// Experiment is a single estimation or sampling run. Pointer fields are
// optional: a missing value takes the default noted in the comment, while an
// explicit value, including 0, is kept and validated by Check.
type Experiment struct {
	Name     string `toml:"name" yaml:"name"` // default: derived from the parameters
	Kind     string `toml:"kind" yaml:"kind"`
	Samples  *int   `toml:"samples" yaml:"samples"` // default: per kind; paths for option
	Parallel bool   `toml:"parallel" yaml:"parallel"`

	// Integral.
	Function  string   `toml:"function" yaml:"function"` // default: x^2
	Low       float64  `toml:"low" yaml:"low"`
	High      *float64 `toml:"high" yaml:"high"`           // default: 1
	Precision *float64 `toml:"precision" yaml:"precision"` // stop early at this standard error
	Relative  bool     `toml:"relative" yaml:"relative"`   // precision is relative to the estimate

	// Option.
	Spot       *float64 `toml:"spot" yaml:"spot"`             // default: 100
	Strike     *float64 `toml:"strike" yaml:"strike"`         // default: 105
	Expiry     *float64 `toml:"expiry" yaml:"expiry"`         // default: 1
	Rate       *float64 `toml:"rate" yaml:"rate"`             // default: 0.05
	Volatility *float64 `toml:"volatility" yaml:"volatility"` // default: 0.2
	Steps      *int     `toml:"steps" yaml:"steps"`           // default: 100

	// Metropolis.
	Target        string   `toml:"target" yaml:"target"`                 // default: quartic
	Mu            float64  `toml:"mu" yaml:"mu"`                         // normal target only
	Sigma         *float64 `toml:"sigma" yaml:"sigma"`                   // normal target only; default: 1
	ProposalScale *float64 `toml:"proposal_scale" yaml:"proposal_scale"` // default: 1
	BurnIn        *int     `toml:"burn_in" yaml:"burn_in"`               // default: samples/10; also Gibbs

	// Gibbs.
	Mu1    float64  `toml:"mu1" yaml:"mu1"`
	Mu2    float64  `toml:"mu2" yaml:"mu2"`
	Sigma1 *float64 `toml:"sigma1" yaml:"sigma1"` // default: 1
	Sigma2 *float64 `toml:"sigma2" yaml:"sigma2"` // default: 1
	Rho    *float64 `toml:"rho" yaml:"rho"`       // default: 0.8
}

// Minimum number of samples before checking the precision of an integral.
const minPrecisionSamples = 100

var defaultSamples = map[string]int{
	KindPi:         100000,
	KindIntegral:   100000,
	KindOption:     100000,
	KindMetropolis: 50000,
	KindGibbs:      10000,
}

func setFloat(x **float64, def float64) {
	if *x == nil {
		*x = &def
	}
}

func setInt(x **int, def int) {
	if *x == nil {
		*x = &def
	}
}

// float of an optional value; 0 when missing.
func float(x *float64) float64 {
	if x == nil {
		return 0
	}
	return *x
}

// integer of an optional value; 0 when missing.
func integer(x *int) int {
	if x == nil {
		return 0
	}
	return *x
}

func (e *Experiment) setDefaults() {
	setInt(&e.Samples, defaultSamples[e.Kind])
	switch e.Kind {
	case KindIntegral:
		if e.Function == "" {
			e.Function = "x^2"
		}
		setFloat(&e.High, 1)
	case KindOption:
		setFloat(&e.Spot, 100)
		setFloat(&e.Strike, 105)
		setFloat(&e.Expiry, 1)
		setFloat(&e.Rate, 0.05)
		setFloat(&e.Volatility, 0.2)
		setInt(&e.Steps, 100)
	case KindMetropolis:
		if e.Target == "" {
			e.Target = "quartic"
		}
		setFloat(&e.Sigma, 1)
		setFloat(&e.ProposalScale, 1)
		setInt(&e.BurnIn, *e.Samples/10)
	case KindGibbs:
		setFloat(&e.Sigma1, 1)
		setFloat(&e.Sigma2, 1)
		setFloat(&e.Rho, 0.8)
		setInt(&e.BurnIn, *e.Samples/10)
	}
}

// Check the experiment for validity. It assumes the defaults have been set.
func (e *Experiment) Check() error {
	if e.Parallel {
		switch e.Kind {
		case KindMetropolis, KindGibbs:
			return errors.Reason("%s chains cannot run in parallel", e.Kind)
		}
	}
	switch e.Kind {
	case KindPi:
		if n := integer(e.Samples); n < 1 {
			return errors.Reason("samples=%d must be >= 1", n)
		}
	case KindIntegral:
		if _, err := e.function(); err != nil {
			return err
		}
		n := integer(e.Samples)
		if n < 1 {
			return errors.Reason("samples=%d must be >= 1", n)
		}
		if e.Precision != nil {
			if !(*e.Precision > 0) {
				return errors.Reason("precision=%f must be positive", *e.Precision)
			}
			if n < minPrecisionSamples {
				return errors.Reason("samples=%d must be >= %d with precision",
					n, minPrecisionSamples)
			}
			if e.Parallel {
				return errors.Reason("precision is not supported in parallel")
			}
		}
	case KindOption:
		return e.optionParams().Check()
	case KindMetropolis:
		if _, err := e.target(); err != nil {
			return err
		}
		return e.metropolisParams().Check()
	case KindGibbs:
		return e.gibbsParams().Check()
	default:
		return errors.Reason("unknown kind: '%s'", e.Kind)
	}
	return nil
}

func (e *Experiment) optionParams() *montecarlo.OptionParams {
	return &montecarlo.OptionParams{
		Spot:       float(e.Spot),
		Strike:     float(e.Strike),
		Expiry:     float(e.Expiry),
		Rate:       float(e.Rate),
		Volatility: float(e.Volatility),
		Paths:      integer(e.Samples),
		Steps:      integer(e.Steps),
	}
}

func (e *Experiment) metropolisParams() *mcmc.MetropolisParams {
	return &mcmc.MetropolisParams{
		ProposalScale: float(e.ProposalScale),
		Samples:       integer(e.Samples),
		BurnIn:        integer(e.BurnIn),
	}
}

func (e *Experiment) gibbsParams() *mcmc.GibbsParams {
	return &mcmc.GibbsParams{
		Mu1:     e.Mu1,
		Mu2:     e.Mu2,
		Sigma1:  float(e.Sigma1),
		Sigma2:  float(e.Sigma2),
		Rho:     float(e.Rho),
		Samples: integer(e.Samples),
		BurnIn:  integer(e.BurnIn),
	}
}

// Config is the top-level configuration of the experiments.
type Config struct {
	Seed        uint64       `toml:"seed" yaml:"seed"`
	Workers     int          `toml:"workers" yaml:"workers"` // default: 2*runtime.NumCPU()
	Batch       int          `toml:"batch" yaml:"batch"`     // default: montecarlo.DefaultBatchSize
	Experiments []Experiment `toml:"experiment" yaml:"experiment"`
}

// ParallelConfig for the parallel estimators.
func (c *Config) ParallelConfig() *montecarlo.ParallelConfig {
	return &montecarlo.ParallelConfig{Workers: c.Workers, BatchSize: c.Batch}
}

// Init sets the defaults and checks the config for validity.
func (c *Config) Init() error {
	if err := c.ParallelConfig().Check(); err != nil {
		return errors.Annotate(err, "invalid parallel settings")
	}
	if len(c.Experiments) == 0 {
		return errors.Reason("at least one experiment is required")
	}
	for i := range c.Experiments {
		e := &c.Experiments[i]
		e.setDefaults()
		if err := e.Check(); err != nil {
			return errors.Annotate(err, "invalid experiment %d (%s)", i, e.Kind)
		}
	}
	return nil
}

// Format of a config file.
type Format int

const (
	TOML Format = iota
	YAML
)

// FormatOf a config file determined by its extension: .yaml and .yml are
// YAML, anything else is TOML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return TOML
}

// Decode a config from r. Unknown fields are errors. The resulting config is
// initialized with defaults and checked for validity.
func Decode(r io.Reader, f Format) (*Config, error) {
	var c Config
	switch f {
	case YAML:
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		if err := d.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return nil, errors.Annotate(err, "failed to decode YAML config")
		}
	default:
		d := toml.NewDecoder(r)
		d.DisallowUnknownFields()
		if err := d.Decode(&c); err != nil {
			return nil, errors.Annotate(err, "failed to decode TOML config")
		}
	}
	if err := c.Init(); err != nil {
		return nil, errors.Annotate(err, "invalid config")
	}
	return &c, nil
}

// Load a config from a TOML or YAML file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Annotate(err, "failed to open config file %s", path)
	}
	defer f.Close()

	c, err := Decode(f, FormatOf(path))
	if err != nil {
		return nil, errors.Annotate(err, "failed to load config file %s", path)
	}
	return c, nil
}
