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

package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strconv"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/stochastic/experiment"
	"github.com/stockparfait/stochastic/report"
)

// seedFlag is a uint64 flag value which remembers whether it was set.
type seedFlag struct {
	value uint64
	set   bool
}

var _ flag.Value = &seedFlag{}

func (s *seedFlag) String() string {
	if s == nil || !s.set {
		return ""
	}
	return strconv.FormatUint(s.value, 10)
}

func (s *seedFlag) Set(v string) error {
	x, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return errors.Annotate(err, "invalid seed '%s'", v)
	}
	s.value = x
	s.set = true
	return nil
}

type Flags struct {
	LogLevel logging.Level
	Config   string   // config file, TOML or YAML
	CSV      bool     // dump CSV format; default: text.
	Seed     seedFlag // overrides the config's seed when set
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	fs := flag.NewFlagSet("stochastic", flag.ExitOnError)
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.StringVar(&flags.Config, "conf", "", "config file, TOML or YAML (required)")
	fs.BoolVar(&flags.CSV, "csv", false, "print table in CSV format; default: text")
	fs.Var(&flags.Seed, "seed", "random seed; overrides the config value")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	if flags.Config == "" {
		return nil, errors.Reason("missing required -conf argument")
	}
	return &flags, err
}

func printData(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := experiment.Load(flags.Config)
	if err != nil {
		return errors.Annotate(err, "failed to read config '%s'", flags.Config)
	}
	if flags.Seed.set {
		config.Seed = flags.Seed.value
	}
	logging.Debugf(ctx, "running %d experiments with seed=%d",
		len(config.Experiments), config.Seed)
	tbl, err := experiment.Run(ctx, config)
	if err != nil {
		return errors.Annotate(err, "failed to run experiments")
	}
	if err := tbl.Write(w, report.Params{CSV: flags.CSV}); err != nil {
		return errors.Annotate(err, "failed to print results")
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printData(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, err.Error())
		os.Exit(1)
	}
}
