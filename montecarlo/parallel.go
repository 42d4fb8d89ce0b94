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
	"context"
	"runtime"
	"sort"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/stochastic/rng"
	"github.com/stockparfait/stochastic/stats"
)

// DefaultBatchSize is the number of samples per batch when not specified.
const DefaultBatchSize = 10000

// ParallelConfig controls how samples are split into batches and processed
// in parallel. The zero value is valid and uses the defaults.
type ParallelConfig struct {
	Workers   int // default: 2*runtime.NumCPU()
	BatchSize int // default: DefaultBatchSize
}

// Check the config for validity.
func (c *ParallelConfig) Check() error {
	if c.Workers < 0 {
		return errors.Reason("workers=%d must be >= 0", c.Workers)
	}
	if c.BatchSize < 0 {
		return errors.Reason("batch size=%d must be >= 0", c.BatchSize)
	}
	return nil
}

func (c *ParallelConfig) workers() int {
	if c == nil || c.Workers == 0 {
		return 2 * runtime.NumCPU()
	}
	return c.Workers
}

func (c *ParallelConfig) batchSize() int {
	if c == nil || c.BatchSize == 0 {
		return DefaultBatchSize
	}
	return c.BatchSize
}

// batchSizes splits n samples into batches of at most size samples.
func batchSizes(n, size int) []int {
	var sizes []int
	for n > 0 {
		b := size
		if n < b {
			b = n
		}
		sizes = append(sizes, b)
		n -= b
	}
	return sizes
}

type batchJob struct {
	index  int
	n      int
	stream *rng.Stream
}

type batchResult struct {
	index  int
	stdErr stats.StandardError
}

// runBatches splits n samples into batches, each with its own sub-stream of s,
// runs them in parallel and merges the results in batch order. The result is
// therefore deterministic for the same s, n and batch size regardless of the
// number of workers.
func runBatches(ctx context.Context, name string, s *rng.Stream, n int,
	cfg *ParallelConfig, batch func(*rng.Stream, int) stats.StandardError) (Estimate, error) {
	if cfg != nil {
		if err := cfg.Check(); err != nil {
			return Estimate{}, errors.Annotate(err, "invalid parallel config")
		}
	}
	sizes := batchSizes(n, cfg.batchSize())
	streams := s.Split(len(sizes))
	jobs := make([]batchJob, len(sizes))
	for i := range sizes {
		jobs[i] = batchJob{index: i, n: sizes[i], stream: streams[i]}
	}
	logging.Debugf(ctx, "%s: %d samples in %d batches on %d workers",
		name, n, len(jobs), cfg.workers())

	f := func(j batchJob) batchResult {
		return batchResult{index: j.index, stdErr: batch(j.stream, j.n)}
	}
	pm := iterator.ParallelMap(ctx, cfg.workers(), iterator.FromSlice(jobs), f)

	results := iterator.Reduce[batchResult, []batchResult](
		pm, []batchResult{}, func(r batchResult, rs []batchResult) []batchResult {
			return append(rs, r)
		})
	if err := ctx.Err(); err != nil {
		return Estimate{}, errors.Annotate(err, "%s interrupted", name)
	}
	if len(results) != len(jobs) {
		return Estimate{}, errors.Reason("%s: got %d batch results, expected %d",
			name, len(results), len(jobs))
	}
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })
	var e stats.StandardError
	for _, r := range results {
		e.Merge(r.stdErr)
	}
	return newEstimate(e), nil
}

// ParallelPi is the parallel version of Pi.
func ParallelPi(ctx context.Context, s *rng.Stream, n int, cfg *ParallelConfig) (Estimate, error) {
	if err := checkSamples(n); err != nil {
		return Estimate{}, errors.Annotate(err, "invalid pi parameters")
	}
	return runBatches(ctx, "pi", s, n, cfg, piBatch)
}

// ParallelIntegral is the parallel version of Integral.
func ParallelIntegral(ctx context.Context, f func(float64) float64, a, b float64,
	s *rng.Stream, n int, cfg *ParallelConfig) (Estimate, error) {
	kind, err := checkInterval(a, b)
	if err != nil {
		return Estimate{}, errors.Annotate(err, "invalid integral parameters")
	}
	if err := checkSamples(n); err != nil {
		return Estimate{}, errors.Annotate(err, "invalid integral parameters")
	}
	sample := integrand(f, a, b, kind)
	return runBatches(ctx, "integral", s, n, cfg,
		func(bs *rng.Stream, bn int) stats.StandardError {
			return integralBatch(sample, bs, bn)
		})
}

// ParallelOptionPrice is the parallel version of OptionPrice. Batches consist
// of whole paths.
func ParallelOptionPrice(ctx context.Context, p *OptionParams, s *rng.Stream,
	cfg *ParallelConfig) (Estimate, error) {
	if err := p.Check(); err != nil {
		return Estimate{}, errors.Annotate(err, "invalid option parameters")
	}
	params := *p
	return runBatches(ctx, "option", s, p.Paths, cfg,
		func(bs *rng.Stream, bn int) stats.StandardError {
			return optionBatch(&params, bs, bn)
		})
}
