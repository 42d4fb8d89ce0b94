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
)

// Buckets divides the interval [MinVal..MaxVal] into NumBuckets equal parts.
type Buckets struct {
	NumBuckets int
	MinVal     float64
	MaxVal     float64
	Bounds     []float64 // n+1 bucket boundaries
}

// NewBuckets creates and initializes a new buckets object.
func NewBuckets(n int, minval, maxval float64) (*Buckets, error) {
	if !(minval < maxval) {
		return nil, errors.Reason("invalid interval: minval=%f >= maxval=%f",
			minval, maxval)
	}
	if math.IsInf(minval, 0) || math.IsInf(maxval, 0) {
		return nil, errors.Reason("interval [%f..%f] must be finite", minval, maxval)
	}
	if n <= 0 {
		return nil, errors.Reason("n=%d must be > 0", n)
	}
	b := &Buckets{
		NumBuckets: n,
		MinVal:     minval,
		MaxVal:     maxval,
	}
	b.Bounds = make([]float64, n+1)
	for i := range b.Bounds {
		b.Bounds[i] = b.X(i, 0.0)
	}
	return b, nil
}

// X computes the representative value of x for the i'th bucket, optionally
// adjusted by the relative shift amount (shift=1.0 is the next bucket
// boundary).
func (b *Buckets) X(i int, shift float64) float64 {
	stepSize := (b.MaxVal - b.MinVal) / float64(b.NumBuckets)
	return b.MinVal + (float64(i)+shift)*stepSize
}

// Xs returns the list of representative values for all buckets, optionally
// adjusted by the relative shift amount. It always returns a newly allocated
// slice, so it is safe to modify it.
func (b *Buckets) Xs(shift float64) []float64 {
	res := make([]float64, b.NumBuckets)
	for i := range res {
		res[i] = b.X(i, shift)
	}
	return res
}

// Bucket computes the bucket index for a sample. Values outside of the
// interval are assigned to the first or the last bucket.
func (b *Buckets) Bucket(x float64) int {
	i := int(math.Floor((x - b.MinVal) * float64(b.NumBuckets) / (b.MaxVal - b.MinVal)))
	if i < 0 {
		return 0
	}
	if i >= b.NumBuckets {
		return b.NumBuckets - 1
	}
	return i
}

// Size of the i'th bucket.
func (b *Buckets) Size(i int) float64 {
	if i < 0 || i >= b.NumBuckets {
		return 0.0
	}
	return b.Bounds[i+1] - b.Bounds[i]
}

// Histogram stores sample counts for each bucket.
type Histogram struct {
	buckets *Buckets
	counts  []uint // expected to be of length Buckets.NumBuckets
	size    uint   // total counts
}

// NewHistogram creates and initializes a Histogram. It panics if buckets is
// nil.
func NewHistogram(buckets *Buckets) *Histogram {
	if buckets == nil {
		panic(errors.Reason("buckets cannot be nil"))
	}
	return &Histogram{
		buckets: buckets,
		counts:  make([]uint, buckets.NumBuckets),
	}
}

// Buckets value of the Histogram.
func (h *Histogram) Buckets() *Buckets { return h.buckets }

// Counts of the Histogram.
func (h *Histogram) Counts() []uint { return h.counts }

// Count of the i'th bucket. Returns 0 if i is out of range.
func (h *Histogram) Count(i int) uint {
	if i < 0 || i >= len(h.counts) {
		return 0
	}
	return h.counts[i]
}

// Size is the sum total of all counts.
func (h *Histogram) Size() uint { return h.size }

// Add samples to the Histogram.
func (h *Histogram) Add(xs ...float64) {
	for _, x := range xs {
		h.counts[h.buckets.Bucket(x)]++
	}
	h.size += uint(len(xs))
}

// Mean computes the approximate mean of the distribution.
func (h *Histogram) Mean() float64 {
	if h.size == 0 {
		return 0.0
	}
	sum := 0.0
	for i, x := range h.buckets.Xs(0.5) {
		sum += x * float64(h.counts[i])
	}
	return sum / float64(h.size)
}

// PDF value at the i'th bucket. Return 0.0 if i is out of range. It integrates
// to 1.0 when dx = h.Buckets().Size(i).
func (h *Histogram) PDF(i int) float64 {
	if i < 0 || i >= len(h.counts) {
		return 0.0
	}
	if h.size == 0 {
		return 0.0
	}
	return float64(h.counts[i]) / float64(h.size) / h.buckets.Size(i)
}

// PDFs lists all the values of PDF for all the buckets.
func (h *Histogram) PDFs() []float64 {
	res := make([]float64, len(h.counts))
	for i := range h.counts {
		res[i] = h.PDF(i)
	}
	return res
}

// L1Distance approximates integral |h.PDF(x) - pdf(x)| dx over the buckets'
// interval, evaluating pdf at the bucket middles. It is 0 for a perfect match
// and at most 2 for a normalized pdf.
func (h *Histogram) L1Distance(pdf func(float64) float64) float64 {
	dist := 0.0
	for i, x := range h.buckets.Xs(0.5) {
		dist += math.Abs(h.PDF(i)-pdf(x)) * h.buckets.Size(i)
	}
	return dist
}
