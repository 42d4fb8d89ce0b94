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

// Package rng provides an owned, seedable stream of random variates. Every
// estimator and sampler in this module takes a *Stream explicitly; there is no
// process-wide random state.
//
// A Stream is the keystream of a ChaCha20 cipher whose key is derived from the
// seed. Sub-streams obtained with Split use keys derived from the parent's key
// and a split counter, so they never share any portion of their sequence with
// the parent or with each other. This makes them safe to hand to parallel
// workers.
package rng

import (
	"encoding/binary"

	"github.com/stockparfait/errors"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/exp/rand"
)

// bufSize is the number of keystream bytes generated at a time. Must be a
// multiple of 8.
const bufSize = 512

// keystream implements rand.Source on top of a ChaCha20 keystream.
type keystream struct {
	key    []byte
	cipher *chacha20.Cipher
	zeros  [bufSize]byte
	buf    [bufSize]byte
	pos    int
}

var _ rand.Source = &keystream{}

func newKeystream(key []byte) *keystream {
	var k keystream
	k.setKey(key)
	return &k
}

func (k *keystream) setKey(key []byte) {
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		// Only possible with a malformed key, which we never construct.
		panic(errors.Annotate(err, "failed to create keystream cipher"))
	}
	k.key = key
	k.cipher = c
	k.pos = bufSize
}

// keyFromSeed expands a 64-bit seed into a ChaCha20 key.
func keyFromSeed(seed uint64) []byte {
	src := rand.NewSource(seed)
	key := make([]byte, chacha20.KeySize)
	for i := 0; i < chacha20.KeySize; i += 8 {
		binary.LittleEndian.PutUint64(key[i:], src.Uint64())
	}
	return key
}

func (k *keystream) Seed(seed uint64) {
	k.setKey(keyFromSeed(seed))
}

func (k *keystream) Uint64() uint64 {
	if k.pos >= bufSize {
		k.cipher.XORKeyStream(k.buf[:], k.zeros[:])
		k.pos = 0
	}
	x := binary.LittleEndian.Uint64(k.buf[k.pos:])
	k.pos += 8
	return x
}

// Stream of random variates. It is not go routine safe; use Split to obtain
// independent streams for concurrent work.
type Stream struct {
	src    *keystream
	rand   *rand.Rand
	splits uint64 // number of sub-streams created so far
}

var _ rand.Source = &Stream{}

// New creates a Stream seeded with seed. Two Streams with the same seed
// produce identical sequences.
func New(seed uint64) *Stream {
	return fromKeystream(newKeystream(keyFromSeed(seed)))
}

func fromKeystream(k *keystream) *Stream {
	return &Stream{src: k, rand: rand.New(k)}
}

// Seed resets the Stream to the beginning of the sequence for seed, including
// the sequence of sub-streams produced by Split.
func (s *Stream) Seed(seed uint64) {
	s.src.Seed(seed)
	s.splits = 0
}

// Uint64 implements rand.Source, so a Stream may be used as the Src of gonum
// distributions.
func (s *Stream) Uint64() uint64 { return s.src.Uint64() }

// Float64 draws from the uniform distribution on [0, 1).
func (s *Stream) Float64() float64 { return s.rand.Float64() }

// Uniform draws from the uniform distribution on [low, high).
func (s *Stream) Uniform(low, high float64) float64 {
	return low + (high-low)*s.rand.Float64()
}

// StdNormal draws from the standard normal distribution.
func (s *Stream) StdNormal() float64 { return s.rand.NormFloat64() }

// Normal draws from the normal distribution with the mean mu and the standard
// deviation sigma.
func (s *Stream) Normal(mu, sigma float64) float64 {
	return mu + sigma*s.rand.NormFloat64()
}

// Split creates n new sub-streams. Their sequences are disjoint from the
// parent's and from any other sub-stream, including those created by earlier
// calls to Split. The parent's own sequence is not advanced.
func (s *Stream) Split(n int) []*Stream {
	if n < 0 {
		panic(errors.Reason("n=%d must be >= 0", n))
	}
	res := make([]*Stream, n)
	var nonce [16]byte
	for i := range res {
		binary.LittleEndian.PutUint64(nonce[8:], s.splits)
		s.splits++
		key, err := chacha20.HChaCha20(s.src.key, nonce[:])
		if err != nil {
			panic(errors.Annotate(err, "failed to derive sub-stream key"))
		}
		res[i] = fromKeystream(newKeystream(key))
	}
	return res
}
