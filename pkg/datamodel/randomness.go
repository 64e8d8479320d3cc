package datamodel

import (
	"encoding/binary"
	"math"

	"golang.org/x/crypto/chacha20"
)

// Rand is a deterministic pseudo-random stream backed by the chacha20
// keystream.  Two Rands built from the same seed produce the same draw
// sequence, which is what makes replicated experiments reproducible.
// A Rand is not safe for concurrent use; give each replicate its own.
type Rand struct {
	cipher *chacha20.Cipher
}

// NewRand creates a seeded random stream.  The nonce is derived from the
// seed as well, so the stream depends on nothing but the seed value.
func NewRand(seed int64) *Rand {
	var key [32]byte
	var nonce [12]byte
	binary.LittleEndian.PutUint64(key[0:], uint64(seed))
	binary.LittleEndian.PutUint64(nonce[0:], uint64(seed)^0x9e3779b97f4a7c15)

	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		panic(err)
	}
	return &Rand{cipher: c}
}

// Float64 returns a uniform draw in [0,1].
func (r *Rand) Float64() float64 {
	var buf [8]byte
	r.cipher.XORKeyStream(buf[:], buf[:])
	return float64(binary.LittleEndian.Uint64(buf[:])) / math.MaxUint64
}

// Bernoulli draws a single trial with success probability p.  Exactly one
// draw is consumed regardless of p, so the stream position only depends
// on the number of trials.  p=1 always succeeds.
func (r *Rand) Bernoulli(p float64) bool {
	return r.Float64() < p || p >= 1
}

func (r *Rand) Int() int64 {
	var buf [8]byte
	r.cipher.XORKeyStream(buf[:], buf[:])
	uint64Value := binary.LittleEndian.Uint64(buf[:])
	return int64(uint64Value & (1<<63 - 1))
}

func (r *Rand) Intn(m int64) int64 {
	if m <= 0 { // a case when no randomness is needed
		return 0
	}
	return r.Int() % m
}

// Perm returns a uniform random permutation of 0..n-1.
func (r *Rand) Perm(n int) []int {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}

	// Fisher-Yates shuffle driven by the chacha20 stream
	for i := n - 1; i > 0; i-- {
		j := r.Intn(int64(i + 1))
		indexes[i], indexes[j] = indexes[j], indexes[i]
	}

	return indexes
}
