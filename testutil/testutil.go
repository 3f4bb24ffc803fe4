package testutil

import (
	"math/rand/v2"
	"sync"
)

// RNG is a seeded, thread-safe math/rand/v2 source.
type RNG struct {
	mu   sync.Mutex
	src  *rand.PCG
	seed uint64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		src:  rand.NewPCG(seed, seed),
		seed: seed,
	}
}

// Uint64 implements rand.Source.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Uint64()
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src = rand.NewPCG(r.seed, r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// UniformVectors generates num random vectors with values in [-1, 1).
// A single backing array holds all vectors.
func UniformVectors(src rand.Source, num, dimensions int) [][]float32 {
	r := rand.New(src)

	data := make([]float32, num*dimensions)
	vectors := make([][]float32, num)

	for i := range num {
		vec := data[i*dimensions : (i+1)*dimensions]
		for j := range vec {
			vec[j] = r.Float32()*2 - 1
		}
		vectors[i] = vec
	}

	return vectors
}
