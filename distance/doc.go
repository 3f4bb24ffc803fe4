// Package distance provides the float32 vector math used by the hashing
// core: dot products, L2 norms and normalization.
//
// The kernels are backed by github.com/viterin/vek, which dispatches to
// SIMD implementations (AVX2 on x86-64, NEON on ARM64) when available and
// falls back to pure Go otherwise.
package distance
