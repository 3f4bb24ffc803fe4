// Package testutil provides deterministic helpers for tests and
// benchmarks: a seeded, thread-safe RNG source and corpus generators.
package testutil
