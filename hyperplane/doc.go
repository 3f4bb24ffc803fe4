// Package hyperplane implements the primitives of sign-random-projection
// hashing: sampling random unit normals, classifying a vector against a
// hyperplane, and packing sign sequences into word-sized bin identifiers.
package hyperplane
