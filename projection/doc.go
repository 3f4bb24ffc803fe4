// Package projection implements the random-projection hasher: it owns an
// ordered set of hyperplane normals and maps query vectors to word-sized
// bin identifiers under one of two assembly strategies, Concatenate or
// Tree.
package projection
