// Package cabling implements the deterministic rack-to-rack
// patch-cabling allocator: input validation, demand normalization,
// per-rack slot reservation, the four category placement engines,
// canonical content-hashed identifiers, and the logical/physical diff
// engine.
//
// Allocate is a pure function: the same input document yields
// byte-identical identifiers and row orderings on every run and every
// machine. Every iteration over unordered state is sorted with the
// configured comparators before use.
package cabling
