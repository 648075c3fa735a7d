// Package random provides the deterministic random source for value
// generation: a 64-bit permuted congruential generator (PCG RXS M XS 64)
// that emits a stream of atoms, plus non-mutating derivation of child
// states by address path so that any generation step can be replayed
// without replaying the whole stream.
package random

import "math/bits"

// Atom is one fixed-width unsigned integer drawn from the source, the
// unit of randomness consumed per generation step.
type Atom = uint64

// AtomBits is the width of an Atom. All range restriction in the
// generators is masks and shifts over this width.
const AtomBits = 64

// PCG RXS M XS 64 constants, per O'Neill's reference implementation.
const (
	multiplier = 6364136223846793005
	increment  = 1442695040888963407
	permuter   = 12605985483714917081
)

// Engine is a deterministic stream of atoms. The zero value is usable
// but New should be preferred so the seed is retained for reproduction.
//
// An Engine must not be shared between concurrent call sequences; give
// each worker its own derived Engine via Derive or Fork.
type Engine struct {
	state uint64
	seed  uint64
}

// New returns an Engine seeded to a deterministic state. Any seed is
// valid, including zero.
func New(seed uint64) *Engine {
	return &Engine{state: seed, seed: seed}
}

// Seed returns the seed the engine was created with, for logging a
// failing run so it can be reproduced.
func (e *Engine) Seed() uint64 {
	return e.seed
}

// NextAtom advances the stream and returns the next atom.
func (e *Engine) NextAtom() Atom {
	oldstate := e.state
	e.state = e.state*multiplier + increment
	word := ((oldstate >> ((oldstate >> 59) + 5)) ^ oldstate) * permuter
	return (word >> 43) ^ word
}

// Bounded returns an atom reduced to [0, n) by multiply-shift.
// n of zero returns zero.
func (e *Engine) Bounded(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(e.NextAtom(), n)
	return hi
}

// Derive returns the engine addressed by path from e, without mutating
// e. Derivation is total: every path yields some valid state, and the
// same path from the same state yields the same engine byte for byte.
func (e *Engine) Derive(path ...uint64) *Engine {
	s := e.state
	for _, ix := range path {
		s = mix(s + (ix+1)*multiplier)
	}
	return &Engine{state: s, seed: e.seed}
}

// Fork returns an independent engine derived from the current stream
// position, advancing e by one atom. Parallel sessions each take a Fork
// rather than sharing the parent.
func (e *Engine) Fork() *Engine {
	return &Engine{state: mix(e.NextAtom()), seed: e.seed}
}

// mix is a splitmix64-style avalanche over one word.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
